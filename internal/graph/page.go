package graph

import "fmt"

// Page returns up to perPage entries of base that follow the entry whose
// base commit id is cursor. An empty cursor starts at the first entry.
// Feeding the last returned base id back as the cursor walks the whole
// table without gaps or repeats.
func Page(table Table, base string, perPage int, cursor string) ([]Entry, error) {
	if perPage <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", ErrInvalidPagination)
	}
	entries, ok := table[base]
	if !ok {
		return nil, fmt.Errorf("%w: unknown base branch %q", ErrInvalidPagination, base)
	}

	start := 0
	if cursor != "" {
		start = -1
		for i, e := range entries {
			if e.Base.ID() == cursor {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("%w: invalid cursor %q", ErrInvalidPagination, cursor)
		}
	}

	end := start + perPage
	if end > len(entries) {
		end = len(entries)
	}

	page := make([]Entry, end-start)
	copy(page, entries[start:end])
	return page, nil
}

// NextCursor returns the cursor for the page after page, or "" when page is
// empty.
func NextCursor(page []Entry) string {
	if len(page) == 0 {
		return ""
	}
	return page[len(page)-1].Base.ID()
}

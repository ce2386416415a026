package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstems/internal/stats"
	"github.com/audi70r/gitstems/internal/ui/components"
)

// AuthorsView ranks the authors of the current base branch
type AuthorsView struct {
	root    *tview.Flex
	table   *tview.Table
	info    *tview.TextView
	sortCol int
	sortAsc bool
	columns []string
	sortBy  []string // leaderboard key per column, "" when not sortable
	limit   int
}

// NewAuthorsView creates a new authors view showing at most limit rows
func NewAuthorsView(limit int) *AuthorsView {
	v := &AuthorsView{
		sortCol: 2, // commits
		columns: []string{"#", "Author", "Commits", "Merges", "Added", "Deleted", "Churn", "Active"},
		sortBy:  []string{"", "name", "commits", "merges", "additions", "deletions", "churn", ""},
		limit:   limit,
	}
	v.setup()
	return v
}

func (v *AuthorsView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)
}

func (v *AuthorsView) renderHeader() {
	for col, name := range v.columns {
		if col == v.sortCol {
			if v.sortAsc {
				name += "▲"
			} else {
				name += "▼"
			}
		}
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh updates the view with new data
func (v *AuthorsView) Refresh(s *stats.Summary) {
	v.table.Clear()
	v.renderHeader()
	if s == nil {
		return
	}

	authors := s.GetLeaderboard(v.sortBy[v.sortCol], v.sortAsc)
	if v.limit > 0 && len(authors) > v.limit {
		authors = authors[:v.limit]
	}

	scale := 0
	for _, a := range authors {
		scale = max(scale, a.Additions+a.Deletions)
	}

	for i, a := range authors {
		row := i + 1
		cells := []*tview.TableCell{
			rightCell(fmt.Sprintf("%d", row)).SetTextColor(tcell.ColorDarkGray),
			tview.NewTableCell(components.Truncate(a.Name, 30)).SetExpansion(1),
			rightCell(fmt.Sprintf("%d", a.Commits)),
			rightCell(fmt.Sprintf("%d", a.Merges)).SetTextColor(tcell.ColorAqua),
			rightCell(fmt.Sprintf("+%d", a.Additions)).SetTextColor(tcell.ColorGreen),
			rightCell(fmt.Sprintf("-%d", a.Deletions)).SetTextColor(tcell.ColorRed),
			tview.NewTableCell(components.ChurnBar(a.Additions, a.Deletions, scale, 12)),
			tview.NewTableCell(activeSpan(a)).SetTextColor(tcell.ColorDarkGray),
		}
		for col, cell := range cells {
			v.table.SetCell(row, col, cell)
		}
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] authors | Sort: [green]%s[-] | [s] cycle column, [r] reverse",
		len(s.Authors), v.columns[v.sortCol]))
}

// CycleSortColumn moves to the next sortable column
func (v *AuthorsView) CycleSortColumn() {
	for {
		v.sortCol = (v.sortCol + 1) % len(v.columns)
		if v.sortBy[v.sortCol] != "" {
			return
		}
	}
}

// ReverseSortOrder reverses the sort order
func (v *AuthorsView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
}

// Root returns the root primitive
func (v *AuthorsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *AuthorsView) GetFocusable() tview.Primitive {
	return v.table
}

func rightCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetAlign(tview.AlignRight)
}

// activeSpan formats the author's first and last commit days
func activeSpan(a *stats.AuthorStats) string {
	if a.FirstCommit.IsZero() {
		return ""
	}
	first, last := a.FirstCommit.Format("2006-01-02"), a.LastCommit.Format("2006-01-02")
	if first == last {
		return first
	}
	return first + ".." + last
}

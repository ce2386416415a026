package ui

import (
	"github.com/audi70r/gitstems/internal/analysis"
	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/graph"
)

// pager walks a squash map page by page. Going back replays the cursors
// of earlier pages, so only forward cursors are ever handed to graph.Page.
type pager struct {
	result  *analysis.Result
	perPage int

	cursors []string // cursor of every page up to the current one
	page    []graph.Entry
	hasNext bool
}

func newPager(result *analysis.Result, perPage int) (*pager, error) {
	p := &pager{result: result, perPage: perPage, cursors: []string{""}}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pager) load() error {
	page, err := p.result.Page(p.perPage, p.cursors[len(p.cursors)-1])
	if err != nil {
		return err
	}
	p.page = page

	p.hasNext = false
	if next := graph.NextCursor(page); next != "" {
		peek, err := p.result.Page(1, next)
		if err != nil {
			return err
		}
		p.hasNext = len(peek) > 0
	}
	return nil
}

// next moves forward; it reports false on the last page
func (p *pager) next() (bool, error) {
	if !p.hasNext {
		return false, nil
	}
	p.cursors = append(p.cursors, graph.NextCursor(p.page))
	return true, p.load()
}

// prev moves back; it reports false on the first page
func (p *pager) prev() (bool, error) {
	if len(p.cursors) == 1 {
		return false, nil
	}
	p.cursors = p.cursors[:len(p.cursors)-1]
	return true, p.load()
}

// number returns the 1-based page number
func (p *pager) number() int {
	return len(p.cursors)
}

func (p *pager) clusters() []cluster.Cluster {
	return cluster.FromEntries(p.page)
}

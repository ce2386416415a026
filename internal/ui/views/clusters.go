package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/stats"
	"github.com/audi70r/gitstems/internal/ui/components"
)

// ClustersView lists one page of clusters of the current base branch
type ClustersView struct {
	root     *tview.Flex
	summary  *tview.TextView
	table    *tview.Table
	info     *tview.TextView
	columns  []string
	clusters []cluster.Cluster
	onSelect func(cluster.Cluster)
}

// NewClustersView creates a new clusters view. onSelect fires when the
// highlighted row changes.
func NewClustersView(onSelect func(cluster.Cluster)) *ClustersView {
	v := &ClustersView{
		columns:  []string{"#", "Base", "Subject", "Author", "Commits", "Churn", "Release"},
		onSelect: onSelect,
	}
	v.setup()
	return v
}

func (v *ClustersView) setup() {
	// Summary panel at top
	v.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	v.summary.SetBorder(true).SetTitle(" Summary ")

	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')
	v.table.SetSelectionChangedFunc(func(row, _ int) {
		if row < 1 || row > len(v.clusters) || v.onSelect == nil {
			return
		}
		v.onSelect(v.clusters[row-1])
	})

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.summary, 7, 0, false).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.renderHeader()
}

func (v *ClustersView) renderHeader() {
	for col, name := range v.columns {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// SetSummary shows the statistics of the whole base branch
func (v *ClustersView) SetSummary(s *stats.Summary, rollingWindow int) {
	if s == nil {
		v.summary.SetText("[red]No history loaded[-]")
		return
	}

	var content strings.Builder
	fmt.Fprintf(&content, "  [cyan]Base branch:[-]   %s", s.Base)
	if s.LatestRelease != "" {
		fmt.Fprintf(&content, "  [aqua](%s)[-]", s.LatestRelease)
	}
	content.WriteString("\n")
	fmt.Fprintf(&content, "  [cyan]Clusters:[-]      %d (%d with merged history)\n", s.Clusters, s.MergeClusters)
	fmt.Fprintf(&content, "  [cyan]Commits:[-]       %d by %d authors\n", s.TotalCommits, s.TotalAuthors)
	fmt.Fprintf(&content, "  [cyan]Lines:[-]         [green]+%d[-] [red]-%d[-]\n", s.TotalAdditions, s.TotalDeletions)

	if tl := s.GetTimeline(rollingWindow); len(tl.Values) > 0 {
		fmt.Fprintf(&content, "  [cyan]Activity:[-]      [green]%s[-] %s..%s",
			components.Sparkline(tl.Values, 52), tl.Labels[0], tl.Labels[len(tl.Labels)-1])
	}

	v.summary.SetText(content.String())
}

// SetPage replaces the listed clusters. page is 1-based.
func (v *ClustersView) SetPage(clusters []cluster.Cluster, page int, hasNext bool) {
	v.clusters = clusters

	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	scale := 0
	for _, c := range clusters {
		scale = max(scale, churn(c))
	}

	for i, c := range clusters {
		row := i + 1
		base := c.Commits[0]

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 1, tview.NewTableCell(shortID(base.ID)).
			SetTextColor(tcell.ColorAqua))

		subjectColor := tcell.ColorWhite
		if c.IsMerge() {
			subjectColor = tcell.ColorYellow
		}
		v.table.SetCell(row, 2, tview.NewTableCell(components.Truncate(base.Subject(), 60)).
			SetTextColor(subjectColor).
			SetExpansion(1))

		v.table.SetCell(row, 3, tview.NewTableCell(components.Truncate(base.AuthorName, 18)))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", len(c.Commits))).
			SetAlign(tview.AlignRight))

		ins, del := totals(c)
		v.table.SetCell(row, 5, tview.NewTableCell(components.ChurnBar(ins, del, scale, 12)))

		v.table.SetCell(row, 6, tview.NewTableCell(strings.Join(base.ReleaseTags, ",")).
			SetTextColor(tcell.ColorGreen))
	}

	more := ""
	if hasNext {
		more = "[n] next, "
	}
	v.info.SetText(fmt.Sprintf("Page [yellow]%d[-] | %d clusters | %s[p] previous, [b] base branch",
		page, len(clusters), more))

	if len(clusters) > 0 {
		v.table.Select(1, 0)
		v.table.ScrollToBeginning()
	}
}

// Root returns the root primitive
func (v *ClustersView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *ClustersView) GetFocusable() tview.Primitive {
	return v.table
}

func totals(c cluster.Cluster) (ins, del int) {
	for _, commit := range c.Commits {
		ins += commit.Insertions
		del += commit.Deletions
	}
	return ins, del
}

func churn(c cluster.Cluster) int {
	ins, del := totals(c)
	return ins + del
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

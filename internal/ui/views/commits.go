package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/ui/components"
)

// CommitsView shows the commits of one cluster and the selected commit
type CommitsView struct {
	root    *tview.Flex
	table   *tview.Table
	detail  *tview.TextView
	commits []cluster.Commit
}

// NewCommitsView creates a new cluster detail view
func NewCommitsView() *CommitsView {
	v := &CommitsView{}
	v.setup()
	return v
}

func (v *CommitsView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')
	v.table.SetSelectionChangedFunc(func(row, _ int) {
		if row >= 1 && row <= len(v.commits) {
			v.showCommit(v.commits[row-1])
		}
	})

	v.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetScrollable(true)
	v.detail.SetBorder(true).SetTitle(" Commit ")

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.detail, 0, 1, false)

	for col, name := range []string{"Commit", "Date", "Author", "Type", "+", "-", "Subject"} {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// SetCluster lists the base commit followed by the squashed ones
func (v *CommitsView) SetCluster(c cluster.Cluster) {
	v.commits = c.Commits

	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	for i, commit := range c.Commits {
		row := i + 1

		idColor := tcell.ColorAqua
		switch {
		case i == 0:
			idColor = tcell.ColorYellow
		case commit.Synthetic:
			idColor = tcell.ColorFuchsia
		}
		v.table.SetCell(row, 0, tview.NewTableCell(shortID(commit.ID)).SetTextColor(idColor))

		date := commit.AuthorDate
		if len(date) >= 10 {
			date = date[:10]
		}
		v.table.SetCell(row, 1, tview.NewTableCell(date).SetTextColor(tcell.ColorDarkGray))
		v.table.SetCell(row, 2, tview.NewTableCell(components.Truncate(commit.AuthorName, 16)))
		v.table.SetCell(row, 3, tview.NewTableCell(commit.CommitType).SetTextColor(tcell.ColorGreen))
		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", commit.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("%d", commit.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 6, tview.NewTableCell(commit.Subject()).SetExpansion(1))
	}

	if len(c.Commits) > 0 {
		v.table.Select(1, 0)
		v.table.ScrollToBeginning()
		v.showCommit(c.Commits[0])
	}
}

func (v *CommitsView) showCommit(c cluster.Commit) {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]%s[-]", c.ID)
	if len(c.ParentIDs) > 0 {
		fmt.Fprintf(&b, " [darkgray]<- %s[-]", strings.Join(c.ParentIDs, " "))
	}
	if c.Synthetic {
		b.WriteString(" [fuchsia](from pull request)[-]")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Author: %s <%s> %s\n", c.AuthorName, c.AuthorEmail, c.AuthorDate)
	if c.CommitterEmail != "" && c.CommitterEmail != c.AuthorEmail {
		fmt.Fprintf(&b, "Commit: %s <%s> %s\n", c.CommitterName, c.CommitterEmail, c.CommitDate)
	}
	if len(c.ReleaseTags) > 0 {
		fmt.Fprintf(&b, "Release: [green]%s[-]\n", strings.Join(c.ReleaseTags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(tview.Escape(c.Message))
	b.WriteString("\n\n")
	for _, f := range c.Files {
		fmt.Fprintf(&b, "[green]%6d[-] [red]%6d[-]  %s\n", f.Insertions, f.Deletions, tview.Escape(f.Path))
	}

	v.detail.SetText(b.String())
	v.detail.ScrollToBeginning()
}

// Root returns the root primitive
func (v *CommitsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *CommitsView) GetFocusable() tview.Primitive {
	return v.table
}

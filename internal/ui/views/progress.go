package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Loading steps in the order the browser runs them
var loadSteps = []string{"Reading history", "Building squash maps", "Computing statistics"}

// ProgressView shows which loading step is running
type ProgressView struct {
	root       *tview.Flex
	steps      *tview.TextView
	statusText *tview.TextView
	current    int
	failed     bool
}

// NewProgressView creates a new progress view
func NewProgressView() *ProgressView {
	p := &ProgressView{}
	p.setup()
	return p
}

func (p *ProgressView) setup() {
	title := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]gitstems[-:-:-]")
	title.SetBackgroundColor(tcell.ColorDarkBlue)

	p.steps = tview.NewTextView().
		SetDynamicColors(true)

	p.statusText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p.steps, len(loadSteps), 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.statusText, 2, 0, false).
		AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(container, 50, 0, false).
		AddItem(nil, 0, 1, false)

	p.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(centered, 0, 1, false)

	p.render()
}

// SetStep marks step (an index into the loading steps) as running
func (p *ProgressView) SetStep(step int) {
	p.current = step
	p.render()
}

// SetStatus updates the status message
func (p *ProgressView) SetStatus(status string) {
	p.statusText.SetText("[white]" + tview.Escape(status) + "[-]")
}

// SetError shows err and marks the current step as failed
func (p *ProgressView) SetError(err error) {
	p.failed = true
	p.render()
	p.statusText.SetText(fmt.Sprintf("[red]%s[-]\n[darkgray]press q to quit[-]", tview.Escape(err.Error())))
}

func (p *ProgressView) render() {
	var b strings.Builder
	for i, name := range loadSteps {
		switch {
		case i < p.current:
			fmt.Fprintf(&b, "[green]✓[-] %s\n", name)
		case i == p.current && p.failed:
			fmt.Fprintf(&b, "[red]✗[-] %s\n", name)
		case i == p.current:
			fmt.Fprintf(&b, "[yellow]•[-] [::b]%s[-:-:-]\n", name)
		default:
			fmt.Fprintf(&b, "[darkgray]  %s[-]\n", name)
		}
	}
	p.steps.SetText(b.String())
}

// Root returns the root primitive
func (p *ProgressView) Root() tview.Primitive {
	return p.root
}

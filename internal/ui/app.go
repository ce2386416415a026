package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/audi70r/gitstems/internal/analysis"
	"github.com/audi70r/gitstems/internal/cluster"
	"github.com/audi70r/gitstems/internal/config"
	"github.com/audi70r/gitstems/internal/git"
	"github.com/audi70r/gitstems/internal/pullrequest"
	"github.com/audi70r/gitstems/internal/stats"
	"github.com/audi70r/gitstems/internal/ui/views"
)

// Loader produces the commit history to browse
type Loader func(ctx context.Context) ([]git.CommitRecord, error)

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	config *config.Config
	load   Loader
	prs    []pullrequest.Summary

	progressView *views.ProgressView
	mainView     *MainView
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, load Loader, prs []pullrequest.Summary) *App {
	app := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		config: cfg,
		load:   load,
		prs:    prs,
	}

	app.setupViews()
	return app
}

func (a *App) setupViews() {
	a.progressView = views.NewProgressView()
	a.mainView = NewMainView(a.tview, a.config)

	a.pages.AddPage("progress", a.progressView.Root(), true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	a.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := a.pages.GetFrontPage(); name == "progress" && event.Rune() == 'q' {
			a.tview.Stop()
			return nil
		}
		return event
	})

	a.tview.SetRoot(a.pages, true)
}

func (a *App) analyze(ctx context.Context) {
	fail := func(err error) {
		log.Error().Err(err).Msg("Loading failed")
		a.tview.QueueUpdateDraw(func() {
			a.progressView.SetError(err)
		})
	}
	step := func(i int, status string) {
		a.tview.QueueUpdateDraw(func() {
			a.progressView.SetStep(i)
			a.progressView.SetStatus(status)
		})
	}

	step(0, "Reading commits...")
	commits, err := a.load(ctx)
	if err != nil {
		fail(err)
		return
	}

	bases := a.config.Bases()
	step(1, fmt.Sprintf("%d commits, %d base branches", len(commits), len(bases)))
	results, err := analysis.RunAll(ctx, commits, bases, a.prs)
	if err != nil {
		fail(err)
		return
	}

	step(2, "Aggregating clusters...")
	summaries := make([]*stats.Summary, len(results))
	for i, res := range results {
		agg := stats.NewAggregator(res.Base)
		for _, c := range res.Clusters() {
			agg.ProcessCluster(c)
		}
		summaries[i] = agg.Finalize()
	}

	a.tview.QueueUpdateDraw(func() {
		if err := a.mainView.SetData(results, summaries); err != nil {
			a.progressView.SetError(err)
			return
		}
		a.pages.SwitchToPage("main")
		a.tview.SetFocus(a.mainView.GetFocusable())
	})
}

// Run loads the history in the background and starts the UI
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.analyze(ctx)
	return a.tview.Run()
}

// MainView is the cluster browser
type MainView struct {
	root      *tview.Flex
	menuList  *tview.List
	viewPages *tview.Pages
	statusBar *tview.TextView
	header    *tview.TextView
	app       *tview.Application
	config    *config.Config

	clustersView *views.ClustersView
	commitsView  *views.CommitsView
	authorsView  *views.AuthorsView

	currentView string
	results     []*analysis.Result
	summaries   []*stats.Summary
	baseIdx     int
	pager       *pager
}

// NewMainView creates the main browser view
func NewMainView(app *tview.Application, cfg *config.Config) *MainView {
	m := &MainView{
		app:    app,
		config: cfg,
	}

	m.setupLayout()
	return m
}

func (m *MainView) setupLayout() {
	m.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.header.SetBackgroundColor(tcell.ColorDarkBlue)

	m.menuList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	m.menuList.SetBorder(true).SetTitle(" Views ")

	menuItems := []struct {
		name     string
		shortcut rune
	}{
		{"Clusters", '1'},
		{"Authors", '2'},
	}
	for _, item := range menuItems {
		name := item.name
		m.menuList.AddItem(item.name, "", item.shortcut, func() {
			m.switchView(name)
		})
	}

	m.commitsView = views.NewCommitsView()
	m.clustersView = views.NewClustersView(func(c cluster.Cluster) {
		m.commitsView.SetCluster(c)
	})
	m.authorsView = views.NewAuthorsView(m.config.MaxAuthors)

	clusterPane := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.clustersView.Root(), 0, 3, true).
		AddItem(m.commitsView.Root(), 0, 2, false)

	m.viewPages = tview.NewPages()
	m.viewPages.SetBorder(true)
	m.viewPages.AddPage("Clusters", clusterPane, true, true)
	m.viewPages.AddPage("Authors", m.authorsView.Root(), true, false)

	m.currentView = "Clusters"
	m.viewPages.SetTitle(" Clusters ")

	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)
	m.updateStatusBar()

	contentFlex := tview.NewFlex().
		AddItem(m.menuList, 14, 0, true).
		AddItem(m.viewPages, 0, 1, false)

	m.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(contentFlex, 0, 1, true).
		AddItem(m.statusBar, 1, 0, false)

	m.root.SetInputCapture(m.handleInput)
}

func (m *MainView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		m.toggleFocus()
		return nil
	case tcell.KeyEsc:
		if m.app.GetFocus() != m.menuList {
			m.app.SetFocus(m.menuList)
			return nil
		}
	}

	switch event.Rune() {
	case 'q', 'Q':
		m.app.Stop()
		return nil
	case 'n':
		m.turnPage(m.pager.next)
		return nil
	case 'p':
		m.turnPage(m.pager.prev)
		return nil
	case 'b':
		m.cycleBase()
		return nil
	case 'd':
		if m.currentView == "Clusters" {
			m.app.SetFocus(m.commitsView.GetFocusable())
		}
		return nil
	case 's':
		if m.currentView == "Authors" {
			m.authorsView.CycleSortColumn()
			m.authorsView.Refresh(m.summary())
		}
		return nil
	case 'r':
		if m.currentView == "Authors" {
			m.authorsView.ReverseSortOrder()
			m.authorsView.Refresh(m.summary())
		}
		return nil
	}

	return event
}

func (m *MainView) toggleFocus() {
	if m.app.GetFocus() != m.menuList {
		m.app.SetFocus(m.menuList)
		return
	}
	switch m.currentView {
	case "Clusters":
		m.app.SetFocus(m.clustersView.GetFocusable())
	case "Authors":
		m.app.SetFocus(m.authorsView.GetFocusable())
	}
}

func (m *MainView) switchView(name string) {
	m.currentView = name
	m.viewPages.SwitchToPage(name)
	m.viewPages.SetTitle(" " + name + " ")
	m.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (m *MainView) updateStatusBar() {
	baseControls := "[yellow]Tab[-] Focus  [yellow]b[-] Base  [yellow]q[-] Quit"

	var viewControls string
	switch m.currentView {
	case "Clusters":
		viewControls = "[yellow]n[-]/[yellow]p[-] Page  [yellow]d[-] Commits  "
	case "Authors":
		viewControls = "[yellow]s[-] Sort  [yellow]r[-] Reverse  "
	}

	m.statusBar.SetText(viewControls + baseControls)
}

// SetData installs the analysis results, one per base branch, and shows the
// first page of the first base.
func (m *MainView) SetData(results []*analysis.Result, summaries []*stats.Summary) error {
	if len(results) == 0 {
		return fmt.Errorf("no base branch to browse")
	}
	m.results = results
	m.summaries = summaries
	m.baseIdx = 0
	return m.showBase()
}

func (m *MainView) showBase() error {
	res := m.results[m.baseIdx]
	p, err := newPager(res, m.config.PerPage)
	if err != nil {
		return err
	}
	m.pager = p

	s := m.summary()
	m.header.SetText(fmt.Sprintf("[::b]gitstems[-:-:-] - %s (%d/%d) - %d clusters, %d commits by %d authors",
		res.Base, m.baseIdx+1, len(m.results), s.Clusters, s.TotalCommits, s.TotalAuthors))

	m.clustersView.SetSummary(s, m.config.RollingWindow)
	m.authorsView.Refresh(s)
	m.renderPage()
	return nil
}

func (m *MainView) summary() *stats.Summary {
	if m.baseIdx >= len(m.summaries) {
		return nil
	}
	return m.summaries[m.baseIdx]
}

func (m *MainView) renderPage() {
	clusters := m.pager.clusters()
	m.clustersView.SetPage(clusters, m.pager.number(), m.pager.hasNext)
	if len(clusters) > 0 {
		m.commitsView.SetCluster(clusters[0])
	}
}

func (m *MainView) turnPage(move func() (bool, error)) {
	if m.pager == nil || m.currentView != "Clusters" {
		return
	}
	moved, err := move()
	if err != nil {
		log.Error().Err(err).Msg("Paging failed")
		return
	}
	if moved {
		m.renderPage()
	}
}

func (m *MainView) cycleBase() {
	if len(m.results) < 2 {
		return
	}
	m.baseIdx = (m.baseIdx + 1) % len(m.results)
	if err := m.showBase(); err != nil {
		log.Error().Err(err).Str("base", m.results[m.baseIdx].Base).Msg("Switching base failed")
	}
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.root
}

// GetFocusable returns the focusable component
func (m *MainView) GetFocusable() tview.Primitive {
	return m.clustersView.GetFocusable()
}

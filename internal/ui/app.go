package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/loader"
	"github.com/five82/pantry/internal/prefs"
	"github.com/five82/pantry/internal/reach"
	"github.com/five82/pantry/internal/schedule"
	"github.com/five82/pantry/internal/state"
)

// View identifies a screen.
type View int

const (
	ViewDashboard View = iota
	ViewSystem
	ViewRecipes
	ViewIngredients
)

var viewOrder = []View{ViewDashboard, ViewSystem, ViewRecipes, ViewIngredients}

func (v View) String() string {
	switch v {
	case ViewSystem:
		return "System"
	case ViewRecipes:
		return "Recipes"
	case ViewIngredients:
		return "Ingredients"
	default:
		return "Dashboard"
	}
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Service api.Service
	Logger  zerolog.Logger
	Clock   clockwork.Clock

	// Refresh and AutoRefresh seed the system view's scheduler.
	Refresh      time.Duration
	AutoRefresh  bool
	PageSize     int
	FetchTimeout time.Duration

	Prefs     prefs.Prefs
	PrefsPath string

	// DisplayTick is the UI redraw cadence. Zero uses one second.
	DisplayTick time.Duration
	InitialView View
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx   context.Context
	svc   api.Service
	log   zerolog.Logger
	clock clockwork.Clock
	keys  keyMap

	prefs        prefs.Prefs
	prefsPath    string
	displayTick  time.Duration
	fetchTimeout time.Duration
	pageSize     int

	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	currentView View
	active      mounted

	// System view refresh choice.
	refresh     time.Duration
	autoRefresh bool

	// Only the session of the current view is non-nil.
	overview    *session[loader.Overview]
	recipes     *session[loader.Listing[api.Recipe]]
	ingredients *session[loader.Listing[api.Ingredient]]

	recipeQuery     *loader.Query[api.ListRequest]
	ingredientQuery *loader.Query[api.IngredientQuery]

	// Copies read from the stores on each display tick.
	now            time.Time
	reach          reach.Snapshot
	overviewSnap   state.Snapshot[loader.Overview]
	recipeSnap     state.Snapshot[loader.Listing[api.Recipe]]
	ingredientSnap state.Snapshot[loader.Listing[api.Ingredient]]

	table           table.Model
	search          textinput.Model
	searching       bool
	intervalInput   textinput.Model
	editingInterval bool
	form            *recordForm
	confirm         *pendingDelete
	banner          banner
}

// New creates the root model and mounts the initial view.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	tick := opts.DisplayTick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	refresh := opts.Refresh
	if schedule.ValidateInterval(refresh) != nil {
		refresh = schedule.DefaultInterval
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > api.MaxPageSize {
		pageSize = api.DefaultPageSize
	}
	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" {
		p = prefs.Defaults()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 100
	search.Prompt = "/ "

	interval := textinput.New()
	interval.Placeholder = "seconds (5-300)"
	interval.CharLimit = 3
	interval.Prompt = "every "

	m := Model{
		ctx:             ctx,
		svc:             opts.Service,
		log:             opts.Logger.With().Str("component", "ui").Logger(),
		clock:           clock,
		keys:            DefaultKeyMap(),
		prefs:           p,
		prefsPath:       prefsPath,
		displayTick:     tick,
		fetchTimeout:    opts.FetchTimeout,
		pageSize:        pageSize,
		theme:           GetTheme(p.Theme),
		refresh:         refresh,
		autoRefresh:     opts.AutoRefresh,
		recipeQuery:     loader.NewQuery(api.NewListRequest(pageSize)),
		ingredientQuery: loader.NewQuery(api.IngredientQuery{ListRequest: api.NewListRequest(pageSize)}),
		table:           table.New(table.WithFocused(true)),
		search:          search,
		intervalInput:   interval,
		currentView:     opts.InitialView,
	}
	m.mountCurrent()
	m.syncSnapshots()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.displayTick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeTable()
		m.syncSnapshots()
		return m, nil

	case tickMsg:
		m.syncSnapshots()
		m.banner = m.banner.expire(m.now)
		return m, tickCmd(m.displayTick)

	case writeDoneMsg:
		m.handleWriteDone(msg)
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Shutdown unmounts the current view.
func (m *Model) Shutdown() {
	m.unmountActive()
}

// handleKey routes input. Modal inputs capture keys before global bindings
// so letters can be typed into them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Shutdown()
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	switch {
	case m.form != nil:
		return m.handleFormKey(msg)
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	case m.editingInterval:
		return m.handleIntervalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.resizeTable()
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		m.switchView(m.stepView(1))
		return m, nil
	case key.Matches(msg, m.keys.PrevView):
		m.switchView(m.stepView(-1))
		return m, nil
	case key.Matches(msg, m.keys.Dashboard):
		m.switchView(ViewDashboard)
		return m, nil
	case key.Matches(msg, m.keys.System):
		m.switchView(ViewSystem)
		return m, nil
	case key.Matches(msg, m.keys.Recipes):
		m.switchView(ViewRecipes)
		return m, nil
	case key.Matches(msg, m.keys.Ingredients):
		m.switchView(ViewIngredients)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.refreshNow()
		return m, nil
	case key.Matches(msg, m.keys.ForceOffline):
		if m.svc != nil {
			forced := !m.svc.Reachability().Forced
			m.svc.SetOffline(forced)
			m.setBanner(bannerInfo, ternary(forced, "Forced offline: requests are skipped", "Offline override cleared"))
			m.syncSnapshots()
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.banner = banner{}
		return m, nil
	}

	switch m.currentView {
	case ViewSystem:
		return m.handleSystemKey(msg)
	case ViewRecipes, ViewIngredients:
		return m.handleCatalogKey(msg)
	}
	return m, nil
}

func (m *Model) stepView(dir int) View {
	for i, v := range viewOrder {
		if v == m.currentView {
			return viewOrder[(i+dir+len(viewOrder))%len(viewOrder)]
		}
	}
	return ViewDashboard
}

// switchView unmounts the current view before mounting the next, so no two
// view schedulers run at once.
func (m *Model) switchView(v View) {
	if v == m.currentView && m.active != nil {
		return
	}
	m.unmountActive()
	m.searching = false
	m.editingInterval = false
	m.form = nil
	m.confirm = nil
	m.currentView = v
	m.mountCurrent()
	m.resizeTable()
	m.syncSnapshots()
}

func (m *Model) mountCurrent() {
	if m.svc == nil {
		return
	}
	opts := sessionOptions{
		Name:     strings.ToLower(m.currentView.String()),
		Interval: schedule.DefaultInterval,
		Timeout:  m.fetchTimeout,
		Clock:    m.clock,
		Logger:   m.log,
	}
	var err error
	switch m.currentView {
	case ViewDashboard:
		opts.Interval, opts.AutoRefresh = DashboardInterval, true
		m.overview, err = mount(m.ctx, loader.OverviewLoad(m.svc, ActivityLimit), nil, opts)
		m.setActive(m.overview, err)
	case ViewSystem:
		opts.Interval, opts.AutoRefresh = m.refresh, m.autoRefresh
		m.overview, err = mount(m.ctx, loader.OverviewLoad(m.svc, ActivityLimit), nil, opts)
		m.setActive(m.overview, err)
	case ViewRecipes:
		m.recipes, err = mount(m.ctx, loader.RecipesLoad(m.svc, m.recipeQuery), loader.CloneListing[api.Recipe], opts)
		m.setActive(m.recipes, err)
	case ViewIngredients:
		m.ingredients, err = mount(m.ctx, loader.IngredientsLoad(m.svc, m.ingredientQuery), loader.CloneListing[api.Ingredient], opts)
		m.setActive(m.ingredients, err)
	}
}

func (m *Model) setActive(s mounted, err error) {
	if err != nil {
		m.log.Error().Err(err).Msg("mount view")
		m.setBanner(bannerError, err.Error())
		m.active = nil
		return
	}
	m.active = s
}

func (m *Model) unmountActive() {
	if m.active != nil {
		m.active.unmount()
	}
	m.active = nil
	m.overview = nil
	m.recipes = nil
	m.ingredients = nil
}

// syncSnapshots copies the current view's store and the gate state into the
// model for rendering.
func (m *Model) syncSnapshots() {
	m.now = m.clock.Now()
	if m.svc != nil {
		m.reach = m.svc.Reachability()
	}
	m.overviewSnap = m.overview.snapshot()
	m.recipeSnap = m.recipes.snapshot()
	m.ingredientSnap = m.ingredients.snapshot()
	m.syncTable()
}

func (m *Model) refreshNow() {
	if m.active == nil {
		return
	}
	if err := m.active.refreshNow(); err != nil {
		m.setBanner(bannerError, err.Error())
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	if line := m.renderBanner(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSystem:
		return m.renderSystem()
	case ViewRecipes, ViewIngredients:
		return m.renderCatalog()
	default:
		return m.renderDashboard()
	}
}

func (m Model) contentHeight() int {
	return maxInt(m.height-chromeLines, 3)
}

// Messages

type tickMsg time.Time

type writeDoneMsg struct {
	action string
	result api.WriteResult
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeCmd(ctx context.Context, action string, do func(context.Context) (api.WriteResult, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
		defer cancel()
		res, err := do(ctx)
		return writeDoneMsg{action: action, result: res, err: err}
	}
}

// Run starts the Bubble Tea program and unmounts the last view on exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	return err
}

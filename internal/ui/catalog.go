package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pantry/internal/api"
)

// pendingDelete is a delete waiting for confirmation.
type pendingDelete struct {
	view  View
	id    int64
	label string
}

// handleCatalogKey handles the recipe and ingredient tables.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.currentSearch())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextPage):
		m.turnPage(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.turnPage(-1)
		return m, nil
	case key.Matches(msg, m.keys.Create):
		if m.currentView == ViewRecipes {
			m.form = newRecipeForm(nil)
		} else {
			m.form = newIngredientForm(nil)
		}
		return m, m.form.focusCmd()
	case key.Matches(msg, m.keys.Edit):
		if m.currentView == ViewRecipes {
			if r, ok := m.selectedRecipe(); ok {
				m.form = newRecipeForm(&r)
			}
		} else if i, ok := m.selectedIngredient(); ok {
			m.form = newIngredientForm(&i)
		}
		if m.form != nil {
			return m, m.form.focusCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.confirm = m.deleteTarget()
		return m, nil
	case key.Matches(msg, m.keys.VagueFilter) && m.currentView == ViewIngredients:
		q := m.ingredientQuery.Update(func(q api.IngredientQuery) api.IngredientQuery {
			return q.WithVague(nextVague(q.IsVague))
		})
		m.setBanner(bannerInfo, "Filter: "+vagueLabel(q.IsVague))
		m.table.SetCursor(0)
		m.refreshNow()
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleSearchKey edits the search box. Enter applies the term, which takes
// the list back to its first page.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		term := m.search.Value()
		if m.currentView == ViewRecipes {
			m.recipeQuery.Update(func(r api.ListRequest) api.ListRequest { return r.WithSearch(term) })
		} else {
			m.ingredientQuery.Update(func(q api.IngredientQuery) api.IngredientQuery { return q.WithSearch(term) })
		}
		m.table.SetCursor(0)
		m.refreshNow()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.confirm
	m.confirm = nil
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	if target.view == ViewRecipes {
		return m, writeCmd(m.ctx, "delete recipe", func(ctx context.Context) (api.WriteResult, error) {
			return m.svc.DeleteRecipe(ctx, target.id)
		})
	}
	return m, writeCmd(m.ctx, "delete ingredient", func(ctx context.Context) (api.WriteResult, error) {
		return m.svc.DeleteIngredient(ctx, target.id)
	})
}

// handleWriteDone reports a write. Failures never touch the displayed list;
// successes trigger a refetch so the list shows what the backend stored.
func (m *Model) handleWriteDone(msg writeDoneMsg) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("action", msg.action).Msg("write failed")
		m.setBanner(bannerError, fmt.Sprintf("%s failed: %s", msg.action, describeError(msg.err)))
		return
	}
	text := strings.TrimSpace(msg.result.Message)
	if text == "" {
		text = msg.action + " succeeded"
	}
	m.setBanner(bannerInfo, text)
	m.refreshNow()
}

func (m *Model) turnPage(dir int) {
	switch m.currentView {
	case ViewRecipes:
		page := m.recipeSnap.Data.Page
		if (dir > 0 && !page.HasNext()) || (dir < 0 && m.recipeQuery.Get().Offset == 0) {
			return
		}
		m.recipeQuery.Update(func(r api.ListRequest) api.ListRequest { return stepRequest(r, dir) })
	case ViewIngredients:
		page := m.ingredientSnap.Data.Page
		if (dir > 0 && !page.HasNext()) || (dir < 0 && m.ingredientQuery.Get().Offset == 0) {
			return
		}
		m.ingredientQuery.Update(func(q api.IngredientQuery) api.IngredientQuery {
			q.ListRequest = stepRequest(q.ListRequest, dir)
			return q
		})
	default:
		return
	}
	m.table.SetCursor(0)
	m.refreshNow()
}

func stepRequest(r api.ListRequest, dir int) api.ListRequest {
	if dir > 0 {
		return r.Next()
	}
	return r.Prev()
}

func (m Model) currentSearch() string {
	if m.currentView == ViewRecipes {
		return m.recipeQuery.Get().Search
	}
	return m.ingredientQuery.Get().Search
}

func (m Model) selectedRecipe() (api.Recipe, bool) {
	items := m.recipeSnap.Data.Page.Items
	if i := m.table.Cursor(); i >= 0 && i < len(items) {
		return items[i], true
	}
	return api.Recipe{}, false
}

func (m Model) selectedIngredient() (api.Ingredient, bool) {
	items := m.ingredientSnap.Data.Page.Items
	if i := m.table.Cursor(); i >= 0 && i < len(items) {
		return items[i], true
	}
	return api.Ingredient{}, false
}

func (m Model) deleteTarget() *pendingDelete {
	if m.currentView == ViewRecipes {
		if r, ok := m.selectedRecipe(); ok {
			return &pendingDelete{view: ViewRecipes, id: r.ID, label: r.Title}
		}
		return nil
	}
	if i, ok := m.selectedIngredient(); ok {
		return &pendingDelete{view: ViewIngredients, id: i.ID, label: i.Name}
	}
	return nil
}

// nextVague cycles the filter: any, vague only, specific only.
func nextVague(current *bool) *bool {
	switch {
	case current == nil:
		v := true
		return &v
	case *current:
		v := false
		return &v
	default:
		return nil
	}
}

func vagueLabel(v *bool) string {
	switch {
	case v == nil:
		return "all ingredients"
	case *v:
		return "vague only"
	default:
		return "specific only"
	}
}

// resizeTable sets columns for the current view. Rows are cleared first
// because the two catalogs have different column counts.
func (m *Model) resizeTable() {
	m.table.SetRows(nil)
	m.table.SetColumns(m.catalogColumns())
	m.table.SetWidth(maxInt(m.width, 20))
	m.table.SetHeight(maxInt(m.contentHeight()-3, 3))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	m.table.SetStyles(s)
	m.syncTable()
}

func (m Model) catalogColumns() []table.Column {
	width := maxInt(m.width-8, 40)
	switch m.currentView {
	case ViewRecipes:
		created := 0
		if m.width >= LayoutWideWidth {
			created = 16
		}
		title := (width - 6 - created) * 2 / 5
		cols := []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Title", Width: title},
			{Title: "URL", Width: width - 6 - created - title},
		}
		if created > 0 {
			cols = append(cols, table.Column{Title: "Created", Width: created})
		}
		return cols
	case ViewIngredients:
		name := (width - 6 - 6) / 2
		return []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: name},
			{Title: "Vague", Width: 6},
			{Title: "Description", Width: width - 6 - 6 - name},
		}
	}
	return nil
}

// syncTable fills the table from the latest listing snapshot.
func (m *Model) syncTable() {
	switch m.currentView {
	case ViewRecipes:
		wide := m.width >= LayoutWideWidth
		items := m.recipeSnap.Data.Page.Items
		rows := make([]table.Row, 0, len(items))
		for _, r := range items {
			row := table.Row{strconv.FormatInt(r.ID, 10), r.Title, truncateMiddle(r.URL, 80)}
			if wide {
				created := ""
				if t := r.ParsedCreatedAt(); !t.IsZero() {
					created = t.Local().Format("2006-01-02 15:04")
				}
				row = append(row, created)
			}
			rows = append(rows, row)
		}
		m.setRows(rows)
	case ViewIngredients:
		items := m.ingredientSnap.Data.Page.Items
		rows := make([]table.Row, 0, len(items))
		for _, i := range items {
			rows = append(rows, table.Row{strconv.FormatInt(i.ID, 10), i.Name, ternary(i.IsVague, "yes", "no"), i.VagueDescription})
		}
		m.setRows(rows)
	}
}

// setRows replaces the rows and keeps the cursor on a row. SetRows clamps the
// cursor to -1 on an empty table and never moves it back.
func (m *Model) setRows(rows []table.Row) {
	m.table.SetRows(rows)
	switch {
	case len(rows) == 0:
		return
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

// renderCatalog renders the search bar, table and paging line.
func (m Model) renderCatalog() string {
	if m.form != nil {
		return m.renderForm()
	}
	styles := m.theme.Styles()

	var (
		listing   api.ListRequest
		total     int
		shown     int
		outcome   api.Outcome
		hasData   bool
		hasNext   bool
		extra     string
		empty     = "no recipes"
		queryTerm string
	)
	switch m.currentView {
	case ViewRecipes:
		snap := m.recipeSnap
		listing, total, shown = snap.Data.Request, snap.Data.Page.Total, len(snap.Data.Page.Items)
		outcome, hasData, hasNext = snap.Data.Outcome, snap.HasData, snap.Data.Page.HasNext()
		queryTerm = m.recipeQuery.Get().Search
	default:
		snap := m.ingredientSnap
		listing, total, shown = snap.Data.Request, snap.Data.Page.Total, len(snap.Data.Page.Items)
		outcome, hasData, hasNext = snap.Data.Outcome, snap.HasData, snap.Data.Page.HasNext()
		q := m.ingredientQuery.Get()
		queryTerm = q.Search
		extra = "  " + styles.AccentText.Render(vagueLabel(q.IsVague))
		empty = "no ingredients"
	}

	var top string
	if m.searching {
		top = m.search.View()
	} else if queryTerm != "" {
		top = styles.MutedText.Render("search: ") + styles.Text.Render(queryTerm) + extra
	} else {
		top = styles.FaintText.Render("/ search  a add  e edit  x delete  n/p page") + extra
	}

	var body string
	switch {
	case !hasData:
		body = m.renderPlaceholder("Loading…")
	case shown == 0:
		body = lipgloss.NewStyle().Height(maxInt(m.contentHeight()-3, 1)).Render(styles.FaintText.Render(empty))
	default:
		body = m.table.View()
	}

	pages := 1
	if listing.Limit > 0 && total > 0 {
		pages = (total + listing.Limit - 1) / listing.Limit
	}
	status := fmt.Sprintf("page %d of %d  ·  %d of %d", listing.Page(), maxInt(pages, 1), shown, total)
	if hasNext {
		status += "  ·  n next"
	}
	if listing.Offset > 0 {
		status += "  ·  p prev"
	}
	bottom := styles.MutedText.Render(status)
	if hasData && outcome == api.Fallback {
		bottom += "  " + styles.WarningText.Render("offline, list unavailable")
	}
	if m.confirm != nil {
		bottom = styles.DangerText.Render(fmt.Sprintf("Delete %q (#%d)? y to confirm, any other key cancels", truncate(m.confirm.label, 40), m.confirm.id))
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
}

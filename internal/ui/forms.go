package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pantry/internal/api"
)

type formKind int

const (
	recipeForm formKind = iota
	ingredientForm
)

// recordForm collects the fields of a create or edit request. editID is zero
// when creating.
type recordForm struct {
	kind     formKind
	editID   int64
	labels   []string
	inputs   []textinput.Model
	original []string
	focus    int
	err      string
}

func newField(placeholder string, limit int, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	in.SetValue(value)
	return in
}

func newRecipeForm(r *api.Recipe) *recordForm {
	var cur api.Recipe
	if r != nil {
		cur = *r
	}
	f := &recordForm{
		kind:   recipeForm,
		editID: cur.ID,
		labels: []string{"URL", "Title", "Description", "Image URL"},
		inputs: []textinput.Model{
			newField("https://…", 255, cur.URL),
			newField("required", 255, cur.Title),
			newField("optional", 2000, cur.Description),
			newField("optional", 255, cur.ImageURL),
		},
	}
	f.remember()
	return f
}

func newIngredientForm(i *api.Ingredient) *recordForm {
	var cur api.Ingredient
	if i != nil {
		cur = *i
	}
	f := &recordForm{
		kind:   ingredientForm,
		editID: cur.ID,
		labels: []string{"Name", "Vague (y/n)", "Vague description"},
		inputs: []textinput.Model{
			newField("required", 100, cur.Name),
			newField("n", 3, ternary(cur.IsVague, "y", "n")),
			newField("e.g. to taste", 20, cur.VagueDescription),
		},
	}
	f.remember()
	return f
}

func (f *recordForm) remember() {
	f.original = make([]string, len(f.inputs))
	for i, in := range f.inputs {
		f.original[i] = in.Value()
	}
}

func (f *recordForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// changed returns a pointer to field i when it differs from the initial value.
func (f *recordForm) changed(i int) *string {
	v := f.value(i)
	if v == strings.TrimSpace(f.original[i]) {
		return nil
	}
	return &v
}

func (f *recordForm) focusCmd() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *recordForm) move(dir int) tea.Cmd {
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	return f.focusCmd()
}

func (f *recordForm) title() string {
	noun := ternary(f.kind == recipeForm, "recipe", "ingredient")
	if f.editID > 0 {
		return fmt.Sprintf("Edit %s #%d", noun, f.editID)
	}
	return "New " + noun
}

func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "n", "no", "false":
		return false, nil
	case "y", "yes", "true":
		return true, nil
	}
	return false, fmt.Errorf("vague must be y or n")
}

// handleFormKey drives the form. Enter on the last field submits.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, f.move(1)
	case "shift+tab", "up":
		return m, f.move(-1)
	case "enter":
		if f.focus < len(f.inputs)-1 {
			return m, f.move(1)
		}
		return m.submitForm()
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return m, cmd
}

// submitForm validates locally and only then issues the write. Invalid input
// stays in the form with the reason shown.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	cmd, err := m.formCommand(f)
	if err != nil {
		f.err = describeError(err)
		return m, nil
	}
	m.form = nil
	return m, cmd
}

func (m Model) formCommand(f *recordForm) (tea.Cmd, error) {
	svc := m.svc
	switch {
	case f.kind == recipeForm && f.editID == 0:
		in := api.RecipeInput{URL: f.value(0), Title: f.value(1), Description: f.value(2), ImageURL: f.value(3)}
		if err := in.Validate(); err != nil {
			return nil, err
		}
		return writeCmd(m.ctx, "create recipe", func(ctx context.Context) (api.WriteResult, error) {
			return svc.CreateRecipe(ctx, in)
		}), nil

	case f.kind == recipeForm:
		id := f.editID
		patch := api.RecipePatch{URL: f.changed(0), Title: f.changed(1), Description: f.changed(2), ImageURL: f.changed(3)}
		if err := patch.Validate(); err != nil {
			return nil, err
		}
		return writeCmd(m.ctx, "update recipe", func(ctx context.Context) (api.WriteResult, error) {
			return svc.UpdateRecipe(ctx, id, patch)
		}), nil
	}

	vague, err := parseYesNo(f.value(1))
	if err != nil {
		return nil, err
	}
	if f.editID == 0 {
		in := api.IngredientInput{Name: f.value(0), IsVague: vague, VagueDescription: f.value(2)}
		if err := in.Validate(); err != nil {
			return nil, err
		}
		return writeCmd(m.ctx, "create ingredient", func(ctx context.Context) (api.WriteResult, error) {
			return svc.CreateIngredient(ctx, in)
		}), nil
	}

	id := f.editID
	patch := api.IngredientPatch{Name: f.changed(0), VagueDescription: f.changed(2)}
	if f.changed(1) != nil {
		patch.IsVague = &vague
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return writeCmd(m.ctx, "update ingredient", func(ctx context.Context) (api.WriteResult, error) {
		return svc.UpdateIngredient(ctx, id, patch)
	}), nil
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form
	width := maxInt(minInt(m.width-4, 72), 30)

	lines := []string{styles.Title.Render(f.title()), ""}
	for i, label := range f.labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		lines = append(lines, labelStyle.Render(padRight(label, 19))+f.inputs[i].View())
	}
	lines = append(lines, "")
	if f.err != "" {
		lines = append(lines, styles.DangerText.Render(truncate(f.err, width-4)))
	}
	lines = append(lines, styles.FaintText.Render("tab next  shift+tab back  enter on last field saves  esc cancel"))

	box := styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(maxInt(m.width, 1), m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
}

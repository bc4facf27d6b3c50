package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	CycleTheme   key.Binding
	NextView     key.Binding
	PrevView     key.Binding
	Dashboard    key.Binding
	System       key.Binding
	Recipes      key.Binding
	Ingredients  key.Binding
	Refresh      key.Binding
	ForceOffline key.Binding
	Escape       key.Binding
	Confirm      key.Binding

	// System view
	ToggleAuto     key.Binding
	FasterInterval key.Binding
	SlowerInterval key.Binding
	CustomInterval key.Binding

	// Catalog views
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Create      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	VagueFilter key.Binding
	FocusNext   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		System: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "System"),
		),
		Recipes: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Recipes"),
		),
		Ingredients: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Ingredients"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		ForceOffline: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Force offline on/off"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		ToggleAuto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Auto refresh on/off"),
		),
		FasterInterval: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Shorter interval"),
		),
		SlowerInterval: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Longer interval"),
		),
		CustomInterval: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Custom interval"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "Previous page"),
		),
		Create: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add record"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit record"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete record"),
		),
		VagueFilter: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle vague filter"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.System, k.Recipes, k.Ingredients, k.NextView, k.PrevView},
		{k.Refresh, k.ForceOffline},
		{k.ToggleAuto, k.FasterInterval, k.SlowerInterval, k.CustomInterval},
		{k.Up, k.Down, k.Search, k.NextPage, k.PrevPage, k.Create, k.Edit, k.Delete, k.VagueFilter},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

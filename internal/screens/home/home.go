package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/editor"
	"github.com/abhisek/flashquiz/internal/screens/setup"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

// setsLoadedMsg carries the result of listing the source.
type setsLoadedMsg struct {
	Sets []deck.SetInfo
	Err  error
}

// HomeScreen lists the available question sets.
type HomeScreen struct {
	engine   *session.Engine
	src      deck.Source
	location string
	defaults session.Config

	menu    components.Menu
	sets    []deck.SetInfo
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen over src. location is shown to the user as where
// the sets live; defaults seed the setup screen's toggles.
func New(engine *session.Engine, src deck.Source, location string, defaults session.Config) *HomeScreen {
	return &HomeScreen{
		engine:   engine,
		src:      src,
		location: location,
		defaults: defaults,
		loading:  true,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.listSets()
}

// Resume refreshes the list, since the editor may have changed set sizes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.listSets()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "E", Description: "Edit"},
		{Key: "R", Description: "Refresh"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) listSets() tea.Cmd {
	src := h.src
	return func() tea.Msg {
		sets, err := src.List(context.Background())
		return setsLoadedMsg{Sets: sets, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		h.loading = false
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.setSets(msg.Sets)
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "r":
			h.loading = true
			return h, h.listSets()
		case "e":
			name, ok := h.selectedSet()
			if !ok {
				return h, nil
			}
			return h, h.open(name, func() screen.Screen {
				return editor.New(h.engine)
			})
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// setSets rebuilds the menu, keeping the selection on the same set if it
// still exists.
func (h *HomeScreen) setSets(sets []deck.SetInfo) {
	prev, _ := h.selectedSet()
	h.sets = sets

	items := make([]components.MenuItem, len(sets))
	for i, info := range sets {
		name := info.Name
		items[i] = components.MenuItem{
			Label:    setLabel(info),
			Disabled: info.Entries < 0,
			Action: func() tea.Cmd {
				return h.open(name, func() screen.Screen {
					return setup.New(h.engine, h.defaults)
				})
			},
		}
	}
	h.menu = components.NewMenu(items)
	for i, info := range sets {
		if info.Name == prev && !items[i].Disabled {
			h.menu.Selected = i
		}
	}
}

func (h *HomeScreen) selectedSet() (string, bool) {
	i := h.menu.Selected
	if i < 0 || i >= len(h.menu.Items) || h.menu.Items[i].Disabled {
		return "", false
	}
	return h.sets[i].Name, true
}

// open loads name into the engine and pushes the screen built by next.
func (h *HomeScreen) open(name string, next func() screen.Screen) tea.Cmd {
	if err := h.engine.Load(context.Background(), name); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	s := next()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderSourceBar(len(h.sets), h.location, cw))
	if h.loading && len(h.sets) == 0 {
		sections = append(sections, renderLoading(cw))
	} else {
		sections = append(sections, renderSetList(h.menu, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

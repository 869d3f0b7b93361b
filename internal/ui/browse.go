package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"spacearchive/internal/detail"
	"spacearchive/internal/media"
	"spacearchive/internal/provider"
	"spacearchive/internal/session"
)

type mode int

const (
	modeInput mode = iota
	modeList
	modeDetail
)

// resultItem adapts a media.Item to the list component.
type resultItem struct {
	item media.Item
}

func (r resultItem) Title() string { return r.item.Title }

func (r resultItem) Description() string {
	desc := r.item.ShortDescription
	if desc == "" {
		desc = "No description"
	}
	return fmt.Sprintf("%s · %s · %s", r.item.MediaType, r.item.FormattedDate, desc)
}

func (r resultItem) FilterValue() string { return r.item.Title }

// searchDoneMsg carries the session state after a request; fresh marks a
// new search rather than an appended page.
type searchDoneMsg struct {
	state session.State
	fresh bool
}

type detailDoneMsg struct {
	agg   *detail.Aggregator
	state detail.State
}

// NewAggregator creates the aggregator for one detail view.
type NewAggregator func() *detail.Aggregator

// Model is the interactive browser. It drives one Search Session for its
// whole lifetime and creates a fresh Aggregator for each detail view.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	newAgg NewAggregator
	params provider.SearchParams

	mode    mode
	input   textinput.Model
	list    list.Model
	view    viewport.Model
	spin    spinner.Model
	state   session.State
	agg     *detail.Aggregator
	current media.Item
	width   int
	height  int
}

// NewModel creates a browser. With a non-empty params.Query the search runs
// on start; otherwise the query prompt is shown first.
func NewModel(ctx context.Context, sess *session.Session, newAgg NewAggregator, params provider.SearchParams) Model {
	ti := textinput.New()
	ti.Placeholder = "hubble telescope"
	ti.Prompt = "Search > "
	ti.Focus()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "NASA Image and Video Library"

	m := Model{
		ctx:    ctx,
		sess:   sess,
		newAgg: newAgg,
		params: params,
		mode:   modeInput,
		input:  ti,
		list:   l,
		view:   viewport.New(0, 0),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if params.Query != "" {
		m.mode = modeList
		m.state.Loading = true
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.mode == modeList {
		return tea.Batch(m.spin.Tick, m.searchCmd(m.params))
	}
	return textinput.Blink
}

func (m Model) searchCmd(params provider.SearchParams) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		return searchDoneMsg{state: sess.Search(ctx, params), fresh: true}
	}
}

// loadMoreCmd returns a command fetching the next page when the cursor sits
// on the last loaded item, or nil.
func (m Model) loadMoreCmd() tea.Cmd {
	n := len(m.list.Items())
	if n == 0 || m.list.Index() < n-1 || m.state.Loading || !m.state.HasMore {
		return nil
	}
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		return searchDoneMsg{state: sess.LoadMore(ctx)}
	}
}

func (m Model) detailCmd(agg *detail.Aggregator, id string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return detailDoneMsg{agg: agg, state: agg.Fetch(ctx, id)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		m.view.Width = msg.Width
		m.view.Height = msg.Height - 2
		if m.mode == modeDetail {
			m.view.SetContent(RenderDetail(m.current, m.agg.State(), m.width))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeDetail:
			return m.updateDetail(msg)
		}

	case searchDoneMsg:
		return m.applySearch(msg.state, msg.fresh)

	case detailDoneMsg:
		// A detail view that was closed or replaced is ignored.
		if m.mode != modeDetail || msg.agg != m.agg {
			return m, nil
		}
		m.view.SetContent(RenderDetail(m.current, msg.state, m.width))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.mode == modeDetail {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m.updateList(msg)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		q := m.input.Value()
		if q == "" {
			return m, nil
		}
		m.params.Query = q
		m.mode = modeList
		m.state.Loading = true
		m.state.Err = ""
		return m, tea.Batch(m.spin.Tick, m.searchCmd(m.params))
	case "esc":
		if len(m.list.Items()) > 0 {
			m.mode = modeList
			return m, nil
		}
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.agg.Reset()
		m.agg = nil
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "enter":
			sel, ok := m.list.SelectedItem().(resultItem)
			if !ok {
				return m, nil
			}
			m.current = sel.item
			m.agg = m.newAgg()
			m.mode = modeDetail
			m.view.GotoTop()
			m.view.SetContent(RenderDetail(m.current, detail.State{ID: sel.item.ID, Loading: true}, m.width))
			return m, m.detailCmd(m.agg, sel.item.ID)
		case "s":
			m.mode = modeInput
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if more := m.loadMoreCmd(); more != nil {
		m.state.Loading = true
		return m, tea.Batch(cmd, more)
	}
	return m, cmd
}

func (m Model) applySearch(st session.State, fresh bool) (tea.Model, tea.Cmd) {
	m.state = st
	items := make([]list.Item, len(st.Items))
	for i, it := range st.Items {
		items[i] = resultItem{item: it}
	}
	cmd := m.list.SetItems(items)
	if fresh {
		m.list.ResetSelected()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeInput:
		return titleStyle.Render("NASA Image and Video Library") + "\n\n" +
			m.input.View() + "\n\n" +
			dimStyle.Render("Try: "+suggestionLine()) + "\n"
	case modeDetail:
		return m.view.View() + "\n" + dimStyle.Render("esc back · ↑/↓ scroll · ctrl+c quit")
	}
	return m.list.View() + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	switch {
	case m.state.Loading:
		return m.spin.View() + " Loading…"
	case m.state.Err != "":
		return errorStyle.Render(m.state.Err)
	}
	status := fmt.Sprintf("%d of %d results", len(m.state.Items), m.state.TotalHits)
	if !m.state.HasMore {
		status += " · end"
	}
	return dimStyle.Render(status + " · enter details · s new search · q quit")
}

func suggestionLine() string {
	s := provider.Suggestions()
	if len(s) > 4 {
		s = s[:4]
	}
	return strings.Join(s, ", ")
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session, newAgg NewAggregator, params provider.SearchParams) error {
	p := tea.NewProgram(NewModel(ctx, sess, newAgg, params), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

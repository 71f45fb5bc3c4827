package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/service"
)

// ── keys ─────────────────────────────────────────────────────────────────────

type exploreKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Toggle   key.Binding
	Select   key.Binding
	Clear    key.Binding
	Reload   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
	PhaseKey key.Binding
}

func newExploreKeyMap() exploreKeyMap {
	return exploreKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		PhaseKey: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "phases")),
	}
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Select, k.PhaseKey, k.Search, k.Reload, k.Quit}
}

// ── messages ─────────────────────────────────────────────────────────────────

// viewLoadedMsg carries a freshly derived view. hits is set when a search
// query is active.
type viewLoadedMsg struct {
	view *service.View
	hits []service.SearchHit
	err  error
}

type estimateMsg struct {
	res *service.EstimateResult
	err error
}

type statusMsg string

type errMsg struct{ err error }

// datasetChangedMsg is sent when the watched dataset file changes on disk.
type datasetChangedMsg struct{}

// ── model ────────────────────────────────────────────────────────────────────

// exploreModel is the interactive explorer. All service calls run in
// commands and come back as messages, so Update never blocks.
type exploreModel struct {
	app  *App
	ctx  context.Context
	keys exploreKeyMap

	view   *service.View
	rows   []domain.Node
	cursor int
	offset int

	search    textinput.Model
	searching bool
	query     string

	selected []int
	estimate *service.EstimateResult

	changes <-chan struct{}

	status string
	err    error
	width  int
	height int
}

func newExploreModel(ctx context.Context, app *App, changes <-chan struct{}) exploreModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name, rule, stage, owner or document"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)

	return exploreModel{
		app:     app,
		ctx:     ctx,
		keys:    newExploreKeyMap(),
		search:  ti,
		changes: changes,
		height:  24,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return tea.Batch(m.loadView(), m.waitForChange())
}

func (m exploreModel) loadView() tea.Cmd {
	explorer := m.app.Explorer
	ctx, query := m.ctx, m.query
	return func() tea.Msg {
		v, err := explorer.View(ctx)
		if err != nil {
			return viewLoadedMsg{err: err}
		}
		msg := viewLoadedMsg{view: v}
		if strings.TrimSpace(query) != "" {
			msg.hits, msg.err = explorer.Search(ctx, query, false)
		}
		return msg
	}
}

// refreshEstimate drops the estimate when nothing is selected, otherwise it
// reprices the selection.
func (m *exploreModel) refreshEstimate() tea.Cmd {
	if len(m.selected) == 0 {
		m.estimate = nil
		return nil
	}
	return m.loadEstimate()
}

func (m exploreModel) loadEstimate() tea.Cmd {
	explorer := m.app.Explorer
	ctx, ids := m.ctx, slices.Clone(m.selected)
	return func() tea.Msg {
		res, err := explorer.Estimate(ctx, ids, nil)
		return estimateMsg{res: res, err: err}
	}
}

func (m exploreModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return datasetChangedMsg{}
	}
}

func (m exploreModel) reload() tea.Cmd {
	explorer := m.app.Explorer
	ctx := m.ctx
	return func() tea.Msg {
		if err := explorer.Reload(ctx); err != nil {
			return errMsg{fmt.Errorf("reload failed, keeping previous dataset: %w", err)}
		}
		return statusMsg("dataset reloaded")
	}
}

func (m exploreModel) toggleGroup(groupID string) tea.Cmd {
	explorer := m.app.Explorer
	ctx := m.ctx
	return func() tea.Msg {
		expanded, err := explorer.ToggleGroup(ctx, groupID)
		if err != nil {
			return errMsg{err}
		}
		state := "collapsed"
		if expanded {
			state = "expanded"
		}
		return statusMsg(fmt.Sprintf("group %s %s", groupID, state))
	}
}

func (m exploreModel) togglePhase(phaseID string) tea.Cmd {
	explorer := m.app.Explorer
	ctx := m.ctx
	return func() tea.Msg {
		enabled, err := explorer.TogglePhase(ctx, phaseID)
		if err != nil {
			return errMsg{err}
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		return statusMsg(fmt.Sprintf("phase %s %s", phaseID, state))
	}
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
		return m, nil

	case viewLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.rows = msg.view.Nodes
		if strings.TrimSpace(m.query) != "" {
			m.rows = make([]domain.Node, 0, len(msg.hits))
			for _, h := range msg.hits {
				m.rows = append(m.rows, h.Node)
			}
		}
		m.clampCursor()
		return m, m.refreshEstimate()

	case estimateMsg:
		if msg.err != nil {
			// Selected steps vanished in a reload; drop them.
			m.selected = m.knownSelection()
			m.estimate = nil
			return m, m.refreshEstimate()
		}
		m.estimate = msg.res
		return m, nil

	case statusMsg:
		m.status = string(msg)
		m.err = nil
		return m, m.loadView()

	case errMsg:
		m.err = msg.err
		return m, nil

	case datasetChangedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m exploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		return m, m.loadView()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query {
		m.query = m.search.Value()
		m.cursor, m.offset = 0, 0
		return m, tea.Batch(cmd, m.loadView())
	}
	return m, cmd
}

func (m exploreModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			return m, m.loadView()
		}

	case key.Matches(msg, m.keys.Toggle):
		if n, ok := m.current(); ok && n.ExpandsGroup != "" {
			return m, m.toggleGroup(n.ExpandsGroup)
		}

	case key.Matches(msg, m.keys.Select):
		n, ok := m.current()
		if !ok {
			return m, nil
		}
		if i := slices.Index(m.selected, n.ID); i >= 0 {
			m.selected = slices.Delete(m.selected, i, i+1)
		} else {
			m.selected = append(m.selected, n.ID)
		}
		return m, m.refreshEstimate()

	case key.Matches(msg, m.keys.Clear):
		m.selected = nil
		m.estimate = nil
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.PhaseKey):
		idx := int(msg.String()[0] - '1')
		if m.view != nil && idx < len(m.view.Phases) {
			return m, m.togglePhase(m.view.Phases[idx].Phase.ID)
		}
	}
	return m, nil
}

func (m exploreModel) current() (domain.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.Node{}, false
	}
	return m.rows[m.cursor], true
}

// knownSelection drops selected ids the current model no longer has.
func (m exploreModel) knownSelection() []int {
	model := m.app.Explorer.Model()
	var keep []int
	for _, id := range m.selected {
		if model.HasNode(id) {
			keep = append(keep, id)
		}
	}
	return keep
}

func (m *exploreModel) listHeight() int {
	// header, phase bar, blank, footer rule, estimate, status, help
	return max(m.height-8, 3)
}

func (m *exploreModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m exploreModel) View() string {
	if m.view == nil {
		if m.err != nil {
			return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
		}
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	b.WriteString(m.renderPhases() + "\n\n")
	b.WriteString(m.renderRows())

	b.WriteString(formatter.Dim(strings.Repeat("─", max(m.width, 40))) + "\n")
	b.WriteString(formatter.FormatEstimateFooter(m.estimate) + "\n")
	switch {
	case m.searching:
		b.WriteString(m.search.View() + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(formatter.Dim(m.status) + "\n")
	default:
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m exploreModel) renderHeader() string {
	v := m.view
	parts := []string{formatter.StyleHeader.Render(v.Dataset)}
	parts = append(parts, formatter.Dim(fmt.Sprintf("%d shown, %d hidden", len(v.Nodes), v.Hidden)))
	if v.HourlyRate > 0 {
		parts = append(parts, formatter.Dim(formatter.FormatMoney(v.HourlyRate)+"/h"))
	}
	if m.query != "" && !m.searching {
		parts = append(parts, formatter.StylePurple.Render(fmt.Sprintf("search %q: %d", m.query, len(m.rows))))
	}
	return strings.Join(parts, "  ")
}

func (m exploreModel) renderPhases() string {
	var parts []string
	for i, p := range m.view.Phases {
		label := p.Phase.Name
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		if p.Enabled {
			parts = append(parts, formatter.StyleGreen.Render("● "+label))
		} else {
			parts = append(parts, formatter.Dim("○ "+label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m exploreModel) renderRows() string {
	if len(m.rows) == 0 {
		return formatter.Dim("  nothing to show") + "\n"
	}

	model := m.app.Explorer.Model()
	palette := stagePalette(model)
	end := min(m.offset+m.listHeight(), len(m.rows))

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		n := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("› ")
		}
		mark := "  "
		if slices.Contains(m.selected, n.ID) {
			mark = formatter.StyleGreen.Render("◉ ")
		}

		label := n.Label()
		if i == m.cursor {
			label = formatter.Bold(label)
		}
		line := fmt.Sprintf("%s%s%s %s %s %s", cursor, mark, formatter.NodeMarker(n),
			formatter.Dim(fmt.Sprintf("#%-3d", n.ID)), label, palette.Render(n.Stage))
		if n.ExpandsGroup != "" && m.view != nil {
			if m.view.State.GroupIsExpanded(n.ExpandsGroup) {
				line += formatter.StyleBlue.Render(" [-]")
			} else {
				line += formatter.StyleBlue.Render(" [+]")
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m exploreModel) renderHelp() string {
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, formatter.StyleBold.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

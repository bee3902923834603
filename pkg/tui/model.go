// Package tui provides the interactive terminal dashboard for bitectl.
// It is built on the bubbletea/lipgloss stack and renders two tabs,
// Customers and Products, straight from a state.Store: the model keeps only
// view state (tab, cursor, page, filter input) and reads every record from
// the store snapshot when rendering.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/state"
)

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	// titleStyle renders the application title bar.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	// activeTabStyle renders the currently selected tab label.
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			PaddingRight(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingRight(1)

	// altRowStyle is used for even-numbered table rows (zebra striping).
	altRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236")).
			PaddingRight(1)

	// selectedRowStyle marks the row under the cursor.
	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("25")).
				PaddingRight(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Width(20)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			PaddingLeft(1)
)

// ---------------------------------------------------------------------------
// Tab type
// ---------------------------------------------------------------------------

type tab int

const (
	tabCustomers tab = iota
	tabProducts
	tabCount // sentinel, must stay last
)

// ---------------------------------------------------------------------------
// Tea messages
// ---------------------------------------------------------------------------

// storeChangedMsg is sent by Subscribe after every dispatch so that the
// loading state of a running request is rendered.
type storeChangedMsg struct{}

// doneMsg reports a finished request.
type doneMsg struct {
	err error
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// DefaultPageSize is used when New is given a non-positive page size.
const DefaultPageSize = 10

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	store    *state.Store
	ctx      context.Context
	pageSize int
	now      func() time.Time

	tabs      []string
	activeTab tab
	cursor    [tabCount]int
	page      [tabCount]int

	editing       bool   // the search filter is being edited
	input         string // search filter being edited
	pendingDelete string // id waiting for a second "d"
	showDetail    bool

	width       int
	height      int
	inflight    int
	lastRefresh time.Time
}

// New returns a Model reading from and dispatching to st.
func New(st *state.Store, pageSize int) Model {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Model{
		store:    st,
		ctx:      context.Background(),
		pageSize: pageSize,
		now:      time.Now,
		tabs:     []string{"Customers", "Products"},
		page:     [tabCount]int{1, 1},
		inflight: 1,
	}
}

// Subscribe forwards store changes to p so that the dashboard re-renders
// while requests are in flight. The returned function stops forwarding.
func Subscribe(p *tea.Program, st *state.Store) (unsubscribe func()) {
	return st.Subscribe(func(state.State) {
		// Send blocks until the program reads the message; subscribers
		// run on the dispatching goroutine, which may be Update itself.
		go p.Send(storeChangedMsg{})
	})
}

// Init fetches both lists with their current filters.
func (m Model) Init() tea.Cmd {
	return m.run(m.store.RefreshAll)
}

// run executes fn off the event loop and reports completion as a doneMsg.
func (m Model) run(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

// thunk runs t against the store. The caller increments inflight.
func (m Model) thunk(t state.Thunk) tea.Cmd {
	return m.run(func(ctx context.Context) error { return m.store.Run(ctx, t) })
}

// Update processes messages and returns an updated model plus any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		return m, nil

	case doneMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		m.lastRefresh = m.now()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "d" {
		m.pendingDelete = ""
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "right", "left", "l", "h":
		m.activeTab = (m.activeTab + 1) % tabCount
		m.showDetail = false
	case "1":
		m.activeTab = tabCustomers
		m.showDetail = false
	case "2":
		m.activeTab = tabProducts
		m.showDetail = false
	case "down", "j":
		if m.cursor[m.activeTab] < m.rowCount()-1 {
			m.cursor[m.activeTab]++
		}
	case "up", "k":
		if m.cursor[m.activeTab] > 0 {
			m.cursor[m.activeTab]--
		}
	case "n":
		if m.page[m.activeTab] < m.pageCount() {
			m.page[m.activeTab]++
			m.cursor[m.activeTab] = 0
		}
	case "p":
		if m.page[m.activeTab] > 1 {
			m.page[m.activeTab]--
			m.cursor[m.activeTab] = 0
		}
	case "esc":
		m.showDetail = false
	case "r":
		return m.fetch()
	case "/":
		m.editing = true
		m.input = m.searchFilter()
	case "c":
		m.cycleFilter()
		return m.fetch()
	case "x":
		if m.activeTab == tabCustomers {
			m.store.Dispatch(state.ResetFilters[state.CustomerFilters]{})
		} else {
			m.store.Dispatch(state.ResetFilters[state.ProductFilters]{})
		}
		return m.fetch()
	case "enter":
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		m.showDetail = true
		m.inflight++
		if m.activeTab == tabCustomers {
			return m, m.thunk(state.FetchCustomerByID(id))
		}
		return m, m.thunk(state.FetchProductByID(id))
	case "d":
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if m.pendingDelete != id {
			m.pendingDelete = id
			return m, nil
		}
		m.pendingDelete = ""
		m.inflight++
		if m.activeTab == tabCustomers {
			return m, m.thunk(state.DeleteCustomer(id))
		}
		return m, m.thunk(state.DeleteProduct(id))
	}
	return m, nil
}

// updateInput handles keys while the search filter is being edited.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyEnter:
		m.editing = false
		field := "search"
		if m.activeTab == tabCustomers {
			field = "name"
		}
		m.setFilter(field, strings.TrimSpace(m.input))
		m.input = ""
		return m.fetch()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

// fetch reloads the active list with its current filters, starting again
// from the first page.
func (m Model) fetch() (tea.Model, tea.Cmd) {
	m.page[m.activeTab] = 1
	m.cursor[m.activeTab] = 0
	m.inflight++
	st := m.store.State()
	if m.activeTab == tabCustomers {
		return m, m.thunk(state.FetchCustomers(st.Customers.Filters.Params()))
	}
	return m, m.thunk(state.FetchProducts(st.Products.Filters.Params()))
}

func (m Model) setFilter(field, value string) {
	if m.activeTab == tabCustomers {
		m.store.Dispatch(state.SetFilter[state.CustomerFilters]{Field: field, Value: value})
		return
	}
	m.store.Dispatch(state.SetFilter[state.ProductFilters]{Field: field, Value: value})
}

func (m Model) searchFilter() string {
	st := m.store.State()
	if m.activeTab == tabCustomers {
		return st.Customers.Filters.Name
	}
	return st.Products.Filters.Search
}

// cycleFilter moves the gender or category filter to the next option,
// wrapping through "any".
func (m Model) cycleFilter() {
	st := m.store.State()
	if m.activeTab == tabCustomers {
		m.setFilter("gender", next(model.Genders, st.Customers.Filters.Gender))
		return
	}
	m.setFilter("category", next(model.ProductCategories, st.Products.Filters.Category))
}

// next returns the option after current; "" precedes the first option and
// follows the last one.
func next(options []string, current string) string {
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	return options[0]
}

// ---------------------------------------------------------------------------
// Rows
// ---------------------------------------------------------------------------

func (m Model) customerPage() ([]model.Customer, int) {
	items := state.SortByName(state.AllCustomers(m.store.State()), state.CustomerName)
	return state.Page(items, m.page[tabCustomers], m.pageSize)
}

func (m Model) productPage() ([]model.Product, int) {
	items := state.SortByName(state.AllProducts(m.store.State()), state.ProductName)
	return state.Page(items, m.page[tabProducts], m.pageSize)
}

func (m Model) rowCount() int {
	if m.activeTab == tabCustomers {
		rows, _ := m.customerPage()
		return len(rows)
	}
	rows, _ := m.productPage()
	return len(rows)
}

func (m Model) pageCount() int {
	if m.activeTab == tabCustomers {
		_, pages := m.customerPage()
		return pages
	}
	_, pages := m.productPage()
	return pages
}

// cursorAt clamps the stored cursor to the rows currently visible.
func (m Model) cursorAt(rows int) int {
	return min(m.cursor[m.activeTab], max(rows-1, 0))
}

func (m Model) selectedID() (string, bool) {
	if m.activeTab == tabCustomers {
		rows, _ := m.customerPage()
		if len(rows) == 0 {
			return "", false
		}
		return rows[m.cursorAt(len(rows))].ID, true
	}
	rows, _ := m.productPage()
	if len(rows) == 0 {
		return "", false
	}
	return rows[m.cursorAt(len(rows))].ID, true
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the entire dashboard to a string.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("  bite admin  "))
	sb.WriteString("\n")

	var tabParts []string
	for i, name := range m.tabs {
		label := fmt.Sprintf(" %d: %s ", i+1, name)
		if tab(i) == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
	}
	sb.WriteString(strings.Join(tabParts, ""))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilters())
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")

	contentHeight := m.height - 7 // title, tabs, filters, two dividers, status(2)
	if contentHeight < 1 {
		contentHeight = 1
	}
	content := m.renderActiveTab()
	if m.showDetail {
		content = m.renderDetail()
	}
	sb.WriteString(clipLines(content, contentHeight))
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())

	return sb.String()
}

func (m Model) renderActiveTab() string {
	w := m.width - 2
	if m.activeTab == tabCustomers {
		rows, pages := m.customerPage()
		return renderCustomers(rows, m.cursorAt(len(rows)), w) + m.renderPager(pages)
	}
	rows, pages := m.productPage()
	return renderProducts(rows, m.cursorAt(len(rows)), w) + m.renderPager(pages)
}

func (m Model) renderPager(pages int) string {
	return "\n" + dimStyle.Render(fmt.Sprintf("  page %d of %d", min(m.page[m.activeTab], pages), pages))
}

// renderFilters shows the active filters, or the search input while it is
// being edited.
func (m Model) renderFilters() string {
	if m.editing {
		return statusBarStyle.Render("search: " + m.input + "█")
	}
	st := m.store.State()
	if m.activeTab == tabCustomers {
		f := st.Customers.Filters
		return statusBarStyle.Render(fmt.Sprintf("name: %s  gender: %s", orAny(f.Name), orAny(f.Gender)))
	}
	f := st.Products.Filters
	return statusBarStyle.Render(fmt.Sprintf("search: %s  category: %s", orAny(f.Search), orAny(f.Category)))
}

// renderStatus renders the bottom status bar line.
func (m Model) renderStatus() string {
	st := m.store.State()
	status, lastErr := state.CustomersStatus(st)
	if m.activeTab == tabProducts {
		status, lastErr = state.ProductsStatus(st)
	}

	if m.pendingDelete != "" {
		return errorStyle.Render(fmt.Sprintf("Delete %s? press d again to confirm", m.pendingDelete))
	}

	parts := []string{fmt.Sprintf("status: %s", status)}
	if !m.lastRefresh.IsZero() {
		parts = append(parts, fmt.Sprintf("last refresh: %s", m.lastRefresh.Format("15:04:05")))
	}
	if m.inflight > 0 {
		parts = append(parts, "loading…")
	}
	parts = append(parts, "q: quit  tab: switch  r: refresh  /: search  c: cycle  x: reset  enter: open  d: delete")
	line := statusBarStyle.Render(strings.Join(parts, "  |  "))
	if lastErr != "" {
		line = errorStyle.Render("Error: "+lastErr) + "\n" + line
	}
	return line
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// clipLines limits the string s to at most maxLines newline-delimited lines.
func clipLines(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}

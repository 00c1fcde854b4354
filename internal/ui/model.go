// Package ui is the gridlens application: a paginated, filterable,
// sortable table over a data source, with floating per-row action menus,
// column filter dropdowns, a rows-per-page picker and a typeahead entity
// input. All floating widgets get their placement from internal/overlay and
// are composited over the base view; only one is open at a time.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridlens/internal/catalog"
	"gridlens/internal/config"
	"gridlens/internal/drill"
	"gridlens/internal/filter"
	"gridlens/internal/grid"
	"gridlens/internal/model"
	"gridlens/internal/overlay"
	"gridlens/internal/source"
	"gridlens/internal/suggest"
)

type popupKind int

const (
	popupNone popupKind = iota
	popupActions
	popupFilter
	popupPageSize
	popupDownload
	popupInspector
	popupLogs
	popupHelp
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineSearch
	inlineExpr
)

type Model struct {
	ctx context.Context
	cfg *config.Config
	cat *catalog.Catalog
	src source.Source

	// Dataset shape and drill-down definitions
	columns []model.Column
	actions []model.Action
	disp    *drill.Dispatcher

	// Current page of rows plus dropdown option sets (always derived from
	// the unfiltered dataset)
	rows   []model.Row
	unique map[string][]string

	// Display state, owned here and reset when the source changes
	filters  grid.FilterState
	criteria filter.Criteria
	sorting  grid.SortState
	pager    *grid.Pager
	selCol   int

	// Ambient page-level filters: the suggestion selection plus the
	// global search, snapshotted into every drill-down
	entityKey string

	// Fetch sequencing: only the newest issued request may land
	fetchSeq   uint64
	inflightFP string
	loading    bool

	// UI widgets
	tbl    table.Model
	spin   spinner.Model
	sugg   suggest.Model
	inline textinput.Model
	modal  viewport.Model
	styles Styles
	keymap KeyMap

	suggFocused bool
	inlineMode  inlineMode

	// Floating popup state (one at a time)
	popup       popupKind
	popupPlace  *overlay.Placement
	popupBox    string
	popupCursor int
	filterCol   string
	modalTitle  string

	// Layout
	termWidth  int
	termHeight int
	colWidths  []int
	sizeRect   overlay.Rect // rows-per-page trigger in the page bar
	suggRect   overlay.Rect
	tagRect    overlay.Rect

	lastMsg string
}

func initialModel(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, src source.Source, columns []model.Column) *Model {
	m := &Model{
		ctx:     ctx,
		cfg:     cfg,
		cat:     cat,
		src:     src,
		columns: columns,
		actions: cat.ValidActions(),
		disp:    &drill.Dispatcher{BaseURL: cat.BaseURL},
		filters: grid.FilterState{},
		pager:   grid.NewPager(cat.PageSizes),
		unique:  map[string][]string{},
		styles:  NewStyles(cfg.Theme == config.ThemeDark),
		keymap:  DefaultKeyMap(),
		spin:    spinner.New(),
		sugg:    suggest.New(cat.Entities, "filter by "+model.LabelFromKey(cat.SuggestKey)+"..."),
	}
	m.spin.Spinner = spinner.Dot
	m.inline = textinput.New()
	m.inline.CharLimit = 256

	m.tbl = table.New(table.WithFocused(true), table.WithHeight(20))
	ts := table.DefaultStyles()
	ts.Header = lipgloss.NewStyle().Bold(true).PaddingRight(1)
	ts.Cell = lipgloss.NewStyle().PaddingRight(1)
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	m.applyColumns()
	return m
}

// Run starts the grid over the given source. columns is the catalog's (or
// detected) column set.
func Run(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, src source.Source, columns []model.Column) error {
	m := initialModel(ctx, cfg, cat, src, columns)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refetch(), m.uniqueCmd(), m.spin.Tick}
	if w, ok := m.src.(source.Watchable); ok {
		cmds = append(cmds, watchCmd(w))
	}
	return tea.Batch(cmds...)
}

// ambientSnapshot composes the page-level filter state handed to the
// drill-down dispatcher. Row values override these downstream.
func (m *Model) ambientSnapshot() model.AmbientFilters {
	ambient := model.AmbientFilters{}
	if m.entityKey != "" {
		ambient[m.cat.SuggestKey] = m.entityKey
	}
	if m.criteria.Field != "" && m.criteria.Query != "" && !m.criteria.UseRegex {
		ambient[m.criteria.Field] = m.criteria.Query
	}
	return ambient
}

// currentRow returns the row under the cursor, or nil.
func (m *Model) currentRow() model.Row {
	idx := m.tbl.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	return m.rows[idx]
}

func (m *Model) suggestLines() int {
	if len(m.cat.Entities) == 0 {
		return 0
	}
	return 1
}

// layout recomputes widget sizes and trigger rects after a resize.
func (m *Model) layout() {
	h := m.termHeight - 4 - m.suggestLines()
	if h < 1 {
		h = 1
	}
	m.tbl.SetHeight(h)
	m.tbl.SetWidth(m.termWidth)
	m.applyColumns()

	// rows-per-page trigger sits at the right end of the page bar
	barY := m.suggestLines() + 1 + h
	m.sizeRect = overlay.Rect{X: maxInt(0, m.termWidth-16), Y: barY, W: 16, H: 1}
	m.suggRect = overlay.Rect{X: 0, Y: 0, W: maxInt(0, m.termWidth-10), H: m.suggestLines()}
	m.tagRect = overlay.Rect{X: maxInt(0, m.termWidth-8), Y: 0, W: 8, H: m.suggestLines()}
	m.sugg.SetGeometry(m.suggRect, m.tagRect, m.termWidth, m.termHeight)

	m.modal = viewport.New(maxInt(20, m.termWidth-10), maxInt(5, m.termHeight-8))
}

// rowScreenY approximates the terminal row of the cursor line: exact while
// the page fits the table window, clamped to the bottom once it scrolls.
func (m *Model) rowScreenY() int {
	cur := m.tbl.Cursor()
	visible := m.tbl.Height() - 1
	if cur > visible {
		cur = visible
	}
	return m.suggestLines() + 1 + cur
}

func (m *Model) setStatus(s string) { m.lastMsg = s }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func fileTimestamp() string { return time.Now().Format("20060102-150405") }

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"gridlens/internal/export"
	"gridlens/internal/model"
	"gridlens/internal/source"
	"gridlens/internal/util/logx"
)

type fetchedMsg struct {
	seq uint64
	res source.Result
	err error
}

type uniqueMsg struct {
	vals map[string][]string
	err  error
}

type sourceEventMsg struct {
	ev source.Event
	ok bool
}

type drillDoneMsg struct {
	url string
	err error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

func (m *Model) query() source.Query {
	return source.Query{
		Filters:   m.filters.Clone(),
		Criteria:  m.criteria,
		Sort:      m.sorting,
		Page:      m.pager.Page,
		PageSize:  m.pager.PageSize,
		RequestID: uuid.NewString(),
	}
}

func fingerprint(q source.Query) string {
	return fmt.Sprintf("%v|%v|%v|%d|%d", q.Filters, q.Criteria, q.Sort, q.Page, q.PageSize)
}

// refetch issues a new fetch for the current display state. A fetch for an
// identical query that is still in flight is not duplicated; a fetch for a
// changed query supersedes the old one, whose response will be discarded
// as stale when it lands.
func (m *Model) refetch() tea.Cmd {
	q := m.query()
	fp := fingerprint(q)
	if m.loading && fp == m.inflightFP {
		return nil
	}
	m.fetchSeq++
	m.inflightFP = fp
	m.loading = true
	seq := m.fetchSeq
	logx.Debugf("ui: fetch seq=%d id=%s page=%d size=%d", seq, q.RequestID, q.Page, q.PageSize)
	return func() tea.Msg {
		res, err := m.src.Fetch(m.ctx, q)
		return fetchedMsg{seq: seq, res: res, err: err}
	}
}

func (m *Model) uniqueCmd() tea.Cmd {
	cols := m.columns
	return func() tea.Msg {
		vals, err := m.src.UniqueValues(m.ctx, cols)
		return uniqueMsg{vals: vals, err: err}
	}
}

func watchCmd(w source.Watchable) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		return sourceEventMsg{ev: ev, ok: ok}
	}
}

func (m *Model) drillCmd(row model.Row, action model.Action) tea.Cmd {
	ambient := m.ambientSnapshot()
	disp := m.disp
	return func() tea.Msg {
		url, err := disp.Dispatch(ambient, row, action)
		return drillDoneMsg{url: url, err: err}
	}
}

// downloadCmd exports the current page or, when full is set, everything
// passing the active filters. Pagination state is untouched either way.
func (m *Model) downloadCmd(full, ndjson bool) tea.Cmd {
	q := m.query()
	rows := m.rows
	cols := m.columns
	src := m.src
	ctx := m.ctx
	return func() tea.Msg {
		var err error
		if full {
			rows, err = src.All(ctx, q)
			if err != nil {
				return exportDoneMsg{err: err}
			}
		}
		path := "gridlens-export-" + fileTimestamp() + ".csv"
		if ndjson {
			path = "gridlens-export-" + fileTimestamp() + ".ndjson"
			err = export.ToNDJSON(path, rows)
		} else {
			err = export.ToCSV(path, cols, rows)
		}
		return exportDoneMsg{path: path, rows: len(rows), err: err}
	}
}

// applyFetched folds a fetch response into the model, discarding stale
// responses: anything older than the newest issued sequence lost the race.
func (m *Model) applyFetched(msg fetchedMsg) {
	if msg.seq < m.fetchSeq {
		logx.Debugf("ui: discarding stale response seq=%d latest=%d", msg.seq, m.fetchSeq)
		return
	}
	m.loading = false
	m.inflightFP = ""
	if msg.err != nil {
		m.rows = nil
		m.rebuildTable()
		m.setStatus("fetch failed: " + msg.err.Error())
		logx.Errorf("ui: fetch: %v", msg.err)
		return
	}
	m.rows = msg.res.Rows
	m.pager.Apply(msg.res.Page)
	m.rebuildTable()
	m.setStatus("")
}

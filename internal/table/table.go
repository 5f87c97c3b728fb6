// Package table is the paginated, read-only grid every list page renders.
// It holds only presentation state: the page, the page size and which row's
// action menu is open.
package table

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

type Row interface {
	RowID() string
}

// Column is one table column. Render is required.
type Column[T Row] struct {
	Label  string
	Render func(T) string
	// Class is optional; it colours a cell, e.g. order status.
	Class func(T) string
}

type Action[T Row] struct {
	Label string
	Class string
	// Confirm marks destructive actions that must go through a confirmation step.
	Confirm bool
	Href    func(T) string
}

var DefaultItemsPerPage = []int{5, 10, 20}

type Table[T Row] struct {
	rows       []T
	columns    []Column[T]
	actions    []Action[T]
	options    []int
	pagination bool

	page     int
	pageSize int
	openRow  string
}

// New builds a table over rows. A nil or empty options slice falls back to
// DefaultItemsPerPage. It panics on a column without Render, which is a
// programming error in the page that declared it.
func New[T Row](rows []T, columns []Column[T], actions []Action[T], options []int) *Table[T] {
	for _, c := range columns {
		if c.Render == nil {
			panic(fmt.Sprintf("table: column %q has no Render", c.Label))
		}
	}
	opts := make([]int, 0, len(options))
	for _, o := range options {
		if o > 0 {
			opts = append(opts, o)
		}
	}
	if len(opts) == 0 {
		opts = append(opts, DefaultItemsPerPage...)
	}
	return &Table[T]{
		rows:       rows,
		columns:    columns,
		actions:    actions,
		options:    opts,
		pagination: true,
		page:       1,
		pageSize:   opts[0],
	}
}

// WithoutPagination shows every row and drops the footer.
func (t *Table[T]) WithoutPagination() *Table[T] {
	t.pagination = false
	return t
}

func (t *Table[T]) Paginated() bool { return t.pagination }
func (t *Table[T]) Page() int       { return t.page }
func (t *Table[T]) PageSize() int   { return t.pageSize }
func (t *Table[T]) OpenRow() string { return t.openRow }
func (t *Table[T]) Options() []int  { return append([]int(nil), t.options...) }
func (t *Table[T]) Len() int        { return len(t.rows) }

// SetRows swaps the data and keeps the current page.
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows
}

func (t *Table[T]) TotalPages() int {
	n := len(t.rows)
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// Window is the slice of rows on the current page. A page beyond the last
// yields an empty window.
func (t *Table[T]) Window() []T {
	if !t.pagination {
		return t.rows
	}
	start := (t.page - 1) * t.pageSize
	if start >= len(t.rows) {
		return nil
	}
	end := min(t.page*t.pageSize, len(t.rows))
	return t.rows[start:end]
}

func (t *Table[T]) HasPrev() bool { return t.page > 1 }
func (t *Table[T]) HasNext() bool { return t.page < t.TotalPages() }

func (t *Table[T]) Prev() {
	if t.HasPrev() {
		t.page--
	}
}

func (t *Table[T]) Next() {
	if t.HasNext() {
		t.page++
	}
}

// SetPage accepts any page >= 1; see Clamp.
func (t *Table[T]) SetPage(page int) {
	if page >= 1 {
		t.page = page
	}
}

// Clamp pulls the page back onto the last page after the data shrank.
func (t *Table[T]) Clamp() {
	if last := t.TotalPages(); t.page > last {
		t.page = last
	}
}

// SetPageSize ignores sizes outside the option set.
func (t *Table[T]) SetPageSize(size int) bool {
	if !slices.Contains(t.options, size) {
		return false
	}
	t.pageSize = size
	return true
}

// ToggleActions opens id's menu, or closes it when it is already open.
func (t *Table[T]) ToggleActions(id string) {
	if t.openRow == id {
		t.openRow = ""
		return
	}
	t.openRow = id
}

// InvokeAction closes the open menu and returns the action's target.
func (t *Table[T]) InvokeAction(row T, index int) (string, bool) {
	t.openRow = ""
	if index < 0 || index >= len(t.actions) || t.actions[index].Href == nil {
		return "", false
	}
	return t.actions[index].Href(row), true
}

// FromQuery restores page, size and open row from q. Malformed values are ignored.
func (t *Table[T]) FromQuery(q url.Values) {
	if size, err := strconv.Atoi(q.Get("size")); err == nil {
		t.SetPageSize(size)
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		t.SetPage(page)
	}
	t.openRow = q.Get("open")
}

// Query encodes the state; open overrides the open row when non-nil.
func (t *Table[T]) Query(page int, open *string) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(t.pageSize))
	row := t.openRow
	if open != nil {
		row = *open
	}
	if row != "" {
		q.Set("open", row)
	}
	return q
}

func (t *Table[T]) cell(c Column[T], row T) string {
	return c.Render(row)
}

func (t *Table[T]) header() []string {
	hdr := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		hdr = append(hdr, c.Label)
	}
	return hdr
}

// RenderText writes the current page as a text table.
func (t *Table[T]) RenderText(w io.Writer) error {
	tw := tablewriter.NewWriter(w)
	hdr := t.header()
	labels := make([]any, len(hdr))
	for i, h := range hdr {
		labels[i] = h
	}
	tw.Header(labels...)

	window := t.Window()
	rows := make([][]string, 0, len(window))
	for _, row := range window {
		cells := make([]string, 0, len(t.columns))
		for _, c := range t.columns {
			cells = append(cells, t.cell(c, row))
		}
		rows = append(rows, cells)
	}
	if err := tw.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if t.pagination {
		fmt.Fprintf(w, "%s    %s\n", t.summary(), t.pager())
	}
	return nil
}

func (t *Table[T]) summary() string {
	return fmt.Sprintf("%d - %d of %d", t.page, t.pageSize, len(t.rows))
}

func (t *Table[T]) pager() string {
	return fmt.Sprintf("%d / %d", t.page, t.TotalPages())
}

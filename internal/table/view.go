package table

import (
	"net/url"
	"strconv"
)

// View is what the HTML templates render.
type View struct {
	Headers    []string
	HasActions bool
	Rows       []ViewRow
	Footer     *Footer
}

type ViewCell struct {
	Text  string
	Class string
}

type ViewAction struct {
	Label   string
	Class   string
	Href    string
	Confirm bool
}

type ViewRow struct {
	ID      string
	Cells   []ViewCell
	Open    bool
	Actions []ViewAction
	// ToggleHref opens or closes this row's menu.
	ToggleHref string
}

type Footer struct {
	Summary  string
	Pager    string
	PrevHref string
	NextHref string
	HasPrev  bool
	HasNext  bool
	Sizes    []SizeOption
}

type SizeOption struct {
	Size     int
	Href     string
	Selected bool
}

// View renders the current page. base is the list page's path; state links
// carry the table's query parameters.
func (t *Table[T]) View(base string) View {
	v := View{Headers: t.header(), HasActions: len(t.actions) > 0}

	for _, row := range t.Window() {
		id := row.RowID()
		vr := ViewRow{ID: id, Open: id == t.openRow}
		for _, c := range t.columns {
			cell := ViewCell{Text: t.cell(c, row)}
			if c.Class != nil {
				cell.Class = c.Class(row)
			}
			vr.Cells = append(vr.Cells, cell)
		}
		if v.HasActions {
			toggle := id
			if vr.Open {
				toggle = ""
			}
			vr.ToggleHref = link(base, t.Query(t.page, &toggle))
			if vr.Open {
				for _, a := range t.actions {
					va := ViewAction{Label: a.Label, Class: a.Class, Confirm: a.Confirm}
					if a.Href != nil {
						va.Href = a.Href(row)
					}
					vr.Actions = append(vr.Actions, va)
				}
			}
		}
		v.Rows = append(v.Rows, vr)
	}

	if !t.pagination {
		return v
	}
	closed := ""
	f := &Footer{
		Summary: t.summary(),
		Pager:   t.pager(),
		HasPrev: t.HasPrev(),
		HasNext: t.HasNext(),
	}
	if f.HasPrev {
		f.PrevHref = link(base, t.Query(t.page-1, &closed))
	}
	if f.HasNext {
		f.NextHref = link(base, t.Query(t.page+1, &closed))
	}
	for _, size := range t.options {
		q := url.Values{}
		q.Set("page", strconv.Itoa(t.page))
		q.Set("size", strconv.Itoa(size))
		f.Sizes = append(f.Sizes, SizeOption{Size: size, Href: link(base, q), Selected: size == t.pageSize})
	}
	v.Footer = f
	return v
}

func link(base string, q url.Values) string {
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

package table

import (
	"bytes"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct{ id string }

func (i item) RowID() string { return i.id }

func items(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: fmt.Sprintf("r%d", i)}
	}
	return out
}

var cols = []Column[item]{{Label: "ID", Render: func(i item) string { return i.id }}}

var acts = []Action[item]{
	{Label: "View", Href: func(i item) string { return "/x/" + i.id }},
	{Label: "Delete", Confirm: true, Href: func(i item) string { return "/x/" + i.id + "/delete" }},
}

func TestPagesCoverRowsExactlyOnce(t *testing.T) {
	for _, size := range DefaultItemsPerPage {
		for n := 0; n <= 47; n++ {
			tbl := New(items(n), cols, nil, nil)
			require.True(t, tbl.SetPageSize(size))

			want := (n + size - 1) / size
			if want == 0 {
				want = 1
			}
			require.Equal(t, want, tbl.TotalPages(), "n=%d size=%d", n, size)

			var seen []item
			for p := 1; p <= tbl.TotalPages(); p++ {
				tbl.SetPage(p)
				w := tbl.Window()
				require.LessOrEqual(t, len(w), size)
				seen = append(seen, w...)
			}
			if n == 0 {
				assert.Empty(t, seen)
			} else {
				assert.Equal(t, items(n), seen, "n=%d size=%d", n, size)
			}
		}
	}
}

func TestPrevNextStopAtBounds(t *testing.T) {
	tbl := New(items(12), cols, nil, nil)
	assert.False(t, tbl.HasPrev())
	tbl.Prev()
	assert.Equal(t, 1, tbl.Page())

	tbl.Next()
	tbl.Next()
	assert.Equal(t, 3, tbl.Page())
	assert.False(t, tbl.HasNext())
	tbl.Next()
	assert.Equal(t, 3, tbl.Page())
	assert.Len(t, tbl.Window(), 2)
}

func TestPageSurvivesRefreshAndClamp(t *testing.T) {
	tbl := New(items(20), cols, nil, nil)
	tbl.SetPage(4)
	tbl.SetRows(items(6))
	assert.Equal(t, 4, tbl.Page())
	assert.Empty(t, tbl.Window())

	tbl.Clamp()
	assert.Equal(t, 2, tbl.Page())
	assert.Len(t, tbl.Window(), 1)
}

func TestSetPageSizeRejectsUnknownSizes(t *testing.T) {
	tbl := New(items(3), cols, nil, []int{5, 10})
	assert.False(t, tbl.SetPageSize(7))
	assert.Equal(t, 5, tbl.PageSize())
	assert.True(t, tbl.SetPageSize(10))
	assert.Equal(t, 10, tbl.PageSize())
}

func TestAtMostOneMenuOpen(t *testing.T) {
	tbl := New(items(5), cols, acts, nil)
	clicks := []string{"r0", "r1", "r1", "r3", "r0", "r0", "r2"}
	want := []string{"r0", "r1", "", "r3", "r0", "", "r2"}
	for i, id := range clicks {
		tbl.ToggleActions(id)
		assert.Equal(t, want[i], tbl.OpenRow(), "after click %d", i)

		open := 0
		for _, row := range tbl.View("/x").Rows {
			if row.Open {
				open++
			}
		}
		assert.LessOrEqual(t, open, 1)
	}

	href, ok := tbl.InvokeAction(item{id: "r2"}, 1)
	assert.True(t, ok)
	assert.Equal(t, "/x/r2/delete", href)
	assert.Empty(t, tbl.OpenRow())
}

func TestEmptyTableView(t *testing.T) {
	v := New[item](nil, cols, acts, nil).View("/x")
	assert.Empty(t, v.Rows)
	require.NotNil(t, v.Footer)
	assert.Equal(t, "1 / 1", v.Footer.Pager)
	assert.Equal(t, "1 - 5 of 0", v.Footer.Summary)
	assert.False(t, v.Footer.HasPrev)
	assert.False(t, v.Footer.HasNext)
}

func TestWithoutPaginationShowsAllRowsAndNoFooter(t *testing.T) {
	tbl := New(items(30), cols, nil, nil).WithoutPagination()
	assert.Len(t, tbl.Window(), 30)
	assert.Nil(t, tbl.View("/x").Footer)

	var buf bytes.Buffer
	require.NoError(t, tbl.RenderText(&buf))
	assert.NotContains(t, buf.String(), " / ")
	assert.Contains(t, buf.String(), "r29")
}

func TestQueryRoundTrip(t *testing.T) {
	tbl := New(items(30), cols, acts, nil)
	tbl.FromQuery(url.Values{"page": {"3"}, "size": {"10"}, "open": {"r25"}})
	assert.Equal(t, 3, tbl.Page())
	assert.Equal(t, 10, tbl.PageSize())
	assert.Equal(t, "r25", tbl.OpenRow())

	v := tbl.View("/x")
	require.Len(t, v.Rows, 10)
	assert.True(t, v.Rows[5].Open)
	assert.Len(t, v.Rows[5].Actions, 2)
	assert.Equal(t, "/x?page=3&size=10", v.Rows[5].ToggleHref)
	assert.Equal(t, "/x?page=2&size=10", v.Footer.PrevHref)

	tbl.FromQuery(url.Values{"page": {"zero"}, "size": {"7"}})
	assert.Equal(t, 3, tbl.Page())
	assert.Equal(t, 10, tbl.PageSize())
}

func TestRenderTextFooter(t *testing.T) {
	var buf bytes.Buffer
	tbl := New(items(7), cols, nil, nil)
	tbl.Next()
	require.NoError(t, tbl.RenderText(&buf))
	out := buf.String()
	assert.Contains(t, out, "r5")
	assert.NotContains(t, out, "r4")
	assert.Contains(t, out, "2 - 5 of 7")
	assert.Contains(t, out, "2 / 2")
}

func TestColumnWithoutRenderIsRejected(t *testing.T) {
	assert.PanicsWithValue(t, `table: column "Status" has no Render`, func() {
		New(items(1), []Column[item]{{Label: "Status"}}, nil, nil)
	})
}

package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageResolution(t *testing.T) {
	p := New(7, 3)

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "missing", raw: "", want: 1},
		{name: "blank", raw: "  ", want: 1},
		{name: "not an integer", raw: "abc", want: 1},
		{name: "zero", raw: "0", want: 1},
		{name: "negative", raw: "-2", want: 1},
		{name: "first", raw: "1", want: 1},
		{name: "middle", raw: "2", want: 2},
		{name: "last", raw: "3", want: 3},
		{name: "past the end", raw: "99", want: 3},
		{name: "padded", raw: " 2 ", want: 2},
		{name: "plus sign", raw: "+2", want: 2},
		{name: "beyond int range", raw: "99999999999999999999", want: 3},
		{name: "signed beyond int range", raw: "+99999999999999999999", want: 3},
		{name: "negative beyond int range", raw: "-99999999999999999999", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Page(tt.raw).Number)
		})
	}
}

func TestEmptyResultSetHasOnePage(t *testing.T) {
	page := New(0, 3).Page("5")

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
	assert.Equal(t, int64(0), page.StartIndex())
	assert.Equal(t, int64(0), page.EndIndex())
}

func TestPageNavigation(t *testing.T) {
	p := New(7, 3)

	first := p.PageNumber(1)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())
	assert.Equal(t, 0, first.Offset())

	last := p.PageNumber(3)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 2, last.PreviousNumber())
	assert.Equal(t, 6, last.Offset())
	assert.Equal(t, int64(7), last.StartIndex())
	assert.Equal(t, int64(7), last.EndIndex())
}

func TestExactMultipleOfPageSize(t *testing.T) {
	assert.Equal(t, 2, New(6, 3).NumPages())
	assert.Equal(t, 3, New(7, 3).NumPages())
	assert.Equal(t, 1, New(1, 20).NumPages())
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	got, page := Slice(items, 3, "3")
	require.Equal(t, 3, page.Number)
	assert.Equal(t, []string{"g"}, got)

	got, page = Slice(items, 3, "x")
	require.Equal(t, 1, page.Number)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got, page = Slice([]string{}, 3, "2")
	require.Equal(t, 1, page.Number)
	assert.Empty(t, got)
}

func TestPagesCoverEveryItemExactlyOnce(t *testing.T) {
	for count := 0; count <= 10; count++ {
		items := make([]int, count)
		for i := range items {
			items[i] = i
		}

		var seen []int
		pages := New(int64(count), 3).NumPages()
		for n := 1; n <= pages; n++ {
			got, _ := Slice(items, 3, strconv.Itoa(n))
			seen = append(seen, got...)
		}
		assert.Equal(t, items, append([]int{}, seen...), "count=%d", count)
	}
}

func TestSliceHugePageNumberGivesLastPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	got, page := Slice(items, 3, "99999999999999999999")
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, []int{7}, got)
}

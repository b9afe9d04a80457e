package paginator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		count      int
		page       int
		wantNumber int
		wantItems  []int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{name: "first of two", count: 12, page: 1, wantNumber: 1, wantItems: seq(10), wantPages: 2, wantNext: true},
		{name: "short last page", count: 12, page: 2, wantNumber: 2, wantItems: []int{11, 12}, wantPages: 2, wantPrev: true},
		{name: "zero clamps to first", count: 12, page: 0, wantNumber: 1, wantItems: seq(10), wantPages: 2, wantNext: true},
		{name: "negative clamps to first", count: 12, page: -3, wantNumber: 1, wantItems: seq(10), wantPages: 2, wantNext: true},
		{name: "past end clamps to last", count: 12, page: 99, wantNumber: 2, wantItems: []int{11, 12}, wantPages: 2, wantPrev: true},
		{name: "exact multiple", count: 20, page: 2, wantNumber: 2, wantItems: seq(20)[10:], wantPages: 2, wantPrev: true},
		{name: "empty input", count: 0, page: 1, wantNumber: 1, wantItems: []int{}, wantPages: 1},
		{name: "empty input past end", count: 0, page: 5, wantNumber: 1, wantItems: []int{}, wantPages: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Paginate(seq(tt.count), 10, tt.page)
			require.Equal(t, tt.wantNumber, p.Number)
			require.Equal(t, tt.wantItems, p.Items)
			require.Equal(t, tt.wantPages, p.NumPages)
			require.Equal(t, tt.count, p.Count)
			require.Equal(t, tt.wantNext, p.HasNext)
			require.Equal(t, tt.wantPrev, p.HasPrevious)
		})
	}
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	require.Panics(t, func() { Paginate(seq(3), 0, 1) })
}

func TestNumPages(t *testing.T) {
	require.Equal(t, 1, NumPages(0, 10))
	require.Equal(t, 1, NumPages(10, 10))
	require.Equal(t, 2, NumPages(11, 10))
	require.Equal(t, 3, NumPages(24, 10))
}

func TestParsePage(t *testing.T) {
	require.Equal(t, 1, ParsePage(""))
	require.Equal(t, 1, ParsePage("abc"))
	require.Equal(t, 3, ParsePage("3"))
	require.Equal(t, -1, ParsePage("-1"))
}

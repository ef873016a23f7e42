package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

func makeRecords(n int) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		id := i + 1
		role := "member"
		if id%4 == 0 {
			role = "admin"
		}
		records[i] = model.Record{
			ID:    id,
			Name:  fmt.Sprintf("User %02d", id),
			Email: fmt.Sprintf("user%02d@example.com", id),
			Role:  role,
		}
	}
	return records
}

func TestFilter_EmptyTermReturnsAll(t *testing.T) {
	records := makeRecords(7)

	got := Filter(records, "")

	assert.Equal(t, records, got)
}

func TestFilter_MatchesAnyFieldIgnoringCase(t *testing.T) {
	records := []model.Record{
		{ID: 1, Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: 2, Name: "Aishwarya Naik", Email: "aishwarya@mailinator.com", Role: "Admin"},
		{ID: 3, Name: "Arvind Kumar", Email: "arvind@mailinator.com", Role: "admin"},
		{ID: 4, Name: "Caterina Binotto", Email: "caterina@mailinator.com", Role: "member"},
	}

	tests := []struct {
		term string
		want []int
	}{
		{term: "admin", want: []int{2, 3}},
		{term: "ADMIN", want: []int{2, 3}},
		{term: "aaron@", want: []int{1}},
		{term: "kumar", want: []int{3}},
		{term: "4", want: []int{4}},
		{term: "nobody", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(records, tt.term)
			assert.Equal(t, tt.want, recordIDs(got))
		})
	}
}

func TestFilter_SearchesPassthroughFields(t *testing.T) {
	records := []model.Record{
		{ID: 1, Name: "a", Extra: map[string]any{"team": "Platform"}},
		{ID: 2, Name: "b", Extra: map[string]any{"team": "Billing"}},
	}

	got := Filter(records, "platform")

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilter_ExactlyMatchingRecords(t *testing.T) {
	records := makeRecords(46)
	terms := []string{"", "1", "0", "user", "ADMIN", "example.com", "zzz", "User 1"}

	for _, term := range terms {
		got := Filter(records, term)
		kept := make(map[int]bool, len(got))
		for _, r := range got {
			kept[r.ID] = true
		}
		for _, r := range records {
			assert.Equal(t, r.Matches(term), kept[r.ID], "term %q record %d", term, r.ID)
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.n, tt.size), "PageCount(%d, %d)", tt.n, tt.size)
	}
}

func TestPaginate_ConcatenationReproducesList(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 30} {
		records := makeRecords(n)
		pages := PageCount(n, model.PageSize)

		var joined []model.Record
		for page := 1; page <= pages; page++ {
			slice := Paginate(records, page, model.PageSize)
			assert.NotEmpty(t, slice, "n=%d page=%d", n, page)
			assert.LessOrEqual(t, len(slice), model.PageSize)
			joined = append(joined, slice...)
		}

		assert.Equal(t, recordIDs(records), recordIDs(joined), "n=%d", n)
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	records := makeRecords(12)

	assert.Empty(t, Paginate(records, 0, 10))
	assert.Empty(t, Paginate(records, 3, 10))
	assert.Empty(t, Paginate(records, -1, 10))
}

func TestBuildPager_DisabledControls(t *testing.T) {
	p := BuildPager(1, 10, 12)
	assert.True(t, p.FirstDisabled)
	assert.True(t, p.PrevDisabled)
	assert.False(t, p.NextDisabled)
	assert.False(t, p.LastDisabled)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, []int{1, 2}, p.Pages())

	p = BuildPager(2, 10, 12)
	assert.False(t, p.FirstDisabled)
	assert.False(t, p.PrevDisabled)
	assert.True(t, p.NextDisabled)
	assert.True(t, p.LastDisabled)

	p = BuildPager(1, 10, 0)
	assert.True(t, p.NextDisabled)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Pages())
}

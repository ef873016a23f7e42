package roster

import "github.com/tinytelemetry/memberdesk/internal/model"

// Filter returns the records whose searchable fields contain term, ignoring
// case. An empty term returns every record in its original order.
func Filter(records []model.Record, term string) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if term == "" || r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}

// PageCount returns ceil(n/size), or 0 for an empty list.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns records[(page-1)*size : page*size], clipped to the list.
// Pages outside the list yield an empty slice.
func Paginate(records []model.Record, page, size int) []model.Record {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(records) {
		return nil
	}
	end := min(start+size, len(records))
	return records[start:end]
}

// BuildPager computes control state for page over totalFiltered records.
func BuildPager(page, size, totalFiltered int) model.Pager {
	return model.Pager{
		Page:          page,
		PageSize:      size,
		TotalPages:    PageCount(totalFiltered, size),
		TotalFiltered: totalFiltered,
		FirstDisabled: page == 1,
		PrevDisabled:  page == 1,
		NextDisabled:  page*size >= totalFiltered,
		LastDisabled:  page*size >= totalFiltered,
	}
}

func recordIDs(records []model.Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

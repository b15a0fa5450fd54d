package common

import (
	"math"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filters carries the list query of a paginated endpoint. SortSafelist maps
// the sort keys accepted from clients to SQL columns.
type Filters struct {
	Page         int
	Limit        int
	Search       string
	Sort         string
	SortSafelist map[string]string
}

type Metadata struct {
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

func (f Filters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// OrderBy returns the ORDER BY expression for the requested sort. A leading
// "-" means descending. Unknown keys fall back to newest first; they are
// rejected by ValidateFilters before a query is built.
//
// The expression uses bare column names, so queries that join other tables
// must expose id and the sort columns once in their select list.
func (f Filters) OrderBy() string {
	key := strings.TrimPrefix(f.Sort, "-")
	column, ok := f.SortSafelist[key]
	if !ok {
		return "created_at DESC, id DESC"
	}

	direction := "ASC"
	if strings.HasPrefix(f.Sort, "-") {
		direction = "DESC"
	}

	return column + " " + direction + ", id " + direction
}

// SearchPattern builds a case-insensitive substring pattern for ILIKE, escaping wildcards.
func (f Filters) SearchPattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(f.Search) + "%"
}

func ValidateFilters(v *Validator, f Filters) {
	v.Check(f.Page > 0, "page", "must be greater than zero")
	v.Check(f.Page <= 10_000_000, "page", "must be a maximum of 10 million")
	v.Check(f.Limit > 0, "limit", "must be greater than zero")
	v.Check(f.Limit <= MaxLimit, "limit", "must be a maximum of 100")

	if f.Sort != "" {
		_, ok := f.SortSafelist[strings.TrimPrefix(f.Sort, "-")]
		v.Check(ok, "sort", "invalid sort value")
	}
}

// CalculateMetadata computes the page info for a result set of total records.
func CalculateMetadata(total, page, limit int) Metadata {
	if limit < 1 {
		return Metadata{CurrentPage: page, Total: total}
	}

	return Metadata{
		CurrentPage: page,
		Limit:       limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Total:       total,
	}
}

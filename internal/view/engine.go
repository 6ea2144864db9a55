// Package view implements the record view pipeline: free-text filtering,
// stable sorting and page slicing over an in-memory student collection,
// plus the presentation step that turns a derived page into renderable data.
package view

import (
	"sort"
	"strings"

	"github.com/studentpro/studentpro-api/internal/models"
)

// SortField enumerates the sortable record fields.
type SortField string

const (
	SortNone SortField = ""
	SortName SortField = "name"
	SortAge  SortField = "age"
)

// SortDirection is the order applied to the active sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DefaultPageSize is used when a configuration carries no usable page size.
const DefaultPageSize = 10

// Config is the transient view state driving what is displayed. It is never
// persisted; Page is re-clamped on every derivation.
type Config struct {
	Search   string
	SortBy   SortField
	SortDir  SortDirection
	Page     int
	PageSize int
}

// NewConfig returns a configuration on page 1 with ascending direction.
func NewConfig(pageSize int) Config {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Config{SortDir: SortAsc, Page: 1, PageSize: pageSize}
}

// SetSearch replaces the filter term and returns to the first page.
func (c *Config) SetSearch(q string) {
	c.Search = strings.TrimSpace(q)
	c.Page = 1
}

// SetPageSize replaces the page size and returns to the first page.
func (c *Config) SetPageSize(n int) {
	if n < 1 {
		n = DefaultPageSize
	}
	c.PageSize = n
	c.Page = 1
}

// ToggleSort activates sorting on the given field. Selecting the already
// active field flips the direction; selecting a new field resets to ascending.
func (c *Config) ToggleSort(field SortField) {
	if c.SortBy == field {
		if c.SortDir == SortAsc {
			c.SortDir = SortDesc
		} else {
			c.SortDir = SortAsc
		}
		return
	}
	c.SortBy = field
	c.SortDir = SortAsc
}

// GotoPage moves to the requested page. Out-of-range values are clamped on
// the next derivation.
func (c *Config) GotoPage(n int) {
	if n < 1 {
		n = 1
	}
	c.Page = n
}

// Derived is the filtered, sorted, sliced subset of records currently shown.
type Derived struct {
	PageItems  []models.Student
	TotalCount int
	TotalPages int
}

// Derive computes the visible page for the given collection and view state.
// It is a pure, total function apart from writing the clamped page (and a
// normalised page size) back into cfg so subsequent renders agree with it.
func Derive(records []models.Student, cfg *Config) Derived {
	list := filter(records, cfg.Search)

	if cfg.SortBy != SortNone {
		sorted := make([]models.Student, len(list))
		copy(sorted, list)
		less := comparator(cfg.SortBy)
		desc := cfg.SortDir == SortDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			if desc {
				return less(sorted[j], sorted[i])
			}
			return less(sorted[i], sorted[j])
		})
		list = sorted
	}

	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	total := len(list)
	totalPages := (total + cfg.PageSize - 1) / cfg.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if cfg.Page > totalPages {
		cfg.Page = totalPages
	}
	if cfg.Page < 1 {
		cfg.Page = 1
	}

	start := (cfg.Page - 1) * cfg.PageSize
	end := start + cfg.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Derived{
		PageItems:  list[start:end],
		TotalCount: total,
		TotalPages: totalPages,
	}
}

func filter(records []models.Student, search string) []models.Student {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return records
	}
	matched := make([]models.Student, 0, len(records))
	for _, s := range records {
		if containsFold(s.Name, q) ||
			containsFold(s.Email, q) ||
			containsFold(s.Course, q) ||
			containsFold(s.Department, q) ||
			containsFold(s.Skills, q) {
			matched = append(matched, s)
		}
	}
	return matched
}

func containsFold(field, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(field), loweredQuery)
}

// comparator returns the ascending less-func for a sort field. Missing values
// sort lowest: absent age compares as 0, strings compare case-insensitively.
func comparator(field SortField) func(a, b models.Student) bool {
	switch field {
	case SortAge:
		return func(a, b models.Student) bool {
			return ageOrZero(a) < ageOrZero(b)
		}
	default:
		return func(a, b models.Student) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}

func ageOrZero(s models.Student) int {
	if s.Age == nil {
		return 0
	}
	return *s.Age
}

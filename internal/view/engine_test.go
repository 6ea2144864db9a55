package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentpro/studentpro-api/internal/models"
)

func intPtr(v int) *int { return &v }

func sampleStudents(n int) []models.Student {
	students := make([]models.Student, 0, n)
	for i := 0; i < n; i++ {
		students = append(students, models.Student{
			ID:    string(rune('a' + i)),
			Name:  "Student " + string(rune('A'+i)),
			Email: "student" + string(rune('a'+i)) + "@example.com",
		})
	}
	return students
}

func TestDeriveEmptySearchKeepsEverything(t *testing.T) {
	students := sampleStudents(7)
	cfg := NewConfig(10)

	d := Derive(students, &cfg)

	assert.Equal(t, 7, d.TotalCount)
	assert.Equal(t, 1, d.TotalPages)
	assert.Len(t, d.PageItems, 7)
}

func TestDeriveSearchMatchesAnySearchableField(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Alice", Department: "Engineering"},
		{ID: "2", Name: "Bob", Department: "Math"},
		{ID: "3", Name: "Carol", Skills: "engine tuning"},
		{ID: "4", Name: "Dave", Email: "dave@eng.example.com"},
	}
	cfg := NewConfig(10)
	cfg.SetSearch("ENG")

	d := Derive(students, &cfg)

	require.Len(t, d.PageItems, 3)
	for _, s := range d.PageItems {
		assert.NotEqual(t, "2", s.ID)
	}
}

func TestDeriveSearchIgnoresMissingFields(t *testing.T) {
	students := []models.Student{{ID: "1", Name: "Alice"}}
	cfg := NewConfig(10)
	cfg.SetSearch("engineering")

	d := Derive(students, &cfg)

	assert.Equal(t, 0, d.TotalCount)
	assert.Empty(t, d.PageItems)
}

func TestDeriveSortByNameIsCaseInsensitive(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "charlie"},
		{ID: "2", Name: "Alice"},
		{ID: "3", Name: "bob"},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortName)

	d := Derive(students, &cfg)

	require.Len(t, d.PageItems, 3)
	assert.Equal(t, "Alice", d.PageItems[0].Name)
	assert.Equal(t, "bob", d.PageItems[1].Name)
	assert.Equal(t, "charlie", d.PageItems[2].Name)
}

func TestDeriveSortIsStable(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Same", Email: "first@example.com"},
		{ID: "2", Name: "Same", Email: "second@example.com"},
		{ID: "3", Name: "Aaa"},
		{ID: "4", Name: "Same", Email: "third@example.com"},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortName)

	d := Derive(students, &cfg)

	require.Len(t, d.PageItems, 4)
	assert.Equal(t, "3", d.PageItems[0].ID)
	assert.Equal(t, "1", d.PageItems[1].ID)
	assert.Equal(t, "2", d.PageItems[2].ID)
	assert.Equal(t, "4", d.PageItems[3].ID)
}

func TestDeriveMissingAgeSortsAsZero(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Has age", Age: intPtr(20)},
		{ID: "2", Name: "No age"},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortAge)

	d := Derive(students, &cfg)

	require.Len(t, d.PageItems, 2)
	assert.Equal(t, "2", d.PageItems[0].ID)
	assert.Equal(t, "1", d.PageItems[1].ID)
}

func TestDeriveSortDescendingReversesComparison(t *testing.T) {
	students := []models.Student{
		{ID: "1", Age: intPtr(18)},
		{ID: "2", Age: intPtr(30)},
		{ID: "3", Age: intPtr(24)},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortAge)
	cfg.ToggleSort(SortAge)

	d := Derive(students, &cfg)

	require.Len(t, d.PageItems, 3)
	assert.Equal(t, "2", d.PageItems[0].ID)
	assert.Equal(t, "3", d.PageItems[1].ID)
	assert.Equal(t, "1", d.PageItems[2].ID)
}

func TestToggleSortTwiceRestoresAscendingOrder(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Beta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "Gamma"},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortName)
	before := Derive(students, &cfg)

	cfg.ToggleSort(SortName)
	assert.Equal(t, SortDesc, cfg.SortDir)
	cfg.ToggleSort(SortName)
	assert.Equal(t, SortAsc, cfg.SortDir)

	after := Derive(students, &cfg)
	assert.Equal(t, before.PageItems, after.PageItems)
}

func TestToggleSortNewFieldResetsToAscending(t *testing.T) {
	cfg := NewConfig(10)
	cfg.ToggleSort(SortName)
	cfg.ToggleSort(SortName)
	require.Equal(t, SortDesc, cfg.SortDir)

	cfg.ToggleSort(SortAge)

	assert.Equal(t, SortAge, cfg.SortBy)
	assert.Equal(t, SortAsc, cfg.SortDir)
}

func TestDerivePaginationCoversFilteredSetExactlyOnce(t *testing.T) {
	students := sampleStudents(23)
	cfg := NewConfig(5)

	first := Derive(students, &cfg)
	require.Equal(t, 5, first.TotalPages)

	var collected []string
	for page := 1; page <= first.TotalPages; page++ {
		cfg.GotoPage(page)
		d := Derive(students, &cfg)
		for _, s := range d.PageItems {
			collected = append(collected, s.ID)
		}
	}

	require.Len(t, collected, len(students))
	for i, s := range students {
		assert.Equal(t, s.ID, collected[i])
	}
}

func TestDeriveTotalPagesFormula(t *testing.T) {
	students := sampleStudents(10)
	cases := []struct {
		pageSize int
		expected int
	}{
		{1, 10},
		{3, 4},
		{5, 2},
		{10, 1},
		{25, 1},
	}
	for _, tc := range cases {
		cfg := NewConfig(tc.pageSize)
		d := Derive(students, &cfg)
		assert.Equal(t, tc.expected, d.TotalPages, "pageSize=%d", tc.pageSize)
	}
}

func TestDerivePageClampWritesBackToConfig(t *testing.T) {
	students := sampleStudents(12)
	cfg := NewConfig(10)
	cfg.GotoPage(9)

	d := Derive(students, &cfg)

	assert.Equal(t, 2, cfg.Page)
	assert.Len(t, d.PageItems, 2)
}

func TestDeriveEmptyCollection(t *testing.T) {
	cfg := NewConfig(10)

	d := Derive(nil, &cfg)

	assert.Equal(t, 0, d.TotalCount)
	assert.Equal(t, 1, d.TotalPages)
	assert.Empty(t, d.PageItems)
	assert.Equal(t, 1, cfg.Page)
}

func TestDeriveFifteenRecordsTwoPages(t *testing.T) {
	students := sampleStudents(15)
	cfg := NewConfig(10)

	d := Derive(students, &cfg)

	assert.Len(t, d.PageItems, 10)
	assert.Equal(t, 2, d.TotalPages)
	assert.Equal(t, 15, d.TotalCount)
}

func TestSetSearchResetsPage(t *testing.T) {
	cfg := NewConfig(10)
	cfg.GotoPage(3)

	cfg.SetSearch("query")

	assert.Equal(t, 1, cfg.Page)
	assert.Equal(t, "query", cfg.Search)
}

func TestSetPageSizeResetsPage(t *testing.T) {
	cfg := NewConfig(10)
	cfg.GotoPage(4)

	cfg.SetPageSize(25)

	assert.Equal(t, 1, cfg.Page)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Zed"},
		{ID: "2", Name: "Amy"},
	}
	cfg := NewConfig(10)
	cfg.ToggleSort(SortName)

	Derive(students, &cfg)

	assert.Equal(t, "1", students[0].ID)
	assert.Equal(t, "2", students[1].ID)
}

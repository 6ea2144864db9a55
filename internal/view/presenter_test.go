package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentpro/studentpro-api/internal/models"
)

func TestPresentSummaryFirstPage(t *testing.T) {
	students := sampleStudents(15)
	cfg := NewConfig(10)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "http://localhost:8080")

	assert.Equal(t, "1 - 10 of 15", r.Summary)
	assert.Len(t, r.Rows, 10)
	require.Len(t, r.Pager, 2)
	assert.True(t, r.Pager[0].Current)
	assert.False(t, r.Pager[1].Current)
}

func TestPresentSummaryLastPartialPage(t *testing.T) {
	students := sampleStudents(15)
	cfg := NewConfig(10)
	cfg.GotoPage(2)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "")

	assert.Equal(t, "11 - 15 of 15", r.Summary)
	assert.Len(t, r.Rows, 5)
}

func TestPresentEmptyCollection(t *testing.T) {
	cfg := NewConfig(10)

	d := Derive(nil, &cfg)
	r := Present(d, cfg, "")

	assert.Equal(t, "0 - 0 of 0", r.Summary)
	assert.Empty(t, r.Rows)
	require.Len(t, r.Pager, 1)
	assert.True(t, r.Pager[0].Current)
}

func TestPresentEscapesUserText(t *testing.T) {
	students := []models.Student{{
		ID:     "1",
		Name:   `<script>alert("x")</script>`,
		Email:  "a&b@example.com",
		Skills: "C++ & Go",
	}}
	cfg := NewConfig(10)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "")

	require.Len(t, r.Rows, 1)
	assert.NotContains(t, r.Rows[0].Name, "<script>")
	assert.Contains(t, r.Rows[0].Name, "&lt;script&gt;")
	assert.Equal(t, "a&amp;b@example.com", r.Rows[0].Email)
	assert.Equal(t, "C++ &amp; Go", r.Rows[0].Skills)
}

func TestPresentMissingValuesUsePlaceholder(t *testing.T) {
	students := []models.Student{{ID: "1", Name: "Only Name", Email: "n@example.com"}}
	cfg := NewConfig(10)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "")

	require.Len(t, r.Rows, 1)
	row := r.Rows[0]
	assert.Equal(t, emptyCell, row.Course)
	assert.Equal(t, emptyCell, row.Age)
	assert.Equal(t, emptyCell, row.GPA)
	assert.Equal(t, emptyCell, row.Portfolio)
}

func TestResolveAvatar(t *testing.T) {
	origin := "http://localhost:8080"

	assert.Equal(t, "", ResolveAvatar("", origin))
	assert.Equal(t, "https://cdn.example.com/a.png", ResolveAvatar("https://cdn.example.com/a.png", origin))
	assert.Equal(t, "http://img.example.com/b.jpg", ResolveAvatar("http://img.example.com/b.jpg", origin))
	assert.Equal(t, "http://localhost:8080/uploads/123-me.png", ResolveAvatar("/uploads/123-me.png", origin))
	assert.Equal(t, "http://localhost:8080/uploads/123-me.png", ResolveAvatar("uploads/123-me.png", origin+"/"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", Initials("john doe"))
	assert.Equal(t, "AB", Initials("Alice Bob Carol"))
	assert.Equal(t, "A", Initials("alice"))
	assert.Equal(t, "?", Initials(""))
	assert.Equal(t, "?", Initials("   "))
}

func TestPresentAvatarFallsBackToInitials(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Jane Doe", Avatar: "/uploads/1-j.png"},
		{ID: "2", Name: "No Avatar"},
	}
	cfg := NewConfig(10)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "http://store.example.com")

	require.Len(t, r.Rows, 2)
	assert.Equal(t, "http://store.example.com/uploads/1-j.png", r.Rows[0].AvatarURL)
	assert.Empty(t, r.Rows[1].AvatarURL)
	assert.Equal(t, "NA", r.Rows[1].Initials)
}

func TestPresentFormatsNumericFields(t *testing.T) {
	gpa := 3.75
	students := []models.Student{{ID: "1", Name: "N", Email: "e@example.com", Age: intPtr(21), GPA: &gpa}}
	cfg := NewConfig(10)

	d := Derive(students, &cfg)
	r := Present(d, cfg, "")

	require.Len(t, r.Rows, 1)
	assert.Equal(t, "21", r.Rows[0].Age)
	assert.Equal(t, "3.75", r.Rows[0].GPA)
}

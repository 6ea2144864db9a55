package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/studentpro/studentpro-api/internal/models"
)

const emptyCell = "—"

// Row is one rendered table row. All user-supplied text is HTML-escaped and
// missing values are replaced by a placeholder, so the values can be inserted
// into markup verbatim.
type Row struct {
	ID           string `json:"id"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	Initials     string `json:"initials"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Course       string `json:"course"`
	Age          string `json:"age"`
	RollNumber   string `json:"rollNumber"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	GPA          string `json:"gpa"`
	Skills       string `json:"skills"`
	Achievements string `json:"achievements"`
	Portfolio    string `json:"portfolio"`
	Joined       string `json:"joined"`
}

// PageControl is a single pager entry.
type PageControl struct {
	Number  int  `json:"number"`
	Current bool `json:"current"`
}

// Rendered reflects the current derived state: table rows, the results
// summary and the pager.
type Rendered struct {
	Rows       []Row         `json:"rows"`
	Summary    string        `json:"summary"`
	Pager      []PageControl `json:"pager"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	TotalCount int           `json:"totalCount"`
}

// Present converts a derived page into renderable output. origin is the
// store's base URL, prepended to relative avatar paths.
func Present(d Derived, cfg Config, origin string) Rendered {
	rows := make([]Row, 0, len(d.PageItems))
	for _, s := range d.PageItems {
		rows = append(rows, presentRow(s, origin))
	}

	start := (cfg.Page - 1) * cfg.PageSize
	summary := "0 - 0 of 0"
	if d.TotalCount > 0 {
		from := min(d.TotalCount, start+1)
		to := min(d.TotalCount, start+len(d.PageItems))
		summary = fmt.Sprintf("%d - %d of %d", from, to, d.TotalCount)
	}

	pager := make([]PageControl, 0, d.TotalPages)
	for i := 1; i <= d.TotalPages; i++ {
		pager = append(pager, PageControl{Number: i, Current: i == cfg.Page})
	}

	return Rendered{
		Rows:       rows,
		Summary:    summary,
		Pager:      pager,
		Page:       cfg.Page,
		TotalPages: d.TotalPages,
		TotalCount: d.TotalCount,
	}
}

func presentRow(s models.Student, origin string) Row {
	row := Row{
		ID:           s.ID,
		AvatarURL:    ResolveAvatar(s.Avatar, origin),
		Initials:     Initials(s.Name),
		Name:         displayText(s.Name),
		Email:        displayText(s.Email),
		Course:       displayText(s.Course),
		RollNumber:   displayText(s.RollNumber),
		Phone:        displayText(s.Phone),
		Department:   displayText(s.Department),
		Skills:       displayText(s.Skills),
		Achievements: displayText(s.Achievements),
		Portfolio:    displayText(s.Portfolio),
		Age:          emptyCell,
		GPA:          emptyCell,
		Joined:       emptyCell,
	}
	if s.Age != nil {
		row.Age = strconv.Itoa(*s.Age)
	}
	if s.GPA != nil {
		row.GPA = strconv.FormatFloat(*s.GPA, 'f', -1, 64)
	}
	if !s.CreatedAt.IsZero() {
		row.Joined = s.CreatedAt.Format("2006-01-02")
	}
	return row
}

// ResolveAvatar returns the usable image source for a stored avatar value:
// absolute URLs pass through, relative paths are joined to the store origin.
// The empty string means no avatar is set and the initials placeholder applies.
func ResolveAvatar(avatar, origin string) string {
	if avatar == "" {
		return ""
	}
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		return avatar
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(avatar, "/")
}

// Initials builds the avatar placeholder from the first letters of up to two
// name parts, or "?" when the name is empty.
func Initials(name string) string {
	parts := strings.Fields(name)
	var b strings.Builder
	for i, p := range parts {
		if i == 2 {
			break
		}
		r := []rune(p)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func displayText(v string) string {
	if v == "" {
		return emptyCell
	}
	return html.EscapeString(v)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package usecase

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"placify-resume/internal/model"
)

// Layout is the structured output of rendering: the header plus the sections
// that actually have content, in their fixed order. Rendering is pure, so
// deep-equal documents always produce identical layouts.
type Layout struct {
	Header   Header
	Sections []Section
}

type Header struct {
	Name  string
	Email string
	Phone string
}

type Section struct {
	Title   string
	Text    string       // Summary
	Tags    []string     // Skills
	Entries []LayoutItem // Experience / Education / Projects
}

// LayoutItem is one rendered entry of a list section.
type LayoutItem struct {
	Title     string
	Subtitle  string
	Location  string
	DateRange string
	Body      string
	Tags      []string
	Links     []Link
}

type Link struct {
	Label string
	URL   string
}

// Render produces the layout for a document. Sections with no backing
// content are omitted entirely; entries keep their list order.
func Render(doc *model.ResumeDocument) Layout {
	layout := Layout{
		Header: Header{
			Name:  doc.Personal.Name,
			Email: doc.Personal.Email,
			Phone: doc.Personal.Phone,
		},
	}

	if doc.Personal.Summary != "" {
		layout.Sections = append(layout.Sections, Section{
			Title: "Professional Summary",
			Text:  doc.Personal.Summary,
		})
	}

	if len(doc.Skills) > 0 {
		layout.Sections = append(layout.Sections, Section{
			Title: "Skills",
			Tags:  append([]string{}, doc.Skills...),
		})
	}

	if len(doc.Experience) > 0 {
		sec := Section{Title: "Work Experience"}
		for _, exp := range doc.Experience {
			sec.Entries = append(sec.Entries, LayoutItem{
				Title:     exp.Position,
				Subtitle:  exp.Company,
				Location:  exp.Location,
				DateRange: FormatDateRange(exp.StartDate, exp.EndDate, exp.Current),
				Body:      exp.Description,
			})
		}
		layout.Sections = append(layout.Sections, sec)
	}

	if len(doc.Education) > 0 {
		sec := Section{Title: "Education"}
		for _, edu := range doc.Education {
			title := edu.Degree
			if edu.Field != "" {
				title += " in " + edu.Field
			}
			sec.Entries = append(sec.Entries, LayoutItem{
				Title:     title,
				Subtitle:  edu.Institution,
				DateRange: FormatDateRange(edu.StartDate, edu.EndDate, edu.Current),
				Body:      edu.Description,
			})
		}
		layout.Sections = append(layout.Sections, sec)
	}

	if len(doc.Projects) > 0 {
		sec := Section{Title: "Projects"}
		for _, proj := range doc.Projects {
			item := LayoutItem{
				Title:     proj.Title,
				DateRange: FormatDateRange(proj.StartDate, proj.EndDate, proj.Current),
				Body:      proj.Description,
				Tags:      append([]string{}, proj.Technologies...),
			}
			if proj.LiveURL != "" {
				item.Links = append(item.Links, Link{Label: "Live", URL: proj.LiveURL})
			}
			if proj.GithubURL != "" {
				item.Links = append(item.Links, Link{Label: "GitHub", URL: proj.GithubURL})
			}
			sec.Entries = append(sec.Entries, item)
		}
		layout.Sections = append(layout.Sections, sec)
	}

	return layout
}

// FormatDate turns a YYYY-MM value into "Jan 2006". Anything that does not
// parse is passed through as-is so a half-typed date still shows up.
func FormatDate(yearMonth string) string {
	if yearMonth == "" {
		return ""
	}
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Format("Jan 2006")
}

// FormatDateRange renders "Jan 2020 - Jun 2023", with "Present" standing in
// for the end date of an ongoing entry. One-sided ranges render the side
// that is present.
func FormatDateRange(start, end string, current bool) string {
	s := FormatDate(start)
	e := FormatDate(end)
	if current {
		e = "Present"
	}
	switch {
	case s != "" && e != "":
		return s + " - " + e
	case s != "":
		return s
	default:
		return e
	}
}

//go:embed templates
var templateFS embed.FS

var resumeTpl = template.Must(
	template.New("resume.html").Funcs(template.FuncMap{
		"splitLines": func(s string) []string { return strings.Split(s, "\n") },
	}).ParseFS(templateFS, "templates/resume.html"),
)

// LayoutHTML renders a layout into a standalone HTML page with the
// stylesheet inlined, themed light or dark.
func LayoutHTML(layout Layout, theme Theme) (string, error) {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := map[string]interface{}{
		"Layout": layout,
		"Theme":  string(theme),
		"CSS":    template.CSS(css),
	}
	if err := resumeTpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

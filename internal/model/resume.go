package model

import "github.com/google/uuid"

// ResumeDocument is the root aggregate holding all resume content for one
// user session. It is only mutated through the builder in internal/usecase;
// every consumer receives its own copy.
type ResumeDocument struct {
	Personal   Personal          `json:"personal"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
}

type Personal struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Summary string `json:"summary"`
}

// EducationEntry is one item in the education list. The ID is assigned at
// creation time, is unique within the document, and is never reused after
// the entry is removed.
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

type ProjectEntry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
}

// NewResumeDocument returns an empty document with non-nil lists so the
// serialized snapshot always carries the full shape.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Skills:     []string{},
		Education:  []EducationEntry{},
		Experience: []ExperienceEntry{},
		Projects:   []ProjectEntry{},
	}
}

func NewEducationEntry() EducationEntry {
	return EducationEntry{ID: uuid.NewString()}
}

func NewExperienceEntry() ExperienceEntry {
	return ExperienceEntry{ID: uuid.NewString()}
}

func NewProjectEntry() ProjectEntry {
	return ProjectEntry{ID: uuid.NewString(), Technologies: []string{}}
}

// Clone returns a deep copy. Mutations on the copy never alias slices of the
// original, which is what lets an in-flight PDF export hold a stable snapshot
// while the builder keeps editing.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := &ResumeDocument{
		Personal:   d.Personal,
		Skills:     append([]string{}, d.Skills...),
		Education:  append([]EducationEntry{}, d.Education...),
		Experience: append([]ExperienceEntry{}, d.Experience...),
		Projects:   make([]ProjectEntry, 0, len(d.Projects)),
	}
	for _, p := range d.Projects {
		p.Technologies = append([]string{}, p.Technologies...)
		out.Projects = append(out.Projects, p)
	}
	return out
}

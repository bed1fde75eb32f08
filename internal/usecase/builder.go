package usecase

import (
	"log/slog"
	"strings"
	"sync"

	"placify-resume/internal/adapter/storage"
	"placify-resume/internal/model"
)

// ListName selects one of the entry lists on the document.
type ListName string

const (
	ListEducation  ListName = "education"
	ListExperience ListName = "experience"
	ListProjects   ListName = "projects"
)

// Theme is the visual theme preference carried by a builder session. The
// exporter forces Light for the duration of a capture.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Builder owns a ResumeDocument and is its only mutation path. Every
// operation replaces the document with a fresh copy, re-validates, and
// snapshots the result through the store, so references handed out earlier
// stay untouched.
type Builder struct {
	mu         sync.Mutex
	doc        *model.ResumeDocument
	validation model.ValidationResult
	store      storage.SnapshotStore
	theme      Theme
}

// NewBuilder hydrates from a prior snapshot when one exists, otherwise
// starts from an empty document.
func NewBuilder(store storage.SnapshotStore) *Builder {
	b := &Builder{store: store, theme: ThemeLight}
	if store != nil {
		if doc, err := store.Load(); err == nil && doc != nil {
			b.doc = doc
		}
	}
	if b.doc == nil {
		b.doc = model.NewResumeDocument()
	}
	b.validation = model.Validate(b.doc)
	return b
}

// Document returns a deep copy of the current document. An export that holds
// this copy across its await is unaffected by later edits.
func (b *Builder) Document() *model.ResumeDocument {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Clone()
}

// Validation returns the result of the most recent re-validation.
func (b *Builder) Validation() model.ValidationResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validation
}

// Theme returns the session's visual theme preference.
func (b *Builder) Theme() Theme {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theme
}

// SetTheme records the session's visual theme preference.
func (b *Builder) SetTheme(t Theme) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.theme = t
}

// forceTheme switches the session theme and returns a restore func. Used by
// the exporter to pin the light theme around a capture.
func (b *Builder) forceTheme(t Theme) (restore func()) {
	b.mu.Lock()
	prev := b.theme
	b.theme = t
	b.mu.Unlock()
	return func() { b.SetTheme(prev) }
}

// apply runs one mutation against a fresh copy of the document, then
// re-validates and snapshots. The mutation reports whether it changed
// anything; no-ops skip the snapshot write.
func (b *Builder) apply(mutate func(doc *model.ResumeDocument) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.doc.Clone()
	if !mutate(next) {
		return
	}
	b.doc = next
	b.validation = model.Validate(b.doc)
	b.persist()
}

func (b *Builder) persist() {
	if b.store == nil {
		return
	}
	if err := b.store.Save(b.doc); err != nil {
		// persistence failures never propagate to the edit path
		slog.Warn("snapshot save failed", "error", err)
	}
}

// UpdatePersonal merges the given fields into the personal section. Unknown
// keys are ignored.
func (b *Builder) UpdatePersonal(fields map[string]string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		changed := false
		for key, value := range fields {
			switch key {
			case "name":
				doc.Personal.Name = value
			case "email":
				doc.Personal.Email = value
			case "phone":
				doc.Personal.Phone = value
			case "summary":
				doc.Personal.Summary = value
			default:
				continue
			}
			changed = true
		}
		return changed
	})
}

// AddEducation appends a fresh entry and returns its id.
func (b *Builder) AddEducation() string {
	entry := model.NewEducationEntry()
	b.apply(func(doc *model.ResumeDocument) bool {
		doc.Education = append(doc.Education, entry)
		return true
	})
	return entry.ID
}

// UpdateEducation sets one field on the entry with the given id. An unknown
// id or field leaves the list untouched.
func (b *Builder) UpdateEducation(id, field, value string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		for i := range doc.Education {
			if doc.Education[i].ID != id {
				continue
			}
			e := &doc.Education[i]
			switch field {
			case "institution":
				e.Institution = value
			case "degree":
				e.Degree = value
			case "field":
				e.Field = value
			case "startDate":
				e.StartDate = value
			case "endDate":
				e.EndDate = value
			case "description":
				e.Description = value
			default:
				return false
			}
			return true
		}
		return false
	})
}

func (b *Builder) RemoveEducation(id string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		out := doc.Education[:0]
		for _, e := range doc.Education {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if len(out) == len(doc.Education) {
			return false
		}
		doc.Education = out
		return true
	})
}

func (b *Builder) AddExperience() string {
	entry := model.NewExperienceEntry()
	b.apply(func(doc *model.ResumeDocument) bool {
		doc.Experience = append(doc.Experience, entry)
		return true
	})
	return entry.ID
}

func (b *Builder) UpdateExperience(id, field, value string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		for i := range doc.Experience {
			if doc.Experience[i].ID != id {
				continue
			}
			e := &doc.Experience[i]
			switch field {
			case "company":
				e.Company = value
			case "position":
				e.Position = value
			case "location":
				e.Location = value
			case "startDate":
				e.StartDate = value
			case "endDate":
				e.EndDate = value
			case "description":
				e.Description = value
			default:
				return false
			}
			return true
		}
		return false
	})
}

func (b *Builder) RemoveExperience(id string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		out := doc.Experience[:0]
		for _, e := range doc.Experience {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if len(out) == len(doc.Experience) {
			return false
		}
		doc.Experience = out
		return true
	})
}

func (b *Builder) AddProject() string {
	entry := model.NewProjectEntry()
	b.apply(func(doc *model.ResumeDocument) bool {
		doc.Projects = append(doc.Projects, entry)
		return true
	})
	return entry.ID
}

func (b *Builder) UpdateProject(id, field, value string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		for i := range doc.Projects {
			if doc.Projects[i].ID != id {
				continue
			}
			p := &doc.Projects[i]
			switch field {
			case "title":
				p.Title = value
			case "description":
				p.Description = value
			case "liveUrl":
				p.LiveURL = value
			case "githubUrl":
				p.GithubURL = value
			case "startDate":
				p.StartDate = value
			case "endDate":
				p.EndDate = value
			default:
				return false
			}
			return true
		}
		return false
	})
}

// SetProjectTechnologies replaces the technology tags of a project.
func (b *Builder) SetProjectTechnologies(id string, techs []string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				doc.Projects[i].Technologies = append([]string{}, techs...)
				return true
			}
		}
		return false
	})
}

func (b *Builder) RemoveProject(id string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		out := doc.Projects[:0]
		for _, p := range doc.Projects {
			if p.ID != id {
				out = append(out, p)
			}
		}
		if len(out) == len(doc.Projects) {
			return false
		}
		doc.Projects = out
		return true
	})
}

// AddSkill appends a skill unless it is blank after trimming or already
// present (exact, case-sensitive match).
func (b *Builder) AddSkill(name string) {
	name = strings.TrimSpace(name)
	b.apply(func(doc *model.ResumeDocument) bool {
		if name == "" {
			return false
		}
		for _, s := range doc.Skills {
			if s == name {
				return false
			}
		}
		doc.Skills = append(doc.Skills, name)
		return true
	})
}

func (b *Builder) RemoveSkill(name string) {
	b.apply(func(doc *model.ResumeDocument) bool {
		out := doc.Skills[:0]
		for _, s := range doc.Skills {
			if s != name {
				out = append(out, s)
			}
		}
		if len(out) == len(doc.Skills) {
			return false
		}
		doc.Skills = out
		return true
	})
}

// SetCurrent sets the ongoing flag on an entry. Setting it true clears the
// entry's end date in the same step; setting it false leaves the end date
// as it was.
func (b *Builder) SetCurrent(list ListName, id string, current bool) {
	b.apply(func(doc *model.ResumeDocument) bool {
		switch list {
		case ListEducation:
			for i := range doc.Education {
				if doc.Education[i].ID == id {
					doc.Education[i].Current = current
					if current {
						doc.Education[i].EndDate = ""
					}
					return true
				}
			}
		case ListExperience:
			for i := range doc.Experience {
				if doc.Experience[i].ID == id {
					doc.Experience[i].Current = current
					if current {
						doc.Experience[i].EndDate = ""
					}
					return true
				}
			}
		case ListProjects:
			for i := range doc.Projects {
				if doc.Projects[i].ID == id {
					doc.Projects[i].Current = current
					if current {
						doc.Projects[i].EndDate = ""
					}
					return true
				}
			}
		}
		return false
	})
}

// ClearAll resets the document to factory defaults and purges the persisted
// snapshot.
func (b *Builder) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.doc = model.NewResumeDocument()
	b.validation = model.Validate(b.doc)
	if b.store != nil {
		if err := b.store.Clear(); err != nil {
			slog.Warn("snapshot clear failed", "error", err)
		}
	}
}

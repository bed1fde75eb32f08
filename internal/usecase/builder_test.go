package usecase

import (
	"errors"
	"reflect"
	"testing"

	"placify-resume/internal/model"
)

// memStore is an in-memory SnapshotStore for tests.
type memStore struct {
	doc    *model.ResumeDocument
	saves  int
	clears int
	fail   bool
}

func (m *memStore) Save(doc *model.ResumeDocument) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.doc = doc.Clone()
	m.saves++
	return nil
}

func (m *memStore) Load() (*model.ResumeDocument, error) {
	if m.doc == nil {
		return nil, nil
	}
	return m.doc.Clone(), nil
}

func (m *memStore) Clear() error {
	m.doc = nil
	m.clears++
	return nil
}

func TestNewBuilderHydratesFromStore(t *testing.T) {
	saved := model.NewResumeDocument()
	saved.Personal.Name = "Jane Roe"
	store := &memStore{doc: saved}

	b := NewBuilder(store)
	if got := b.Document().Personal.Name; got != "Jane Roe" {
		t.Errorf("hydrated name = %q, want %q", got, "Jane Roe")
	}
}

func TestNewBuilderDefaultsWhenEmpty(t *testing.T) {
	b := NewBuilder(&memStore{})
	doc := b.Document()
	if doc.Personal.Name != "" || len(doc.Education) != 0 {
		t.Errorf("expected empty defaults, got %+v", doc)
	}
	if b.Validation().Valid {
		t.Error("empty document should not validate")
	}
}

func TestUpdatePersonalRevalidatesAndPersists(t *testing.T) {
	store := &memStore{}
	b := NewBuilder(store)

	b.UpdatePersonal(map[string]string{
		"name":  "John Doe",
		"email": "john@example.com",
		"phone": "+1 555-123-4567",
	})

	if !b.Validation().Valid {
		t.Errorf("expected valid document, errors: %v", b.Validation().Errors)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if store.doc.Personal.Email != "john@example.com" {
		t.Errorf("persisted email = %q", store.doc.Personal.Email)
	}
}

func TestAddEntriesAssignDistinctIDs(t *testing.T) {
	b := NewBuilder(nil)
	ids := map[string]bool{}
	for i := 0; i < 20; i++ {
		for _, id := range []string{b.AddEducation(), b.AddExperience(), b.AddProject()} {
			if ids[id] {
				t.Fatalf("duplicate id %q", id)
			}
			ids[id] = true
		}
	}
	doc := b.Document()
	if len(doc.Education) != 20 || len(doc.Experience) != 20 || len(doc.Projects) != 20 {
		t.Errorf("unexpected list lengths: %d/%d/%d",
			len(doc.Education), len(doc.Experience), len(doc.Projects))
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	b := NewBuilder(nil)
	id := b.AddEducation()
	b.UpdateEducation(id, "degree", "BSc")
	before := b.Document()

	b.UpdateEducation("nonexistent-id", "degree", "X")
	b.RemoveExperience("nonexistent-id")
	b.SetCurrent(ListProjects, "nonexistent-id", true)

	after := b.Document()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("no-op edit changed the document:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestSetCurrentClearsEndDate(t *testing.T) {
	b := NewBuilder(nil)
	id := b.AddExperience()
	b.UpdateExperience(id, "endDate", "2023-06")

	b.SetCurrent(ListExperience, id, true)
	exp := b.Document().Experience[0]
	if !exp.Current || exp.EndDate != "" {
		t.Errorf("after SetCurrent(true): current=%v endDate=%q", exp.Current, exp.EndDate)
	}

	// unsetting leaves the end date as it was
	b.UpdateExperience(id, "endDate", "2024-01")
	b.SetCurrent(ListExperience, id, false)
	exp = b.Document().Experience[0]
	if exp.Current || exp.EndDate != "2024-01" {
		t.Errorf("after SetCurrent(false): current=%v endDate=%q", exp.Current, exp.EndDate)
	}
}

func TestAddSkillDeduplicates(t *testing.T) {
	b := NewBuilder(nil)
	b.AddSkill("React")
	b.AddSkill("React")
	b.AddSkill("  ")
	b.AddSkill("react") // different case is a different skill

	got := b.Document().Skills
	want := []string{"React", "react"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("skills = %v, want %v", got, want)
	}

	b.RemoveSkill("React")
	if got := b.Document().Skills; !reflect.DeepEqual(got, []string{"react"}) {
		t.Errorf("skills after remove = %v", got)
	}
}

func TestDocumentSnapshotIsolation(t *testing.T) {
	b := NewBuilder(nil)
	id := b.AddExperience()
	b.UpdateExperience(id, "company", "TechCorp")

	snapshot := b.Document()
	b.UpdateExperience(id, "company", "OtherCorp")
	b.RemoveExperience(id)

	if len(snapshot.Experience) != 1 || snapshot.Experience[0].Company != "TechCorp" {
		t.Errorf("snapshot mutated by later edits: %+v", snapshot.Experience)
	}
}

func TestClearAllResetsAndPurges(t *testing.T) {
	store := &memStore{}
	b := NewBuilder(store)
	b.UpdatePersonal(map[string]string{"name": "John Doe"})
	b.AddSkill("Go")

	b.ClearAll()

	doc := b.Document()
	if doc.Personal.Name != "" || len(doc.Skills) != 0 {
		t.Errorf("document not reset: %+v", doc)
	}
	if store.clears != 1 || store.doc != nil {
		t.Errorf("persisted snapshot not purged (clears=%d)", store.clears)
	}
}

func TestPersistenceFailureDoesNotBlockEdits(t *testing.T) {
	store := &memStore{fail: true}
	b := NewBuilder(store)
	b.UpdatePersonal(map[string]string{"name": "John Doe"})
	if got := b.Document().Personal.Name; got != "John Doe" {
		t.Errorf("edit lost on store failure: %q", got)
	}
}

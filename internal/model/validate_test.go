package model

import (
	"reflect"
	"testing"
)

func validDocument() *ResumeDocument {
	doc := NewResumeDocument()
	doc.Personal = Personal{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1 555-123-4567",
	}
	return doc
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ResumeDocument)
		wantValid bool
		wantKeys  map[string]string
	}{
		{
			name:      "empty document reports name, email and phone",
			mutate:    func(d *ResumeDocument) { d.Personal = Personal{} },
			wantValid: false,
			wantKeys: map[string]string{
				"name":  "Full name is required",
				"email": "Email is required",
				"phone": "Phone number is required",
			},
		},
		{
			name:      "minimal personal info is valid",
			mutate:    func(d *ResumeDocument) {},
			wantValid: true,
		},
		{
			name:      "single character name",
			mutate:    func(d *ResumeDocument) { d.Personal.Name = " J " },
			wantValid: false,
			wantKeys:  map[string]string{"name": "Name must be at least 2 characters long"},
		},
		{
			name:      "malformed email",
			mutate:    func(d *ResumeDocument) { d.Personal.Email = "john@example" },
			wantValid: false,
			wantKeys:  map[string]string{"email": "Please enter a valid email address"},
		},
		{
			name:      "phone too short",
			mutate:    func(d *ResumeDocument) { d.Personal.Phone = "12345" },
			wantValid: false,
			wantKeys:  map[string]string{"phone": "Please enter a valid phone number"},
		},
		{
			name:      "phone with spaces and separators is accepted",
			mutate:    func(d *ResumeDocument) { d.Personal.Phone = "+1 (555) 123-4567" },
			wantValid: true,
		},
		{
			name: "education entry missing institution and degree",
			mutate: func(d *ResumeDocument) {
				d.Education = append(d.Education, NewEducationEntry())
			},
			wantValid: false,
			wantKeys: map[string]string{
				"education_0_institution": "Institution is required",
				"education_0_degree":      "Degree is required",
			},
		},
		{
			name: "experience entry missing company and position",
			mutate: func(d *ResumeDocument) {
				d.Experience = append(d.Experience, NewExperienceEntry())
			},
			wantValid: false,
			wantKeys: map[string]string{
				"experience_0_company":  "Company is required",
				"experience_0_position": "Position is required",
			},
		},
		{
			name: "project entry missing title",
			mutate: func(d *ResumeDocument) {
				d.Projects = append(d.Projects, NewProjectEntry())
			},
			wantValid: false,
			wantKeys:  map[string]string{"project_0_title": "Project title is required"},
		},
		{
			name: "optional fields never produce errors",
			mutate: func(d *ResumeDocument) {
				d.Personal.Summary = ""
				d.Skills = []string{}
				edu := NewEducationEntry()
				edu.Institution = "MIT"
				edu.Degree = "BSc"
				d.Education = append(d.Education, edu)
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			res := Validate(doc)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", res.Valid, tt.wantValid, res.Errors)
			}
			for key, msg := range tt.wantKeys {
				if got := res.Errors[key]; got != msg {
					t.Errorf("Errors[%q] = %q, want %q", key, got, msg)
				}
			}
			if tt.wantValid && len(res.Errors) != 0 {
				t.Errorf("valid document produced errors: %v", res.Errors)
			}
		})
	}
}

func TestValidateIsIdempotentAndPure(t *testing.T) {
	doc := validDocument()
	doc.Education = append(doc.Education, NewEducationEntry())
	before := doc.Clone()

	first := Validate(doc)
	second := Validate(doc)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(doc, before) {
		t.Errorf("validation mutated the document")
	}
}

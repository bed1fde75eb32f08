package model

import "testing"

func validSubmission() InterviewExperience {
	return InterviewExperience{
		Name:          "Priya Sharma",
		Email:         "priya@example.com",
		Company:       "Acme Corp",
		Role:          "Backend Engineer",
		InterviewType: "Technical",
		Difficulty:    "Medium",
		Rating:        4,
		Experience:    "Two rounds of DSA followed by a system design discussion.",
	}
}

func TestValidateExperienceAccepts(t *testing.T) {
	e := validSubmission()
	res := ValidateExperience(&e)
	if !res.Valid {
		t.Fatalf("expected valid submission, got errors %v", res.Errors)
	}
}

func TestValidateExperienceRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*InterviewExperience)
		field   string
		message string
	}{
		{
			name:    "blank name",
			mutate:  func(e *InterviewExperience) { e.Name = "   " },
			field:   "name",
			message: "This field is required",
		},
		{
			name:    "missing company",
			mutate:  func(e *InterviewExperience) { e.Company = "" },
			field:   "company",
			message: "This field is required",
		},
		{
			name:    "malformed email",
			mutate:  func(e *InterviewExperience) { e.Email = "priya@example" },
			field:   "email",
			message: "Please provide a valid email address",
		},
		{
			name:    "unknown interview type",
			mutate:  func(e *InterviewExperience) { e.InterviewType = "Karaoke" },
			field:   "interviewType",
			message: "Unknown interview type",
		},
		{
			name:    "unknown difficulty",
			mutate:  func(e *InterviewExperience) { e.Difficulty = "Impossible" },
			field:   "difficulty",
			message: "Unknown difficulty",
		},
		{
			name:    "rating too low",
			mutate:  func(e *InterviewExperience) { e.Rating = 0 },
			field:   "rating",
			message: "Rating must be between 1 and 5",
		},
		{
			name:    "rating too high",
			mutate:  func(e *InterviewExperience) { e.Rating = 6 },
			field:   "rating",
			message: "Rating must be between 1 and 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validSubmission()
			tt.mutate(&e)
			res := ValidateExperience(&e)
			if res.Valid {
				t.Fatal("expected submission to be rejected")
			}
			if got := res.Errors[tt.field]; got != tt.message {
				t.Fatalf("error for %q = %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Interview type and difficulty enums mirror what the sharing form offers.
var (
	InterviewTypes = []string{"Technical", "HR", "Behavioral", "Group Discussion", "Case Study", "Mixed"}
	Difficulties   = []string{"Easy", "Medium", "Hard", "Very Hard"}
)

// InterviewExperience is one shared interview writeup. Only entries that are
// both public and approved are served by the read endpoints.
type InterviewExperience struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Role          string    `json:"role"`
	InterviewType string    `json:"interviewType"`
	Difficulty    string    `json:"difficulty"`
	Rating        int       `json:"rating"`
	Experience    string    `json:"experience"`
	Tips          string    `json:"tips"`
	IsPublic      bool      `json:"isPublic"`
	IsApproved    bool      `json:"isApproved"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidateExperience checks a submission and returns field errors keyed by
// field name. Same contract as Validate: pure, never fails.
func ValidateExperience(e *InterviewExperience) ValidationResult {
	errs := map[string]string{}

	required := map[string]string{
		"name":          e.Name,
		"email":         e.Email,
		"company":       e.Company,
		"role":          e.Role,
		"interviewType": e.InterviewType,
		"difficulty":    e.Difficulty,
		"experience":    e.Experience,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "This field is required"
		}
	}

	if errs["email"] == "" && !emailRe.MatchString(strings.TrimSpace(e.Email)) {
		errs["email"] = "Please provide a valid email address"
	}
	if errs["interviewType"] == "" && !contains(InterviewTypes, e.InterviewType) {
		errs["interviewType"] = "Unknown interview type"
	}
	if errs["difficulty"] == "" && !contains(Difficulties, e.Difficulty) {
		errs["difficulty"] = "Unknown difficulty"
	}
	if e.Rating < 1 || e.Rating > 5 {
		errs["rating"] = "Rating must be between 1 and 5"
	}

	return ValidationResult{Errors: errs, Valid: len(errs) == 0}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

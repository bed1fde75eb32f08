package model

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult carries field-level errors keyed the way the form layer
// expects them: personal fields by name, list entries as
// "<section>_<index>_<field>".
type ValidationResult struct {
	Errors map[string]string `json:"errors"`
	Valid  bool              `json:"isValid"`
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9()\-]{10,}$`)
)

// Validate checks the document and returns every field error it finds. It is
// pure: it never mutates the document and never fails. Optional fields
// (summary, skills, descriptions, urls, dates) are always accepted.
func Validate(doc *ResumeDocument) ValidationResult {
	errs := map[string]string{}

	name := strings.TrimSpace(doc.Personal.Name)
	switch {
	case name == "":
		errs["name"] = "Full name is required"
	case len(name) < 2:
		errs["name"] = "Name must be at least 2 characters long"
	}

	email := strings.TrimSpace(doc.Personal.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}

	phone := strings.TrimSpace(doc.Personal.Phone)
	switch {
	case phone == "":
		errs["phone"] = "Phone number is required"
	case !phoneRe.MatchString(stripWhitespace(phone)):
		errs["phone"] = "Please enter a valid phone number"
	}

	for i, edu := range doc.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			errs[fmt.Sprintf("education_%d_institution", i)] = "Institution is required"
		}
		if strings.TrimSpace(edu.Degree) == "" {
			errs[fmt.Sprintf("education_%d_degree", i)] = "Degree is required"
		}
	}

	for i, exp := range doc.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			errs[fmt.Sprintf("experience_%d_company", i)] = "Company is required"
		}
		if strings.TrimSpace(exp.Position) == "" {
			errs[fmt.Sprintf("experience_%d_position", i)] = "Position is required"
		}
	}

	for i, proj := range doc.Projects {
		if strings.TrimSpace(proj.Title) == "" {
			errs[fmt.Sprintf("project_%d_title", i)] = "Project title is required"
		}
	}

	return ValidationResult{Errors: errs, Valid: len(errs) == 0}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

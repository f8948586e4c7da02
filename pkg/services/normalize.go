package services

import (
	"strings"
	"unicode"

	"sfd-intake/pkg/models"
)

// field coerces one submission value. Anything that is not a string,
// including an absent key, becomes "".
func field(sub models.Submission, key string) string {
	s, ok := sub[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func lowerField(sub models.Submission, key string) string {
	return strings.ToLower(field(sub, key))
}

func phoneField(sub models.Submission, key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, field(sub, key))
}

// NormalizeLead builds a LeadRecord. The participate page posts the full name
// as "name", so it is accepted when "fullName" is empty.
func NormalizeLead(sub models.Submission) models.LeadRecord {
	fullName := field(sub, "fullName")
	if fullName == "" {
		fullName = field(sub, "name")
	}
	return models.LeadRecord{
		FullName:     fullName,
		Phone:        phoneField(sub, "phone"),
		Email:        lowerField(sub, "email"),
		State:        field(sub, "state"),
		City:         field(sub, "city"),
		University:   field(sub, "university"),
		Department:   field(sub, "department"),
		Availability: field(sub, "availability"),
		Roles:        field(sub, "roles"),
	}
}

// NormalizeScholarship builds a ScholarshipRecord. Unknown or missing
// categories fall back to scholarship.
func NormalizeScholarship(sub models.Submission) models.ScholarshipRecord {
	category := lowerField(sub, "category")
	if category != models.CategoryGrant {
		category = models.CategoryScholarship
	}
	return models.ScholarshipRecord{
		Category:       category,
		Name:           field(sub, "name"),
		Institution:    field(sub, "institution"),
		Email:          lowerField(sub, "email"),
		Phone:          phoneField(sub, "phone"),
		Department:     field(sub, "department"),
		BusinessName:   field(sub, "businessName"),
		BusinessNature: field(sub, "businessNature"),
		Reason:         field(sub, "reason"),
	}
}

// NormalizeVolunteer builds a VolunteerRecord
func NormalizeVolunteer(sub models.Submission) models.VolunteerRecord {
	return models.VolunteerRecord{
		FullName:     field(sub, "fullName"),
		Phone:        phoneField(sub, "phone"),
		Email:        lowerField(sub, "email"),
		State:        field(sub, "state"),
		City:         field(sub, "city"),
		University:   field(sub, "university"),
		Department:   field(sub, "department"),
		Availability: field(sub, "availability"),
		Roles:        field(sub, "roles"),
	}
}

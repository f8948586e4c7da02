package models

import "fmt"

// Submission is the raw JSON object posted by one of the site's forms.
type Submission map[string]any

// FormVariant selects the required fields, validation rules and row layout
// for a submission.
type FormVariant int

const (
	Lead FormVariant = iota + 1
	ScholarshipGrant
	Volunteer
)

// Variants lists every form variant in endpoint order.
var Variants = []FormVariant{Lead, ScholarshipGrant, Volunteer}

func (v FormVariant) String() string {
	switch v {
	case Lead:
		return "lead"
	case ScholarshipGrant:
		return "scholarship"
	case Volunteer:
		return "volunteer"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Scholarship/grant categories
const (
	CategoryScholarship = "scholarship"
	CategoryGrant       = "grant"
)

// Volunteer roles offered on the volunteer page
const (
	RoleMedia     = "Media/Publicity"
	RoleProtocol  = "Protocol/Ushering"
	RoleLogistics = "Logistics"
)

// VolunteerRoles is the fixed set of roles a volunteer can pick from.
var VolunteerRoles = []string{RoleMedia, RoleProtocol, RoleLogistics}

// LeadRecord is a normalized participation form submission
type LeadRecord struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,leademail"`
	State        string `json:"state" validate:"required"`
	City         string `json:"city" validate:"required"`
	University   string `json:"university"`
	Department   string `json:"department"`
	Availability string `json:"availability"`
	Roles        string `json:"roles"`
}

// ScholarshipRecord is a normalized scholarship or grant application.
// Which fields are required depends on Category.
type ScholarshipRecord struct {
	Category       string `json:"category" validate:"oneof=scholarship grant"`
	Name           string `json:"name" validate:"required_if=Category scholarship"`
	Institution    string `json:"institution" validate:"required_if=Category scholarship"`
	Email          string `json:"email" validate:"omitempty,leademail"`
	Phone          string `json:"phone" validate:"required,phonefmt"`
	Department     string `json:"department" validate:"required_if=Category scholarship"`
	BusinessName   string `json:"businessName" validate:"required_if=Category grant"`
	BusinessNature string `json:"businessNature" validate:"required_if=Category grant"`
	Reason         string `json:"reason" validate:"required_if=Category grant"`
}

// VolunteerRecord is a normalized volunteer registration
type VolunteerRecord struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,looseemail"`
	State        string `json:"state" validate:"required"`
	City         string `json:"city" validate:"required"`
	University   string `json:"university"`
	Department   string `json:"department"`
	Availability string `json:"availability"`
	Roles        string `json:"roles" validate:"required,volunteerrole"`
}

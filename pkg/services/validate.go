package services

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"sfd-intake/pkg/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-()\s]{7,}$`)
)

// Validation reasons returned verbatim to the caller
const (
	ReasonLeadRequired        = "All fields marked * are required."
	ReasonScholarshipRequired = "All scholarship fields are required."
	ReasonGrantRequired       = "All grant fields are required."
	ReasonVolunteerRequired   = "All fields are required"
	ReasonInvalidEmailAddress = "Invalid email address"
	ReasonInvalidEmail        = "Invalid email."
	ReasonInvalidPhone        = "Invalid phone."
	ReasonInvalidCategory     = "Invalid category."
	ReasonSelectRole          = "Please select a volunteer role."
)

type reasons struct {
	required string
	email    string
	phone    string
	role     string
}

// Validator checks normalized records. It holds no per-request state and is
// safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the form-specific tags used by the record structs
func NewValidator() *Validator {
	v := validator.New()
	mustRegister(v, "leademail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	// Volunteer registrations only ever required an "@"
	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		return strings.Contains(fl.Field().String(), "@")
	})
	mustRegister(v, "phonefmt", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "volunteerrole", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.VolunteerRoles, fl.Field().String())
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateLead checks a participation form record
func (v *Validator) ValidateLead(rec models.LeadRecord) error {
	return v.check(rec, reasons{
		required: ReasonLeadRequired,
		email:    ReasonInvalidEmailAddress,
	})
}

// ValidateScholarship checks a scholarship or grant record against the
// rules of its category.
func (v *Validator) ValidateScholarship(rec models.ScholarshipRecord) error {
	required := ReasonScholarshipRequired
	if rec.Category == models.CategoryGrant {
		required = ReasonGrantRequired
	}
	return v.check(rec, reasons{
		required: required,
		email:    ReasonInvalidEmail,
		phone:    ReasonInvalidPhone,
	})
}

// ValidateVolunteer checks a volunteer registration
func (v *Validator) ValidateVolunteer(rec models.VolunteerRecord) error {
	return v.check(rec, reasons{
		required: ReasonVolunteerRequired,
		email:    ReasonInvalidEmailAddress,
		role:     ReasonSelectRole,
	})
}

// check reports the single most relevant failure. Missing fields win over
// role, email and phone format problems, in that order.
func (v *Validator) check(rec any, r reasons) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validationError(err.Error())
	}

	best, bestRank := "", len(fieldErrs)+10
	for _, fe := range fieldErrs {
		rank, reason := classify(fe, r)
		if rank < bestRank {
			best, bestRank = reason, rank
		}
	}
	return validationError(best)
}

func classify(fe validator.FieldError, r reasons) (int, string) {
	switch {
	case fe.StructField() == "Roles" && r.role != "":
		return 1, r.role
	case fe.Tag() == "required" || fe.Tag() == "required_if":
		return 0, r.required
	case fe.StructField() == "Email":
		return 2, r.email
	case fe.StructField() == "Phone":
		return 3, r.phone
	default:
		return 4, ReasonInvalidCategory
	}
}

package models

import (
	"fmt"
	"strings"
)

// Layout is the positional column contract of a target sheet. Columns are
// matched by position, never by header name, so any change to Columns must
// bump Version and be mirrored in the sheet before deploying.
type Layout struct {
	Name    string
	Version int
	Columns []string
}

// Column names shared by the layouts below
const (
	ColEmail          = "email"
	ColFullName       = "fullName"
	ColTimestamp      = "timestamp"
	ColSourceTag      = "sourceTag"
	ColPhone          = "phone"
	ColState          = "state"
	ColCity           = "city"
	ColUniversity     = "university"
	ColDepartment     = "department"
	ColAvailability   = "availability"
	ColRoles          = "roles"
	ColCategory       = "category"
	ColName           = "name"
	ColInstitution    = "institution"
	ColBusinessName   = "businessName"
	ColBusinessNature = "businessNature"
	ColReason         = "reason"
)

var registrationColumns = []string{
	ColEmail, ColFullName, ColTimestamp, ColSourceTag, ColPhone, ColState,
	ColCity, ColUniversity, ColDepartment, ColAvailability, ColRoles,
}

var (
	// LeadLayout v1: A:K
	LeadLayout = Layout{Name: "lead", Version: 1, Columns: registrationColumns}

	// VolunteerLayout v1: A:K, identical columns to LeadLayout
	VolunteerLayout = Layout{Name: "volunteer", Version: 1, Columns: registrationColumns}

	// ScholarshipLayout v2: A:J. v1 stopped at timestamp (A:I); reason was
	// appended so earlier positions are unchanged.
	ScholarshipLayout = Layout{Name: "scholarship", Version: 2, Columns: []string{
		ColCategory, ColName, ColInstitution, ColEmail, ColPhone, ColDepartment,
		ColBusinessName, ColBusinessNature, ColTimestamp, ColReason,
	}}
)

// Source tags written into the sourceTag column
const (
	SourceTagLead      = "SFD_Leads"
	SourceTagVolunteer = "SFD_Volunteers"
)

// Duplicate checks compare against these positions of the registration layout.
const (
	EmailColumnIndex = 0
	PhoneColumnIndex = 4
)

// LayoutFor returns the row layout of a variant.
func LayoutFor(v FormVariant) Layout {
	switch v {
	case Lead:
		return LeadLayout
	case ScholarshipGrant:
		return ScholarshipLayout
	case Volunteer:
		return VolunteerLayout
	default:
		panic(fmt.Sprintf("models: no layout for %s", v))
	}
}

// Row orders values by the layout's columns. Columns without a value are
// written as empty cells.
func (l Layout) Row(values map[string]string) []string {
	row := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		row[i] = values[col]
	}
	return row
}

// Index returns the position of column, or -1.
func (l Layout) Index(column string) int {
	for i, col := range l.Columns {
		if col == column {
			return i
		}
	}
	return -1
}

// LastColumn is the A1 letter of the layout's last column.
func (l Layout) LastColumn() string {
	return ColumnLetter(len(l.Columns))
}

// AppendRange is the A1 range covering every column of the layout on sheet.
func (l Layout) AppendRange(sheet string) string {
	return A1(sheet, "A:"+l.LastColumn())
}

// A1 qualifies span with a sheet name. The name is always quoted so tabs with
// spaces, punctuation or cell-like names resolve to the sheet.
func A1(sheet, span string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + span
}

// ColumnLetter converts a 1-based column number to its A1 letters.
func ColumnLetter(n int) string {
	if n <= 0 {
		return ""
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

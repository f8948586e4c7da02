package services

import (
	"strings"

	"sfd-intake/pkg/clients/sheets"
	"sfd-intake/pkg/models"
)

// CheckDuplicate scans existing registration rows for the candidate's email
// (case-insensitive) or phone (exact after trimming). An email match is
// reported even when the phone also matches.
//
// The scan is linear and the check is not atomic with the append that
// follows it: two concurrent registrations with the same email can both pass.
func CheckDuplicate(rows []sheets.Row, email, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	phoneTaken := false
	for _, row := range rows {
		if cell(row, models.EmailColumnIndex) != "" &&
			strings.ToLower(cell(row, models.EmailColumnIndex)) == email {
			return conflictError(MsgEmailRegistered)
		}
		if phone != "" && cell(row, models.PhoneColumnIndex) == phone {
			phoneTaken = true
		}
	}

	if phoneTaken {
		return conflictError(MsgPhoneRegistered)
	}
	return nil
}

func cell(row sheets.Row, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

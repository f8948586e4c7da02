package services

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"go.uber.org/zap"

	"sfd-intake/pkg/clients/sheets"
	"sfd-intake/pkg/config"
	"sfd-intake/pkg/metrics"
	"sfd-intake/pkg/models"
	"sfd-intake/pkg/utils"
)

// TimestampLayout renders submission times in en-GB order
const TimestampLayout = "02/01/2006, 15:04:05"

// DedupeRange is the A1 span read for duplicate checks; row 1 is the header.
const DedupeRange = "A2:E"

// StoreCallsPerSubmission is the most store round trips one submission makes:
// connect, describe, the duplicate read and the append.
const StoreCallsPerSubmission = 4

// IntakeService defines the interface for handling form submissions
type IntakeService interface {
	Submit(ctx context.Context, variant models.FormVariant, sub models.Submission) (*Receipt, error)
	Configured(variant models.FormVariant) bool
}

// Receipt describes a row that was appended
type Receipt struct {
	Variant   models.FormVariant
	Message   string
	Timestamp string
	Row       sheets.Row

	// Fields echoes the normalized values, keyed by column name
	Fields map[string]string
}

// Option customizes an IntakeService
type Option func(*intakeServiceImpl)

// WithClock replaces time.Now as the source of submission timestamps
func WithClock(now func() time.Time) Option {
	return func(s *intakeServiceImpl) {
		s.now = now
	}
}

type intakeServiceImpl struct {
	sheetsClient sheets.Client
	validator    *Validator
	config       *config.Config
	logger       *zap.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	sheetsClient sheets.Client,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	opts ...Option,
) IntakeService {
	s := &intakeServiceImpl{
		sheetsClient: sheetsClient,
		validator:    NewValidator(),
		config:       cfg,
		logger:       logger,
		metrics:      m,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// entry is a validated record laid out as column values
type entry struct {
	email   string
	phone   string
	message string
	dedupe  bool
	values  map[string]string
}

func (s *intakeServiceImpl) Configured(variant models.FormVariant) bool {
	return len(s.config.MissingStoreSettings(variant)) == 0
}

// Submit runs one submission through configuration, validation, the store
// access check, the optional duplicate check and the append. Every failure is
// returned as an *IntakeError and nothing is written before the final append.
func (s *intakeServiceImpl) Submit(ctx context.Context, variant models.FormVariant, sub models.Submission) (*Receipt, error) {
	receipt, err := s.submit(ctx, variant, sub)

	outcome := "succeeded"
	if err != nil {
		outcome = KindOf(err).String()
	}
	s.metrics.ObserveOutcome(variant.String(), outcome)

	return receipt, err
}

func (s *intakeServiceImpl) submit(ctx context.Context, variant models.FormVariant, sub models.Submission) (*Receipt, error) {
	log := s.logger.With(zap.String("variant", variant.String()))

	if missing := s.config.MissingStoreSettings(variant); len(missing) > 0 {
		log.Warn("Google Sheets not configured", zap.Strings("missing", missing))
		return nil, &IntakeError{
			Kind:     KindConfiguration,
			Message:  MsgNotConfigured,
			Err:      fmt.Errorf("missing settings: %s", strings.Join(missing, ", ")),
			Missing:  missing,
			Settings: s.config.StoreSettings(variant),
		}
	}

	e, err := s.prepare(variant, sub)
	if err != nil {
		log.Info("Rejected submission", zap.Error(err))
		return nil, err
	}

	log = log.With(
		zap.String("email_hash", utils.ContactHash(e.email)),
		zap.String("phone_hash", utils.ContactHash(e.phone)),
	)
	log.Info("Processing submission")

	// Once started, a submission runs to a terminal state even if the caller
	// goes away. Timeouts come from the sheets client's transport.
	ctx = context.WithoutCancel(ctx)

	timestamp := s.now().In(s.config.Location()).Format(TimestampLayout)
	e.values[models.ColTimestamp] = timestamp

	layout := models.LayoutFor(variant)
	target := s.config.Target(variant)
	row := sheets.Row(layout.Row(e.values))

	start := time.Now()
	handle, err := s.sheetsClient.Connect(ctx, sheets.Credentials{
		ClientEmail: s.config.Google.ClientEmail,
		PrivateKey:  s.config.Google.PrivateKey,
	})
	s.metrics.ObserveStoreCall("connect", start, err)
	if err != nil {
		log.Error("Error authenticating with Google", zap.Error(err))
		return nil, storeError(KindAuth, MsgAuthFailed, err)
	}

	start = time.Now()
	md, err := handle.Describe(ctx, target.SpreadsheetID)
	if err == nil && !md.HasSheet(target.SheetName) {
		err = fmt.Errorf("sheet %q not found in spreadsheet %s", target.SheetName, target.SpreadsheetID)
	}
	s.metrics.ObserveStoreCall("describe", start, err)
	if err != nil {
		log.Error("Error checking spreadsheet", zap.Error(err))
		return nil, storeError(KindLookup, MsgLookupFailed, err)
	}

	if e.dedupe {
		start = time.Now()
		rows, err := handle.GetColumn(ctx, target.SpreadsheetID, models.A1(target.SheetName, DedupeRange))
		s.metrics.ObserveStoreCall("read", start, err)
		if err != nil {
			log.Error("Error reading existing registrations", zap.Error(err))
			return nil, storeError(KindRead, MsgReadFailed, err)
		}

		if err := CheckDuplicate(rows, e.email, e.phone); err != nil {
			log.Info("Skipping duplicate registration", zap.Error(err), zap.Int("rows_scanned", len(rows)))
			return nil, err
		}
	}

	start = time.Now()
	err = handle.Append(ctx, target.SpreadsheetID, layout.AppendRange(target.SheetName), row)
	s.metrics.ObserveStoreCall("append", start, err)
	if err != nil {
		log.Error("Error appending row", zap.Error(err))
		return nil, storeError(KindWrite, MsgAppendFailed, err)
	}

	log.Info("Successfully appended row", zap.String("spreadsheet", target.SpreadsheetID), zap.String("sheet", target.SheetName))

	fields := maps.Clone(e.values)
	delete(fields, models.ColSourceTag)

	return &Receipt{
		Variant:   variant,
		Message:   e.message,
		Timestamp: timestamp,
		Fields:    fields,
		Row:       row,
	}, nil
}

// prepare normalizes and validates a submission, returning its column values
func (s *intakeServiceImpl) prepare(variant models.FormVariant, sub models.Submission) (*entry, error) {
	switch variant {
	case models.Lead:
		rec := NormalizeLead(sub)
		if err := s.validator.ValidateLead(rec); err != nil {
			return nil, err
		}
		return &entry{
			email:   rec.Email,
			phone:   rec.Phone,
			message: fmt.Sprintf("Thank you %s, your registration was received!", rec.FullName),
			values: map[string]string{
				models.ColEmail:        rec.Email,
				models.ColFullName:     rec.FullName,
				models.ColSourceTag:    models.SourceTagLead,
				models.ColPhone:        rec.Phone,
				models.ColState:        rec.State,
				models.ColCity:         rec.City,
				models.ColUniversity:   rec.University,
				models.ColDepartment:   rec.Department,
				models.ColAvailability: rec.Availability,
				models.ColRoles:        rec.Roles,
			},
		}, nil

	case models.ScholarshipGrant:
		rec := NormalizeScholarship(sub)
		if err := s.validator.ValidateScholarship(rec); err != nil {
			return nil, err
		}
		return &entry{
			email:   rec.Email,
			phone:   rec.Phone,
			message: fmt.Sprintf("Your %s application has been received.", rec.Category),
			values: map[string]string{
				models.ColCategory:       rec.Category,
				models.ColName:           rec.Name,
				models.ColInstitution:    rec.Institution,
				models.ColEmail:          rec.Email,
				models.ColPhone:          rec.Phone,
				models.ColDepartment:     rec.Department,
				models.ColBusinessName:   rec.BusinessName,
				models.ColBusinessNature: rec.BusinessNature,
				models.ColReason:         rec.Reason,
			},
		}, nil

	case models.Volunteer:
		rec := NormalizeVolunteer(sub)
		if err := s.validator.ValidateVolunteer(rec); err != nil {
			return nil, err
		}
		return &entry{
			email:   rec.Email,
			phone:   rec.Phone,
			message: fmt.Sprintf("Congratulations %s, You've successfully registered to Volunteer!", rec.FullName),
			dedupe:  true,
			values: map[string]string{
				models.ColEmail:        rec.Email,
				models.ColFullName:     rec.FullName,
				models.ColSourceTag:    models.SourceTagVolunteer,
				models.ColPhone:        rec.Phone,
				models.ColState:        rec.State,
				models.ColCity:         rec.City,
				models.ColUniversity:   rec.University,
				models.ColDepartment:   rec.Department,
				models.ColAvailability: rec.Availability,
				models.ColRoles:        rec.Roles,
			},
		}, nil

	default:
		return nil, validationError(fmt.Sprintf("unknown form %s", variant))
	}
}

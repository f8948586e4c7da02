package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sfd-intake/pkg/clients/sheets"
)

type appendCall struct {
	spreadsheetID string
	rangeSpec     string
	row           sheets.Row
}

// fakeSheets is an in-memory spreadsheet. Appended rows become visible to
// later GetColumn calls, so duplicate checks see earlier submissions.
type fakeSheets struct {
	mu sync.Mutex

	connectErr  error
	describeErr error
	readErr     error
	appendErr   error
	sheetTitles []string

	connects  int
	describes int
	reads     []string
	appends   []appendCall
	existing  []sheets.Row
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{sheetTitles: []string{"Sheet1"}}
}

func (f *fakeSheets) Connect(ctx context.Context, creds sheets.Credentials) (sheets.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, errors.New("missing credentials")
	}
	return f, nil
}

func (f *fakeSheets) Describe(ctx context.Context, spreadsheetID string) (*sheets.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describes++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &sheets.Metadata{SpreadsheetID: spreadsheetID, Title: "SFD", SheetTitles: f.sheetTitles}, nil
}

func (f *fakeSheets) GetColumn(ctx context.Context, spreadsheetID, rangeSpec string) ([]sheets.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, rangeSpec)
	if f.readErr != nil {
		return nil, f.readErr
	}
	rows := append([]sheets.Row{}, f.existing...)
	for _, a := range f.appends {
		if a.spreadsheetID == spreadsheetID && strings.HasPrefix(rangeSpec, sheetOf(a.rangeSpec)+"!") {
			rows = append(rows, a.row)
		}
	}
	return rows, nil
}

func (f *fakeSheets) Append(ctx context.Context, spreadsheetID, rangeSpec string, row sheets.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends = append(f.appends, appendCall{spreadsheetID: spreadsheetID, rangeSpec: rangeSpec, row: row})
	return nil
}

func (f *fakeSheets) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects + f.describes + len(f.reads) + len(f.appends)
}

func sheetOf(rangeSpec string) string {
	name, _, _ := strings.Cut(rangeSpec, "!")
	return name
}

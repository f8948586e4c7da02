package sheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Scope grants read/write access to spreadsheets
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// Row is one positional row of cell values
type Row []string

// Credentials identify the service account used to reach the spreadsheet
type Credentials struct {
	ClientEmail string
	PrivateKey  string
}

// Metadata is the subset of spreadsheet properties used for access checks
type Metadata struct {
	SpreadsheetID string
	Title         string
	SheetTitles   []string
}

// HasSheet reports whether the spreadsheet contains a tab with the given title.
func (m *Metadata) HasSheet(title string) bool {
	for _, t := range m.SheetTitles {
		if t == title {
			return true
		}
	}
	return false
}

// Client defines the interface for authenticating against Google Sheets
type Client interface {
	Connect(ctx context.Context, creds Credentials) (Handle, error)
}

// Handle is an authenticated session. It is owned by a single request.
type Handle interface {
	Describe(ctx context.Context, spreadsheetID string) (*Metadata, error)
	GetColumn(ctx context.Context, spreadsheetID, rangeSpec string) ([]Row, error)
	Append(ctx context.Context, spreadsheetID, rangeSpec string, row Row) error
}

// Options tune how the client reaches Google. Zero values use the public API.
type Options struct {
	Endpoint string
	TokenURL string
	Timeout  time.Duration
}

type clientImpl struct {
	opts Options
}

// NewClient creates a new Google Sheets client
func NewClient(opts Options) Client {
	if opts.TokenURL == "" {
		opts.TokenURL = google.JWTTokenURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &clientImpl{opts: opts}
}

// Connect exchanges the service account key for an access token. The token is
// fetched eagerly so bad credentials fail here rather than on the first call.
func (c *clientImpl) Connect(ctx context.Context, creds Credentials) (Handle, error) {
	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{Scope},
		TokenURL:   c.opts.TokenURL,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: c.opts.Timeout})
	ts := conf.TokenSource(ctx)
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("error authorizing service account: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, ts))
	httpClient.Timeout = c.opts.Timeout

	options := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.opts.Endpoint != "" {
		options = append(options, option.WithEndpoint(c.opts.Endpoint))
	}

	svc, err := gsheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("error creating sheets service: %w", err)
	}

	return &handleImpl{svc: svc}, nil
}

type handleImpl struct {
	svc *gsheets.Service
}

func (h *handleImpl) Describe(ctx context.Context, spreadsheetID string) (*Metadata, error) {
	resp, err := h.svc.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId", "properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error getting spreadsheet %s: %w", spreadsheetID, err)
	}

	md := &Metadata{SpreadsheetID: resp.SpreadsheetId}
	if resp.Properties != nil {
		md.Title = resp.Properties.Title
	}
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			md.SheetTitles = append(md.SheetTitles, s.Properties.Title)
		}
	}
	return md, nil
}

func (h *handleImpl) GetColumn(ctx context.Context, spreadsheetID, rangeSpec string) ([]Row, error) {
	resp, err := h.svc.Spreadsheets.Values.Get(spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error reading range %s: %w", rangeSpec, err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make(Row, len(values))
		for i, v := range values {
			if s, ok := v.(string); ok {
				row[i] = s
			} else if v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (h *handleImpl) Append(ctx context.Context, spreadsheetID, rangeSpec string, row Row) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := h.svc.Spreadsheets.Values.Append(spreadsheetID, rangeSpec, &gsheets.ValueRange{
		Values: [][]interface{}{values},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error appending to range %s: %w", rangeSpec, err)
	}
	return nil
}

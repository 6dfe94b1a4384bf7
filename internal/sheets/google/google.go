// Package google writes the overview report to a Google spreadsheet.
// Authentication uses the OAuth client and token produced by the
// oauth-init helper, or a service account when one is configured.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"budgetboard/internal/core"
	"budgetboard/internal/sheets"
)

// Config carries everything needed to reach one spreadsheet.
type Config struct {
	SpreadsheetID string
	SheetName     string

	OAuthClientFile string
	OAuthTokenFile  string
	OAuthClientJSON string
	OAuthTokenJSON  string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ sheets.ReportWriter = (*Client)(nil)

// New builds a Sheets client. A service account set through
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS wins over the OAuth settings.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Overview"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	if credentials := serviceAccountCredentials(); credentials != nil {
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON(credentials),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	}

	clientJSON, err := readSetting(cfg.OAuthClientJSON, cfg.OAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client credentials: %w", err)
	}
	tokenJSON, err := readSetting(cfg.OAuthTokenJSON, cfg.OAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}
	if clientJSON == nil || tokenJSON == nil {
		return nil, errors.New("missing credentials (set a service account or OAuth client and token)")
	}

	oauthCfg, err := oauthgoogle.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	return gsheet.NewService(ctx,
		goption.WithTokenSource(oauthCfg.TokenSource(ctx, &token)))
}

func serviceAccountCredentials() []byte {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline)
	}
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	return raw
}

func readSetting(inline, file string) ([]byte, error) {
	if strings.TrimSpace(inline) != "" {
		return []byte(inline), nil
	}
	if strings.TrimSpace(file) == "" {
		return nil, nil
	}
	return os.ReadFile(file)
}

// WriteOverview clears the overview sheet and rewrites it, header plus
// one row per project.
func (c *Client) WriteOverview(ctx context.Context, rows []core.OverviewRow) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:H", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := overviewValues(rows)
	writeRange := fmt.Sprintf("%s!A1:H%d", c.sheetName, len(values))
	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Overview written to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"projects", len(rows))

	return writeRange, nil
}

var overviewHeader = []any{
	"Project", "Registered Expenses", "Exact Expenses", "Total Exact",
	"Estimated Expenses", "Total Estimated", "Total Conservative", "Total Worst Case",
}

// overviewValues converts rows to the sheet layout. Amounts go out as
// plain decimals so the spreadsheet can format them.
func overviewValues(rows []core.OverviewRow) [][]any {
	values := make([][]any, 0, len(rows)+1)
	values = append(values, overviewHeader)
	for _, row := range rows {
		values = append(values, []any{
			row.Project,
			row.Records,
			row.ExactCount,
			core.Money{Cents: row.TotalExact}.Float(),
			row.EstimatedCount,
			core.Money{Cents: row.TotalEstimated}.Float(),
			core.Money{Cents: row.TotalConservative}.Float(),
			core.Money{Cents: row.TotalWorstCase}.Float(),
		})
	}
	return values
}

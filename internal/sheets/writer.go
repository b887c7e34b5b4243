package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newWriter(srv, config, logger), nil
}

func newWriter(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{service: srv, config: config, logger: logger}
}

// Write implements service.ReportWriter. Every tab is cleared and rewritten.
func (w *Writer) Write(ctx context.Context, report *service.Report) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", common.ErrInvalidInput)
	}
	tabs := BuildTabs(report)

	w.logger.Info("starting report generation",
		"transactions", len(report.Transactions),
		"tabs", len(tabs))

	titles := make([]string, len(tabs))
	for i, tab := range tabs {
		titles[i] = tab.Title
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  max(w.config.RetryAttempts, 1),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	var spreadsheetID string
	var sheetIDs map[string]int64
	err := common.WithRetry(ctx, func() error {
		var err error
		spreadsheetID, sheetIDs, err = w.prepareSpreadsheet(ctx, titles)
		return classify(err)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	rows := 0
	for _, tab := range tabs {
		err := common.WithRetry(ctx, func() error {
			return classify(w.writeTab(ctx, spreadsheetID, tab))
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", tab.Title, err)
		}
		rows += len(tab.Rows)
	}

	if w.config.EnableFormatting {
		err := common.WithRetry(ctx, func() error {
			return classify(w.applyFormatting(ctx, spreadsheetID, tabs, sheetIDs))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report generation completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", rows)
	return nil
}

// classify marks client errors as permanent and rate limits as such.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		token := &oauth2.Token{RefreshToken: config.RefreshToken, TokenType: "Bearer"}
		tokenSource = oauthConfig(config.ClientID, config.ClientSecret, "").TokenSource(ctx, token)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// prepareSpreadsheet returns the spreadsheet id and the sheet id of every
// title, creating the spreadsheet or missing tabs as needed.
func (w *Writer) prepareSpreadsheet(ctx context.Context, titles []string) (string, map[string]int64, error) {
	if w.config.SpreadsheetID == "" {
		spreadsheet := &sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{
				Title:    w.config.SpreadsheetName,
				TimeZone: w.config.TimeZone,
			},
		}
		for _, title := range titles {
			spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{Title: title},
			})
		}

		created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
		if err != nil {
			return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
		}
		w.logger.Info("created new spreadsheet",
			"id", created.SpreadsheetId,
			"url", created.SpreadsheetUrl)

		// Later writes in this run reuse it.
		w.config.SpreadsheetID = created.SpreadsheetId
		return created.SpreadsheetId, sheetIDsOf(created.Sheets), nil
	}

	existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}
	ids := sheetIDsOf(existing.Sheets)

	var requests []*sheets.Request
	for _, title := range titles {
		if _, ok := ids[title]; !ok {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
			})
		}
	}
	if len(requests) == 0 {
		return w.config.SpreadsheetID, ids, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to add tabs: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}
	return w.config.SpreadsheetID, ids, nil
}

func sheetIDsOf(list []*sheets.Sheet) map[string]int64 {
	ids := make(map[string]int64, len(list))
	for _, s := range list {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return ids
}

// writeTab clears a tab and writes its rows in batches.
func (w *Writer) writeTab(ctx context.Context, spreadsheetID string, tab Tab) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, tab.Title+"!A:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab: %w", err)
	}

	for i := 0; i < len(tab.Rows); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(tab.Rows))
		rangeStr := fmt.Sprintf("%s!A%d", tab.Title, i+1)

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{
			Range:  rangeStr,
			Values: tab.Rows[i:end],
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", end-i)
	}
	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, tabs []Tab, sheetIDs map[string]int64) error {
	var requests []*sheets.Request
	for _, tab := range tabs {
		id, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}
		requests = append(requests, formatTab(id, tab)...)
	}
	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	return err
}

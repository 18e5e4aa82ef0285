// Package export pushes composed report views to a Google Sheets
// spreadsheet via a service account.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"carteira/internal/config"
	"carteira/internal/core"
)

type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter creates a Sheets client from the export section of
// the configuration. Credentials come from an inline JSON blob or a
// service account key file.
func NewSheetsExporter(ctx context.Context, cfg *config.Config) (*SheetsExporter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if cfg.GoogleSheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	var credentialsJSON []byte
	switch {
	case cfg.GoogleCredentialsJSON != "":
		credentialsJSON = []byte(cfg.GoogleCredentialsJSON)
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

// ExportReport appends one summary row per report plus one row per
// category. Amounts are written as decimal reais.
func (e *SheetsExporter) ExportReport(ctx context.Context, view core.ReportView) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	exportedAt := time.Now().Format(time.RFC3339)
	rows := [][]any{
		{
			exportedAt,
			string(view.Window),
			view.Start.Format("2006-01-02"),
			view.End.Format("2006-01-02"),
			view.ExpenseTotal.Reais(),
			view.IncomeTotal.Reais(),
			view.Balance.Reais(),
			view.ExpenseCount,
			view.IncomeCount,
		},
	}
	for _, row := range view.ByCategory {
		rows = append(rows, []any{
			exportedAt,
			string(view.Window),
			row.Name,
			row.Total.Reais(),
			row.PercentOfTotal,
		})
	}

	rng := fmt.Sprintf("%s!A:I", e.sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append report rows: %w", err)
	}

	slog.InfoContext(ctx, "Exported report to Google Sheets",
		"window", view.Window,
		"rows", len(rows),
		"sheet", e.sheetName)
	return nil
}

// Package export writes transactions and hours entries to CSV files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/model"
	"github.com/Veraticus/payday/internal/service"
)

// TransactionHeader is the first row of a transaction export.
var TransactionHeader = []string{"Date", "Description", "Type", "Category", "Amount"}

// HoursHeader is the first row of an hours export.
var HoursHeader = []string{"Date", "Start", "End", "Breaks", "Worked", "Hours", "Salary"}

// WriteTransactions writes transactions as CSV to w in the given order.
func WriteTransactions(w io.Writer, transactions []model.Transaction) error {
	records := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		records = append(records, []string{
			tx.Date.String(),
			tx.Description,
			string(tx.Type),
			tx.Category.String(),
			tx.Amount.StringFixed(2),
		})
	}
	return writeCSV(w, TransactionHeader, records)
}

// WriteHours writes hours entries as CSV to w.
func WriteHours(w io.Writer, entries []model.HoursEntry) error {
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{
			e.Date.String(),
			e.StartTime.Format("15:04:05"),
			e.EndTime.Format("15:04:05"),
			model.NewWorkedTime(e.BreakTime()).String(),
			e.HoursWorked.String(),
			e.HoursWorked.Decimal().StringFixed(2),
			e.TotalSalary.StringFixed(2),
		})
	}
	return writeCSV(w, HoursHeader, records)
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// FileWriter exports a report's transactions to a CSV file.
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path is where the file will be written.
func (f *FileWriter) Path() string {
	return f.path
}

// Write implements service.ReportWriter.
func (f *FileWriter) Write(ctx context.Context, report *service.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil || len(report.Transactions) == 0 {
		return common.ErrNoTransactions
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", f.path, err)
	}
	if err := WriteTransactions(file, report.Transactions); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to export to %s: %w", f.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", f.path, err)
	}
	return nil
}

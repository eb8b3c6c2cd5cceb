package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// MonthlyPDF generates the monthly report: income/expense/balance summary,
// spending by category, and the five largest expenses of the month.
// Returns ErrNoData when the month has no transactions.
func (r *Reporter) MonthlyPDF(ctx context.Context, year, month int) (string, error) {
	txs, err := r.repo.TransactionsByMonth(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("load month transactions: %w", err)
	}
	if len(txs) == 0 {
		return "", ErrNoData
	}

	totals, err := r.repo.MonthTotals(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("load month totals: %w", err)
	}
	spending, err := r.repo.SpendingByCategoryForMonth(ctx, year, month)
	if err != nil {
		return "", fmt.Errorf("load month spending: %w", err)
	}
	top, err := r.repo.TopExpensesForMonth(ctx, year, month, 5)
	if err != nil {
		return "", fmt.Errorf("load top expenses: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Financial Report - %d/%d", month, year), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Financial Summary", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Income: %s", totals.Income), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Expenses: %s", totals.Expenses), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Balance: %s", totals.Net()), "", 1, "", false, 0, "")
	pdf.Ln(10)

	if len(spending) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Spending by Category", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		for _, ca := range spending {
			pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", ca.Name, ca.Amount), "", 1, "", false, 0, "")
		}
		pdf.Ln(10)
	}

	if len(top) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Top Expenses", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		for _, tx := range top {
			pdf.CellFormat(0, 8, fmt.Sprintf("%s - %s (%s)", tx.Description, tx.Amount, tx.Date.ISO()), "", 1, "", false, 0, "")
		}
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("financial_report_%04d_%02d.pdf", year, month))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	slog.InfoContext(ctx, "Monthly report generated", "path", path, "year", year, "month", month)
	return path, nil
}

package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"fincoach/internal/core"
)

// ExportExcel writes the whole ledger into a workbook with Transactions,
// Budget, and Summary sheets.
func (r *Reporter) ExportExcel(ctx context.Context) (string, error) {
	txs, err := r.repo.ListTransactions(ctx)
	if err != nil {
		return "", fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := r.repo.ListBudgets(ctx)
	if err != nil {
		return "", fmt.Errorf("load budgets: %w", err)
	}
	income, err := r.repo.SumByKind(ctx, core.Income)
	if err != nil {
		return "", fmt.Errorf("sum income: %w", err)
	}
	expenses, err := r.repo.SumByKind(ctx, core.Expense)
	if err != nil {
		return "", fmt.Errorf("sum expenses: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Transactions"); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, "Transactions", 1, []any{"ID", "Amount", "Category", "Description", "Date", "Kind"}); err != nil {
		return "", err
	}
	for i, tx := range txs {
		row := []any{tx.ID, tx.Amount.Dollars(), tx.Category, tx.Description, tx.Date.ISO(), string(tx.Kind)}
		if err := writeRow(f, "Transactions", i+2, row); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet("Budget"); err != nil {
		return "", fmt.Errorf("create budget sheet: %w", err)
	}
	if err := writeRow(f, "Budget", 1, []any{"Category", "Monthly Limit", "Current Spent"}); err != nil {
		return "", err
	}
	for i, b := range budgets {
		row := []any{b.Category, b.MonthlyLimit.Dollars(), b.CurrentSpent.Dollars()}
		if err := writeRow(f, "Budget", i+2, row); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return "", fmt.Errorf("create summary sheet: %w", err)
	}
	summary := core.BalanceSummary{Income: income, Expenses: expenses}
	for i, row := range [][]any{
		{"Metric", "Amount"},
		{"Total Income", summary.Income.Dollars()},
		{"Total Expenses", summary.Expenses.Dollars()},
		{"Net Balance", summary.Net().Dollars()},
	} {
		if err := writeRow(f, "Summary", i+1, row); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("financial_data_export_%s.xlsx", time.Now().Format("20060102")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	slog.InfoContext(ctx, "Excel export generated", "path", path, "transactions", len(txs), "budgets", len(budgets))
	return path, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fincoach/internal/core"
)

// TaxSummary writes a plain-text summary of the year's deductible expense
// categories. Returns ErrNoData when none were recorded.
func (r *Reporter) TaxSummary(ctx context.Context, year int) (string, error) {
	sums, err := r.repo.TaxDeductibleByCategory(ctx, year)
	if err != nil {
		return "", fmt.Errorf("load deductible expenses: %w", err)
	}
	if len(sums) == 0 {
		return "", ErrNoData
	}

	var b strings.Builder
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(&b, "Tax Summary for %d\n", year)
	fmt.Fprintln(&b, rule)

	var total core.Money
	for _, ca := range sums {
		fmt.Fprintf(&b, "%s: %s\n", titleCase(ca.Name), ca.Amount)
		total = total.Add(ca.Amount)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total Deductions: %s\n", total)

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("tax_summary_%d.txt", year))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write tax summary: %w", err)
	}

	slog.InfoContext(ctx, "Tax summary generated", "path", path, "year", year, "categories", len(sums))
	return path, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

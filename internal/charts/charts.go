// Package charts renders financial aggregates into PNG files.
package charts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/errgroup"

	"fincoach/internal/core"
	"fincoach/internal/storage"
)

// ErrNoData signals that the underlying aggregation is empty and there is
// nothing to draw. Callers turn it into a user-facing message.
var ErrNoData = errors.New("no data to chart")

// Visualizer reads aggregates from the ledger and writes chart files into a
// fixed directory. Rendering is a blocking call with the file as its only
// side effect; partial failures are not cleaned up or retried.
type Visualizer struct {
	repo *storage.SQLiteRepository
	dir  string
}

func NewVisualizer(repo *storage.SQLiteRepository, dir string) *Visualizer {
	return &Visualizer{repo: repo, dir: dir}
}

// SpendingPie renders spending by category as a pie chart.
func (v *Visualizer) SpendingPie(ctx context.Context) (string, error) {
	sums, err := v.repo.SumByCategory(ctx, core.Expense)
	if err != nil {
		return "", fmt.Errorf("load spending: %w", err)
	}
	if len(sums) == 0 {
		return "", ErrNoData
	}

	values := make([]chart.Value, len(sums))
	for i, ca := range sums {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%s)", ca.Name, ca.Amount),
			Value: ca.Amount.Dollars(),
		}
	}

	pie := chart.PieChart{
		Title:  "Spending by Category",
		Width:  720,
		Height: 512,
		Values: values,
	}

	path := filepath.Join(v.dir, "spending_chart.png")
	if err := v.render(ctx, &pie, path); err != nil {
		return "", err
	}
	return path, nil
}

// IncomeExpenseBar renders total income against total expenses.
func (v *Visualizer) IncomeExpenseBar(ctx context.Context) (string, error) {
	income, err := v.repo.SumByKind(ctx, core.Income)
	if err != nil {
		return "", fmt.Errorf("load income: %w", err)
	}
	expenses, err := v.repo.SumByKind(ctx, core.Expense)
	if err != nil {
		return "", fmt.Errorf("load expenses: %w", err)
	}
	if income.Cents == 0 && expenses.Cents == 0 {
		return "", ErrNoData
	}

	bars := chart.BarChart{
		Title:    "Income vs Expenses",
		Width:    512,
		Height:   512,
		BarWidth: 80,
		Bars: []chart.Value{
			{Label: fmt.Sprintf("income (%s)", income), Value: income.Dollars(), Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen}},
			{Label: fmt.Sprintf("expenses (%s)", expenses), Value: expenses.Dollars(), Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed}},
		},
	}

	path := filepath.Join(v.dir, "income_expense_chart.png")
	if err := v.render(ctx, &bars, path); err != nil {
		return "", err
	}
	return path, nil
}

// BudgetUtilization renders the percentage of each budget already spent.
// It reads budget rows as seeded; current_spent is not maintained by expense
// recording, so this is a static view until that changes.
func (v *Visualizer) BudgetUtilization(ctx context.Context) (string, error) {
	budgets, err := v.repo.ListBudgets(ctx)
	if err != nil {
		return "", fmt.Errorf("load budgets: %w", err)
	}

	var bars []chart.Value
	for _, b := range budgets {
		if b.MonthlyLimit.Cents <= 0 {
			continue
		}
		pct := float64(b.CurrentSpent.Cents) / float64(b.MonthlyLimit.Cents) * 100
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%.0f%%)", b.Category, pct),
			Value: pct,
			Style: chart.Style{FillColor: chart.ColorOrange, StrokeColor: chart.ColorOrange},
		})
	}
	if len(bars) == 0 {
		return "", ErrNoData
	}

	barChart := chart.BarChart{
		Title:    "Budget Utilization (%)",
		Width:    720,
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}

	path := filepath.Join(v.dir, "budget_chart.png")
	if err := v.render(ctx, &barChart, path); err != nil {
		return "", err
	}
	return path, nil
}

// Summary renders every available chart. The charts are independent, so they
// render concurrently inside this one blocking call; a chart with no data is
// skipped rather than failing the rest. Returns the rendered paths.
func (v *Visualizer) Summary(ctx context.Context) ([]string, error) {
	renders := []func(context.Context) (string, error){
		v.SpendingPie,
		v.IncomeExpenseBar,
		v.BudgetUtilization,
	}

	paths := make([]string, len(renders))
	g, gctx := errgroup.WithContext(ctx)
	for i, render := range renders {
		g.Go(func() error {
			path, err := render(gctx)
			if errors.Is(err, ErrNoData) {
				return nil
			}
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rendered []string
	for _, p := range paths {
		if p != "" {
			rendered = append(rendered, p)
		}
	}
	if len(rendered) == 0 {
		return nil, ErrNoData
	}
	return rendered, nil
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (v *Visualizer) render(ctx context.Context, c renderable, path string) error {
	if err := os.MkdirAll(v.dir, 0755); err != nil {
		return fmt.Errorf("create charts directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := c.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	slog.InfoContext(ctx, "Chart rendered", "path", path)
	return nil
}

package charts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fincoach/internal/storage"
)

func newVisualizer(t *testing.T, seed bool) *Visualizer {
	t.Helper()
	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	if seed {
		if err := repo.Seed(context.Background()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewVisualizer(repo, filepath.Join(dir, "reports"))
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("chart file %s is empty", path)
	}
}

func TestSpendingPie(t *testing.T) {
	v := newVisualizer(t, true)
	path, err := v.SpendingPie(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != "spending_chart.png" {
		t.Fatalf("unexpected chart path %s", path)
	}
	assertPNG(t, path)
}

func TestIncomeExpenseBar(t *testing.T) {
	v := newVisualizer(t, true)
	path, err := v.IncomeExpenseBar(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != "income_expense_chart.png" {
		t.Fatalf("unexpected chart path %s", path)
	}
	assertPNG(t, path)
}

func TestBudgetUtilization(t *testing.T) {
	v := newVisualizer(t, true)
	path, err := v.BudgetUtilization(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != "budget_chart.png" {
		t.Fatalf("unexpected chart path %s", path)
	}
	assertPNG(t, path)
}

func TestChartsNoData(t *testing.T) {
	v := newVisualizer(t, false)
	ctx := context.Background()

	if _, err := v.SpendingPie(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for pie, got %v", err)
	}
	if _, err := v.IncomeExpenseBar(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for bar, got %v", err)
	}
	if _, err := v.BudgetUtilization(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for budget, got %v", err)
	}
	if _, err := v.Summary(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for summary, got %v", err)
	}
}

func TestSummaryRendersAll(t *testing.T) {
	v := newVisualizer(t, true)
	paths, err := v.Summary(context.Background())
	if err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 charts from seeded store, got %d: %v", len(paths), paths)
	}
	for _, p := range paths {
		assertPNG(t, p)
	}
}

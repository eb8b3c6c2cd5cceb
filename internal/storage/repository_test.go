package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fincoach/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func countRows(t *testing.T, repo *SQLiteRepository, table string) int {
	t.Helper()
	var n int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSumByKindEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, kind := range []core.Kind{core.Income, core.Expense} {
		sum, err := repo.SumByKind(ctx, kind)
		if err != nil {
			t.Fatalf("sum %s: %v", kind, err)
		}
		if sum.Cents != 0 {
			t.Fatalf("expected 0 for %s on empty store, got %d", kind, sum.Cents)
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	txs := countRows(t, repo, "transactions")
	budgets := countRows(t, repo, "budget")
	if txs != 3 || budgets != 3 {
		t.Fatalf("expected 3 transactions and 3 budgets after seed, got %d and %d", txs, budgets)
	}

	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := countRows(t, repo, "transactions"); got != txs {
		t.Fatalf("second seed changed transaction count: %d -> %d", txs, got)
	}
	if got := countRows(t, repo, "budget"); got != budgets {
		t.Fatalf("second seed changed budget count: %d -> %d", budgets, got)
	}
}

func TestSeededTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	income, err := repo.SumByKind(ctx, core.Income)
	if err != nil {
		t.Fatalf("sum income: %v", err)
	}
	if income.Cents != 300000 {
		t.Fatalf("expected income 300000 cents, got %d", income.Cents)
	}

	expenses, err := repo.SumByKind(ctx, core.Expense)
	if err != nil {
		t.Fatalf("sum expenses: %v", err)
	}
	if expenses.Cents != 135000 {
		t.Fatalf("expected expenses 135000 cents, got %d", expenses.Cents)
	}
}

func TestRecordTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored, err := repo.RecordTransaction(ctx, core.Transaction{
		Amount:      core.FromDollars(50),
		Category:    "groceries",
		Description: "User added expense",
		Kind:        core.Expense,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if stored.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if stored.Date.IsEmpty() {
		t.Fatalf("expected date defaulted to today")
	}
	if stored.Date.ISO() != core.Today().ISO() {
		t.Fatalf("expected today's date, got %s", stored.Date.ISO())
	}

	second, err := repo.RecordTransaction(ctx, core.Transaction{
		Amount:   core.FromDollars(100),
		Category: "income",
		Kind:     core.Income,
	})
	if err != nil {
		t.Fatalf("record second: %v", err)
	}
	if second.ID <= stored.ID {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", stored.ID, second.ID)
	}
}

func TestRecordTransactionRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bads := []core.Transaction{
		{Amount: core.Money{}, Category: "c", Kind: core.Expense},
		{Amount: core.FromDollars(10), Category: "", Kind: core.Expense},
		{Amount: core.FromDollars(10), Category: "c", Kind: core.Kind("transfer")},
	}
	for i, tx := range bads {
		if _, err := repo.RecordTransaction(ctx, tx); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
	if got := countRows(t, repo, "transactions"); got != 0 {
		t.Fatalf("invalid transactions must not be stored, found %d rows", got)
	}
}

func TestSumByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sums, err := repo.SumByCategory(ctx, core.Expense)
	if err != nil {
		t.Fatalf("sum by category: %v", err)
	}
	got := map[string]int64{}
	for _, ca := range sums {
		got[ca.Name] = ca.Amount.Cents
	}
	if got["rent"] != 120000 || got["groceries"] != 15000 {
		t.Fatalf("unexpected expense sums: %v", got)
	}
	if _, ok := got["salary"]; ok {
		t.Fatalf("income categories must not appear in expense sums")
	}
}

func TestRecordExpenseDoesNotTouchBudgets(t *testing.T) {
	// Pins the observed behavior: budget current_spent is a static seeded
	// figure, not an accumulator maintained by expense recording.
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	before, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("list budgets: %v", err)
	}

	if _, err := repo.RecordTransaction(ctx, core.Transaction{
		Amount:   core.FromDollars(50),
		Category: "groceries",
		Kind:     core.Expense,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	after, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("list budgets: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("budget row count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("budget row %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestMonthQueries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	totals, err := repo.MonthTotals(ctx, 2024, 1)
	if err != nil {
		t.Fatalf("month totals: %v", err)
	}
	if totals.Income.Cents != 300000 || totals.Expenses.Cents != 135000 {
		t.Fatalf("unexpected january totals: %+v", totals)
	}

	txs, err := repo.TransactionsByMonth(ctx, 2024, 1)
	if err != nil {
		t.Fatalf("transactions by month: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 january transactions, got %d", len(txs))
	}

	top, err := repo.TopExpensesForMonth(ctx, 2024, 1, 5)
	if err != nil {
		t.Fatalf("top expenses: %v", err)
	}
	if len(top) != 2 || top[0].Category != "rent" {
		t.Fatalf("expected rent as largest january expense, got %+v", top)
	}

	empty, err := repo.MonthTotals(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("empty month totals: %v", err)
	}
	if empty.Income.Cents != 0 || empty.Expenses.Cents != 0 {
		t.Fatalf("expected zero totals for empty month, got %+v", empty)
	}
}

func TestTaxDeductibleByCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	none, err := repo.TaxDeductibleByCategory(ctx, 2024)
	if err != nil {
		t.Fatalf("tax query: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no deductible rows, got %v", none)
	}

	for _, tx := range []core.Transaction{
		{Amount: core.FromDollars(200), Category: "charity", Date: core.NewDate(2024, 3, 1), Kind: core.Expense},
		{Amount: core.FromDollars(80), Category: "medical", Date: core.NewDate(2024, 4, 2), Kind: core.Expense},
		{Amount: core.FromDollars(30), Category: "groceries", Date: core.NewDate(2024, 4, 3), Kind: core.Expense},
		{Amount: core.FromDollars(500), Category: "charity", Date: core.NewDate(2023, 12, 1), Kind: core.Expense},
	} {
		if _, err := repo.RecordTransaction(ctx, tx); err != nil {
			t.Fatalf("record %s: %v", tx.Category, err)
		}
	}

	sums, err := repo.TaxDeductibleByCategory(ctx, 2024)
	if err != nil {
		t.Fatalf("tax query: %v", err)
	}
	got := map[string]int64{}
	for _, ca := range sums {
		got[ca.Name] = ca.Amount.Cents
	}
	if got["charity"] != 20000 || got["medical"] != 8000 {
		t.Fatalf("unexpected deductible sums: %v", got)
	}
	if _, ok := got["groceries"]; ok {
		t.Fatalf("non-deductible category leaked into tax summary")
	}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fincoach/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository owns the ledger: an append-only transactions table and a
// seeded budget table. It is built for single-process, single-connection use;
// every write commits immediately and nothing retries.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// seedTransactions and seedBudgets are the fixed first-run rows that make the
// assistant usable before any command has been issued.
var seedTransactions = []core.Transaction{
	{Amount: core.FromDollars(3000), Category: "salary", Description: "Monthly Salary", Date: core.NewDate(2024, 1, 15), Kind: core.Income},
	{Amount: core.FromDollars(1200), Category: "rent", Description: "Apartment Rent", Date: core.NewDate(2024, 1, 1), Kind: core.Expense},
	{Amount: core.FromDollars(150), Category: "groceries", Description: "Weekly Shopping", Date: core.NewDate(2024, 1, 5), Kind: core.Expense},
}

var seedBudgets = []core.Budget{
	{Category: "groceries", MonthlyLimit: core.FromDollars(400), CurrentSpent: core.FromDollars(150)},
	{Category: "entertainment", MonthlyLimit: core.FromDollars(200), CurrentSpent: core.Money{Cents: 4500}},
	{Category: "transport", MonthlyLimit: core.FromDollars(150), CurrentSpent: core.FromDollars(120)},
}

// Seed inserts the sample transactions and budgets if they are absent.
// Transactions are keyed by full row equality, budgets by category, so
// running Seed against a populated store never duplicates rows.
func (r *SQLiteRepository) Seed(ctx context.Context) error {
	for _, tx := range seedTransactions {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO transactions (amount_cents, category, description, date, kind)
			SELECT ?, ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM transactions
				WHERE amount_cents = ? AND category = ? AND description = ? AND date = ? AND kind = ?
			)`,
			tx.Amount.Cents, tx.Category, tx.Description, tx.Date.ISO(), string(tx.Kind),
			tx.Amount.Cents, tx.Category, tx.Description, tx.Date.ISO(), string(tx.Kind),
		)
		if err != nil {
			return fmt.Errorf("seed transaction: %w", err)
		}
	}

	for _, b := range seedBudgets {
		_, err := r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO budget (category, monthly_limit_cents, current_spent_cents)
			VALUES (?, ?, ?)`,
			b.Category, b.MonthlyLimit.Cents, b.CurrentSpent.Cents,
		)
		if err != nil {
			return fmt.Errorf("seed budget: %w", err)
		}
	}

	slog.InfoContext(ctx, "Ledger seed ensured",
		"transactions", len(seedTransactions),
		"budgets", len(seedBudgets))
	return nil
}

// RecordTransaction appends a transaction and returns the stored row with its
// assigned id. A zero date is filled with today's date. The write is durable
// once this returns.
func (r *SQLiteRepository) RecordTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Date.IsEmpty() {
		tx.Date = core.Today()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (amount_cents, category, description, date, kind)
		VALUES (?, ?, ?, ?, ?)`,
		tx.Amount.Cents, tx.Category, tx.Description, tx.Date.ISO(), string(tx.Kind),
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	tx.ID = id

	slog.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"kind", string(tx.Kind),
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)

	return tx, nil
}

// SumByKind totals all transactions of one kind. Empty result sums to zero.
func (r *SQLiteRepository) SumByKind(ctx context.Context, kind core.Kind) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE kind = ?`,
		string(kind),
	).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum by kind: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// SumByCategory returns per-category totals for one kind in store order.
func (r *SQLiteRepository) SumByCategory(ctx context.Context, kind core.Kind) ([]core.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE kind = ?
		GROUP BY category`,
		string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	var sums []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums = append(sums, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return sums, nil
}

// ListBudgets returns every budget row. Budgets are created only by Seed and
// never mutated by command handling.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, monthly_limit_cents, current_spent_cents FROM budget`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.Category, &b.MonthlyLimit.Cents, &b.CurrentSpent.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// ListTransactions returns the full ledger in insertion order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, category, description, date, kind
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// TransactionsByMonth returns the ledger entries for one calendar month.
func (r *SQLiteRepository) TransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, category, description, date, kind
		FROM transactions
		WHERE strftime('%Y', date) = ? AND strftime('%m', date) = ?
		ORDER BY id`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month),
	)
	if err != nil {
		return nil, fmt.Errorf("transactions by month: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// MonthTotals returns the income/expense totals for one calendar month.
func (r *SQLiteRepository) MonthTotals(ctx context.Context, year, month int) (core.BalanceSummary, error) {
	var s core.BalanceSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount_cents END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount_cents END), 0)
		FROM transactions
		WHERE strftime('%Y', date) = ? AND strftime('%m', date) = ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month),
	).Scan(&s.Income.Cents, &s.Expenses.Cents)
	if err != nil {
		return core.BalanceSummary{}, fmt.Errorf("month totals: %w", err)
	}
	return s, nil
}

// SpendingByCategoryForMonth returns expense totals per category for one month.
func (r *SQLiteRepository) SpendingByCategoryForMonth(ctx context.Context, year, month int) ([]core.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE kind = 'expense'
			AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
		GROUP BY category`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month),
	)
	if err != nil {
		return nil, fmt.Errorf("spending by category for month: %w", err)
	}
	defer rows.Close()

	var sums []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan monthly category sum: %w", err)
		}
		sums = append(sums, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly category sums: %w", err)
	}
	return sums, nil
}

// TopExpensesForMonth returns the n largest expenses of the month.
func (r *SQLiteRepository) TopExpensesForMonth(ctx context.Context, year, month, n int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, category, description, date, kind
		FROM transactions
		WHERE kind = 'expense'
			AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
		ORDER BY amount_cents DESC
		LIMIT ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), n,
	)
	if err != nil {
		return nil, fmt.Errorf("top expenses for month: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// taxDeductibleCategories is the fixed set the tax summary reports on.
var taxDeductibleCategories = []string{"charity", "medical", "education", "business"}

// TaxDeductibleByCategory returns yearly expense totals for the deductible
// category set.
func (r *SQLiteRepository) TaxDeductibleByCategory(ctx context.Context, year int) ([]core.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE kind = 'expense'
			AND strftime('%Y', date) = ?
			AND category IN (?, ?, ?, ?)
		GROUP BY category`,
		fmt.Sprintf("%04d", year),
		taxDeductibleCategories[0], taxDeductibleCategories[1],
		taxDeductibleCategories[2], taxDeductibleCategories[3],
	)
	if err != nil {
		return nil, fmt.Errorf("tax deductible by category: %w", err)
	}
	defer rows.Close()

	var sums []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan tax sum: %w", err)
		}
		sums = append(sums, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tax sums: %w", err)
	}
	return sums, nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		var (
			tx   core.Transaction
			date string
			kind string
		)
		if err := rows.Scan(&tx.ID, &tx.Amount.Cents, &tx.Category, &tx.Description, &date, &kind); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		tx.Date = d
		tx.Kind = core.Kind(kind)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

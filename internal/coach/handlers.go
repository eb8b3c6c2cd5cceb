package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fincoach/internal/charts"
	"fincoach/internal/core"
	applog "fincoach/internal/log"
	"fincoach/internal/nlu"
	"fincoach/internal/reports"
)

const (
	helpText = "I can help track spending, income, balance, or budget. " +
		"Try 'I spent $50 on groceries', 'What's my balance?', 'show me a chart', or 'export a report'."

	adviceText = "Here's a tip: record every expense right away, no matter how small, " +
		"and compare your spending against your budget once a week."

	expensePrompt = "How much did you spend? Please say 'I spent $50 on groceries'"
	incomePrompt  = "How much did you save? Please say 'I saved $100'"
)

func (c *Coach) handleBalance(ctx context.Context, _ string) (string, error) {
	income, err := c.repo.SumByKind(ctx, core.Income)
	if err != nil {
		return "", err
	}
	expenses, err := c.repo.SumByKind(ctx, core.Expense)
	if err != nil {
		return "", err
	}

	s := core.BalanceSummary{Income: income, Expenses: expenses}
	return fmt.Sprintf("Your balance is %s. Income: %s, Expenses: %s", s.Net(), s.Income, s.Expenses), nil
}

func (c *Coach) handleSpending(ctx context.Context, _ string) (string, error) {
	sums, err := c.repo.SumByCategory(ctx, core.Expense)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Your spending: ")
	for _, ca := range sums {
		fmt.Fprintf(&b, "%s: %s. ", ca.Name, ca.Amount)
	}
	return b.String(), nil
}

func (c *Coach) handleBudget(ctx context.Context, _ string) (string, error) {
	budgets, err := c.repo.ListBudgets(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Budget status: ")
	for _, bu := range budgets {
		fmt.Fprintf(&b, "%s: %s of %s. ", bu.Category, bu.CurrentSpent, bu.MonthlyLimit)
	}
	return b.String(), nil
}

func (c *Coach) handleExpense(ctx context.Context, text string) (string, error) {
	amount, err := nlu.ExtractAmount(text)
	if errors.Is(err, nlu.ErrNoAmount) {
		return expensePrompt, nil
	}
	if err != nil {
		return "", err
	}

	tx, err := c.repo.RecordTransaction(ctx, core.Transaction{
		Amount:      amount,
		Category:    nlu.ExtractCategory(text),
		Description: "User added expense",
		Kind:        core.Expense,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Added expense: %s for %s", tx.Amount, tx.Category), nil
}

func (c *Coach) handleIncome(ctx context.Context, text string) (string, error) {
	amount, err := nlu.ExtractAmount(text)
	if errors.Is(err, nlu.ErrNoAmount) {
		return incomePrompt, nil
	}
	if err != nil {
		return "", err
	}

	tx, err := c.repo.RecordTransaction(ctx, core.Transaction{
		Amount:      amount,
		Category:    "income",
		Description: "User added income",
		Kind:        core.Income,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Added income: %s for %s", tx.Amount, tx.Category), nil
}

func (c *Coach) handleAdvice(_ context.Context, _ string) (string, error) {
	return adviceText, nil
}

// handleChart sub-dispatches on the utterance: budget and income requests get
// their dedicated charts, "summary" renders everything, anything else gets
// the spending pie.
func (c *Coach) handleChart(ctx context.Context, text string) (string, error) {
	if strings.Contains(text, "summary") {
		paths, err := c.charts.Summary(ctx)
		if err != nil {
			return c.chartFailure(ctx, err), nil
		}
		return fmt.Sprintf("I've saved your charts to: %s", strings.Join(paths, ", ")), nil
	}

	var (
		path string
		err  error
		name string
	)
	switch {
	case strings.Contains(text, "budget"):
		name = "budget"
		path, err = c.charts.BudgetUtilization(ctx)
	case strings.Contains(text, "income"):
		name = "income vs expenses"
		path, err = c.charts.IncomeExpenseBar(ctx)
	default:
		name = "spending"
		path, err = c.charts.SpendingPie(ctx)
	}
	if err != nil {
		return c.chartFailure(ctx, err), nil
	}
	return fmt.Sprintf("I've saved your %s chart to %s", name, path), nil
}

// handleReport sub-dispatches on the utterance: excel/export produce the full
// workbook, tax produces the deductions summary, anything else the current
// month's PDF.
func (c *Coach) handleReport(ctx context.Context, text string) (string, error) {
	now := time.Now()

	switch {
	case strings.Contains(text, "excel") || strings.Contains(text, "export"):
		path, err := c.docs.ExportExcel(ctx)
		if err != nil {
			return c.reportFailure(ctx, err), nil
		}
		return fmt.Sprintf("I've exported your financial data to %s", path), nil
	case strings.Contains(text, "tax"):
		path, err := c.docs.TaxSummary(ctx, now.Year())
		if err != nil {
			if errors.Is(err, reports.ErrNoData) {
				return "No tax-deductible expenses found", nil
			}
			return c.reportFailure(ctx, err), nil
		}
		return fmt.Sprintf("Tax summary for %d generated! Saved to %s", now.Year(), path), nil
	default:
		path, err := c.docs.MonthlyPDF(ctx, now.Year(), int(now.Month()))
		if err != nil {
			if errors.Is(err, reports.ErrNoData) {
				return "No data for this month", nil
			}
			return c.reportFailure(ctx, err), nil
		}
		return fmt.Sprintf("Monthly report for %d/%d generated! Saved to %s", int(now.Month()), now.Year(), path), nil
	}
}

func (c *Coach) chartFailure(ctx context.Context, err error) string {
	if errors.Is(err, charts.ErrNoData) {
		return "There's no data to chart yet"
	}
	c.logger.ErrorContext(ctx, "Chart generation failed", applog.FieldError, err)
	return "Sorry, I couldn't create that chart right now"
}

func (c *Coach) reportFailure(ctx context.Context, err error) string {
	if errors.Is(err, reports.ErrNoData) {
		return "There's nothing to report yet"
	}
	c.logger.ErrorContext(ctx, "Report generation failed", applog.FieldError, err)
	return "Sorry, I couldn't generate that report right now"
}

// Package coach classifies utterances and dispatches them to handlers.
//
// Classification is keyword membership against the lowercased utterance,
// evaluated top to bottom with first-match-wins semantics. The order is a
// design decision: keyword sets overlap, and earlier rules always pre-empt
// later ones regardless of semantic fit. Do not reorder or replace this with
// a scoring model; observable behavior depends on the positions.
package coach

import (
	"context"
	"strings"

	applog "fincoach/internal/log"
	"fincoach/internal/storage"
)

// ChartRenderer is the visualization collaborator: given an aggregation
// request it writes an image file and returns its path.
type ChartRenderer interface {
	SpendingPie(ctx context.Context) (string, error)
	IncomeExpenseBar(ctx context.Context) (string, error)
	BudgetUtilization(ctx context.Context) (string, error)
	Summary(ctx context.Context) ([]string, error)
}

// DocumentRenderer is the reporting collaborator: given a report request it
// writes a document file and returns its path.
type DocumentRenderer interface {
	MonthlyPDF(ctx context.Context, year, month int) (string, error)
	ExportExcel(ctx context.Context) (string, error)
	TaxSummary(ctx context.Context, year int) (string, error)
}

type handlerFunc func(ctx context.Context, utterance string) (string, error)

type rule struct {
	intent   string
	keywords []string
	handle   handlerFunc
}

// Coach routes utterances. Stateless per call: the same text always produces
// the same routing decision. The store handle is owned by the caller and
// injected here, never held globally.
type Coach struct {
	repo   *storage.SQLiteRepository
	charts ChartRenderer
	docs   DocumentRenderer
	logger *applog.Logger
	rules  []rule
}

func New(repo *storage.SQLiteRepository, charts ChartRenderer, docs DocumentRenderer, logger *applog.Logger) *Coach {
	c := &Coach{
		repo:   repo,
		charts: charts,
		docs:   docs,
		logger: logger.WithComponent(applog.ComponentRouter),
	}
	c.rules = []rule{
		{"chart", []string{"chart", "graph", "visualize", "show me"}, c.handleChart},
		{"report", []string{"report", "export", "excel", "pdf", "tax"}, c.handleReport},
		{"balance", []string{"balance", "how much", "money left", "income"}, c.handleBalance},
		{"spending", []string{"spending", "expenses", "how much have i spent"}, c.handleSpending},
		{"expense", []string{"i spent", "i paid", "spent", "paid"}, c.handleExpense},
		{"income", []string{"i saved", "i earned", "saved", "earned"}, c.handleIncome},
		{"budget", []string{"budget", "limit"}, c.handleBudget},
		{"advice", []string{"advice", "tip"}, c.handleAdvice},
	}
	return c
}

// Route classifies the utterance and runs the matching handler. Only storage
// faults travel the error return; extraction problems and chart/report
// failures resolve to response text, and an unroutable command resolves to
// the help text.
func (c *Coach) Route(ctx context.Context, utterance string) (string, error) {
	text := strings.ToLower(utterance)

	for _, r := range c.rules {
		if !containsAny(text, r.keywords) {
			continue
		}
		c.logger.DebugContext(ctx, "Utterance routed",
			applog.FieldIntent, r.intent,
			applog.FieldUtterance, text)
		return r.handle(ctx, text)
	}

	c.logger.DebugContext(ctx, "Utterance unroutable", applog.FieldUtterance, text)
	return helpText, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

package core

import "testing"

func TestKindValidate(t *testing.T) {
	cases := []struct {
		k  Kind
		ok bool
	}{
		{Income, true},
		{Expense, true},
		{Kind("transfer"), false},
		{Kind(""), false},
	}
	for i, tc := range cases {
		err := tc.k.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:      Money{Cents: 5000},
		Category:    "groceries",
		Description: "User added expense",
		Date:        NewDate(2024, 1, 5),
		Kind:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Amount: Money{Cents: 0}, Category: "c", Kind: Expense},
		{Amount: Money{Cents: -100}, Category: "c", Kind: Expense},
		{Amount: Money{Cents: 100}, Category: "", Kind: Expense},
		{Amount: Money{Cents: 100}, Category: "  ", Kind: Expense},
		{Amount: Money{Cents: 100}, Category: "c", Kind: Kind("refund")},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "groceries", MonthlyLimit: FromDollars(400), CurrentSpent: FromDollars(150)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Zero limit and zero spent are legal budget rows.
	zero := Budget{Category: "misc"}
	if err := zero.Validate(); err != nil {
		t.Fatalf("expected ok for zero budget, got %v", err)
	}
	if err := (Budget{Category: ""}).Validate(); err == nil {
		t.Fatalf("expected error for empty category")
	}
}

func TestDateISO(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if got := d.ISO(); got != "2024-01-05" {
		t.Fatalf("expected 2024-01-05, got %q", got)
	}
	parsed, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("roundtrip mismatch: %v vs %v", parsed, d)
	}
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestBalanceSummaryNet(t *testing.T) {
	s := BalanceSummary{Income: FromDollars(3000), Expenses: FromDollars(1350)}
	if net := s.Net(); net.Cents != 165000 {
		t.Fatalf("expected 165000, got %d", net.Cents)
	}
	empty := BalanceSummary{}
	if net := empty.Net(); net.Cents != 0 {
		t.Fatalf("expected 0 on empty summary, got %d", net.Cents)
	}
}

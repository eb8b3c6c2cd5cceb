// Package nlu turns free-text utterances into amounts and category labels.
//
// This is a fixed cascade of keyword and digit heuristics, not a real NLU
// layer: no confidence scoring, no disambiguation, no learning. The scan
// order and first-match-wins behavior are load-bearing and must not be
// "improved" into a ranking model.
package nlu

import (
	"errors"
	"strings"

	"fincoach/internal/core"
)

// ErrNoAmount is reported when no amount can be found anywhere in the text.
// Callers turn it into a re-prompt, never a failure.
var ErrNoAmount = errors.New("no amount found in text")

// numberWords is the closed vocabulary of spoken amounts. Exact token match
// only; this is an enumerated table, not general number parsing, so
// "twenty five" resolves to 20 and the trailing word is ignored.
var numberWords = map[string]int64{
	"one":      1,
	"two":      2,
	"three":    3,
	"four":     4,
	"five":     5,
	"six":      6,
	"seven":    7,
	"eight":    8,
	"nine":     9,
	"ten":      10,
	"fifteen":  15,
	"twenty":   20,
	"thirty":   30,
	"forty":    40,
	"fifty":    50,
	"sixty":    60,
	"seventy":  70,
	"eighty":   80,
	"ninety":   90,
	"hundred":  100,
	"thousand": 1000,
}

// categoryRules maps expense keywords to category labels. Evaluated in order,
// first matching rule wins.
var categoryRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"grocery", "groceries", "food", "supermarket"}, "groceries"},
	{[]string{"entertainment", "movie"}, "entertainment"},
	{[]string{"transport", "gas"}, "transport"},
	{[]string{"rent"}, "rent"},
}

// ExtractAmount finds the monetary amount in an utterance.
//
// Precedence is fixed: a "$" immediately followed by a digit always wins and
// yields exactly the numeric run after the symbol. Otherwise tokens are
// scanned left to right and the first number-bearing token decides; trailing
// numbers are silently ignored. When nothing matches, ErrNoAmount is
// returned.
func ExtractAmount(text string) (core.Money, error) {
	if cents, ok := dollarMarkerAmount(text); ok {
		return core.Money{Cents: cents}, nil
	}

	for _, tok := range strings.Fields(text) {
		if v, ok := numberWords[tok]; ok {
			return core.Money{Cents: v * 100}, nil
		}
		if !containsDigit(tok) {
			continue
		}
		if isAllDigits(tok) {
			if cents, err := core.ParseDecimalToCents(tok); err == nil {
				return core.Money{Cents: cents}, nil
			}
			// The first number-bearing token decides even when it does
			// not parse (e.g. "00"); scanning stops here.
			return core.Money{}, ErrNoAmount
		}
		run := firstDigitRun(tok)
		if cents, err := core.ParseDecimalToCents(run); err == nil {
			return core.Money{Cents: cents}, nil
		}
		return core.Money{}, ErrNoAmount
	}

	return core.Money{}, ErrNoAmount
}

// ExtractCategory resolves the expense category from the utterance text.
// Runs regardless of which amount path fired; unmatched text is "other".
func ExtractCategory(text string) string {
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.label
			}
		}
	}
	return "other"
}

// dollarMarkerAmount looks for the first "$" immediately followed by a digit
// and parses the numeric run (digits plus decimal separators) after it.
func dollarMarkerAmount(text string) (int64, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '$' {
			continue
		}
		if i+1 >= len(text) || !isDigit(text[i+1]) {
			continue
		}
		j := i + 1
		for j < len(text) && (isDigit(text[j]) || text[j] == '.' || text[j] == ',') {
			j++
		}
		run := strings.TrimRight(text[i+1:j], ".,")
		cents, err := core.ParseDecimalToCents(run)
		if err != nil {
			return 0, false
		}
		return cents, true
	}
	return 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// firstDigitRun extracts the first contiguous digit run from a mixed token.
func firstDigitRun(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

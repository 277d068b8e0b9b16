package code

import (
	"fmt"
	"strings"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

const maxConceptLen = 20

// Prefix returns the fixed code prefix for a category.
func Prefix(c model.Category) string {
	switch c {
	case model.CategoryCurrentAsset:
		return "AC"
	case model.CategoryNonCurrentAsset:
		return "ANC"
	case model.CategoryCurrentLiability:
		return "PC"
	case model.CategoryNonCurrentLiability:
		return "PNC"
	case model.CategoryCapital:
		return "CAP"
	case model.CategoryReserves:
		return "RES"
	case model.CategoryIncome:
		return "ING"
	case model.CategoryExpense:
		return "GAS"
	}
	return "GEN"
}

// Derive builds a deterministic account code like "CAP-SOCIAL-CAPITAL"
// from a category and a free-text concept. Spaces become dashes, the
// concept is truncated to 20 characters and uppercased.
func Derive(c model.Category, concept string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(concept), " ", "-")
	if len(cleaned) > maxConceptLen {
		cleaned = cleaned[:maxConceptLen]
	}
	return Prefix(c) + "-" + strings.ToUpper(cleaned)
}

// Parse splits an account code into its category prefix and concept part.
func Parse(accountCode string) (prefix, concept string, err error) {
	prefix, concept, ok := strings.Cut(accountCode, "-")
	if !ok || prefix == "" || concept == "" {
		return "", "", fmt.Errorf("invalid account code format: %q", accountCode)
	}
	return prefix, concept, nil
}

// CategoryFor returns the category a code prefix maps to.
func CategoryFor(prefix string) (model.Category, bool) {
	for _, c := range model.Categories() {
		if Prefix(c) == prefix {
			return c, true
		}
	}
	return "", false
}

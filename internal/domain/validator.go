// Package domain gates incoming questions with a coarse lexical check.
// It deliberately stays a substring match: unrelated text that happens to
// contain a keyword passes and fails later at generation or execution,
// which is the real backstop.
package domain

import "strings"

var keywords = []string{
	"order", "shipment", "inventory", "supplier",
	"customer", "delivery", "product", "warehouse",
	"logistics", "purchase", "stock", "shipping",
}

// Matches reports whether the question mentions at least one supply chain
// keyword, case-insensitively.
func Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

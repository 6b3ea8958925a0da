// Package safety screens generated SQL against a small denylist before it
// reaches the store. It is not an injection-proof allowlist: it only blocks
// multi-statement separators, comment markers and destructive verbs.
package safety

import (
	"regexp"
	"strings"
)

// Destructive verbs must match as whole tokens so that column names like
// update_date or last_delete_flag are not rejected.
var destructiveVerb = regexp.MustCompile(`(?i)\b(drop|delete|update|insert)\b`)

// IsSafe reports whether the statement is free of denylisted constructs.
func IsSafe(sqlText string) bool {
	if strings.Contains(sqlText, ";") {
		return false
	}
	if strings.Contains(sqlText, "--") {
		return false
	}
	if strings.Contains(sqlText, "/*") || strings.Contains(sqlText, "*/") {
		return false
	}
	return !destructiveVerb.MatchString(sqlText)
}

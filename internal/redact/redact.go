// Package redact scrubs credentials, connection strings, SQL and file paths
// from strings before they are written to logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order. Connection strings go first so the host rule does not
// split a DSN before its credentials are removed.
var rules = []rule{
	{
		// scheme://user:password@ in DSNs
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx|mysql|redis|mongodb)://[^@\s/]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		// key=value DSN style and password fields
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(secret[_-]?key|api[_-]?key|token|secret)\s*['"]?\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|TRUNCATE|CREATE|ALTER|DROP)\b[\s\w,*().$=']+?\b(FROM|INTO|SET|TABLE)\b[\s\w,*().$=']*`,
		),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
}

// String returns input with every sensitive fragment replaced by a placeholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts err.Error(). A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

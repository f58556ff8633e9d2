// Package redact scrubs sensitive values (tokens, credentials, connection
// strings, SQL text) from strings before they are logged. Responses never carry
// raw error text, so this only guards the log stream.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; JWTs go first so the bearer rule never sees them.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._~+/-]+=*`),
		replacement: "${1}" + TokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|sqlite3?)://[^@\s]+@`),
		replacement: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)([=:]\s*)['"]?[^'"&\s]+['"]?`),
		replacement: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(jwt_secret|secret|api[_-]?key)([=:]\s*)['"]?[^'"&\s]+['"]?`),
		replacement: KeyPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(?:SELECT\s.+?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;\n]*`,
		),
		replacement: SQLPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

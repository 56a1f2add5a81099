package risk

import (
	"regexp"

	"github.com/sprite-ai/prsift/internal/model"
)

// signature is one detection rule: a pattern plus the metadata stamped on
// every match. Signatures live in ordered lists, not maps: for
// overlapping matches the earlier rule reports first.
type signature struct {
	re         *regexp.Regexp
	severity   model.Severity
	title      string
	suggestion string

	// unless drops a match when the rest of the matched line contains
	// this substring (case-insensitive). RE2 has no lookahead, so
	// exclusions are expressed here instead of in the pattern.
	unless string
}

// securitySignatures run against the concatenated added lines of each
// patch, case-insensitively.
var securitySignatures = []signature{
	// SQL injection
	{
		re:         regexp.MustCompile(`(?i)execute\s*\(.*\+.*\)`),
		severity:   model.SeverityHigh,
		title:      "Potential SQL injection",
		suggestion: "Use parameterized queries instead of string concatenation",
	},
	{
		re:         regexp.MustCompile(`(?i)\.raw\s*\(.*\+.*\)`),
		severity:   model.SeverityHigh,
		title:      "Potential SQL injection in raw query",
		suggestion: "Use parameterized queries with placeholders",
	},
	{
		re:         regexp.MustCompile(`(?i)format\s*\(.*SELECT.*\)`),
		severity:   model.SeverityHigh,
		title:      "SQL query with string formatting",
		suggestion: "Use ORM or parameterized queries",
	},
	{
		re:         regexp.MustCompile(`(?i)["'][^"']*\bselect\b[^"']*["']\s*\+`),
		severity:   model.SeverityHigh,
		title:      "SQL built by string concatenation",
		suggestion: "Use parameterized queries instead of string concatenation",
	},

	// Hardcoded secrets
	{
		re:         regexp.MustCompile(`(?i)password\s*=\s*["'][^"']+["']`),
		severity:   model.SeverityHigh,
		title:      "Hardcoded password detected",
		suggestion: "Use environment variables for sensitive data",
	},
	{
		re:         regexp.MustCompile(`(?i)api[_-]?key\s*=\s*["'][^"']+["']`),
		severity:   model.SeverityHigh,
		title:      "Hardcoded API key detected",
		suggestion: "Store API keys in environment variables",
	},
	{
		re:         regexp.MustCompile(`(?i)secret\s*=\s*["'][^"']+["']`),
		severity:   model.SeverityHigh,
		title:      "Hardcoded secret detected",
		suggestion: "Use secure secret management",
	},
	{
		re:         regexp.MustCompile(`(?i)token\s*=\s*["'][a-zA-Z0-9]{20,}["']`),
		severity:   model.SeverityHigh,
		title:      "Hardcoded token detected",
		suggestion: "Store tokens securely in environment variables",
	},

	// XSS sinks
	{
		re:         regexp.MustCompile(`(?i)innerHTML\s*=`),
		severity:   model.SeverityMedium,
		title:      "Potential XSS via innerHTML",
		suggestion: "Use textContent or sanitize input before setting innerHTML",
	},
	{
		re:         regexp.MustCompile(`(?i)dangerouslySetInnerHTML`),
		severity:   model.SeverityMedium,
		title:      "Using dangerouslySetInnerHTML",
		suggestion: "Ensure content is properly sanitized",
	},
	{
		re:         regexp.MustCompile(`(?i)eval\s*\(`),
		severity:   model.SeverityHigh,
		title:      "Using eval() - security risk",
		suggestion: "Avoid eval(), use safer alternatives like JSON.parse()",
	},

	// Unsafe deserialization
	{
		re:         regexp.MustCompile(`(?i)pickle\.loads?\s*\(`),
		severity:   model.SeverityHigh,
		title:      "Unsafe deserialization with pickle",
		suggestion: "Use safer serialization formats like JSON",
	},
	{
		re:         regexp.MustCompile(`(?i)yaml\.load\s*\(`),
		severity:   model.SeverityMedium,
		title:      "Unsafe YAML loading",
		suggestion: "Use yaml.safe_load() instead of yaml.load()",
		unless:     "loader",
	},

	// Command injection
	{
		re:         regexp.MustCompile(`(?i)os\.system\s*\(.*\+`),
		severity:   model.SeverityHigh,
		title:      "Potential command injection",
		suggestion: "Use subprocess with argument list instead of shell=True",
	},
	{
		re:         regexp.MustCompile(`(?i)subprocess\..*shell\s*=\s*True`),
		severity:   model.SeverityMedium,
		title:      "Shell=True in subprocess",
		suggestion: "Avoid shell=True, use argument list for safety",
	},

	// Weak crypto
	{
		re:         regexp.MustCompile(`(?i)md5`),
		severity:   model.SeverityMedium,
		title:      "MD5 is cryptographically weak",
		suggestion: "Use SHA-256 or stronger hash algorithms",
	},
	{
		re:         regexp.MustCompile(`(?i)sha1`),
		severity:   model.SeverityMedium,
		title:      "SHA-1 is deprecated",
		suggestion: "Use SHA-256 or stronger hash algorithms",
	},
}

// breakingSignatures run against the entire raw patch with multi-line
// matching, because removal detection needs to see "-" lines.
var breakingSignatures = []signature{
	{
		re:         regexp.MustCompile(`(?m)^-\s*def\s+[a-zA-Z_][a-zA-Z0-9_]*\s*\(`),
		severity:   model.SeverityMedium,
		title:      "Public method removed",
		suggestion: "This may break existing code",
	},
	{
		re:         regexp.MustCompile(`(?m)^-\s*class\s+[a-zA-Z_][a-zA-Z0-9_]*`),
		severity:   model.SeverityHigh,
		title:      "Class removed",
		suggestion: "This will break code depending on this class",
	},
	{
		re:         regexp.MustCompile(`(?m)^-\s*export\s+(function|class|const|let|var)`),
		severity:   model.SeverityMedium,
		title:      "Export removed",
		suggestion: "This may break imports in other files",
	},
}

// performanceSignatures run against the concatenated added lines,
// case-insensitively.
var performanceSignatures = []signature{
	{
		re:         regexp.MustCompile(`(?i)\.all\(\).*for.*in`),
		severity:   model.SeverityMedium,
		title:      "N+1 query pattern detected",
		suggestion: "Consider using select_related() or prefetch_related()",
	},
	{
		re:         regexp.MustCompile(`(?i)for\s+\w+\s+in\s+range\s*\(\s*\d{4,}`),
		severity:   model.SeverityMedium,
		title:      "Large loop iteration",
		suggestion: "Consider pagination or batch processing",
	},
	{
		re:         regexp.MustCompile(`(?i)while\s+True:`),
		severity:   model.SeverityLow,
		title:      "Infinite loop detected",
		suggestion: "Ensure there's a proper exit condition",
	},
	{
		re:         regexp.MustCompile(`(?i)sleep\s*\(\s*[0-9]+\s*\)`),
		severity:   model.SeverityLow,
		title:      "Sleep call in code",
		suggestion: "Consider async/await or event-driven approach",
	},
}

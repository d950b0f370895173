package mailer

import (
	"html"
	"regexp"
)

// placeholderPattern matches {{ var }} placeholders, whitespace tolerant.
var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// RenderTemplate substitutes {{ var }} placeholders from vars. Unknown
// placeholders render as empty strings so a template edit in the backend
// can never break delivery.
func RenderTemplate(tpl string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[key]
	})
}

// Escape neutralizes user input interpolated into notification HTML.
func Escape(s string) string {
	return html.EscapeString(s)
}

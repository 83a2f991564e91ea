package render

import "strings"

// htmlEscaper covers the characters that must not appear verbatim in
// element content.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally encodes whitespace control characters, which
// could otherwise break out of a quoted attribute value.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeHTML escapes text for element content.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	return htmlEscaper.Replace(s)
}

// escapeAttr escapes text for a double-quoted attribute value.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, "&<>\"'\n\r\t") {
		return s
	}
	return attrEscaper.Replace(s)
}

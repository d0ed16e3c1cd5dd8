package render

import "strings"

// The renderer emits text in exactly two positions: element content and
// double-quoted attribute values. Each gets the minimal entity set for
// that position. Attribute values additionally encode whitespace so a
// value cannot smuggle in line breaks that some parsers treat as
// attribute separators. Single quotes need no escape: attributes are
// always double-quoted.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&quot;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes element content.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	return textEscaper.Replace(s)
}

// escapeAttr escapes a double-quoted attribute value.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, "&<\"\n\r\t") {
		return s
	}
	return attrEscaper.Replace(s)
}

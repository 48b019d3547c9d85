package console

import (
	"net/url"
	"strings"
)

// componentUnescaper turns url.QueryEscape output into component encoding:
// spaces become %20 and the sub-delimiters ! ' ( ) * stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes a single URL component. Only the unreserved
// characters A-Z a-z 0-9 - _ . ! ~ * ' ( ) are left as-is, so a "/" inside a
// value becomes %2F instead of acting as a separator.
func EncodeComponent(value string) string {
	return componentUnescaper.Replace(url.QueryEscape(value))
}

// BuildPath joins base and segments with "/", encoding every segment on its own.
//
//	BuildPath("/console", "my table", "a/b") // "/console/my%20table/a%2Fb"
func BuildPath(base string, segments ...string) string {
	var builder strings.Builder

	builder.WriteString(strings.TrimSuffix(base, "/"))

	for _, segment := range segments {
		builder.WriteByte('/')
		builder.WriteString(EncodeComponent(segment))
	}

	return builder.String()
}

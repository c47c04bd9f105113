package magento

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// backendTimeLayout is the timestamp format used across Magento REST payloads
// (UTC, no zone designator).
const backendTimeLayout = "2006-01-02 15:04:05"

// snakeToCamel converts a snake_case attribute code to camelCase, the shape
// the GraphQL schema exposes ("special_price" -> "specialPrice").
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// attributeMap flattens a custom_attributes bag into a camelCase-keyed map of
// strings. Scalar values are coerced; arrays are joined with commas, matching
// how Magento renders multiselect attributes.
func attributeMap(attrs []restAttribute) map[string]string {
	if len(attrs) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[snakeToCamel(a.AttributeCode)] = attributeString(a.Value)
	}
	return out
}

// attributeString coerces a raw custom attribute value to a string.
func attributeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, v := range list {
			parts = append(parts, paramString(v))
		}
		return strings.Join(parts, ",")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return paramString(v)
	}
	return string(raw)
}

// dec converts a backend float amount to a decimal.
func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// parseBackendTime parses a Magento timestamp; zero time on failure. Date
// attributes (special_from_date on some versions) may omit the time part.
func parseBackendTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(backendTimeLayout, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}

// escapePathSegment escapes a value used as a single REST path segment
// (SKUs may contain slashes or spaces).
func escapePathSegment(s string) string {
	return url.PathEscape(s)
}

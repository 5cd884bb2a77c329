package codeforces

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Parameter is one query parameter. Extra parameters are appended after the required ones, in
// the order they were passed.
type Parameter struct {
	Key   string
	Value string
}

// Param builds a Parameter, formatting value the way the API expects: bools as true/false,
// string slices joined with ';', everything else with fmt.
func Param(key string, value any) Parameter {
	return Parameter{Key: key, Value: formatValue(value)}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ";")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// encodeQuery escapes every key and value and keeps the order given.
func encodeQuery(params []Parameter) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

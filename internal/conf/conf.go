// Package conf parses the escaped key=value; configuration grammar and
// resolves raw text against option descriptors into typed values.
package conf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gymnarium/internal/catalog"
)

// ParseString splits a configuration string into key/value pairs. A pair is
// written as key=value and terminated by a semicolon; a backslash makes the
// following character literal. A trailing key without a value separator is
// dropped.
func ParseString(s string) map[string]string {
	pairs := map[string]string{}
	var key, value strings.Builder
	parsingValue := false
	escaped := false
	for _, r := range s {
		switch {
		case !escaped && r == '\\':
			escaped = true
		case !escaped && !parsingValue && r == '=':
			parsingValue = true
		case !escaped && parsingValue && r == ';':
			pairs[key.String()] = value.String()
			key.Reset()
			value.Reset()
			parsingValue = false
		default:
			escaped = false
			if parsingValue {
				value.WriteRune(r)
			} else {
				key.WriteRune(r)
			}
		}
	}
	if parsingValue {
		pairs[key.String()] = value.String()
	}
	return pairs
}

// FormatString renders pairs in the grammar ParseString accepts. Keys are
// sorted so the output is stable.
func FormatString(pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(escape(k, "=;"))
		b.WriteByte('=')
		b.WriteString(escape(pairs[k], ";"))
		b.WriteByte(';')
	}
	return b.String()
}

func escape(s, special string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseError reports an option value that could not be parsed.
type ParseError struct {
	Option string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("option %s: cannot parse %q: %v", e.Option, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseValue parses raw text according to an option kind. String values are
// kept verbatim; all other kinds tolerate surrounding whitespace.
func ParseValue(kind catalog.OptionKind, raw string) (any, error) {
	switch kind {
	case catalog.KindFloat:
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	case catalog.KindBool:
		return strconv.ParseBool(strings.TrimSpace(raw))
	case catalog.KindUint:
		return strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	case catalog.KindString:
		return raw, nil
	case catalog.KindUintPair:
		return parseUintPair(raw)
	}
	return nil, fmt.Errorf("unsupported option kind: %v", kind)
}

func parseUintPair(raw string) ([2]uint64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return [2]uint64{}, fmt.Errorf("expected two comma-separated values, got %d", len(parts))
	}
	var pair [2]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return [2]uint64{}, err
		}
		pair[i] = n
	}
	return pair, nil
}

// Values holds the typed results of resolving option descriptors.
type Values map[string]any

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Uint(name string) uint64 {
	n, _ := v[name].(uint64)
	return n
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) UintPair(name string) (uint64, uint64) {
	p, _ := v[name].([2]uint64)
	return p[0], p[1]
}

// Resolve parses one value per descriptor, preferring config entries over
// declared defaults. Keys in config that no descriptor names are ignored.
// The first descriptor that fails to parse aborts the resolution.
func Resolve(descriptors []catalog.OptionDescriptor, config map[string]string) (Values, error) {
	values := make(Values, len(descriptors))
	for _, d := range descriptors {
		raw, ok := config[d.Name]
		if !ok {
			raw = d.Default
		}
		parsed, err := ParseValue(d.Kind, raw)
		if err != nil {
			return nil, &ParseError{Option: d.Name, Raw: raw, Err: err}
		}
		values[d.Name] = parsed
	}
	return values, nil
}

// Package ron implements a small Rusty Object Notation codec covering the
// value shapes state files use: records, string-keyed maps, lists,
// strings, numbers, booleans and optional values.
//
// Record field names follow the json struct tag when one is present, so a
// state struct can serve both codecs with one set of tags.
package ron

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal renders v as RON text, e.g. `(position: -0.5, velocity: 0.0)`.
func Marshal(v any) ([]byte, error) {
	var b strings.Builder
	if err := encodeValue(&b, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func encodeValue(b *strings.Builder, v reflect.Value) error {
	if !v.IsValid() {
		return fmt.Errorf("cannot encode untyped nil")
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			b.WriteString("None")
			return nil
		}
		return encodeValue(b, v.Elem())
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return encodeFloat(b, v.Float())
	case reflect.String:
		encodeString(b, v.String())
	case reflect.Slice, reflect.Array:
		return encodeList(b, v)
	case reflect.Map:
		return encodeMap(b, v)
	case reflect.Struct:
		return encodeRecord(b, v)
	default:
		return fmt.Errorf("cannot encode %s", v.Kind())
	}
	return nil
}

func encodeFloat(b *strings.Builder, f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("cannot encode non-finite float %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	b.WriteString(s)
	if !strings.ContainsAny(s, ".eE") {
		b.WriteString(".0")
	}
	return nil
}

func encodeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func encodeList(b *strings.Builder, v reflect.Value) error {
	b.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := encodeValue(b, v.Index(i)); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func encodeMap(b *strings.Builder, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("cannot encode map with %s keys", v.Type().Key())
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		encodeString(b, k)
		b.WriteString(": ")
		if err := encodeValue(b, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func encodeRecord(b *strings.Builder, v reflect.Value) error {
	b.WriteByte('(')
	first := true
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(name)
		b.WriteString(": ")
		if err := encodeValue(b, v.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	b.WriteByte(')')
	return nil
}

// fieldName returns the serialized name of a struct field, honoring json
// tags, and whether the field takes part in encoding at all.
func fieldName(f reflect.StructField) (string, bool) {
	if f.PkgPath != "" {
		return "", false
	}
	name := f.Name
	if tag, ok := f.Tag.Lookup("json"); ok {
		base, _, _ := strings.Cut(tag, ",")
		if base == "-" {
			return "", false
		}
		if base != "" {
			name = base
		}
	}
	return name, true
}

package ron

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshal parses RON text into the value pointed to by target. Unknown
// record fields are skipped; trailing commas and // comments are accepted.
func Unmarshal(data []byte, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}
	s := &scanner{src: string(data)}
	if err := s.parseValue(rv.Elem()); err != nil {
		return err
	}
	s.skipSpace()
	if s.pos != len(s.src) {
		return fmt.Errorf("trailing data at offset %d", s.pos)
	}
	return nil
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *scanner) expect(c byte) error {
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != c {
		return fmt.Errorf("expected %q at offset %d", string(c), s.pos)
	}
	s.pos++
	return nil
}

func (s *scanner) parseValue(v reflect.Value) error {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return fmt.Errorf("unexpected end of input")
	}

	if v.Kind() == reflect.Pointer {
		if s.consumeKeyword("None") {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return s.parseValue(v.Elem())
	}

	switch s.src[s.pos] {
	case '(':
		return s.parseRecord(v)
	case '[':
		return s.parseList(v)
	case '{':
		return s.parseMap(v)
	case '"':
		return s.parseString(v)
	default:
		return s.parseScalar(v)
	}
}

func (s *scanner) consumeKeyword(word string) bool {
	if !strings.HasPrefix(s.src[s.pos:], word) {
		return false
	}
	end := s.pos + len(word)
	if end < len(s.src) && isIdentChar(s.src[end]) {
		return false
	}
	s.pos = end
	return true
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (s *scanner) scanIdent() (string, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", fmt.Errorf("expected identifier at offset %d", start)
	}
	return s.src[start:s.pos], nil
}

func (s *scanner) parseRecord(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("cannot decode record into %s", v.Type())
	}
	s.pos++ // consume (
	fields := fieldIndex(v.Type())
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return fmt.Errorf("unterminated record")
		}
		if s.src[s.pos] == ')' {
			s.pos++
			return nil
		}
		name, err := s.scanIdent()
		if err != nil {
			return err
		}
		if err := s.expect(':'); err != nil {
			return err
		}
		if idx, ok := fields[name]; ok {
			if err := s.parseValue(v.Field(idx)); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
		} else if err := s.skipValue(); err != nil {
			return err
		}
		done, err := s.endElement(')')
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// endElement consumes a separating comma or the closing delimiter and
// reports whether the container ended.
func (s *scanner) endElement(close byte) (bool, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return false, fmt.Errorf("unterminated value, expected %q", string(close))
	}
	switch s.src[s.pos] {
	case ',':
		s.pos++
		return false, nil
	case close:
		s.pos++
		return true, nil
	}
	return false, fmt.Errorf("expected %q or %q at offset %d", ",", string(close), s.pos)
}

func (s *scanner) parseList(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Slice:
		return s.parseSlice(v)
	case reflect.Array:
		return s.parseArray(v)
	}
	return fmt.Errorf("cannot decode list into %s", v.Type())
}

func (s *scanner) parseSlice(v reflect.Value) error {
	s.pos++ // consume [
	out := reflect.MakeSlice(v.Type(), 0, 4)
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return fmt.Errorf("unterminated list")
		}
		if s.src[s.pos] == ']' {
			s.pos++
			break
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := s.parseValue(elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
		done, err := s.endElement(']')
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	// An empty list decodes as a nil slice so encode/decode round trips.
	if out.Len() == 0 {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	v.Set(out)
	return nil
}

func (s *scanner) parseArray(v reflect.Value) error {
	s.pos++ // consume [
	count := 0
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return fmt.Errorf("unterminated list")
		}
		if s.src[s.pos] == ']' {
			s.pos++
			break
		}
		if count >= v.Len() {
			return fmt.Errorf("list exceeds array of length %d", v.Len())
		}
		if err := s.parseValue(v.Index(count)); err != nil {
			return err
		}
		count++
		done, err := s.endElement(']')
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	if count != v.Len() {
		return fmt.Errorf("list has %d elements, array wants %d", count, v.Len())
	}
	return nil
}

func (s *scanner) parseMap(v reflect.Value) error {
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("cannot decode map into %s", v.Type())
	}
	s.pos++ // consume {
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return fmt.Errorf("unterminated map")
		}
		if s.src[s.pos] == '}' {
			s.pos++
			return nil
		}
		key, err := s.scanString()
		if err != nil {
			return err
		}
		if err := s.expect(':'); err != nil {
			return err
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := s.parseValue(elem); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if v.IsNil() {
			v.Set(reflect.MakeMap(v.Type()))
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), elem)
		done, err := s.endElement('}')
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *scanner) parseString(v reflect.Value) error {
	if v.Kind() != reflect.String {
		return fmt.Errorf("cannot decode string into %s", v.Type())
	}
	str, err := s.scanString()
	if err != nil {
		return err
	}
	v.SetString(str)
	return nil
}

func (s *scanner) scanString() (string, error) {
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '"' {
		return "", fmt.Errorf("expected string at offset %d", s.pos)
	}
	s.pos++
	var b strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return b.String(), nil
		case '\\':
			s.pos++
			r, err := s.scanEscape()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (s *scanner) scanEscape() (rune, error) {
	if s.pos >= len(s.src) {
		return 0, fmt.Errorf("unterminated escape")
	}
	c := s.src[s.pos]
	s.pos++
	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		if s.pos >= len(s.src) || s.src[s.pos] != '{' {
			return 0, fmt.Errorf("malformed unicode escape")
		}
		s.pos++
		start := s.pos
		for s.pos < len(s.src) && s.src[s.pos] != '}' {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return 0, fmt.Errorf("unterminated unicode escape")
		}
		code, err := strconv.ParseUint(s.src[start:s.pos], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("malformed unicode escape: %v", err)
		}
		s.pos++ // consume }
		return rune(code), nil
	}
	return 0, fmt.Errorf("unknown escape \\%s", string(c))
}

func (s *scanner) parseScalar(v reflect.Value) error {
	token, err := s.scanToken()
	if err != nil {
		return err
	}
	switch v.Kind() {
	case reflect.Bool:
		switch token {
		case "true":
			v.SetBool(true)
		case "false":
			v.SetBool(false)
		default:
			return fmt.Errorf("cannot parse %q as bool", token)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(token, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", token, v.Type())
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(token, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", token, v.Type())
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(token, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", token, v.Type())
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("cannot decode %q into %s", token, v.Type())
	}
	return nil
}

func (s *scanner) scanToken() (string, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return "", fmt.Errorf("unexpected end of input")
	}
	start := s.pos
	for s.pos < len(s.src) && isTokenChar(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", fmt.Errorf("unexpected character %q at offset %d", string(s.src[s.pos]), s.pos)
	}
	return s.src[start:s.pos], nil
}

func isTokenChar(c byte) bool {
	return isIdentChar(c) || c == '+' || c == '-' || c == '.'
}

func (s *scanner) skipValue() error {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return fmt.Errorf("unexpected end of input")
	}
	switch s.src[s.pos] {
	case '(':
		return s.skipDelimited('(', ')')
	case '[':
		return s.skipDelimited('[', ']')
	case '{':
		return s.skipDelimited('{', '}')
	case '"':
		_, err := s.scanString()
		return err
	default:
		_, err := s.scanToken()
		return err
	}
}

func (s *scanner) skipDelimited(open, close byte) error {
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '"':
			if _, err := s.scanString(); err != nil {
				return err
			}
			continue
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				s.pos++
				return nil
			}
		}
		s.pos++
	}
	return fmt.Errorf("unterminated value, expected %q", string(close))
}

func fieldIndex(t reflect.Type) map[string]int {
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name, ok := fieldName(t.Field(i)); ok {
			idx[name] = i
		}
	}
	return idx
}

// Package grammar parses the textual input grammar (SPEC_FULL.md §3, §8):
// an optional preamble of "key: value" annotation lines, followed by one
// block per type, `TypeName = Cons_1 | Cons_2 | ...`. Each constructor is a
// name, an optional parenthesised argument list (a bare type name for a
// Type reference, `[T]` for a List reference), and a mandatory `@weight`
// annotation with an optional `/frequency` suffix.
//
// Example:
//
//	withIO: true
//	M = Leaf @1 | Unary(M) @1 | Binary(M, M) @1
//	T = Leaf @1/2.0 | Node(T, T) @1
package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boltzc/internal/model"
)

// Parse reads a complete input grammar from r and returns the System it
// describes. Parse does not validate the system's well-formedness
// (unknown type references, degenerate weights, etc.); call
// (*model.System).Validate once parsing succeeds.
func Parse(r io.Reader) (*model.System, error) {
	s := model.NewSystem()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	inPreamble := true
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if inPreamble {
			if key, value, ok := splitPreambleLine(line); ok {
				s.Annotations[key] = value
				continue
			}
			inPreamble = false
		}

		if err := parseTypeLine(s, line); err != nil {
			return nil, fmt.Errorf("grammar: line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	if len(s.Order) == 0 {
		return nil, fmt.Errorf("grammar: %w", ErrEmptyGrammar)
	}
	return s, nil
}

// splitPreambleLine recognises "key: value" lines. A line containing "="
// before any ":" is never a preamble line, so a type block named with a
// colon-bearing constructor never gets misread (type names never contain
// "=" before their first ":", since "=" only appears after the name).
func splitPreambleLine(line string) (key, value string, ok bool) {
	eq := strings.Index(line, "=")
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", false
	}
	if eq >= 0 && eq < colon {
		return "", "", false
	}
	key = strings.TrimSpace(line[:colon])
	value = strings.TrimSpace(line[colon+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func parseTypeLine(s *model.System, line string) error {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return fmt.Errorf("%w: expected \"TypeName = ...\", got %q", ErrSyntax, line)
	}
	name := strings.TrimSpace(line[:eq])
	if !validIdentifier(name) {
		return fmt.Errorf("%w: invalid type name %q", ErrSyntax, name)
	}

	rawCons := strings.Split(line[eq+1:], "|")
	cons := make([]model.Constructor, 0, len(rawCons))
	for _, raw := range rawCons {
		c, err := parseConstructor(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("type %q: %w", name, err)
		}
		cons = append(cons, c)
	}
	if len(cons) == 0 {
		return fmt.Errorf("%w: type %q has no constructors", ErrSyntax, name)
	}
	s.AddType(name, cons)
	return nil
}

func parseConstructor(raw string) (model.Constructor, error) {
	if raw == "" {
		return model.Constructor{}, fmt.Errorf("%w: empty constructor", ErrSyntax)
	}

	at := strings.Index(raw, "@")
	if at < 0 {
		return model.Constructor{}, fmt.Errorf("%w: constructor %q has no @weight annotation", ErrSyntax, raw)
	}
	head := strings.TrimSpace(raw[:at])
	tail := strings.TrimSpace(raw[at+1:])

	weight, frequency, err := parseAnnotation(tail)
	if err != nil {
		return model.Constructor{}, err
	}

	name, args, err := parseHead(head)
	if err != nil {
		return model.Constructor{}, err
	}

	return model.Constructor{Name: name, Args: args, Weight: weight, Frequency: frequency}, nil
}

func parseAnnotation(tail string) (weight int, frequency *float64, err error) {
	parts := strings.SplitN(tail, "/", 2)
	weight, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: malformed weight %q: %v", ErrSyntax, parts[0], err)
	}
	if len(parts) == 2 {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: malformed frequency %q: %v", ErrSyntax, parts[1], err)
		}
		frequency = &f
	}
	return weight, frequency, nil
}

func parseHead(head string) (name string, args []model.Argument, err error) {
	open := strings.Index(head, "(")
	if open < 0 {
		name = strings.TrimSpace(head)
		if !validIdentifier(name) {
			return "", nil, fmt.Errorf("%w: invalid constructor name %q", ErrSyntax, name)
		}
		return name, nil, nil
	}
	if !strings.HasSuffix(head, ")") {
		return "", nil, fmt.Errorf("%w: unterminated argument list in %q", ErrSyntax, head)
	}
	name = strings.TrimSpace(head[:open])
	if !validIdentifier(name) {
		return "", nil, fmt.Errorf("%w: invalid constructor name %q", ErrSyntax, name)
	}
	inner := strings.TrimSpace(head[open+1 : len(head)-1])
	if inner == "" {
		return name, nil, nil
	}
	for _, raw := range strings.Split(inner, ",") {
		a, err := parseArgument(strings.TrimSpace(raw))
		if err != nil {
			return "", nil, fmt.Errorf("constructor %q: %w", name, err)
		}
		args = append(args, a)
	}
	return name, args, nil
}

func parseArgument(raw string) (model.Argument, error) {
	if strings.HasPrefix(raw, "[") {
		if !strings.HasSuffix(raw, "]") {
			return model.Argument{}, fmt.Errorf("%w: unterminated list reference %q", ErrSyntax, raw)
		}
		t := strings.TrimSpace(raw[1 : len(raw)-1])
		if !validIdentifier(t) {
			return model.Argument{}, fmt.Errorf("%w: invalid list element type %q", ErrSyntax, t)
		}
		return model.Argument{Kind: model.ArgList, Type: t}, nil
	}
	if !validIdentifier(raw) {
		return model.Argument{}, fmt.Errorf("%w: invalid argument type %q", ErrSyntax, raw)
	}
	return model.Argument{Kind: model.ArgType, Type: raw}, nil
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

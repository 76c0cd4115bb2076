// Package propertypath parses property ids like
// "detailList[1].moreDetails[0].property" or "stringToInteger(id)"
// into a sequence of access steps and evaluates them
// against Go values using package reflect.
//
// Path grammar:
//
//	path    := segment ("." segment)*
//	segment := ident [ "[" digits "]" | "(" key ")" ]
//	ident   := [A-Za-z_][A-Za-z0-9_]*
//
// A segment with an index suffix accesses an element of a slice or array,
// a segment with a key suffix accesses an entry of a map.
package propertypath

import (
	"strconv"
	"strings"
)

// StepKind is the kind of a single access Step.
type StepKind int

const (
	// FieldStep accesses a struct field or getter method by property name.
	FieldStep StepKind = iota
	// IndexStep accesses an element of a slice or array.
	IndexStep
	// KeyStep accesses an entry of a map.
	KeyStep
)

func (k StepKind) String() string {
	switch k {
	case FieldStep:
		return "FieldStep"
	case IndexStep:
		return "IndexStep"
	case KeyStep:
		return "KeyStep"
	}
	return "StepKind(" + strconv.Itoa(int(k)) + ")"
}

// Step is one access operation of a Path.
type Step struct {
	Kind  StepKind
	Name  string // FieldStep only
	Index int    // IndexStep only
	Key   string // KeyStep only
}

func (s Step) String() string {
	switch s.Kind {
	case IndexStep:
		return "[" + strconv.Itoa(s.Index) + "]"
	case KeyStep:
		return "(" + s.Key + ")"
	}
	return s.Name
}

// Path is a parsed property id.
// The zero value is an empty Path that can't be evaluated.
type Path []Step

// Parse parses a property id into a Path.
func Parse(id string) (Path, error) {
	if id == "" {
		return nil, ErrEmptyPath
	}
	var (
		path Path
		pos  = 0
	)
	for {
		// Identifier
		start := pos
		for pos < len(id) && isIdentChar(id[pos], pos == start) {
			pos++
		}
		if pos == start {
			if pos == len(id) {
				return nil, newSyntaxError(id, pos, "expected identifier at end of path")
			}
			return nil, newSyntaxError(id, pos, "unexpected character "+strconv.QuoteRune(rune(id[pos])))
		}
		path = append(path, Step{Kind: FieldStep, Name: id[start:pos]})
		if pos == len(id) {
			return path, nil
		}

		// Optional index or key suffix
		switch id[pos] {
		case '[':
			end := strings.IndexByte(id[pos:], ']')
			if end == -1 {
				return nil, newSyntaxError(id, pos, "missing closing ']'")
			}
			digits := id[pos+1 : pos+end]
			index, err := strconv.Atoi(digits)
			if err != nil || strings.TrimLeft(digits, "0123456789") != "" {
				return nil, newSyntaxError(id, pos+1, "invalid index "+strconv.Quote(digits))
			}
			path = append(path, Step{Kind: IndexStep, Index: index})
			pos += end + 1
		case '(':
			end := strings.IndexByte(id[pos:], ')')
			if end == -1 {
				return nil, newSyntaxError(id, pos, "missing closing ')'")
			}
			if end == 1 {
				return nil, newSyntaxError(id, pos+1, "empty key")
			}
			path = append(path, Step{Kind: KeyStep, Key: id[pos+1 : pos+end]})
			pos += end + 1
		}
		if pos == len(id) {
			return path, nil
		}

		if id[pos] != '.' {
			return nil, newSyntaxError(id, pos, "expected '.' but found "+strconv.QuoteRune(rune(id[pos])))
		}
		pos++
	}
}

// MustParse parses a property id into a Path and panics on error.
func MustParse(id string) Path {
	path, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return path
}

func isIdentChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// String returns the canonical property id of the path.
func (p Path) String() string {
	var b strings.Builder
	for i, step := range p {
		if i > 0 && step.Kind == FieldStep {
			b.WriteByte('.')
		}
		b.WriteString(step.String())
	}
	return b.String()
}

// IsSimple returns true if the path consists
// of exactly one FieldStep.
func (p Path) IsSimple() bool {
	return len(p) == 1 && p[0].Kind == FieldStep
}

package listcontainer

import (
	"cmp"
	"reflect"
	"strings"
)

// CompareFunc compares two non nil values of the same type
// and returns a negative number if a < b,
// a positive number if a > b, and zero if a == b.
type CompareFunc func(a, b reflect.Value) int

// Comparators selects the CompareFunc for a property type
// by a hierarchical matching strategy:
//  1. Exact type match (Types map)
//  2. Interface type match (InterfaceTypes map)
//  3. A method Compare(T) int of the type itself
//  4. Kind match (Kinds map), interface types like any
//     only match a comparator for reflect.Interface
//     like the dynamic Comparators.Compare
//  5. Pointer dereferencing: steps 1-4 for the pointed to type
//  6. Default comparator
//
// All With* methods return a modified copy,
// so a Comparators value can be shared.
type Comparators struct {
	Types          map[reflect.Type]CompareFunc
	InterfaceTypes map[reflect.Type]CompareFunc
	Kinds          map[reflect.Kind]CompareFunc
	Default        CompareFunc
}

// NewComparators returns an empty Comparators
// that only supports types with a Compare method.
func NewComparators() *Comparators {
	return new(Comparators)
}

// For returns the CompareFunc for values of type t
// or nil if no comparator matches.
func (c *Comparators) For(t reflect.Type) CompareFunc {
	if t == nil {
		return nil
	}
	if compare := c.match(t); compare != nil {
		return compare
	}
	if t.Kind() == reflect.Pointer {
		if compare := c.match(t.Elem()); compare != nil {
			return func(a, b reflect.Value) int {
				return compareNilFirst(a.Elem(), b.Elem(), compare)
			}
		}
	}
	if c != nil && c.Default != nil {
		return c.Default
	}
	return nil
}

func (c *Comparators) match(t reflect.Type) CompareFunc {
	if c != nil {
		if compare, ok := c.Types[t]; ok {
			return compare
		}
		for interfaceType, compare := range c.InterfaceTypes {
			if t.Implements(interfaceType) {
				return compare
			}
		}
	}
	if compare := compareMethod(t); compare != nil {
		return compare
	}
	if c != nil {
		if compare, ok := c.Kinds[t.Kind()]; ok {
			return compare
		}
	}
	return nil
}

// Compare compares a and b of any type
// using the comparator for the type of a.
// nil values are less than non nil values.
// Values of different types are ordered by their type names.
func (c *Comparators) Compare(a, b reflect.Value) int {
	return compareNilFirst(a, b, c.compareDynamic)
}

func (c *Comparators) compareDynamic(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if n, ok := compareNil(a, b); ok {
		return n
	}
	if a.Type() != b.Type() {
		return strings.Compare(a.Type().String(), b.Type().String())
	}
	compare := c.For(a.Type())
	if compare == nil {
		return 0
	}
	return compare(a, b)
}

// WithTypeComparator returns a copy of c
// with a comparator for the exact type typ.
func (c *Comparators) WithTypeComparator(typ reflect.Type, compare CompareFunc) *Comparators {
	mod := c.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CompareFunc)
	}
	mod.Types[typ] = compare
	return mod
}

// WithInterfaceComparator returns a copy of c
// with a comparator for all types implementing
// the interface type typ.
func (c *Comparators) WithInterfaceComparator(typ reflect.Type, compare CompareFunc) *Comparators {
	if typ.Kind() != reflect.Interface {
		panic("expected interface type instead of " + typ.String())
	}
	mod := c.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]CompareFunc)
	}
	mod.InterfaceTypes[typ] = compare
	return mod
}

// WithKindComparator returns a copy of c
// with a comparator for all types of kind.
func (c *Comparators) WithKindComparator(kind reflect.Kind, compare CompareFunc) *Comparators {
	mod := c.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CompareFunc)
	}
	mod.Kinds[kind] = compare
	return mod
}

// WithDefaultComparator returns a copy of c
// with a comparator for all types without a match.
func (c *Comparators) WithDefaultComparator(compare CompareFunc) *Comparators {
	mod := c.cloneOrNew()
	mod.Default = compare
	return mod
}

func (c *Comparators) cloneOrNew() *Comparators {
	if c == nil {
		return new(Comparators)
	}
	mod := &Comparators{Default: c.Default}
	if len(c.Types) > 0 {
		mod.Types = make(map[reflect.Type]CompareFunc, len(c.Types))
		for key, val := range c.Types {
			mod.Types[key] = val
		}
	}
	if len(c.InterfaceTypes) > 0 {
		mod.InterfaceTypes = make(map[reflect.Type]CompareFunc, len(c.InterfaceTypes))
		for key, val := range c.InterfaceTypes {
			mod.InterfaceTypes[key] = val
		}
	}
	if len(c.Kinds) > 0 {
		mod.Kinds = make(map[reflect.Kind]CompareFunc, len(c.Kinds))
		for key, val := range c.Kinds {
			mod.Kinds[key] = val
		}
	}
	return mod
}

// compareMethod returns a CompareFunc calling
// a method Compare(T) int of the type T like time.Time has.
func compareMethod(t reflect.Type) CompareFunc {
	method, ok := t.MethodByName("Compare")
	if !ok || t.Kind() == reflect.Interface {
		return nil
	}
	mt := method.Type // includes the receiver
	if mt.NumIn() != 2 || mt.In(1) != t || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Int {
		return nil
	}
	index := method.Index
	return func(a, b reflect.Value) int {
		return int(a.Method(index).Call([]reflect.Value{b})[0].Int())
	}
}

// CompareBools orders false before true.
func CompareBools(a, b reflect.Value) int {
	switch {
	case a.Bool() == b.Bool():
		return 0
	case !a.Bool():
		return -1
	}
	return 1
}

func CompareInts(a, b reflect.Value) int {
	return cmp.Compare(a.Int(), b.Int())
}

func CompareUints(a, b reflect.Value) int {
	return cmp.Compare(a.Uint(), b.Uint())
}

// CompareFloats orders NaN before all other values.
func CompareFloats(a, b reflect.Value) int {
	return cmp.Compare(a.Float(), b.Float())
}

func CompareStrings(a, b reflect.Value) int {
	return strings.Compare(a.String(), b.String())
}

// CompareStringsIgnoreCase compares strings
// after Unicode case folding.
func CompareStringsIgnoreCase(a, b reflect.Value) int {
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

// compareNil orders nil before non nil values
// and returns false as second result if both are non nil.
func compareNil(a, b reflect.Value) (int, bool) {
	aNil, bNil := ValueIsNil(a), ValueIsNil(b)
	switch {
	case aNil && bNil:
		return 0, true
	case aNil:
		return -1, true
	case bNil:
		return 1, true
	}
	return 0, false
}

func compareNilFirst(a, b reflect.Value, compare CompareFunc) int {
	if n, ok := compareNil(a, b); ok {
		return n
	}
	return compare(a, b)
}

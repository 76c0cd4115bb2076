package listcontainer

import (
	"reflect"

	"github.com/domonda/go-listcontainer/propertypath"
)

var (
	// DefaultNaming provides the default property naming
	// using "prop" as property id tag, ignores "-" tagged fields,
	// and uses LowerCamelCase for untagged fields and getter methods.
	DefaultNaming = propertypath.DefaultNaming

	// DefaultComparators orders booleans, numbers, and strings
	// by their natural order and all types
	// with a Compare method like time.Time by that method.
	DefaultComparators = NewComparators().
				WithKindComparator(reflect.Bool, CompareBools).
				WithKindComparator(reflect.Int, CompareInts).
				WithKindComparator(reflect.Int8, CompareInts).
				WithKindComparator(reflect.Int16, CompareInts).
				WithKindComparator(reflect.Int32, CompareInts).
				WithKindComparator(reflect.Int64, CompareInts).
				WithKindComparator(reflect.Uint, CompareUints).
				WithKindComparator(reflect.Uint8, CompareUints).
				WithKindComparator(reflect.Uint16, CompareUints).
				WithKindComparator(reflect.Uint32, CompareUints).
				WithKindComparator(reflect.Uint64, CompareUints).
				WithKindComparator(reflect.Uintptr, CompareUints).
				WithKindComparator(reflect.Float32, CompareFloats).
				WithKindComparator(reflect.Float64, CompareFloats).
				WithKindComparator(reflect.String, CompareStrings)
)

var typeOfAny = reflect.TypeFor[any]()

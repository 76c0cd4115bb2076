package propertypath

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Naming defines how struct fields and getter methods
// are mapped to property names as used in a Path.
//
// nil is a valid value for *Naming
// and is equal to the zero value
// which uses the unchanged Go field names.
type Naming struct {
	// Tag is the struct field tag to be used as property name.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the tag value that excludes a field
	// from the properties of a struct.
	Ignore string
	// Untagged will be called with the Go name of a field or getter method
	// to return the property name in case it has no tag named Tag.
	// If Untagged is nil, then the Go name will be used.
	Untagged func(goName string) (property string)
}

// DefaultNaming uses the tag "prop" as property name,
// ignores fields tagged with "-", and converts untagged
// Go names with LowerCamelCase.
var DefaultNaming = Naming{
	Tag:      "prop",
	Ignore:   "-",
	Untagged: LowerCamelCase,
}

// String implements the fmt.Stringer interface for Naming.
func (n *Naming) String() string {
	if n == nil {
		return `Naming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("Naming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// FieldProperty returns the property name for a struct field.
func (n *Naming) FieldProperty(field reflect.StructField) string {
	if n == nil {
		return field.Name
	}
	if n.Tag != "" {
		if tag, ok := field.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	return n.MethodProperty(field.Name)
}

// MethodProperty returns the property name for a getter method.
func (n *Naming) MethodProperty(methodName string) string {
	if n == nil || n.Untagged == nil {
		return methodName
	}
	return n.Untagged(methodName)
}

// IsIgnored returns true if the field
// must not be exposed as property.
func (n *Naming) IsIgnored(field reflect.StructField) bool {
	return n != nil && n.Ignore != "" && n.FieldProperty(field) == n.Ignore
}

// LowerCamelCase returns name with its leading upper case runes
// converted to lower case, keeping the last one of a run of
// upper case runes that starts the next word.
// Usable for Naming.Untagged to map Go names like
// "FirstName" to "firstName", "ID" to "id", and "URLPath" to "urlPath".
func LowerCamelCase(name string) string {
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
		return name
	case upper > 1 && upper < len(runes) && unicode.IsLetter(runes[upper]):
		upper--
	}
	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

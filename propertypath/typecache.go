package propertypath

import (
	"fmt"
	"go/token"
	"reflect"
)

// property describes a named property of a struct type.
// It is either a struct field reachable via fieldIndex
// or a getter method with an optional setter method.
type property struct {
	name       string
	typ        reflect.Type
	fieldIndex []int  // nil for getter methods
	getter     string // getter method name
	getterErr  bool   // getter returns (value, error)
	setter     string // setter method name on the pointer type
	setterErr  bool   // setter returns error
	readOnly   bool
}

func (p *property) isField() bool { return p.fieldIndex != nil }

type structProperties struct {
	names  []string             // field properties in declaration order
	byName map[string]*property // by property name and by Go name
	depth  map[string]int       // embedding depth of field properties
	misses map[string]bool      // names without field or method
}

// TypeCache discovers and memoizes the properties
// of struct types so that reflective introspection
// happens only once per type and property name.
//
// A TypeCache is not safe for concurrent use.
// The cache is only invalidated by Clear.
type TypeCache struct {
	naming *Naming
	types  map[reflect.Type]*structProperties
}

// NewTypeCache returns an empty TypeCache
// using naming to name struct fields and getter methods.
// A nil naming uses the unchanged Go names.
func NewTypeCache(naming *Naming) *TypeCache {
	return &TypeCache{
		naming: naming,
		types:  make(map[reflect.Type]*structProperties),
	}
}

// Naming returns the Naming used by the cache.
func (c *TypeCache) Naming() *Naming { return c.naming }

// Clear removes all cached type information.
func (c *TypeCache) Clear() {
	clear(c.types)
}

// TypeOf returns the declared type of the property name
// of the struct type t or pointer to it.
func (c *TypeCache) TypeOf(t reflect.Type, name string) (reflect.Type, error) {
	p, err := c.property(t, name)
	if err != nil {
		return nil, err
	}
	return p.typ, nil
}

// IsReadOnly returns true if the property name of the struct
// type t or pointer to it is a getter method without setter.
func (c *TypeCache) IsReadOnly(t reflect.Type, name string) (bool, error) {
	p, err := c.property(t, name)
	if err != nil {
		return false, err
	}
	return p.readOnly, nil
}

// PropertyNames returns the names of the exported fields of
// the struct type t or pointer to it, including the promoted
// fields of embedded structs, in declaration order.
// Getter methods are not included.
// Returns nil if t is not a struct type.
func (c *TypeCache) PropertyNames(t reflect.Type) []string {
	props := c.structProperties(t)
	if props == nil {
		return nil
	}
	return props.names
}

func (c *TypeCache) property(t reflect.Type, name string) (*property, error) {
	props := c.structProperties(t)
	if props == nil {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrPathNotFound, t)
	}
	if p, ok := props.byName[name]; ok {
		return p, nil
	}
	if !props.misses[name] {
		if p := c.findGetter(derefType(t), name); p != nil {
			props.byName[name] = p
			return p, nil
		}
		props.misses[name] = true
	}
	return nil, fmt.Errorf("%w: %s has no property %q", ErrPathNotFound, derefType(t), name)
}

func (c *TypeCache) structProperties(t reflect.Type) *structProperties {
	if t == nil {
		return nil
	}
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return nil
	}
	if props, ok := c.types[t]; ok {
		return props
	}
	props := &structProperties{
		byName: make(map[string]*property),
		depth:  make(map[string]int),
		misses: make(map[string]bool),
	}
	c.addFields(props, t, nil)
	c.types[t] = props
	return props
}

func (c *TypeCache) addFields(props *structProperties, t reflect.Type, index []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldIndex := append(index[:len(index):len(index)], i)
		if field.Anonymous {
			if embedded := derefType(field.Type); embedded.Kind() == reflect.Struct {
				c.addFields(props, embedded, fieldIndex)
				continue
			}
		}
		if !token.IsExported(field.Name) || c.naming.IsIgnored(field) {
			continue
		}
		p := &property{
			name:       c.naming.FieldProperty(field),
			typ:        field.Type,
			fieldIndex: fieldIndex,
		}
		if depth, exists := props.depth[p.name]; exists {
			// Shallower fields shadow promoted fields
			if depth <= len(index) {
				continue
			}
		} else {
			props.names = append(props.names, p.name)
		}
		props.depth[p.name] = len(index)
		props.byName[p.name] = p
		if _, taken := props.byName[field.Name]; !taken {
			props.byName[field.Name] = p
		}
	}
}

var typeOfError = reflect.TypeFor[error]()

// findGetter looks for an exported method of *t without arguments
// returning one value or a value and an error
// whose property name or Go name is name.
func (c *TypeCache) findGetter(t reflect.Type, name string) *property {
	ptrType := reflect.PointerTo(t)
	for i := 0; i < ptrType.NumMethod(); i++ {
		method := ptrType.Method(i)
		if method.Name != name && c.naming.MethodProperty(method.Name) != name {
			continue
		}
		mt := method.Type // includes the receiver
		if mt.NumIn() != 1 || mt.NumOut() < 1 || mt.NumOut() > 2 {
			continue
		}
		if mt.NumOut() == 2 && mt.Out(1) != typeOfError {
			continue
		}
		p := &property{
			name:      c.naming.MethodProperty(method.Name),
			typ:       mt.Out(0),
			getter:    method.Name,
			getterErr: mt.NumOut() == 2,
			readOnly:  true,
		}
		if setter, ok := ptrType.MethodByName("Set" + method.Name); ok {
			st := setter.Type
			if st.NumIn() == 2 && st.In(1) == p.typ && (st.NumOut() == 0 || st.NumOut() == 1 && st.Out(0) == typeOfError) {
				p.setter = setter.Name
				p.setterErr = st.NumOut() == 1
				p.readOnly = false
			}
		}
		return p
	}
	return nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

package listcontainer

import (
	"fmt"
	"reflect"

	"github.com/domonda/go-listcontainer/propertypath"
)

// Property is the view of one property of one item.
// It is created lazily and cached by the container,
// so repeated requests for the same item and property id
// return the same *Property.
//
// Reads and writes always evaluate the property path
// against the current state of the item.
type Property struct {
	id       string
	typ      reflect.Type
	readOnly bool
	root     reflect.Value
	path     propertypath.Path // nil for generated properties
	resolver *propertypath.Resolver
	generate func() (any, error)
}

// ID returns the property id.
func (p *Property) ID() string { return p.id }

// Type returns the declared type of the property
// independent of the current value.
func (p *Property) Type() reflect.Type { return p.typ }

// ReadOnly returns true if SetValue will fail
// because the property is generated, a getter method without setter,
// or the item is not a pointer.
func (p *Property) ReadOnly() bool { return p.readOnly }

// ReflectValue returns the current value of the property.
// An invalid reflect.Value is returned without error
// if an intermediate value of the property path is nil.
func (p *Property) ReflectValue() (reflect.Value, error) {
	if p.generate != nil {
		val, err := p.generate()
		if err != nil {
			return reflect.Value{}, fmt.Errorf("generated property %q: %w", p.id, err)
		}
		return reflect.ValueOf(val), nil
	}
	return p.resolver.Get(p.root, p.path)
}

// Value returns the current value of the property
// or nil if the value or an intermediate value is nil.
func (p *Property) Value() (any, error) {
	val, err := p.ReflectValue()
	if err != nil || !val.IsValid() || !val.CanInterface() {
		return nil, err
	}
	return val.Interface(), nil
}

// SetValue sets the property converting value
// to the property type if necessary.
// Nil pointers and maps along the property path
// are allocated.
func (p *Property) SetValue(value any) error {
	if p.generate != nil {
		return fmt.Errorf("generated property %q: %w", p.id, ErrReadOnly)
	}
	if p.readOnly {
		return fmt.Errorf("property %q: %w", p.id, ErrReadOnly)
	}
	return p.resolver.Set(p.root, p.path, reflect.ValueOf(value))
}

// String returns the property id and current value.
func (p *Property) String() string {
	val, err := p.Value()
	if err != nil {
		return fmt.Sprintf("%s: error %s", p.id, err)
	}
	return fmt.Sprintf("%s: %v", p.id, val)
}

package listcontainer

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

type generatedProperty[T comparable] struct {
	typ      reflect.Type
	generate func(item T) (any, error)
}

// AddGeneratedProperty adds a read-only property whose value
// is computed by generate from the item on every read.
// typ is the declared type of the generated values,
// nil means the empty interface type.
//
// The id doesn't have to be a valid property path
// and is appended to the visible property ids.
func (c *Container[T]) AddGeneratedProperty(id string, typ reflect.Type, generate func(item T) (any, error)) error {
	if id == "" {
		return errors.New("empty generated property id")
	}
	if generate == nil {
		return fmt.Errorf("generated property %q: nil generate function", id)
	}
	if _, exists := c.generated[id]; exists || slices.Contains(c.PropertyIDs(), id) {
		return fmt.Errorf("%w: %q", ErrDuplicateProperty, id)
	}
	if typ == nil {
		typ = typeOfAny
	}
	c.generated[id] = generatedProperty[T]{typ: typ, generate: generate}
	c.generatedIDs = append(c.generatedIDs, id)
	if c.explicitIDs != nil {
		c.explicitIDs = append(c.explicitIDs, id)
	}
	// Views of a previous path property with the same id
	for _, views := range c.views {
		delete(views, id)
	}
	c.propertiesChanged()
	return nil
}

// GeneratedPropertyFunc adapts a function returning
// a value of type V for AddGeneratedProperty.
func GeneratedPropertyFunc[T comparable, V any](c *Container[T], id string, generate func(item T) V) error {
	return c.AddGeneratedProperty(id, reflect.TypeFor[V](), func(item T) (any, error) {
		return generate(item), nil
	})
}

package listcontainer

// Item is a row view of one item of a Container.
//
// Item is a comparable value type that does not own the item:
// two Item values for the same item of the same container are ==.
type Item[T comparable] struct {
	container *Container[T]
	id        T
}

// ID returns the wrapped item which is its own identity.
func (it Item[T]) ID() T { return it.id }

// Container returns the container of the item.
func (it Item[T]) Container() *Container[T] { return it.container }

// Property returns the cached view of the property
// with the passed id or creates and caches it.
func (it Item[T]) Property(propertyID string) (*Property, error) {
	return it.container.property(it.id, propertyID)
}

// Value returns the current value of a property of the item.
func (it Item[T]) Value(propertyID string) (any, error) {
	prop, err := it.Property(propertyID)
	if err != nil {
		return nil, err
	}
	return prop.Value()
}

// SetValue sets a property of the item.
func (it Item[T]) SetValue(propertyID string, value any) error {
	prop, err := it.Property(propertyID)
	if err != nil {
		return err
	}
	return prop.SetValue(value)
}

// PropertyIDs returns the visible property ids of the container.
func (it Item[T]) PropertyIDs() []string {
	return it.container.PropertyIDs()
}

package listcontainer

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/domonda/go-listcontainer/propertypath"
)

// PropertyIDs returns the visible property ids.
//
// If SetVisiblePropertyIDs was never called then the ids are
// inferred from the exported struct fields of the first item
// followed by the ids of generated properties.
// An empty container without explicit property ids
// has no inferred property ids.
func (c *Container[T]) PropertyIDs() []string {
	return slices.Clone(c.propertyIDs())
}

// propertyIDs returns the visible property ids
// without copying the internal slices.
func (c *Container[T]) propertyIDs() []string {
	switch {
	case c.explicitIDs != nil:
		return c.explicitIDs
	case len(c.generatedIDs) == 0:
		return c.inferPropertyIDs()
	}
	return slices.Concat(c.inferPropertyIDs(), c.generatedIDs)
}

func (c *Container[T]) inferPropertyIDs() []string {
	if c.inferred || c.options.Has(OptionWithoutInference) || len(c.items) == 0 {
		return c.inferredIDs
	}
	c.inferredIDs = c.resolver.TypeCache().PropertyNames(reflect.TypeOf(c.items[0]))
	c.inferred = true
	return c.inferredIDs
}

// SetVisiblePropertyIDs overrides the inferred visible property ids
// and fires one PropertySetChangeEvent.
// The ids must be valid property paths or generated property ids,
// but are not checked against the item type.
func (c *Container[T]) SetVisiblePropertyIDs(ids ...string) error {
	explicit := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(explicit, id) {
			return fmt.Errorf("%w: %q", ErrDuplicateProperty, id)
		}
		if _, isGenerated := c.generated[id]; !isGenerated {
			if _, err := c.path(id); err != nil {
				return err
			}
		}
		explicit = append(explicit, id)
	}
	c.explicitIDs = explicit
	c.propertiesChanged()
	return nil
}

// AddContainerProperty appends a property id to the visible property ids
// and fires one PropertySetChangeEvent.
func (c *Container[T]) AddContainerProperty(id string) error {
	if _, err := c.path(id); err != nil {
		return err
	}
	visible := c.PropertyIDs()
	if slices.Contains(visible, id) {
		return fmt.Errorf("%w: %q", ErrDuplicateProperty, id)
	}
	c.explicitIDs = append(visible, id)
	c.propertiesChanged()
	return nil
}

// RemoveContainerProperty removes a visible or generated property id
// and fires one PropertySetChangeEvent.
// Returns false if there was no such property id.
func (c *Container[T]) RemoveContainerProperty(id string) bool {
	visible := c.PropertyIDs()
	index := slices.Index(visible, id)
	_, isGenerated := c.generated[id]
	if index < 0 && !isGenerated {
		return false
	}
	if isGenerated {
		delete(c.generated, id)
		c.generatedIDs = slices.DeleteFunc(c.generatedIDs, func(g string) bool { return g == id })
	}
	switch {
	case index < 0:
	case isGenerated && c.explicitIDs == nil:
		// Still appended to the inferred ids
	default:
		c.explicitIDs = slices.Delete(visible, index, index+1)
	}
	for _, views := range c.views {
		delete(views, id)
	}
	c.propertiesChanged()
	return true
}

func (c *Container[T]) propertiesChanged() {
	c.propertySetListeners.fire(PropertySetChangeEvent[T]{
		Container:   c,
		PropertyIDs: c.PropertyIDs(),
	})
}

// PropertyType returns the declared type of a property id
// for the type of the first item, or for T if the container is empty.
// Property ids ending in an interface typed value
// or going through one return the empty interface type.
func (c *Container[T]) PropertyType(id string) (reflect.Type, error) {
	if gen, ok := c.generated[id]; ok {
		return gen.typ, nil
	}
	owner := reflect.TypeFor[T]()
	if len(c.items) > 0 {
		if t := reflect.TypeOf(c.items[0]); t != nil {
			owner = t
		}
	}
	return c.propertyType(owner, id)
}

func (c *Container[T]) propertyType(owner reflect.Type, id string) (reflect.Type, error) {
	key := typeKey{owner: owner, id: id}
	if t, ok := c.types[key]; ok {
		return t, nil
	}
	path, err := c.path(id)
	if err != nil {
		return nil, err
	}
	t, err := c.resolver.ResolveType(owner, path)
	if err != nil {
		return nil, err
	}
	c.types[key] = t
	return t, nil
}

// SortablePropertyIDs returns the visible property ids
// whose type has a comparator.
func (c *Container[T]) SortablePropertyIDs() []string {
	var sortable []string
	for _, id := range c.PropertyIDs() {
		t, err := c.PropertyType(id)
		if err == nil && c.comparators.For(t) != nil {
			sortable = append(sortable, id)
		}
	}
	return sortable
}

func (c *Container[T]) path(id string) (propertypath.Path, error) {
	if path, ok := c.paths[id]; ok {
		return path, nil
	}
	path, err := propertypath.Parse(id)
	if err != nil {
		return nil, err
	}
	c.paths[id] = path
	return path, nil
}

// property returns the cached view of a property of item
// or creates and caches it.
func (c *Container[T]) property(item T, id string) (*Property, error) {
	if !c.isMember(item) {
		return nil, fmt.Errorf("%w: %v", ErrItemNotFound, item)
	}
	if prop, ok := c.views[item][id]; ok {
		return prop, nil
	}
	prop, err := c.newProperty(item, id)
	if err != nil {
		return nil, err
	}
	views := c.views[item]
	if views == nil {
		views = make(map[string]*Property)
		c.views[item] = views
	}
	views[id] = prop
	return prop, nil
}

func (c *Container[T]) newProperty(item T, id string) (*Property, error) {
	if gen, ok := c.generated[id]; ok {
		return &Property{
			id:       id,
			typ:      gen.typ,
			readOnly: true,
			generate: func() (any, error) { return gen.generate(item) },
		}, nil
	}
	path, err := c.path(id)
	if err != nil {
		return nil, err
	}
	root := reflect.ValueOf(item)
	owner := reflect.TypeFor[T]()
	if root.IsValid() {
		owner = root.Type()
	}
	typ, err := c.propertyType(owner, id)
	if err != nil {
		return nil, err
	}
	readOnly, err := c.resolver.IsReadOnly(owner, path)
	if err != nil {
		return nil, err
	}
	return &Property{
		id:       id,
		typ:      typ,
		readOnly: readOnly || owner.Kind() != reflect.Pointer,
		root:     root,
		path:     path,
		resolver: c.resolver,
	}, nil
}

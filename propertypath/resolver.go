package propertypath

import (
	"errors"
	"fmt"
	"reflect"
)

var typeOfAny = reflect.TypeFor[any]()

// Resolver evaluates a Path against Go values
// using a TypeCache for struct property lookups.
//
// A Resolver is not safe for concurrent use
// because its TypeCache is not.
type Resolver struct {
	cache *TypeCache
}

// NewResolver returns a Resolver using cache.
// A nil cache creates a new TypeCache with DefaultNaming.
func NewResolver(cache *TypeCache) *Resolver {
	if cache == nil {
		cache = NewTypeCache(&DefaultNaming)
	}
	return &Resolver{cache: cache}
}

// TypeCache returns the TypeCache used by the resolver.
func (r *Resolver) TypeCache() *TypeCache { return r.cache }

// ResolveType returns the declared type that path resolves to
// when applied to a value of the owner type.
//
// Pointers are dereferenced along the way.
// When a step is applied to an interface type,
// the dynamic type can't be known in advance
// and the result is the empty interface type.
func (r *Resolver) ResolveType(owner reflect.Type, path Path) (reflect.Type, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if owner == nil {
		return nil, newPathError(path, 0, fmt.Errorf("%w: nil type", ErrPathNotFound))
	}
	t := owner
	for i, step := range path {
		t = derefType(t)
		if t.Kind() == reflect.Interface {
			return typeOfAny, nil
		}
		var err error
		t, err = r.stepType(t, step)
		if err != nil {
			return nil, newPathError(path, i, err)
		}
	}
	return t, nil
}

func (r *Resolver) stepType(t reflect.Type, step Step) (reflect.Type, error) {
	switch step.Kind {
	case FieldStep:
		return r.cache.TypeOf(t, step.Name)
	case IndexStep:
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			return t.Elem(), nil
		}
		return nil, fmt.Errorf("%w: %s is not a slice or array", ErrPathNotFound, t)
	case KeyStep:
		if t.Kind() != reflect.Map {
			return nil, fmt.Errorf("%w: %s is not a map", ErrPathNotFound, t)
		}
		if _, err := keyValue(t.Key(), step.Key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPathNotFound, err)
		}
		return t.Elem(), nil
	}
	return nil, fmt.Errorf("%w: invalid %s", ErrPathNotFound, step.Kind)
}

// IsReadOnly returns true if the last step of path
// applied to a value of the owner type is a getter
// method without a corresponding setter method.
func (r *Resolver) IsReadOnly(owner reflect.Type, path Path) (bool, error) {
	if len(path) == 0 {
		return false, ErrEmptyPath
	}
	parent := owner
	if len(path) > 1 {
		var err error
		parent, err = r.ResolveType(owner, path[:len(path)-1])
		if err != nil {
			return false, err
		}
	}
	last := path[len(path)-1]
	if last.Kind != FieldStep || derefType(parent).Kind() == reflect.Interface {
		return false, nil
	}
	readOnly, err := r.cache.IsReadOnly(parent, last.Name)
	if err != nil {
		return false, newPathError(path, len(path)-1, err)
	}
	return readOnly, nil
}

// Get evaluates path against root.
//
// If any intermediate value is a nil pointer, interface, slice, or map
// then an invalid reflect.Value and no error is returned.
// An index out of range returns an error wrapping ErrIndexOutOfRange,
// a missing map key an error wrapping ErrKeyNotFound,
// and an unknown property an error wrapping ErrPathNotFound.
func (r *Resolver) Get(root reflect.Value, path Path) (reflect.Value, error) {
	if len(path) == 0 {
		return reflect.Value{}, ErrEmptyPath
	}
	v := root
	for i, step := range path {
		var notNil bool
		v, notNil = indirect(v)
		if !notNil {
			return reflect.Value{}, nil
		}
		var err error
		v, notNil, err = r.getStep(v, step)
		if err != nil {
			return reflect.Value{}, newPathError(path, i, err)
		}
		if !notNil {
			return reflect.Value{}, nil
		}
	}
	return v, nil
}

func (r *Resolver) getStep(v reflect.Value, step Step) (result reflect.Value, notNil bool, err error) {
	switch step.Kind {
	case FieldStep:
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, false, fmt.Errorf("%w: %s is not a struct", ErrPathNotFound, v.Type())
		}
		p, err := r.cache.property(v.Type(), step.Name)
		if err != nil {
			return reflect.Value{}, false, err
		}
		if p.isField() {
			field, ok := fieldByIndex(v, p.fieldIndex, false)
			return field, ok, nil
		}
		result, err = callGetter(v, p)
		return result, err == nil, err

	case IndexStep:
		switch v.Kind() {
		case reflect.Slice:
			if v.IsNil() {
				return reflect.Value{}, false, nil
			}
			fallthrough
		case reflect.Array:
			if step.Index >= v.Len() {
				return reflect.Value{}, false, fmt.Errorf("%w: index %d of length %d", ErrIndexOutOfRange, step.Index, v.Len())
			}
			return v.Index(step.Index), true, nil
		}
		return reflect.Value{}, false, fmt.Errorf("%w: %s is not a slice or array", ErrPathNotFound, v.Type())

	case KeyStep:
		if v.Kind() != reflect.Map {
			return reflect.Value{}, false, fmt.Errorf("%w: %s is not a map", ErrPathNotFound, v.Type())
		}
		if v.IsNil() {
			return reflect.Value{}, false, nil
		}
		key, err := keyValue(v.Type().Key(), step.Key)
		if err != nil {
			return reflect.Value{}, false, fmt.Errorf("%w: %w", ErrPathNotFound, err)
		}
		elem := v.MapIndex(key)
		if !elem.IsValid() {
			return reflect.Value{}, false, fmt.Errorf("%w: %q", ErrKeyNotFound, step.Key)
		}
		return elem, true, nil
	}
	return reflect.Value{}, false, fmt.Errorf("%w: invalid %s", ErrPathNotFound, step.Kind)
}

// Set assigns value to the property at path of root
// converting the value with Assign.
//
// All steps but the last one are evaluated like with Get,
// except that nil pointers and maps are allocated.
// Values that can't be allocated result in an error
// wrapping ErrInstantiation.
// The last step assigns a struct field, calls a setter method,
// sets a slice or array element, or inserts a map entry.
// Setting a getter method property without setter
// or an unaddressable value returns an error wrapping ErrReadOnly.
func (r *Resolver) Set(root reflect.Value, path Path, value reflect.Value) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if !root.IsValid() {
		return newPathError(path, 0, fmt.Errorf("%w: nil root value", ErrInstantiation))
	}
	return r.set(root, path, 0, value)
}

func (r *Resolver) set(v reflect.Value, path Path, i int, value reflect.Value) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			if v.Kind() == reflect.Interface || !v.CanSet() {
				return newPathError(path, i, fmt.Errorf("%w: nil %s", ErrInstantiation, v.Type()))
			}
			v.Set(reflect.New(v.Type().Elem()))
		}
		if v.Kind() == reflect.Interface && v.Elem().Kind() != reflect.Pointer && v.CanSet() {
			// Modify an addressable copy of the dynamic value
			// and write it back to the interface
			tmp := reflect.New(v.Elem().Type()).Elem()
			tmp.Set(v.Elem())
			if err := r.set(tmp, path, i, value); err != nil {
				return err
			}
			v.Set(tmp)
			return nil
		}
		v = v.Elem()
	}

	step := path[i]
	last := i == len(path)-1

	switch step.Kind {
	case FieldStep:
		if v.Kind() != reflect.Struct {
			return newPathError(path, i, fmt.Errorf("%w: %s is not a struct", ErrPathNotFound, v.Type()))
		}
		p, err := r.cache.property(v.Type(), step.Name)
		if err != nil {
			return newPathError(path, i, err)
		}
		if p.isField() {
			field, ok := fieldByIndex(v, p.fieldIndex, true)
			if !ok {
				return newPathError(path, i, fmt.Errorf("%w: nil embedded struct pointer in %s", ErrInstantiation, v.Type()))
			}
			if last {
				return r.assign(field, value, path, i)
			}
			return r.set(field, path, i+1, value)
		}
		if last {
			return r.callSetter(v, p, value, path, i)
		}
		child, err := callGetter(v, p)
		if err != nil {
			return newPathError(path, i, err)
		}
		switch child.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice:
			return r.set(child, path, i+1, value)
		}
		return newPathError(path, i, fmt.Errorf("%w: %s returned by %s is a copy", ErrReadOnly, child.Type(), p.getter))

	case IndexStep:
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			if step.Index >= v.Len() {
				return newPathError(path, i, fmt.Errorf("%w: index %d of length %d", ErrIndexOutOfRange, step.Index, v.Len()))
			}
		default:
			return newPathError(path, i, fmt.Errorf("%w: %s is not a slice or array", ErrPathNotFound, v.Type()))
		}
		elem := v.Index(step.Index)
		if last {
			return r.assign(elem, value, path, i)
		}
		return r.set(elem, path, i+1, value)

	case KeyStep:
		if v.Kind() != reflect.Map {
			return newPathError(path, i, fmt.Errorf("%w: %s is not a map", ErrPathNotFound, v.Type()))
		}
		key, err := keyValue(v.Type().Key(), step.Key)
		if err != nil {
			return newPathError(path, i, fmt.Errorf("%w: %w", ErrPathNotFound, err))
		}
		if v.IsNil() {
			if !v.CanSet() {
				return newPathError(path, i, fmt.Errorf("%w: nil %s", ErrInstantiation, v.Type()))
			}
			v.Set(reflect.MakeMap(v.Type()))
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if last {
			if err := r.assign(elem, value, path, i); err != nil {
				return err
			}
			v.SetMapIndex(key, elem)
			return nil
		}
		existing := v.MapIndex(key)
		if !existing.IsValid() {
			return newPathError(path, i, fmt.Errorf("%w: %q", ErrKeyNotFound, step.Key))
		}
		elem.Set(existing)
		if err := r.set(elem, path, i+1, value); err != nil {
			return err
		}
		v.SetMapIndex(key, elem)
		return nil
	}
	return newPathError(path, i, fmt.Errorf("%w: invalid %s", ErrPathNotFound, step.Kind))
}

func (r *Resolver) assign(dst, value reflect.Value, path Path, i int) error {
	if !dst.CanSet() {
		return newPathError(path, i, fmt.Errorf("%w: %s value is not addressable", ErrReadOnly, dst.Type()))
	}
	if err := Assign(dst, value); err != nil {
		return newPathError(path, i, err)
	}
	return nil
}

func (r *Resolver) callSetter(v reflect.Value, p *property, value reflect.Value, path Path, i int) error {
	if p.readOnly {
		return newPathError(path, i, fmt.Errorf("%w: %s has no method Set%s", ErrReadOnly, v.Type(), p.getter))
	}
	if !v.CanAddr() {
		return newPathError(path, i, fmt.Errorf("%w: %s value is not addressable", ErrReadOnly, v.Type()))
	}
	arg := reflect.New(p.typ).Elem()
	if err := Assign(arg, value); err != nil {
		return newPathError(path, i, err)
	}
	out := v.Addr().MethodByName(p.setter).Call([]reflect.Value{arg})
	if p.setterErr && !out[0].IsNil() {
		return newPathError(path, i, out[0].Interface().(error))
	}
	return nil
}

// indirect dereferences pointers and interfaces
// and returns false if a nil value was encountered.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// fieldByIndex is like reflect.Value.FieldByIndex
// but returns false for nil embedded struct pointers
// or allocates them if alloc is true and they are settable.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			for v.Kind() == reflect.Pointer {
				if v.IsNil() {
					if !alloc || !v.CanSet() {
						return reflect.Value{}, false
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v, true
}

func callGetter(v reflect.Value, p *property) (reflect.Value, error) {
	var method reflect.Value
	switch {
	case v.CanAddr():
		method = v.Addr().MethodByName(p.getter)
	default:
		method = v.MethodByName(p.getter)
		if !method.IsValid() {
			// Pointer receiver method on an unaddressable value
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			method = ptr.MethodByName(p.getter)
		}
	}
	out := method.Call(nil)
	if p.getterErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

// keyValue converts the string key of a KeyStep to keyType.
func keyValue(keyType reflect.Type, key string) (reflect.Value, error) {
	v := reflect.New(keyType).Elem()
	err := Assign(v, reflect.ValueOf(key))
	if err != nil {
		return reflect.Value{}, fmt.Errorf("can't use %q as %s map key: %w", key, keyType, err)
	}
	return v, nil
}

// IsNotFound returns true if err is the result
// of a path that could not be evaluated because
// a property, index, or key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrKeyNotFound)
}

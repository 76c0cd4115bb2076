package listcontainer

import (
	"errors"
	"fmt"

	"github.com/domonda/go-listcontainer/propertypath"
)

var (
	// ErrUnsupportedOperation is returned by all operations
	// that can't be expressed by an append-only ordered list
	// like inserting at an index or after another item.
	// It wraps errors.ErrUnsupported.
	ErrUnsupportedOperation = fmt.Errorf("%w: container supports only append, remove, and replace", errors.ErrUnsupported)

	// ErrReadOnly is returned when setting the value
	// of a read-only or generated property.
	ErrReadOnly = propertypath.ErrReadOnly

	// ErrNotSortable is returned when sorting by a property
	// whose type has no comparator.
	ErrNotSortable = errors.New("property is not sortable")

	// ErrItemNotFound is returned for item ids
	// that are not in the container.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateProperty is returned when adding
	// a property id that is already in use.
	ErrDuplicateProperty = errors.New("duplicate property id")
)

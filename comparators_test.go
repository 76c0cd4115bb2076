package listcontainer

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type version struct{ major, minor int }

func (v version) Compare(other version) int {
	if v.major != other.major {
		return v.major - other.major
	}
	return v.minor - other.minor
}

type named string

func (n named) String() string { return string(n) }

func TestComparators_For(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		nilFunc  bool
		a, b     any
		wantSign int
	}{
		{name: "int", typ: reflect.TypeFor[int](), a: 1, b: 2, wantSign: -1},
		{name: "int8", typ: reflect.TypeFor[int8](), a: int8(3), b: int8(3), wantSign: 0},
		{name: "uint", typ: reflect.TypeFor[uint16](), a: uint16(9), b: uint16(2), wantSign: 1},
		{name: "float", typ: reflect.TypeFor[float64](), a: 0.5, b: 1.5, wantSign: -1},
		{name: "NaN", typ: reflect.TypeFor[float64](), a: math.NaN(), b: -1.0, wantSign: -1},
		{name: "bool", typ: reflect.TypeFor[bool](), a: true, b: false, wantSign: 1},
		{name: "string", typ: reflect.TypeFor[string](), a: "a", b: "b", wantSign: -1},
		{name: "string kind", typ: reflect.TypeFor[named](), a: named("b"), b: named("a"), wantSign: 1},
		{name: "Compare method", typ: reflect.TypeFor[version](), a: version{1, 2}, b: version{1, 10}, wantSign: -1},
		{
			name:     "time",
			typ:      reflect.TypeFor[time.Time](),
			a:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			b:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			wantSign: 1,
		},
		{name: "pointer", typ: reflect.TypeFor[*int](), a: pointerTo(1), b: pointerTo(2), wantSign: -1},
		{name: "nil pointer", typ: reflect.TypeFor[*int](), a: (*int)(nil), b: pointerTo(2), wantSign: -1},
		{name: "slice", typ: reflect.TypeFor[[]int](), nilFunc: true},
		{name: "struct", typ: reflect.TypeFor[Person](), nilFunc: true},
		{name: "map", typ: reflect.TypeFor[map[string]int](), nilFunc: true},
		{name: "any", typ: reflect.TypeFor[any](), nilFunc: true},
		{name: "pointer to any", typ: reflect.TypeFor[*any](), nilFunc: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compare := DefaultComparators.For(tt.typ)
			if tt.nilFunc {
				require.Nil(t, compare)
				return
			}
			require.NotNil(t, compare)
			got := compare(reflect.ValueOf(tt.a), reflect.ValueOf(tt.b))
			require.Equal(t, tt.wantSign, sign(got), "compare(%v, %v)", tt.a, tt.b)
			require.Equal(t, -tt.wantSign, sign(compare(reflect.ValueOf(tt.b), reflect.ValueOf(tt.a))), "antisymmetric")
		})
	}
}

func TestComparators_Precedence(t *testing.T) {
	stringerType := reflect.TypeFor[fmt.Stringer]()
	reverse := func(a, b reflect.Value) int { return -CompareStrings(a, b) }
	constant := func(a, b reflect.Value) int { return 42 }

	withInterface := DefaultComparators.WithInterfaceComparator(stringerType, reverse)
	a, b := reflect.ValueOf(named("a")), reflect.ValueOf(named("b"))
	require.Equal(t, 1, withInterface.For(reflect.TypeFor[named]())(a, b), "interface before kind")
	require.Equal(t, -1, DefaultComparators.For(reflect.TypeFor[named]())(a, b), "original unchanged")

	withType := withInterface.WithTypeComparator(reflect.TypeFor[named](), constant)
	require.Equal(t, 42, withType.For(reflect.TypeFor[named]())(a, b), "type before interface")

	withDefault := NewComparators().WithDefaultComparator(constant)
	require.Equal(t, 42, withDefault.For(reflect.TypeFor[[]int]())(reflect.Value{}, reflect.Value{}))
	require.Nil(t, NewComparators().For(reflect.TypeFor[int]()))
	require.Nil(t, DefaultComparators.For(nil))

	require.Panics(t, func() {
		DefaultComparators.WithInterfaceComparator(reflect.TypeFor[int](), reverse)
	})
}

func TestComparators_Compare(t *testing.T) {
	c := DefaultComparators
	require.Equal(t, 0, c.Compare(reflect.Value{}, reflect.ValueOf((*int)(nil))))
	require.Equal(t, -1, c.Compare(reflect.Value{}, reflect.ValueOf(1)))
	require.Equal(t, 1, c.Compare(reflect.ValueOf("a"), reflect.Value{}))
	require.Equal(t, -1, sign(c.Compare(reflect.ValueOf(1), reflect.ValueOf(2))))

	// Values of different types are ordered by type name
	require.Equal(t, -1, sign(c.Compare(reflect.ValueOf(99), reflect.ValueOf("1"))))

	values := []any{"b", 2, "a"}
	iface := reflect.ValueOf(values)
	require.Equal(t, 1, sign(c.Compare(iface.Index(0), iface.Index(2))), "interface elements")
}

func TestCompareStringsIgnoreCase(t *testing.T) {
	require.Equal(t, 0, CompareStringsIgnoreCase(reflect.ValueOf("Hello"), reflect.ValueOf("hELLO")))
	require.Equal(t, -1, CompareStringsIgnoreCase(reflect.ValueOf("a"), reflect.ValueOf("B")))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func pointerTo[T any](v T) *T { return &v }

package propertypath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		id   string
		want Path
	}{
		{id: "property", want: Path{{Kind: FieldStep, Name: "property"}}},
		{id: "detail.property", want: Path{{Kind: FieldStep, Name: "detail"}, {Kind: FieldStep, Name: "property"}}},
		{id: "numbers[2]", want: Path{{Kind: FieldStep, Name: "numbers"}, {Kind: IndexStep, Index: 2}}},
		{id: "stringToInteger(id)", want: Path{{Kind: FieldStep, Name: "stringToInteger"}, {Kind: KeyStep, Key: "id"}}},
		{id: "m(a b.c)", want: Path{{Kind: FieldStep, Name: "m"}, {Kind: KeyStep, Key: "a b.c"}}},
		{id: "_x1", want: Path{{Kind: FieldStep, Name: "_x1"}}},
		{
			id: "detailList[1].moreDetails[0].property",
			want: Path{
				{Kind: FieldStep, Name: "detailList"},
				{Kind: IndexStep, Index: 1},
				{Kind: FieldStep, Name: "moreDetails"},
				{Kind: IndexStep, Index: 0},
				{Kind: FieldStep, Name: "property"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := Parse(tt.id)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.id, got.String(), "canonical String()")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		id      string
		wantPos int
	}{
		{id: ".a", wantPos: 0},
		{id: "a.", wantPos: 2},
		{id: "a..b", wantPos: 2},
		{id: "1a", wantPos: 0},
		{id: "a[", wantPos: 1},
		{id: "a[]", wantPos: 2},
		{id: "a[x]", wantPos: 2},
		{id: "a[-1]", wantPos: 2},
		{id: "a[+1]", wantPos: 2},
		{id: "a(", wantPos: 1},
		{id: "a()", wantPos: 2},
		{id: "a[1]b", wantPos: 4},
		{id: "a[1][2]", wantPos: 4},
		{id: "a-b", wantPos: 1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := Parse(tt.id)
			require.ErrorIs(t, err, ErrSyntax)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			require.Equal(t, tt.id, syntaxErr.Path)
			require.Equal(t, tt.wantPos, syntaxErr.Pos)
		})
	}

	_, err := Parse("")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestMustParse(t *testing.T) {
	require.Equal(t, Path{{Kind: FieldStep, Name: "age"}}, MustParse("age"))
	require.Panics(t, func() { MustParse("age[") })
}

func TestPath_IsSimple(t *testing.T) {
	require.True(t, MustParse("age").IsSimple())
	require.False(t, MustParse("detail.age").IsSimple())
	require.False(t, MustParse("numbers[0]").IsSimple())
	require.False(t, Path(nil).IsSimple())
}

package propertypath

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Assign assigns src to dst converting between types
// where a conversion is obvious:
//
//  1. An invalid src or a src implementing IsNull() bool returning true
//     assigns the zero value of dst.
//  2. Types convertible with reflect.Value.Convert are converted,
//     except numbers to strings which are formatted as decimals.
//     Numbers that would overflow or lose a fractional part
//     return a wrapped ErrLossyConversion.
//  3. A nil pointer src assigns the zero value of dst.
//  4. A string src is parsed as time.Time for time.Time destinations.
//  5. A string src is unmarshalled if dst implements encoding.TextUnmarshaler.
//  6. A non nil pointer src is dereferenced.
//  7. Booleans convert to and from numbers (1/0) and strings.
//  8. Strings are parsed as numbers.
//  9. Any src is formatted with fmt.Sprint for string destinations.
//  10. A pointer dst is allocated and src assigned to the pointed to value.
//
// Returns a wrapped errors.ErrUnsupported if no conversion is possible.
func Assign(dst, src reflect.Value) (err error) {
	if !dst.IsValid() {
		return errors.New("dst value is invalid")
	}
	if !dst.CanSet() {
		return fmt.Errorf("%w: can't set value of type %s", ErrReadOnly, dst.Type())
	}
	dstType := dst.Type()
	dstKind := dstType.Kind()
	if !src.IsValid() {
		dst.SetZero()
		return nil
	}
	srcType := src.Type()
	srcKind := srcType.Kind()

	if src.CanInterface() {
		if nullable, ok := src.Interface().(interface{ IsNull() bool }); ok && nullable.IsNull() {
			dst.SetZero()
			return nil
		}
	}

	if srcType.ConvertibleTo(dstType) && !(dstKind == reflect.String && isNumberKind(srcKind)) {
		// Converting a slice to an array pointer panics for too short slices
		if srcKind == reflect.Slice && dstKind == reflect.Pointer && dstType.Elem().Kind() == reflect.Array && src.Len() < dstType.Elem().Len() {
			return fmt.Errorf("can't convert slice of length %d to %s", src.Len(), dstType)
		}
		if srcKind == reflect.Slice && dstKind == reflect.Array && src.Len() < dstType.Len() {
			return fmt.Errorf("can't convert slice of length %d to %s", src.Len(), dstType)
		}
		if isNumberKind(srcKind) && isNumberKind(dstKind) {
			if err := checkNumberFits(dst, src); err != nil {
				return err
			}
		}
		dst.Set(src.Convert(dstType))
		return nil
	}

	if (srcKind == reflect.Pointer || srcKind == reflect.Interface) && src.IsNil() {
		dst.SetZero()
		return nil
	}

	if srcKind == reflect.String {
		if dstType == typeOfTime {
			t, err := parseTime(src.String())
			if err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(t))
			return nil
		}
		if dst.CanAddr() {
			if u, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
				return u.UnmarshalText([]byte(src.String()))
			}
		}
	}

	if srcKind == reflect.Pointer || srcKind == reflect.Interface {
		err := Assign(dst, src.Elem())
		if !errors.Is(err, errors.ErrUnsupported) {
			return err // nil or other than errors.ErrUnsupported
		}
	}

	switch dstKind {
	case reflect.Bool:
		switch {
		case srcKind == reflect.String:
			b, err := strconv.ParseBool(strings.TrimSpace(src.String()))
			if err != nil {
				return err
			}
			dst.SetBool(b)
			return nil
		case isIntKind(srcKind):
			dst.SetBool(src.Int() != 0)
			return nil
		case isUintKind(srcKind):
			dst.SetBool(src.Uint() != 0)
			return nil
		case isFloatKind(srcKind):
			dst.SetBool(src.Float() != 0)
			return nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch srcKind {
		case reflect.String:
			i, err := strconv.ParseInt(strings.TrimSpace(src.String()), 10, dstType.Bits())
			if err != nil {
				return err
			}
			dst.SetInt(i)
			return nil
		case reflect.Bool:
			dst.SetInt(boolToInt(src.Bool()))
			return nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch srcKind {
		case reflect.String:
			u, err := strconv.ParseUint(strings.TrimSpace(src.String()), 10, dstType.Bits())
			if err != nil {
				return err
			}
			dst.SetUint(u)
			return nil
		case reflect.Bool:
			dst.SetUint(uint64(boolToInt(src.Bool())))
			return nil
		}

	case reflect.Float32, reflect.Float64:
		switch srcKind {
		case reflect.String:
			f, err := strconv.ParseFloat(strings.TrimSpace(src.String()), dstType.Bits())
			if err != nil {
				return err
			}
			dst.SetFloat(f)
			return nil
		case reflect.Bool:
			dst.SetFloat(float64(boolToInt(src.Bool())))
			return nil
		}

	case reflect.String:
		if src.CanInterface() {
			dst.SetString(fmt.Sprint(src.Interface()))
			return nil
		}

	case reflect.Pointer:
		newDst := reflect.New(dstType.Elem())
		err = Assign(newDst.Elem(), src)
		if err == nil {
			dst.Set(newDst)
			return nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
	}

	return fmt.Errorf("%w: assigning %s to %s", errors.ErrUnsupported, srcType, dstType)
}

var typeOfTime = reflect.TypeFor[time.Time]()

var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"02.01.2006 15:04:05",
	"02.01.2006",
}

func parseTime(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, format := range timeFormats {
		if t, err := time.Parse(format, str); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("can't parse %q as time", str)
}

// checkNumberFits returns a wrapped ErrLossyConversion
// if the number src can't be converted to the type of dst
// without overflow or truncation of a fractional part.
func checkNumberFits(dst, src reflect.Value) error {
	dstKind := dst.Kind()
	lossy := false
	switch {
	case isIntKind(src.Kind()):
		i := src.Int()
		switch {
		case isIntKind(dstKind):
			lossy = dst.OverflowInt(i)
		case isUintKind(dstKind):
			lossy = i < 0 || dst.OverflowUint(uint64(i))
		}
	case isUintKind(src.Kind()):
		u := src.Uint()
		switch {
		case isIntKind(dstKind):
			lossy = u > math.MaxInt64 || dst.OverflowInt(int64(u))
		case isUintKind(dstKind):
			lossy = dst.OverflowUint(u)
		}
	case isFloatKind(src.Kind()):
		f := src.Float()
		switch {
		case isIntKind(dstKind):
			// -2^63 is exact as float64, 2^63 is the first value out of range
			lossy = f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 || dst.OverflowInt(int64(f))
		case isUintKind(dstKind):
			lossy = f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || dst.OverflowUint(uint64(f))
		case isFloatKind(dstKind):
			lossy = dst.OverflowFloat(f)
		}
	}
	if lossy {
		return fmt.Errorf("%w: %v to %s", ErrLossyConversion, src, dst.Type())
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumberKind(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || isFloatKind(k)
}

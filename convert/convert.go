// Package convert implements the argument coercion utility used by the wiring
// core for constructor argument matching and setter-value injection.
//
// ToTypes either produces a fully matching argument list or fails without
// partial application; callers never observe a half-coerced result.
package convert

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/c360/wirekit/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// ToTypes coerces values to the given target types, position by position.
// It returns a fully coerced argument list or an error; no partial result
// is ever returned.
func ToTypes(values []any, targets []reflect.Type) ([]any, error) {
	if len(values) != len(targets) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %d values for %d target types", errors.ErrNotCoercible, len(values), len(targets)),
			"convert", "ToTypes", "arity check")
	}

	coerced := make([]any, len(values))
	for i, value := range values {
		out, err := ToType(value, targets[i])
		if err != nil {
			return nil, err
		}
		coerced[i] = out
	}
	return coerced, nil
}

// ToType coerces a single value to the target type. Assignable values pass
// through untouched; strings parse into numeric, boolean and duration
// targets; numeric values convert when the conversion is exact.
func ToType(value any, target reflect.Type) (any, error) {
	if value == nil {
		switch target.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(target).Interface(), nil
		}
		return nil, notCoercible("nil", target)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(target) {
		return value, nil
	}

	// Strings parse into scalar targets.
	if v.Kind() == reflect.String {
		return fromString(v.String(), target)
	}

	switch target.Kind() {
	case reflect.String:
		return toString(v, target)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toInt(v, target)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return toUint(v, target)
	case reflect.Float32, reflect.Float64:
		return toFloat(v, target)
	}

	return nil, notCoercible(v.Type().String(), target)
}

func notCoercible(from string, target reflect.Type) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s to %s", errors.ErrNotCoercible, from, target),
		"convert", "ToType", "coercion")
}

func fromString(s string, target reflect.Type) (any, error) {
	// time.Duration before the generic int64 path so "5s" parses as a duration.
	if target == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, notCoercible(strconv.Quote(s), target)
		}
		return d, nil
	}

	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(s).Convert(target).Interface(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, notCoercible(strconv.Quote(s), target)
		}
		return reflect.ValueOf(b).Convert(target).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, target.Bits())
		if err != nil {
			return nil, notCoercible(strconv.Quote(s), target)
		}
		return reflect.ValueOf(n).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, target.Bits())
		if err != nil {
			return nil, notCoercible(strconv.Quote(s), target)
		}
		return reflect.ValueOf(n).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, target.Bits())
		if err != nil {
			return nil, notCoercible(strconv.Quote(s), target)
		}
		return reflect.ValueOf(f).Convert(target).Interface(), nil
	}

	return nil, notCoercible(strconv.Quote(s), target)
}

func toString(v reflect.Value, target reflect.Type) (any, error) {
	// Stringer first: named types like time.Duration have a numeric kind
	// but render through String().
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return reflect.ValueOf(s.String()).Convert(target).Interface(), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(strconv.FormatBool(v.Bool())).Convert(target).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(strconv.FormatInt(v.Int(), 10)).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(strconv.FormatUint(v.Uint(), 10)).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		bits := 64
		if v.Kind() == reflect.Float32 {
			bits = 32
		}
		return reflect.ValueOf(strconv.FormatFloat(v.Float(), 'g', -1, bits)).Convert(target).Interface(), nil
	}
	return nil, notCoercible(v.Type().String(), target)
}

func toInt(v reflect.Value, target reflect.Type) (any, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if reflect.Zero(target).OverflowInt(n) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(n).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 || reflect.Zero(target).OverflowInt(int64(u)) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(int64(u)).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		// Only exact integral values convert; NaN, Inf and fractions fail.
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, notCoercible(v.Type().String(), target)
		}
		n := int64(f)
		if float64(n) != f || reflect.Zero(target).OverflowInt(n) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(n).Convert(target).Interface(), nil
	}
	return nil, notCoercible(v.Type().String(), target)
}

func toUint(v reflect.Value, target reflect.Type) (any, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 || reflect.Zero(target).OverflowUint(uint64(n)) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(uint64(n)).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if reflect.Zero(target).OverflowUint(u) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(u).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 {
			return nil, notCoercible(v.Type().String(), target)
		}
		u := uint64(f)
		if float64(u) != f || reflect.Zero(target).OverflowUint(u) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(u).Convert(target).Interface(), nil
	}
	return nil, notCoercible(v.Type().String(), target)
}

func toFloat(v reflect.Value, target reflect.Type) (any, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(float64(v.Int())).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(float64(v.Uint())).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, notCoercible(v.Type().String(), target)
		}
		if target.Kind() == reflect.Float32 && reflect.Zero(target).OverflowFloat(f) {
			return nil, notCoercible(v.Type().String(), target)
		}
		return reflect.ValueOf(f).Convert(target).Interface(), nil
	}
	return nil, notCoercible(v.Type().String(), target)
}

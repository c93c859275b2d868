package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Convert stores src, a plain Go value (float64, string, bool or nil), into
// dst, converting between scalar kinds where the conversion is lossless
// enough to be unsurprising.
func Convert(src any, dst reflect.Value) error {
	if !dst.CanSet() {
		return errors.New("destination cannot be set")
	}
	if src == nil {
		switch dst.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func:
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return fmt.Errorf("cannot convert nil to %v", dst.Type())
	}
	switch dst.Kind() {
	case reflect.Interface:
		v := reflect.ValueOf(src)
		switch {
		case v.Type().AssignableTo(dst.Type()):
			dst.Set(v)
		case v.Type().ConvertibleTo(dst.Type()):
			dst.Set(v.Convert(dst.Type()))
		default:
			return fmt.Errorf("cannot use %T as %v", src, dst.Type())
		}
	case reflect.String:
		switch v := src.(type) {
		case string:
			dst.SetString(v)
		case fmt.Stringer:
			dst.SetString(v.String())
		default:
			dst.SetString(fmt.Sprintf("%v", v))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := src.(type) {
		case float64:
			if dst.OverflowInt(int64(v)) {
				return fmt.Errorf("%v overflows %v", v, dst.Type())
			}
			dst.SetInt(int64(v))
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			dst.SetInt(int64(n))
		default:
			return fmt.Errorf("cannot convert %v to int", src)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v := src.(type) {
		case float64:
			if v < 0 || dst.OverflowUint(uint64(v)) {
				return fmt.Errorf("%v overflows %v", v, dst.Type())
			}
			dst.SetUint(uint64(v))
		default:
			return fmt.Errorf("cannot convert %v to uint", src)
		}
	case reflect.Float32, reflect.Float64:
		switch v := src.(type) {
		case float64:
			dst.SetFloat(v)
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			dst.SetFloat(n)
		default:
			return fmt.Errorf("cannot convert %v to float", src)
		}
	case reflect.Bool:
		switch v := src.(type) {
		case bool:
			dst.SetBool(v)
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			dst.SetBool(b)
		default:
			return fmt.Errorf("cannot convert %v to bool", src)
		}
	default:
		return fmt.Errorf("unsupported destination type: %v", dst.Kind())
	}
	return nil
}

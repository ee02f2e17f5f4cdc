package value

import (
	"fmt"
	"reflect"
	"time"
)

// FromAny converts a loosely typed Go value into a Value. It covers
// the shapes that YAML decoding, JSON decoding, and flag parsing
// produce: primitives, time.Time, []any, and map[string]any. Other
// slices and string-keyed maps are handled reflectively; anything
// else falls back to its string form.
func FromAny(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return Text(v)
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case time.Time:
		return Date(v)
	case *time.Time:
		if v == nil {
			return Null()
		}
		return Date(*v)
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = FromAny(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = Text(item)
		}
		return List(items...)
	case map[string]any:
		fields := make(map[string]Value, len(v))
		for k, f := range v {
			fields[k] = FromAny(f)
		}
		return Record(fields)
	case map[string]string:
		fields := make(map[string]Value, len(v))
		for k, f := range v {
			fields[k] = Text(f)
		}
		return Record(fields)
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = FromAny(rv.Index(i).Interface())
		}
		return List(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = FromAny(iter.Value().Interface())
		}
		return Record(fields)
	}
	return Text(fmt.Sprint(rv.Interface()))
}

// Interface converts v back to a plain Go value suitable for JSON or
// YAML encoding. Dates become UTC ISO 8601 strings with millisecond
// precision; Null and Undefined both become nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindText:
		return v.s
	case KindDate:
		return v.t.UTC().Format("2006-01-02T15:04:05.000Z")
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindRecord:
		fields := make(map[string]any, len(v.rec))
		for k, f := range v.rec {
			fields[k] = f.Interface()
		}
		return fields
	default:
		return nil
	}
}

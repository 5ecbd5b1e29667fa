package pulse

import "reflect"

// shallowEquals is the engine's default equality: value equality for
// primitives, reference identity for composite values. Mutating a composite
// value in place and writing back the same reference compares equal and
// produces no notification; this is a documented limitation of shallow
// equality, not structural diffing.
func shallowEquals[T any](a, b T) bool {
	// The comma-ok assertions matter when T is an interface type: the two
	// sides may hold different dynamic types, which are never equal.
	switch av := any(a).(type) {
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int8:
		bv, ok := any(b).(int8)
		return ok && av == bv
	case int16:
		bv, ok := any(b).(int16)
		return ok && av == bv
	case int32:
		bv, ok := any(b).(int32)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case uint:
		bv, ok := any(b).(uint)
		return ok && av == bv
	case uint8:
		bv, ok := any(b).(uint8)
		return ok && av == bv
	case uint16:
		bv, ok := any(b).(uint16)
		return ok && av == bv
	case uint32:
		bv, ok := any(b).(uint32)
		return ok && av == bv
	case uint64:
		bv, ok := any(b).(uint64)
		return ok && av == bv
	case float32:
		bv, ok := any(b).(float32)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	default:
		return identityEquals(any(a), any(b))
	}
}

// shallowEqualsAny is shallowEquals over type-erased snapshot values.
// The scheduler uses it to compare a pending entry's queue-time and latest
// values during flush.
func shallowEqualsAny(a, b any) bool {
	return shallowEquals(a, b)
}

// identityEquals compares composite values by reference.
// Pointers, maps, slices, channels, and funcs are identical when they share
// the same referent; comparable value types fall back to ==.
func identityEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		// Same backing array, length, and capacity; a reslice is a
		// different value.
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	default:
		if va.Comparable() {
			return a == b
		}
		return false
	}
}

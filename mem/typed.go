package mem

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Reserve places a zeroed T in the arena and returns a pointer to it.
// T must not contain Go pointers.
func Reserve[T any](a *Arena) (*T, error) {
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		return nil, fmt.Errorf("%w: %s", ErrPointerType, t)
	}
	b, err := a.Reserve(int(t.Size()), t.Align())
	if err != nil {
		return nil, err
	}
	clear(b)
	if len(b) == 0 {
		return new(T), nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// ReserveSlice places n zeroed values of T contiguously in the arena.
// T must not contain Go pointers.
func ReserveSlice[T any](a *Arena, n int) ([]T, error) {
	if n < 0 {
		panic(fmt.Sprintf("mem: negative slice length %d", n))
	}
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		return nil, fmt.Errorf("%w: %s", ErrPointerType, t)
	}
	b, err := a.Reserve(int(t.Size())*n, t.Align())
	if err != nil {
		return nil, err
	}
	clear(b)
	if len(b) == 0 {
		return make([]T, n), nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// hasPointers reports whether values of t hold anything the garbage
// collector would need to trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

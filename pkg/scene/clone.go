package scene

import (
	"errors"
	"reflect"

	"github.com/qmuntal/gltf"
)

// Clone returns a deep copy of doc. Every pointer, slice, map and extension
// payload is duplicated, so edits to the copy never reach doc. Payloads are
// copied in their decoded form rather than re-encoded, which keeps values
// JSON cannot represent, such as the infinite range of a punctual light.
func Clone(doc *gltf.Document) (*gltf.Document, error) {
	if doc == nil {
		return nil, errors.New("clone gltf: nil document")
	}

	clone := new(gltf.Document)
	deepCopy(reflect.ValueOf(clone).Elem(), reflect.ValueOf(doc).Elem())
	return clone, nil
}

// deepCopy copies src into the settable dst. Unexported struct fields are
// copied by value.
func deepCopy(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return
		}
		p := reflect.New(src.Elem().Type())
		deepCopy(p.Elem(), src.Elem())
		dst.Set(p)
	case reflect.Interface:
		if src.IsNil() {
			return
		}
		v := reflect.New(src.Elem().Type()).Elem()
		deepCopy(v, src.Elem())
		dst.Set(v)
	case reflect.Struct:
		dst.Set(src)
		for i := range src.NumField() {
			if f := dst.Field(i); f.CanSet() {
				deepCopy(f, src.Field(i))
			}
		}
	case reflect.Slice:
		if src.IsNil() {
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			deepCopy(s.Index(i), src.Index(i))
		}
		dst.Set(s)
	case reflect.Array:
		for i := range src.Len() {
			deepCopy(dst.Index(i), src.Index(i))
		}
	case reflect.Map:
		if src.IsNil() {
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			v := reflect.New(src.Type().Elem()).Elem()
			deepCopy(v, iter.Value())
			m.SetMapIndex(iter.Key(), v)
		}
		dst.Set(m)
	default:
		dst.Set(src)
	}
}

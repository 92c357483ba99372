package dirichlet

import (
	"reflect"

	"github.com/probkit/dirmult/wire"
)

// Event enumerates the key types a distribution can be built over:
// strings (vocabulary terms), integers (category or token ids), or
// floats. Named types with these underlying kinds work too.
type Event interface {
	~string | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Events are encoded according to their kind: signed integers as
// varints, unsigned integers as uvarints, floats as fixed 8-byte
// values, and strings length-prefixed. The dispatch is by
// reflect.Kind so that named event types encode like their
// underlying type.

func encodeEvent[E Event](w *wire.Writer, ev E) error {
	rv := reflect.ValueOf(ev)
	switch rv.Kind() {
	case reflect.String:
		return w.String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.Varint(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return w.Uvarint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return w.Float64(rv.Float())
	}
	panic("dirichlet: unsupported event kind " + rv.Kind().String())
}

func decodeEvent[E Event](r *wire.Reader) (E, error) {
	var zero E
	rt := reflect.TypeOf(zero)
	rv := reflect.New(rt).Elem()
	switch rt.Kind() {
	case reflect.String:
		s, err := r.String()
		if err != nil {
			return zero, err
		}
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := r.Varint()
		if err != nil {
			return zero, err
		}
		rv.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := r.Uvarint()
		if err != nil {
			return zero, err
		}
		rv.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := r.Float64()
		if err != nil {
			return zero, err
		}
		rv.SetFloat(v)
	default:
		panic("dirichlet: unsupported event kind " + rt.Kind().String())
	}
	return rv.Interface().(E), nil
}

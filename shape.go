// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tdf

import (
	"fmt"
	"reflect"

	"github.com/blazekit/tdf/internal/debug"
	"github.com/blazekit/tdf/internal/xsync"
	"github.com/blazekit/tdf/internal/xunsafe"
)

// Codec is the encoder and decoder for one shape: a Go type that may appear
// as a list element, a map key or value, or the value of a composite member.
//
// Codecs are built once per shape by [CodecFor] and shared for the life of
// the process.
type Codec[T any] struct {
	// WireType is the wire type values of this shape are written with. It is
	// what list and map headers carry for their elements.
	WireType WireType

	encode func(ValueEncoder, T) error
	decode func(ValueDecoder, *T) error
}

// Encode writes v's payload to e.
func (c *Codec[T]) Encode(e ValueEncoder, v T) error { return c.encode(e, v) }

// Decode reads a payload from d into *dst. Records are decoded into the
// existing value if *dst is non-nil.
func (c *Codec[T]) Decode(d ValueDecoder, dst *T) error { return c.decode(d, dst) }

// shapeEntry is what the cache holds for a shape: a codec or a permanent
// failure.
type shapeEntry[T any] struct {
	codec *Codec[T]
	err   error
}

// shaper is implemented by generic containers, which can build their own
// codecs without reflection.
type shaper interface {
	shape() (any, error)
}

var (
	shapes = new(xsync.Map[reflect.Type, any])

	recordType = reflect.TypeFor[Record]()
	unionType  = reflect.TypeFor[UnionRecord]()
)

// CodecFor returns the codec for T, building it on first use.
//
// If T has no wire representation, the returned error is an
// [*UnsupportedTypeError]. Failures are cached like successes: every later
// call for the same T returns the same error.
//
// Supported shapes are:
//   - bool, every sized integer type and int/uint, and named types of those
//     (enums), as WireInt;
//   - float32 and named float32 types, as WireFloat;
//   - string and named string types, as WireString;
//   - []byte, as WireBlob;
//   - [ObjectType], [ObjectId] and [TimeValue];
//   - [Vec] and [OrderedMap] of supported shapes;
//   - pointers to types implementing [UnionRecord] or [Record].
func CodecFor[T any]() (*Codec[T], error) {
	rt := reflect.TypeFor[T]()
	v, _ := shapes.LoadOrStore(rt, func() any {
		c, err := resolve[T](rt)
		if debug.Enabled {
			debug.Log(nil, "resolve", "%v -> %v, %v", rt, c, err)
		}
		return &shapeEntry[T]{codec: c, err: err}
	})
	e := v.(*shapeEntry[T]) //nolint:errcheck
	return e.codec, e.err
}

// WireTypeOf returns the wire type of T's codec.
func WireTypeOf[T any]() (WireType, error) {
	c, err := CodecFor[T]()
	if err != nil {
		return WireUnknown, err
	}
	return c.WireType, nil
}

func resolve[T any](rt reflect.Type) (*Codec[T], error) {
	var zero T

	// Exact types first; named types with the same underlying type fall
	// through to the kind switch.
	var c any
	switch any(zero).(type) {
	case []byte:
		c = blobCodec
	case ObjectType:
		c = objectTypeCodec
	case ObjectId:
		c = objectIdCodec
	case TimeValue:
		c = timeValueCodec
	case shaper:
		sc, err := any(zero).(shaper).shape()
		if err != nil {
			return nil, err
		}
		c = sc
	}
	if c != nil {
		return c.(*Codec[T]), nil //nolint:errcheck
	}

	switch {
	case rt.Implements(unionType):
		return recordCodec[T](rt, WireUnion)
	case rt.Implements(recordType):
		return recordCodec[T](rt, WireStruct)
	}

	switch rt.Kind() {
	case reflect.Bool:
		return boolCodec[T](), nil
	case reflect.Int8:
		return intCodec[T, int8](), nil
	case reflect.Int16:
		return intCodec[T, int16](), nil
	case reflect.Int32:
		return intCodec[T, int32](), nil
	case reflect.Int64:
		return intCodec[T, int64](), nil
	case reflect.Int:
		return intCodec[T, int](), nil
	case reflect.Uint8:
		return intCodec[T, uint8](), nil
	case reflect.Uint16:
		return intCodec[T, uint16](), nil
	case reflect.Uint32:
		return intCodec[T, uint32](), nil
	case reflect.Uint64:
		return intCodec[T, uint64](), nil
	case reflect.Uint:
		return intCodec[T, uint](), nil
	case reflect.Float32:
		return floatCodec[T](), nil
	case reflect.String:
		return stringCodec[T](), nil
	case reflect.Slice:
		return nil, unsupported(rt, "lists must be tdf.Vec, blobs must be []byte")
	case reflect.Map:
		return nil, unsupported(rt, "maps must be tdf.OrderedMap")
	case reflect.Float64:
		return nil, unsupported(rt, "floats are 32-bit")
	default:
		return nil, unsupported(rt, "no wire type for kind "+rt.Kind().String())
	}
}

func unsupported(rt reflect.Type, reason string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Shape: rt.String(), Reason: reason}
}

var (
	blobCodec = &Codec[[]byte]{
		WireType: WireBlob,
		encode:   func(e ValueEncoder, v []byte) error { return e.EncodeBlob(v) },
		decode:   decodeScalar(ValueDecoder.DecodeBlob),
	}
	objectTypeCodec = &Codec[ObjectType]{
		WireType: WireObjectType,
		encode:   func(e ValueEncoder, v ObjectType) error { return e.EncodeObjectType(v) },
		decode:   decodeScalar(ValueDecoder.DecodeObjectType),
	}
	objectIdCodec = &Codec[ObjectId]{
		WireType: WireObjectId,
		encode:   func(e ValueEncoder, v ObjectId) error { return e.EncodeObjectId(v) },
		decode:   decodeScalar(ValueDecoder.DecodeObjectId),
	}
	timeValueCodec = &Codec[TimeValue]{
		WireType: WireTimeValue,
		encode:   func(e ValueEncoder, v TimeValue) error { return e.EncodeTimeValue(v) },
		decode:   decodeScalar(ValueDecoder.DecodeTimeValue),
	}
)

func decodeScalar[T any](read func(ValueDecoder) (T, error)) func(ValueDecoder, *T) error {
	return func(d ValueDecoder, dst *T) error {
		v, err := read(d)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

func boolCodec[T any]() *Codec[T] {
	return &Codec[T]{
		WireType: WireInt,
		encode: func(e ValueEncoder, v T) error {
			if xunsafe.BitCast[bool](v) {
				return e.EncodeInt(1)
			}
			return e.EncodeInt(0)
		},
		decode: func(d ValueDecoder, dst *T) error {
			x, err := d.DecodeInt()
			if err != nil {
				return err
			}
			*dst = xunsafe.BitCast[T](x != 0)
			return nil
		},
	}
}

// intCodec builds the codec for T, whose underlying type is I.
func intCodec[T any, I Integer]() *Codec[T] {
	debug.Assert(xunsafe.SameSize[T, I](), "%v is not the size of its underlying type", reflect.TypeFor[T]())
	return &Codec[T]{
		WireType: WireInt,
		encode: func(e ValueEncoder, v T) error {
			return e.EncodeInt(int64(xunsafe.BitCast[I](v)))
		},
		decode: func(d ValueDecoder, dst *T) error {
			x, err := d.DecodeInt()
			if err != nil {
				return err
			}
			// uint64 accepts every value: it is written as its int64 bits.
			if int64(I(x)) != x {
				d.Degrade(fmt.Errorf("%w: %d does not fit %v", ErrIntegerRange, x, reflect.TypeFor[T]()))
				return nil
			}
			*dst = xunsafe.BitCast[T](I(x))
			return nil
		},
	}
}

func floatCodec[T any]() *Codec[T] {
	return &Codec[T]{
		WireType: WireFloat,
		encode:   func(e ValueEncoder, v T) error { return e.EncodeFloat(xunsafe.BitCast[float32](v)) },
		decode: func(d ValueDecoder, dst *T) error {
			x, err := d.DecodeFloat()
			if err != nil {
				return err
			}
			*dst = xunsafe.BitCast[T](x)
			return nil
		},
	}
}

func stringCodec[T any]() *Codec[T] {
	return &Codec[T]{
		WireType: WireString,
		encode:   func(e ValueEncoder, v T) error { return e.EncodeString(xunsafe.BitCast[string](v)) },
		decode: func(d ValueDecoder, dst *T) error {
			x, err := d.DecodeString()
			if err != nil {
				return err
			}
			*dst = xunsafe.BitCast[T](x)
			return nil
		},
	}
}

func recordCodec[T any](rt reflect.Type, wire WireType) (*Codec[T], error) {
	if rt.Kind() != reflect.Pointer {
		return nil, unsupported(rt, "records must be pointers")
	}

	var zero T
	// T is a pointer type here, so comparing through any is a pointer
	// comparison.
	isNil := func(v T) bool { return any(v) == any(zero) }

	c := &Codec[T]{WireType: wire}
	if wire == WireUnion {
		c.encode = func(e ValueEncoder, v T) error {
			if isNil(v) {
				return e.EncodeUnion(nil)
			}
			return e.EncodeUnion(any(v).(UnionRecord)) //nolint:errcheck
		}
		c.decode = func(d ValueDecoder, dst *T) error {
			if isNil(*dst) {
				*dst = newRecord[T]()
			}
			return d.DecodeUnion(any(*dst).(UnionRecord)) //nolint:errcheck
		}
		return c, nil
	}

	c.encode = func(e ValueEncoder, v T) error {
		if isNil(v) {
			return e.EncodeRecord(nil)
		}
		return e.EncodeRecord(any(v).(Record)) //nolint:errcheck
	}
	c.decode = func(d ValueDecoder, dst *T) error {
		if isNil(*dst) {
			*dst = newRecord[T]()
		}
		return d.DecodeRecord(any(*dst).(Record)) //nolint:errcheck
	}
	return c, nil
}

func listCodec[T any]() (*Codec[Vec[T]], error) {
	elem, err := CodecFor[T]()
	if err != nil {
		return nil, unsupported(reflect.TypeFor[Vec[T]](), err.Error())
	}

	return &Codec[Vec[T]]{
		WireType: WireList,
		encode: func(e ValueEncoder, v Vec[T]) error {
			if err := e.EncodeListHeader(elem.WireType, len(v)); err != nil {
				return err
			}
			for _, x := range v {
				if err := elem.encode(e, x); err != nil {
					return err
				}
			}
			return nil
		},
		decode: func(d ValueDecoder, dst *Vec[T]) error {
			n, err := d.DecodeListHeader(elem.WireType)
			if err != nil {
				return err
			}
			// n comes off the wire; do not trust it for preallocation.
			out := make(Vec[T], 0, min(n, maxPrealloc))
			defer func() { *dst = out }()
			for range n {
				var x T
				err := elem.decode(d, &x)
				out = append(out, x)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

func mapCodec[K comparable, V any]() (*Codec[OrderedMap[K, V]], error) {
	key, err := CodecFor[K]()
	if err != nil {
		return nil, unsupported(reflect.TypeFor[OrderedMap[K, V]](), "key: "+err.Error())
	}
	value, err := CodecFor[V]()
	if err != nil {
		return nil, unsupported(reflect.TypeFor[OrderedMap[K, V]](), "value: "+err.Error())
	}

	return &Codec[OrderedMap[K, V]]{
		WireType: WireMap,
		encode: func(e ValueEncoder, m OrderedMap[K, V]) error {
			if err := e.EncodeMapHeader(key.WireType, value.WireType, m.Len()); err != nil {
				return err
			}
			for k, v := range m.All() {
				if err := key.encode(e, k); err != nil {
					return err
				}
				if err := value.encode(e, v); err != nil {
					return err
				}
			}
			return nil
		},
		decode: func(d ValueDecoder, dst *OrderedMap[K, V]) error {
			n, err := d.DecodeMapHeader(key.WireType, value.WireType)
			if err != nil {
				return err
			}
			var out OrderedMap[K, V]
			defer func() { *dst = out }()
			for range n {
				var (
					k K
					v V
				)
				if err := key.decode(d, &k); err != nil {
					return err
				}
				err := value.decode(d, &v)
				out.Set(k, v)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}, nil
}

const maxPrealloc = 1024

// Package tensor provides the host-side types shared by the compute backends:
// element kinds, shapes and the plain host data container used at transfer
// boundaries.
package tensor

import (
	"fmt"
	"unsafe"
)

// Element is the constraint for element types a compute kernel can store.
// Every element is 4 bytes wide, which is what WGSL storage arrays support
// without extensions.
type Element interface {
	float32 | int32 | uint32
}

// Float is the constraint for floating point element kinds.
type Float interface {
	float32
}

// Int is the constraint for integer element kinds.
type Int interface {
	int32 | uint32
}

// DType is a constraint for every host-side value type, including bool
// which never reaches the device as-is.
type DType interface {
	float32 | int32 | uint32 | bool
}

// DataType represents runtime type information for elements.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Int32
	Uint32
	Bool
)

// Size returns the byte size of the data type as stored on the device.
// Booleans are stored as 0/1 uint32 values.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32, Uint32, Bool:
		return 4
	default:
		panic("unknown data type")
	}
}

// WGSL returns the scalar type name used to specialize kernel templates.
func (dt DataType) WGSL() string {
	switch dt {
	case Float32:
		return "f32"
	case Int32:
		return "i32"
	case Uint32, Bool:
		return "u32"
	default:
		panic(fmt.Sprintf("data type %d has no WGSL representation", dt))
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType of the element type E.
func DataTypeOf[E Element]() DataType {
	var zero E
	switch any(zero).(type) {
	case float32:
		return Float32
	case int32:
		return Int32
	case uint32:
		return Uint32
	default:
		panic("unsupported element type")
	}
}

// SizeOf returns the byte width of E.
func SizeOf[E DType]() int {
	var zero E
	return int(unsafe.Sizeof(zero))
}

// AsBytes reinterprets a slice of elements as its little-endian byte view.
// The returned slice aliases values.
func AsBytes[E Element](values []E) []byte {
	if len(values) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion, length derived from values
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*SizeOf[E]())
}

// FromBytes copies raw device bytes into a new slice of n elements.
func FromBytes[E Element](data []byte, n int) []E {
	out := make([]E, n)
	if n == 0 {
		return out
	}
	copy(AsBytes(out), data[:n*SizeOf[E]()])
	return out
}

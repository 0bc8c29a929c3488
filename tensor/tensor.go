// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
)

// Type aliases for public API

// Element is the constraint for element types a device tensor can hold.
type Element = tensor.Element

// Float is the constraint for floating point element types.
type Float = tensor.Float

// Int is the constraint for integer element types.
type Int = tensor.Int

// DType is the constraint for host data element types, including bool.
type DType = tensor.DType

// DataType identifies an element type at runtime.
type DataType = tensor.DataType

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Data is a host-side buffer in row-major order together with its shape.
type Data[E DType] = tensor.Data[E]

// Data type constants.
const (
	Float32 = tensor.Float32
	Int32   = tensor.Int32
	Uint32  = tensor.Uint32
	Bool    = tensor.Bool
)

// NewData creates host data, checking that the number of values matches the shape.
func NewData[E DType](value []E, shape Shape) (Data[E], error) {
	return tensor.NewData(value, shape)
}

// Filled creates host data with every element set to v.
func Filled[E DType](shape Shape, v E) Data[E] {
	return tensor.Filled(shape, v)
}

// Convert converts every element of d to To.
func Convert[To, From Element](d Data[From]) Data[To] {
	return tensor.Convert[To](d)
}

// EncodeBool stores booleans as 0 and 1.
func EncodeBool[I Int](d Data[bool]) Data[I] {
	return tensor.EncodeBool[I](d)
}

// DecodeBool reads non-zero values as true.
func DecodeBool[I Int](d Data[I]) Data[bool] {
	return tensor.DecodeBool(d)
}

// DataTypeOf returns the runtime data type of E.
func DataTypeOf[E Element]() DataType {
	return tensor.DataTypeOf[E]()
}

// BroadcastShapes computes the result shape of broadcasting a and b.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// ApproxEqual compares two float or integer data buffers element by
// element up to precision decimal places.
func ApproxEqual[E Element](got, want Data[E], precision int) error {
	return tensor.ApproxEqual(got, want, precision)
}

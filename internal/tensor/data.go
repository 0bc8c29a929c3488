package tensor

import (
	"fmt"
	"math"
)

// Data is the host-resident content of a tensor: a flat row-major element
// sequence plus its shape.
type Data[E DType] struct {
	Value []E
	Shape Shape
}

// NewData creates host data, checking that the value count matches the shape.
func NewData[E DType](value []E, shape Shape) (Data[E], error) {
	if err := shape.Validate(); err != nil {
		return Data[E]{}, err
	}
	if shape.NumElements() != len(value) {
		return Data[E]{}, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(value))
	}
	return Data[E]{Value: value, Shape: shape.Clone()}, nil
}

// Filled returns host data of the given shape with every element set to v.
func Filled[E DType](shape Shape, v E) Data[E] {
	value := make([]E, shape.NumElements())
	for i := range value {
		value[i] = v
	}
	return Data[E]{Value: value, Shape: shape.Clone()}
}

// Convert converts every element to another numeric type.
func Convert[To, From Element](d Data[From]) Data[To] {
	value := make([]To, len(d.Value))
	for i, v := range d.Value {
		value[i] = To(v)
	}
	return Data[To]{Value: value, Shape: d.Shape.Clone()}
}

// EncodeBool maps true/false to 1/0 using the integer type I.
func EncodeBool[I Int](d Data[bool]) Data[I] {
	value := make([]I, len(d.Value))
	for i, v := range d.Value {
		if v {
			value[i] = 1
		}
	}
	return Data[I]{Value: value, Shape: d.Shape.Clone()}
}

// DecodeBool maps every non-zero element to true.
func DecodeBool[I Int](d Data[I]) Data[bool] {
	value := make([]bool, len(d.Value))
	for i, v := range d.Value {
		value[i] = v != 0
	}
	return Data[bool]{Value: value, Shape: d.Shape.Clone()}
}

// ApproxEqual reports whether both data have the same shape and every pair
// of elements differs by at most 10^-precision.
func ApproxEqual[E Element](got, want Data[E], precision int) error {
	if !got.Shape.Equal(want.Shape) {
		return fmt.Errorf("shape mismatch: got %v, want %v", got.Shape, want.Shape)
	}
	if len(got.Value) != len(want.Value) {
		return fmt.Errorf("length mismatch: got %d, want %d", len(got.Value), len(want.Value))
	}
	tolerance := math.Pow(10, -float64(precision))
	for i := range got.Value {
		diff := math.Abs(float64(got.Value[i]) - float64(want.Value[i]))
		if diff > tolerance || math.IsNaN(diff) {
			return fmt.Errorf("value mismatch at index %d: got %v, want %v (diff: %g)", i, got.Value[i], want.Value[i], diff)
		}
	}
	return nil
}

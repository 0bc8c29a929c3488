package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// Add returns lhs + rhs with broadcasting.
func Add[E tensor.Element](lhs, rhs *Tensor[E]) (*Tensor[E], error) {
	return binaryElemwise(opAdd, lhs, rhs)
}

// Sub returns lhs - rhs with broadcasting.
func Sub[E tensor.Element](lhs, rhs *Tensor[E]) (*Tensor[E], error) {
	return binaryElemwise(opSub, lhs, rhs)
}

// Mul returns lhs * rhs with broadcasting.
func Mul[E tensor.Element](lhs, rhs *Tensor[E]) (*Tensor[E], error) {
	return binaryElemwise(opMul, lhs, rhs)
}

// Div returns lhs / rhs with broadcasting.
func Div[E tensor.Element](lhs, rhs *Tensor[E]) (*Tensor[E], error) {
	return binaryElemwise(opDiv, lhs, rhs)
}

// AddScalar adds rhs to every element.
func AddScalar[E tensor.Element](lhs *Tensor[E], rhs E) (*Tensor[E], error) {
	return scalarElemwise(opAdd, lhs, rhs)
}

// SubScalar subtracts rhs from every element.
func SubScalar[E tensor.Element](lhs *Tensor[E], rhs E) (*Tensor[E], error) {
	return scalarElemwise(opSub, lhs, rhs)
}

// MulScalar multiplies every element by rhs.
func MulScalar[E tensor.Element](lhs *Tensor[E], rhs E) (*Tensor[E], error) {
	return scalarElemwise(opMul, lhs, rhs)
}

// DivScalar divides every element by rhs.
func DivScalar[E tensor.Element](lhs *Tensor[E], rhs E) (*Tensor[E], error) {
	return scalarElemwise(opDiv, lhs, rhs)
}

// Zeros allocates a zero-filled tensor.
func Zeros[E tensor.Element](shape tensor.Shape, device Device) (*Tensor[E], error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "zeros: %v", err)
	}
	ctx, err := GetContext(device)
	if err != nil {
		return nil, err
	}
	return zeros[E](ctx, shape)
}

// Ones allocates a tensor filled with ones.
func Ones[E tensor.Element](shape tensor.Shape, device Device) (*Tensor[E], error) {
	t, err := Zeros[E](shape, device)
	if err != nil {
		return nil, err
	}
	out, err := AddScalar(t, 1)
	if err != nil {
		t.Release()
		return nil, err
	}
	return out, nil
}

// Mean returns the average of all elements as a one-element tensor.
func Mean[E tensor.Element](t *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	n := t.NumElements()

	sum, err := Sum(t)
	if err != nil {
		return nil, err
	}
	out, err := DivScalar(sum, E(n))
	if err != nil {
		sum.Release()
		return nil, err
	}
	return out, nil
}

package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// compare evaluates op between two tensors of the same shape. When lhs is
// the sole owner of its buffer the 0/1 result overwrites it and the buffer
// is handed over to the boolean tensor.
func compare[E tensor.Element](op binaryOp, lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	lhs.mustBeLive()
	rhs.mustBeLive()
	if err := sameContext(op.name, lhs, rhs); err != nil {
		return nil, err
	}
	if lhs.Rank() != rhs.Rank() {
		return nil, errors.Wrapf(ErrRankMismatch, "%s: %v vs %v", op.name, lhs.shape, rhs.shape)
	}
	if !lhs.shape.Equal(rhs.shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: %v vs %v", op.name, lhs.shape, rhs.shape)
	}

	ctx := lhs.ctx
	elem := tensor.DataTypeOf[E]()
	workgroup := elemwiseWorkgroup(lhs.NumElements(), workgroupSize)

	if lhs.CanMut() && lhs.buffer != rhs.buffer {
		if err := ctx.dispatch(op.settings("comparison_inplace", elem), workgroup, nil, lhs.buffer, rhs.buffer); err != nil {
			return nil, err
		}
		rhs.Release()
		return moveTo[uint32](lhs, lhs.shape), nil
	}

	out, err := empty[uint32](ctx, lhs.shape)
	if err != nil {
		return nil, err
	}
	if err := ctx.dispatch(op.settings("comparison", elem), workgroup, nil, lhs.buffer, rhs.buffer, out.buffer); err != nil {
		out.Release()
		return nil, err
	}

	lhs.Release()
	rhs.Release()
	return out, nil
}

// compareElem evaluates op between every element of lhs and rhs.
func compareElem[E tensor.Element](op binaryOp, lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	lhs.mustBeLive()
	ctx := lhs.ctx
	elem := tensor.DataTypeOf[E]()
	workgroup := elemwiseWorkgroup(lhs.NumElements(), workgroupSize)

	scalar, err := scalarBuffer(ctx, rhs)
	if err != nil {
		return nil, err
	}
	defer scalar.Release()

	if lhs.CanMut() {
		if err := ctx.dispatch(op.settings("comparison_elem_inplace", elem), workgroup, nil, lhs.buffer, scalar); err != nil {
			return nil, err
		}
		return moveTo[uint32](lhs, lhs.shape), nil
	}

	out, err := empty[uint32](ctx, lhs.shape)
	if err != nil {
		return nil, err
	}
	if err := ctx.dispatch(op.settings("comparison_elem", elem), workgroup, nil, lhs.buffer, scalar, out.buffer); err != nil {
		out.Release()
		return nil, err
	}

	lhs.Release()
	return out, nil
}

// Equal compares two tensors elementwise.
func Equal[E tensor.Element](lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	return compare(opEqual, lhs, rhs)
}

// EqualElem compares every element with a scalar.
func EqualElem[E tensor.Element](lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	return compareElem(opEqual, lhs, rhs)
}

// Greater returns lhs > rhs elementwise.
func Greater[E tensor.Element](lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	return compare(opGreater, lhs, rhs)
}

// GreaterElem returns lhs > rhs for every element.
func GreaterElem[E tensor.Element](lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	return compareElem(opGreater, lhs, rhs)
}

// GreaterEqual returns lhs >= rhs elementwise.
func GreaterEqual[E tensor.Element](lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	return compare(opGreaterEqual, lhs, rhs)
}

// GreaterEqualElem returns lhs >= rhs for every element.
func GreaterEqualElem[E tensor.Element](lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	return compareElem(opGreaterEqual, lhs, rhs)
}

// Lower returns lhs < rhs elementwise.
func Lower[E tensor.Element](lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	return compare(opLower, lhs, rhs)
}

// LowerElem returns lhs < rhs for every element.
func LowerElem[E tensor.Element](lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	return compareElem(opLower, lhs, rhs)
}

// LowerEqual returns lhs <= rhs elementwise.
func LowerEqual[E tensor.Element](lhs, rhs *Tensor[E]) (*BoolTensor, error) {
	return compare(opLowerEqual, lhs, rhs)
}

// LowerEqualElem returns lhs <= rhs for every element.
func LowerEqualElem[E tensor.Element](lhs *Tensor[E], rhs E) (*BoolTensor, error) {
	return compareElem(opLowerEqual, lhs, rhs)
}

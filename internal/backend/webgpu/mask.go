package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

func checkSameShape(op string, shape, other tensor.Shape) error {
	if len(shape) != len(other) {
		return errors.Wrapf(ErrRankMismatch, "%s: %v vs %v", op, shape, other)
	}
	if !shape.Equal(other) {
		return errors.Wrapf(ErrShapeMismatch, "%s: %v vs %v", op, shape, other)
	}
	return nil
}

// MaskWhere selects value where mask is set and t elsewhere.
func MaskWhere[E tensor.Element](t *Tensor[E], mask *BoolTensor, value *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	mask.mustBeLive()
	value.mustBeLive()
	if err := sameContext("mask where", t, value); err != nil {
		return nil, err
	}
	if mask.ctx != t.ctx {
		return nil, errors.Wrapf(ErrDeviceMismatch, "mask where: mask on %s, tensor on %s", mask.ctx.device, t.ctx.device)
	}
	if err := checkSameShape("mask where", t.shape, mask.shape); err != nil {
		return nil, err
	}
	if err := checkSameShape("mask where", t.shape, value.shape); err != nil {
		return nil, err
	}

	target, copied, err := writable(t, mask.buffer, value.buffer)
	if err != nil {
		return nil, err
	}
	err = t.ctx.dispatch(
		elemwiseSettings("mask_where_inplace", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(t.NumElements(), workgroupSize),
		nil,
		target.buffer, mask.buffer, value.buffer,
	)
	if err != nil {
		if copied {
			target.Release()
		}
		return nil, err
	}

	if copied {
		t.Release()
	}
	mask.Release()
	value.Release()
	return target, nil
}

// MaskFill sets every element where mask is set to value.
func MaskFill[E tensor.Element](t *Tensor[E], mask *BoolTensor, value E) (*Tensor[E], error) {
	t.mustBeLive()
	mask.mustBeLive()
	if mask.ctx != t.ctx {
		return nil, errors.Wrapf(ErrDeviceMismatch, "mask fill: mask on %s, tensor on %s", mask.ctx.device, t.ctx.device)
	}
	if err := checkSameShape("mask fill", t.shape, mask.shape); err != nil {
		return nil, err
	}

	scalar, err := scalarBuffer(t.ctx, value)
	if err != nil {
		return nil, err
	}
	defer scalar.Release()

	target, copied, err := writable(t, mask.buffer)
	if err != nil {
		return nil, err
	}
	err = t.ctx.dispatch(
		elemwiseSettings("mask_fill_inplace", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(t.NumElements(), workgroupSize),
		nil,
		target.buffer, mask.buffer, scalar,
	)
	if err != nil {
		if copied {
			target.Release()
		}
		return nil, err
	}

	if copied {
		t.Release()
	}
	mask.Release()
	return target, nil
}

// checkIndices validates an index tensor used along dim of a tensor of
// shape: same rank, and no larger than shape outside dim.
func checkIndices(op string, shape, indices tensor.Shape, dim int) error {
	if len(shape) != len(indices) {
		return errors.Wrapf(ErrRankMismatch, "%s: indices %v for tensor %v", op, indices, shape)
	}
	if dim < 0 || dim >= len(shape) {
		return errors.Wrapf(ErrInvalidDim, "%s: dimension %d for rank %d", op, dim, len(shape))
	}
	for d := range shape {
		if d != dim && indices[d] > shape[d] {
			return errors.Wrapf(ErrShapeMismatch, "%s: indices %v exceed tensor %v in dimension %d", op, indices, shape, d)
		}
	}
	return nil
}

// Gather reads t along dim at the positions given by indices. The output has
// the shape of indices.
func Gather[E tensor.Element, I tensor.Int](dim int, t *Tensor[E], indices *Tensor[I]) (*Tensor[E], error) {
	t.mustBeLive()
	indices.mustBeLive()
	if indices.ctx != t.ctx {
		return nil, errors.Wrapf(ErrDeviceMismatch, "gather: indices on %s, tensor on %s", indices.ctx.device, t.ctx.device)
	}
	if err := checkIndices("gather", t.shape, indices.shape, dim); err != nil {
		return nil, err
	}

	out, err := empty[E](t.ctx, indices.shape)
	if err != nil {
		return nil, err
	}

	settings := elemwiseSettings("gather", tensor.DataTypeOf[E]())
	settings.Int = tensor.DataTypeOf[I]()

	info := buildInfo(t, indices)
	info = append(info, uint32(dim)) //nolint:gosec // G115: dim is bounded by the rank

	err = t.ctx.dispatch(settings, elemwiseWorkgroup(out.NumElements(), workgroupSize), info, t.buffer, indices.buffer, out.buffer)
	if err != nil {
		out.Release()
		return nil, err
	}

	t.Release()
	indices.Release()
	return out, nil
}

// Scatter adds values into t along dim at the positions given by indices.
// Repeated positions accumulate.
func Scatter[E tensor.Element, I tensor.Int](dim int, t *Tensor[E], indices *Tensor[I], values *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	indices.mustBeLive()
	values.mustBeLive()
	if err := sameContext("scatter", t, values); err != nil {
		return nil, err
	}
	if indices.ctx != t.ctx {
		return nil, errors.Wrapf(ErrDeviceMismatch, "scatter: indices on %s, tensor on %s", indices.ctx.device, t.ctx.device)
	}
	if err := checkIndices("scatter", t.shape, indices.shape, dim); err != nil {
		return nil, err
	}
	if err := checkSameShape("scatter", indices.shape, values.shape); err != nil {
		return nil, err
	}

	lanes := 0
	if extent := indices.shape[dim]; extent > 0 {
		lanes = indices.NumElements() / extent
	}

	target, copied, err := writable(t, values.buffer, indices.buffer)
	if err != nil {
		return nil, err
	}

	settings := elemwiseSettings("scatter_inplace", tensor.DataTypeOf[E]())
	settings.Int = tensor.DataTypeOf[I]()

	info := buildInfo(target, indices)
	//nolint:gosec // G115: dim and lanes are non-negative
	info = append(info, uint32(dim), uint32(lanes))

	err = t.ctx.dispatch(settings, elemwiseWorkgroup(lanes, workgroupSize), info, target.buffer, values.buffer, indices.buffer)
	if err != nil {
		if copied {
			target.Release()
		}
		return nil, err
	}

	if copied {
		t.Release()
	}
	indices.Release()
	values.Release()
	return target, nil
}

package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// catShape validates the inputs of Cat and returns the output shape.
// Every offending input is reported.
func catShape[E tensor.Element](tensors []*Tensor[E], dim int) (tensor.Shape, error) {
	if len(tensors) == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "cat")
	}
	first := tensors[0]
	if dim < 0 || dim >= first.Rank() {
		return nil, errors.Wrapf(ErrInvalidDim, "cat: dimension %d for rank %d", dim, first.Rank())
	}

	shape := first.shape.Clone()
	shape[dim] = 0

	var err error
	for i, t := range tensors {
		if t.ctx != first.ctx {
			err = multierr.Append(err, errors.Wrapf(ErrDeviceMismatch, "cat: input %d on %s, want %s", i, t.ctx.device, first.ctx.device))
			continue
		}
		if t.Rank() != first.Rank() {
			err = multierr.Append(err, errors.Wrapf(ErrRankMismatch, "cat: input %d has shape %v, want rank %d", i, t.shape, first.Rank()))
			continue
		}
		for d := range t.shape {
			if d != dim && t.shape[d] != first.shape[d] {
				err = multierr.Append(err, errors.Wrapf(ErrShapeMismatch, "cat: input %d has shape %v, want %v outside dimension %d", i, t.shape, first.shape, dim))
				break
			}
		}
		shape[dim] += t.shape[dim]
	}
	if err != nil {
		return nil, err
	}
	return shape, nil
}

// Cat concatenates tensors along dim. Each input is copied into the output
// by its own dispatch at a running offset along dim.
func Cat[E tensor.Element](tensors []*Tensor[E], dim int) (*Tensor[E], error) {
	for _, t := range tensors {
		t.mustBeLive()
	}
	shape, err := catShape(tensors, dim)
	if err != nil {
		return nil, err
	}

	ctx := tensors[0].ctx
	out, err := empty[E](ctx, shape)
	if err != nil {
		return nil, err
	}

	settings := elemwiseSettings("cat", tensor.DataTypeOf[E]())
	offset := 0
	for _, t := range tensors {
		info := buildInfo(t, out)
		//nolint:gosec // G115: dim and offset are bounded by the output shape
		info = append(info, uint32(dim), uint32(offset))

		err = ctx.dispatch(settings, elemwiseWorkgroup(t.NumElements(), workgroupSize), info, t.buffer, out.buffer)
		if err != nil {
			out.Release()
			return nil, err
		}
		offset += t.shape[dim]
	}

	for _, t := range tensors {
		t.Release()
	}
	return out, nil
}

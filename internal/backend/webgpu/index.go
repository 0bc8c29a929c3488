package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// Range is the half-open interval [Start, End) along one dimension.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// resolveRanges checks ranges against shape and fills missing trailing
// dimensions with their full extent.
func resolveRanges(op string, shape tensor.Shape, ranges []Range) ([]Range, error) {
	if len(ranges) > len(shape) {
		return nil, errors.Wrapf(ErrRankMismatch, "%s: %d ranges for rank %d", op, len(ranges), len(shape))
	}

	resolved := make([]Range, len(shape))
	for i, dim := range shape {
		r := Range{Start: 0, End: dim}
		if i < len(ranges) {
			r = ranges[i]
		}
		if r.Start < 0 || r.Start > r.End || r.End > dim {
			return nil, errors.Wrapf(ErrOutOfBounds, "%s: range [%d, %d) in dimension %d of size %d", op, r.Start, r.End, i, dim)
		}
		resolved[i] = r
	}
	return resolved, nil
}

func rangesShape(ranges []Range) tensor.Shape {
	shape := make(tensor.Shape, len(ranges))
	for i, r := range ranges {
		shape[i] = r.Len()
	}
	return shape
}

func appendStarts(info []uint32, ranges []Range) []uint32 {
	for _, r := range ranges {
		info = append(info, uint32(r.Start)) //nolint:gosec // G115: starts are validated non-negative
	}
	return info
}

// Index extracts the sub-tensor addressed by ranges, one per leading
// dimension.
func Index[E tensor.Element](t *Tensor[E], ranges []Range) (*Tensor[E], error) {
	t.mustBeLive()
	resolved, err := resolveRanges("index", t.shape, ranges)
	if err != nil {
		return nil, err
	}

	out, err := empty[E](t.ctx, rangesShape(resolved))
	if err != nil {
		return nil, err
	}

	err = t.ctx.dispatch(
		elemwiseSettings("index", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(out.NumElements(), workgroupSize),
		appendStarts(buildInfo(t, out), resolved),
		t.buffer, out.buffer,
	)
	if err != nil {
		out.Release()
		return nil, err
	}

	t.Release()
	return out, nil
}

// IndexAssign writes value into the region of t addressed by ranges. The
// write happens in place only when t is the sole owner of its buffer; other
// handles on the same buffer never observe it.
func IndexAssign[E tensor.Element](t *Tensor[E], ranges []Range, value *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	value.mustBeLive()
	if err := sameContext("index assign", t, value); err != nil {
		return nil, err
	}

	resolved, err := resolveRanges("index assign", t.shape, ranges)
	if err != nil {
		return nil, err
	}
	if region := rangesShape(resolved); !region.Equal(value.shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "index assign: region %v, value %v", region, value.shape)
	}

	target, copied, err := writable(t, value.buffer)
	if err != nil {
		return nil, err
	}

	err = t.ctx.dispatch(
		elemwiseSettings("index_assign_inplace", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(value.NumElements(), workgroupSize),
		appendStarts(buildInfo(target, value), resolved),
		target.buffer, value.buffer,
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
	value.Release()
	return target, nil
}

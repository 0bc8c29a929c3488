package webgpu

import (
	"fmt"

	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// reduceWorkgroupSize is the number of elements summed by one workgroup of
// the recursive reduction. It must be a power of two.
const reduceWorkgroupSize = 256

// Sum adds all elements into a one-element tensor of shape [1]. Each pass
// reduces chunks of reduceWorkgroupSize elements to one partial sum until a
// single value remains.
func Sum[E tensor.Element](t *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	ctx := t.ctx
	n := t.NumElements()

	if n == 0 {
		out, err := zeros[E](ctx, tensor.Shape{1})
		if err != nil {
			return nil, err
		}
		t.Release()
		return out, nil
	}
	if n == 1 {
		return moveTo[E](t, tensor.Shape{1}), nil
	}

	settings := KernelSettings{
		Template:   "recursive_sum",
		Elem:       tensor.DataTypeOf[E](),
		WorkgroupX: reduceWorkgroupSize,
		WorkgroupY: 1,
		WorkgroupZ: 1,
	}

	input := t.buffer
	for n > 1 {
		groups := ceilDiv(n, reduceWorkgroupSize)
		output, err := ctx.allocate(byteSize[E](groups))
		if err == nil {
			err = ctx.dispatch(settings, linearWorkgroup(groups), nil, input, output)
			if err != nil {
				output.Release()
			}
		}
		if input != t.buffer {
			input.Release()
		}
		if err != nil {
			return nil, err
		}
		input = output
		n = groups
	}

	t.Release()
	return newTensor[E](ctx, tensor.Shape{1}, input), nil
}

// reduceDim dispatches a reduction along dim. The output keeps the rank of
// t with dim collapsed to 1.
func reduceDim[O, E tensor.Element](t *Tensor[E], dim int, settings KernelSettings) (*Tensor[O], error) {
	t.mustBeLive()
	if dim < 0 || dim >= t.Rank() {
		return nil, errors.Wrapf(ErrInvalidDim, "%s: dimension %d for rank %d", settings.Op, dim, t.Rank())
	}

	shape := t.shape.Clone()
	shape[dim] = 1

	out, err := empty[O](t.ctx, shape)
	if err != nil {
		return nil, err
	}

	info := buildInfo(t, out)
	info = append(info, uint32(dim)) //nolint:gosec // G115: dim is bounded by the rank

	err = t.ctx.dispatch(settings, elemwiseWorkgroup(out.NumElements(), workgroupSize), info, t.buffer, out.buffer)
	if err != nil {
		out.Release()
		return nil, err
	}

	t.Release()
	return out, nil
}

func sumDimSettings(op string, elem tensor.DataType, assign string) KernelSettings {
	settings := elemwiseSettings("reduction_dim", elem)
	settings.Op = op
	settings.Replacements = []Replacement{{Placeholder: "{{ assign }}", Value: assign}}
	return settings
}

// SumDim sums along dim.
func SumDim[E tensor.Element](t *Tensor[E], dim int) (*Tensor[E], error) {
	elem := tensor.DataTypeOf[E]()
	return reduceDim[E](t, dim, sumDimSettings("sum", elem, "output[id] = sum;"))
}

// MeanDim averages along dim.
func MeanDim[E tensor.Element](t *Tensor[E], dim int) (*Tensor[E], error) {
	elem := tensor.DataTypeOf[E]()
	assign := fmt.Sprintf("output[id] = sum / %s(shape_dim);", elem.WGSL())
	return reduceDim[E](t, dim, sumDimSettings("mean", elem, assign))
}

func argSettings[E, I tensor.Element](op, cmp string) KernelSettings {
	settings := elemwiseSettings("reduction_args_dim", tensor.DataTypeOf[E]())
	settings.Op = op
	settings.Int = tensor.DataTypeOf[I]()
	settings.Replacements = []Replacement{{Placeholder: "{{ cmp }}", Value: cmp}}
	return settings
}

// ArgMax returns the index of the largest element along dim. Ties resolve
// to the first index.
func ArgMax[E tensor.Element, I tensor.Int](t *Tensor[E], dim int) (*Tensor[I], error) {
	return reduceDim[I](t, dim, argSettings[E, I]("argmax", ">"))
}

// ArgMin returns the index of the smallest element along dim. Ties resolve
// to the first index.
func ArgMin[E tensor.Element, I tensor.Int](t *Tensor[E], dim int) (*Tensor[I], error) {
	return reduceDim[I](t, dim, argSettings[E, I]("argmin", "<"))
}

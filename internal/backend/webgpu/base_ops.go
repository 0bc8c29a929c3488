package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// Empty allocates a tensor whose contents are unspecified.
func Empty[E tensor.Element](shape tensor.Shape, device Device) (*Tensor[E], error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "empty: %v", err)
	}
	ctx, err := GetContext(device)
	if err != nil {
		return nil, err
	}
	return empty[E](ctx, shape)
}

func empty[E tensor.Element](ctx *Context, shape tensor.Shape) (*Tensor[E], error) {
	buffer, err := ctx.allocate(byteSize[E](shape.NumElements()))
	if err != nil {
		return nil, err
	}
	return newTensor[E](ctx, shape, buffer), nil
}

func zeros[E tensor.Element](ctx *Context, shape tensor.Shape) (*Tensor[E], error) {
	buffer, err := ctx.CreateBuffer(byteSize[E](shape.NumElements()))
	if err != nil {
		return nil, err
	}
	return newTensor[E](ctx, shape, buffer), nil
}

// FromData uploads host data to device.
func FromData[E tensor.Element](data tensor.Data[E], device Device) (*Tensor[E], error) {
	if err := data.Shape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "from data: %v", err)
	}
	if n := data.Shape.NumElements(); n != len(data.Value) {
		return nil, errors.Wrapf(ErrShapeMismatch, "from data: shape %v needs %d elements, got %d", data.Shape, n, len(data.Value))
	}

	ctx, err := GetContext(device)
	if err != nil {
		return nil, err
	}
	buffer, err := ctx.CreateBufferWithData(tensor.AsBytes(data.Value))
	if err != nil {
		return nil, err
	}
	return newTensor[E](ctx, data.Shape, buffer), nil
}

// IntoData reads the tensor back to the host. It blocks until every
// dispatch writing the tensor has completed.
func IntoData[E tensor.Element](t *Tensor[E]) (tensor.Data[E], error) {
	t.mustBeLive()

	raw, err := t.ctx.Read(t.buffer)
	if err != nil {
		return tensor.Data[E]{}, err
	}
	data := tensor.Data[E]{
		Value: tensor.FromBytes[E](raw, t.NumElements()),
		Shape: t.shape.Clone(),
	}
	t.Release()
	return data, nil
}

// Reshape returns a handle of another shape on the same buffer.
func Reshape[E tensor.Element](t *Tensor[E], shape tensor.Shape) (*Tensor[E], error) {
	t.mustBeLive()
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "reshape: %v", err)
	}
	if shape.NumElements() != t.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "reshape: %v to %v changes the number of elements", t.shape, shape)
	}
	return moveTo[E](t, shape), nil
}

// ToDevice moves the tensor to another device through the host. A tensor
// already on device is returned as is.
func ToDevice[E tensor.Element](t *Tensor[E], device Device) (*Tensor[E], error) {
	t.mustBeLive()
	if t.ctx.device == device {
		return t, nil
	}

	clone := t.Clone()
	data, err := IntoData(clone)
	if err != nil {
		clone.Release()
		return nil, err
	}
	out, err := FromData(data, device)
	if err != nil {
		return nil, err
	}

	t.Release()
	return out, nil
}

// Copy returns a tensor with its own copy of t's contents.
func Copy[E tensor.Element](t *Tensor[E]) (*Tensor[E], error) {
	t.mustBeLive()
	out, err := copyTensor(t)
	if err != nil {
		return nil, err
	}
	t.Release()
	return out, nil
}

// copyTensor copies t into a new buffer without consuming t.
func copyTensor[E tensor.Element](t *Tensor[E]) (*Tensor[E], error) {
	buffer, err := t.ctx.copyBuffer(t.buffer)
	if err != nil {
		return nil, err
	}
	return newTensor[E](t.ctx, t.shape, buffer), nil
}

// Cast converts every element to another element type. Casting to the same
// type returns t unchanged.
func Cast[To, From tensor.Element](t *Tensor[From]) (*Tensor[To], error) {
	t.mustBeLive()
	from, to := tensor.DataTypeOf[From](), tensor.DataTypeOf[To]()
	if from == to {
		return moveTo[To](t, t.shape), nil
	}

	out, err := empty[To](t.ctx, t.shape)
	if err != nil {
		return nil, err
	}

	settings := elemwiseSettings("cast", from)
	settings.Op = to.WGSL()
	settings.Replacements = []Replacement{{Placeholder: "{{ output }}", Value: to.WGSL()}}

	err = t.ctx.dispatch(settings, elemwiseWorkgroup(t.NumElements(), workgroupSize), nil, t.buffer, out.buffer)
	if err != nil {
		out.Release()
		return nil, err
	}

	t.Release()
	return out, nil
}

// writable returns a handle on t's contents that may be written in place:
// t itself when it is the sole owner of a buffer not shared with any of
// others, else a copy. The second result reports whether a copy was made,
// in which case t is left to the caller.
func writable[E tensor.Element](t *Tensor[E], others ...*Buffer) (*Tensor[E], bool, error) {
	if t.CanMut() {
		shared := false
		for _, b := range others {
			shared = shared || b == t.buffer
		}
		if !shared {
			return t, false, nil
		}
	}
	out, err := copyTensor(t)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

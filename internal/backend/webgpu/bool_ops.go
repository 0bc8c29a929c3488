package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
)

// Boolean tensors store true and false as 1 and 0 in uint32 elements.

// BoolEmpty allocates a boolean tensor with unspecified contents.
func (b *Backend[F, I]) BoolEmpty(shape tensor.Shape, device Device) (*BoolTensor, error) {
	return Empty[uint32](shape, device)
}

// BoolFromData encodes host booleans as 0/1 and uploads them.
func (b *Backend[F, I]) BoolFromData(data tensor.Data[bool], device Device) (*BoolTensor, error) {
	return FromData(tensor.EncodeBool[uint32](data), device)
}

// BoolIntoData reads the tensor back and decodes it into host booleans.
func (b *Backend[F, I]) BoolIntoData(t *BoolTensor) (tensor.Data[bool], error) {
	data, err := IntoData(t)
	if err != nil {
		return tensor.Data[bool]{}, err
	}
	return tensor.DecodeBool(data), nil
}

// BoolShape returns the shape of t without consuming it.
func (b *Backend[F, I]) BoolShape(t *BoolTensor) tensor.Shape {
	return t.Shape()
}

// BoolDevice returns the device of t without consuming it.
func (b *Backend[F, I]) BoolDevice(t *BoolTensor) Device {
	return t.Device()
}

// BoolClone returns a second handle on t's buffer.
func (b *Backend[F, I]) BoolClone(t *BoolTensor) *BoolTensor {
	return t.Clone()
}

// BoolToDevice moves t to device.
func (b *Backend[F, I]) BoolToDevice(t *BoolTensor, device Device) (*BoolTensor, error) {
	return ToDevice(t, device)
}

// BoolReshape changes the shape of t.
func (b *Backend[F, I]) BoolReshape(t *BoolTensor, shape tensor.Shape) (*BoolTensor, error) {
	return Reshape(t, shape)
}

// BoolIndex extracts a sub-tensor.
func (b *Backend[F, I]) BoolIndex(t *BoolTensor, ranges []Range) (*BoolTensor, error) {
	return Index(t, ranges)
}

// BoolIndexAssign writes value into a sub-tensor.
func (b *Backend[F, I]) BoolIndexAssign(t *BoolTensor, ranges []Range, value *BoolTensor) (*BoolTensor, error) {
	return IndexAssign(t, ranges, value)
}

// BoolCat concatenates tensors along dim.
func (b *Backend[F, I]) BoolCat(tensors []*BoolTensor, dim int) (*BoolTensor, error) {
	return Cat(tensors, dim)
}

// BoolEqual compares two boolean tensors elementwise.
func (b *Backend[F, I]) BoolEqual(lhs, rhs *BoolTensor) (*BoolTensor, error) {
	return Equal(lhs, rhs)
}

// BoolEqualElem compares every element with rhs.
func (b *Backend[F, I]) BoolEqualElem(lhs *BoolTensor, rhs bool) (*BoolTensor, error) {
	var encoded uint32
	if rhs {
		encoded = 1
	}
	return EqualElem(lhs, encoded)
}

// BoolIntoInt converts booleans to 0/1 integers. When I has the width of
// the boolean storage the buffer is reinterpreted without any dispatch.
func (b *Backend[F, I]) BoolIntoInt(t *BoolTensor) (*IntTensor[I], error) {
	t.mustBeLive()
	if tensor.SizeOf[I]() == tensor.SizeOf[uint32]() {
		return moveTo[I](t, t.shape), nil
	}

	clone := t.Clone()
	data, err := IntoData(clone)
	if err != nil {
		clone.Release()
		return nil, err
	}
	out, err := FromData(tensor.Convert[I](data), t.ctx.device)
	if err != nil {
		return nil, err
	}
	t.Release()
	return out, nil
}

// BoolIntoFloat converts booleans to 0/1 floats.
func (b *Backend[F, I]) BoolIntoFloat(t *BoolTensor) (*FloatTensor[F], error) {
	return Cast[F](t)
}

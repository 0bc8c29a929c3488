package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// IntEmpty allocates an integer tensor with unspecified contents.
func (b *Backend[F, I]) IntEmpty(shape tensor.Shape, device Device) (*IntTensor[I], error) {
	return Empty[I](shape, device)
}

// IntZeros allocates a zero-filled integer tensor.
func (b *Backend[F, I]) IntZeros(shape tensor.Shape, device Device) (*IntTensor[I], error) {
	return Zeros[I](shape, device)
}

// IntOnes allocates an integer tensor filled with ones.
func (b *Backend[F, I]) IntOnes(shape tensor.Shape, device Device) (*IntTensor[I], error) {
	return Ones[I](shape, device)
}

// IntFromData uploads host data.
func (b *Backend[F, I]) IntFromData(data tensor.Data[I], device Device) (*IntTensor[I], error) {
	return FromData(data, device)
}

// IntIntoData reads the tensor back to the host.
func (b *Backend[F, I]) IntIntoData(t *IntTensor[I]) (tensor.Data[I], error) {
	return IntoData(t)
}

// IntShape returns the shape of t without consuming it.
func (b *Backend[F, I]) IntShape(t *IntTensor[I]) tensor.Shape {
	return t.Shape()
}

// IntDevice returns the device of t without consuming it.
func (b *Backend[F, I]) IntDevice(t *IntTensor[I]) Device {
	return t.Device()
}

// IntClone returns a second handle on t's buffer.
func (b *Backend[F, I]) IntClone(t *IntTensor[I]) *IntTensor[I] {
	return t.Clone()
}

// IntToDevice moves t to device.
func (b *Backend[F, I]) IntToDevice(t *IntTensor[I], device Device) (*IntTensor[I], error) {
	return ToDevice(t, device)
}

// IntReshape changes the shape of t.
func (b *Backend[F, I]) IntReshape(t *IntTensor[I], shape tensor.Shape) (*IntTensor[I], error) {
	return Reshape(t, shape)
}

// IntIndex extracts a sub-tensor.
func (b *Backend[F, I]) IntIndex(t *IntTensor[I], ranges []Range) (*IntTensor[I], error) {
	return Index(t, ranges)
}

// IntIndexAssign writes value into a sub-tensor.
func (b *Backend[F, I]) IntIndexAssign(t *IntTensor[I], ranges []Range, value *IntTensor[I]) (*IntTensor[I], error) {
	return IndexAssign(t, ranges, value)
}

// IntCat concatenates tensors along dim.
func (b *Backend[F, I]) IntCat(tensors []*IntTensor[I], dim int) (*IntTensor[I], error) {
	return Cat(tensors, dim)
}

// IntAdd returns lhs + rhs.
func (b *Backend[F, I]) IntAdd(lhs, rhs *IntTensor[I]) (*IntTensor[I], error) {
	return Add(lhs, rhs)
}

// IntSub returns lhs - rhs.
func (b *Backend[F, I]) IntSub(lhs, rhs *IntTensor[I]) (*IntTensor[I], error) {
	return Sub(lhs, rhs)
}

// IntMul returns lhs * rhs.
func (b *Backend[F, I]) IntMul(lhs, rhs *IntTensor[I]) (*IntTensor[I], error) {
	return Mul(lhs, rhs)
}

// IntDiv returns lhs / rhs.
func (b *Backend[F, I]) IntDiv(lhs, rhs *IntTensor[I]) (*IntTensor[I], error) {
	return Div(lhs, rhs)
}

// IntAddScalar returns lhs + rhs.
func (b *Backend[F, I]) IntAddScalar(lhs *IntTensor[I], rhs I) (*IntTensor[I], error) {
	return AddScalar(lhs, rhs)
}

// IntSubScalar returns lhs - rhs.
func (b *Backend[F, I]) IntSubScalar(lhs *IntTensor[I], rhs I) (*IntTensor[I], error) {
	return SubScalar(lhs, rhs)
}

// IntMulScalar returns lhs * rhs.
func (b *Backend[F, I]) IntMulScalar(lhs *IntTensor[I], rhs I) (*IntTensor[I], error) {
	return MulScalar(lhs, rhs)
}

// IntDivScalar returns lhs / rhs.
func (b *Backend[F, I]) IntDivScalar(lhs *IntTensor[I], rhs I) (*IntTensor[I], error) {
	return DivScalar(lhs, rhs)
}

// IntSum adds all elements.
func (b *Backend[F, I]) IntSum(t *IntTensor[I]) (*IntTensor[I], error) {
	return Sum(t)
}

// IntSumDim sums along dim.
func (b *Backend[F, I]) IntSumDim(t *IntTensor[I], dim int) (*IntTensor[I], error) {
	return SumDim(t, dim)
}

// IntMean averages all elements.
func (b *Backend[F, I]) IntMean(t *IntTensor[I]) (*IntTensor[I], error) {
	return Mean(t)
}

// IntMeanDim averages along dim.
func (b *Backend[F, I]) IntMeanDim(t *IntTensor[I], dim int) (*IntTensor[I], error) {
	return MeanDim(t, dim)
}

// IntArgMax returns the index of the largest element along dim.
func (b *Backend[F, I]) IntArgMax(t *IntTensor[I], dim int) (*IntTensor[I], error) {
	return ArgMax[I, I](t, dim)
}

// IntArgMin returns the index of the smallest element along dim.
func (b *Backend[F, I]) IntArgMin(t *IntTensor[I], dim int) (*IntTensor[I], error) {
	return ArgMin[I, I](t, dim)
}

// IntEqual compares two tensors elementwise.
func (b *Backend[F, I]) IntEqual(lhs, rhs *IntTensor[I]) (*BoolTensor, error) {
	return Equal(lhs, rhs)
}

// IntEqualElem compares every element with rhs.
func (b *Backend[F, I]) IntEqualElem(lhs *IntTensor[I], rhs I) (*BoolTensor, error) {
	return EqualElem(lhs, rhs)
}

// IntGreater returns lhs > rhs.
func (b *Backend[F, I]) IntGreater(lhs, rhs *IntTensor[I]) (*BoolTensor, error) {
	return Greater(lhs, rhs)
}

// IntGreaterElem returns lhs > rhs.
func (b *Backend[F, I]) IntGreaterElem(lhs *IntTensor[I], rhs I) (*BoolTensor, error) {
	return GreaterElem(lhs, rhs)
}

// IntGreaterEqual returns lhs >= rhs.
func (b *Backend[F, I]) IntGreaterEqual(lhs, rhs *IntTensor[I]) (*BoolTensor, error) {
	return GreaterEqual(lhs, rhs)
}

// IntGreaterEqualElem returns lhs >= rhs.
func (b *Backend[F, I]) IntGreaterEqualElem(lhs *IntTensor[I], rhs I) (*BoolTensor, error) {
	return GreaterEqualElem(lhs, rhs)
}

// IntLower returns lhs < rhs.
func (b *Backend[F, I]) IntLower(lhs, rhs *IntTensor[I]) (*BoolTensor, error) {
	return Lower(lhs, rhs)
}

// IntLowerElem returns lhs < rhs.
func (b *Backend[F, I]) IntLowerElem(lhs *IntTensor[I], rhs I) (*BoolTensor, error) {
	return LowerElem(lhs, rhs)
}

// IntLowerEqual returns lhs <= rhs.
func (b *Backend[F, I]) IntLowerEqual(lhs, rhs *IntTensor[I]) (*BoolTensor, error) {
	return LowerEqual(lhs, rhs)
}

// IntLowerEqualElem returns lhs <= rhs.
func (b *Backend[F, I]) IntLowerEqualElem(lhs *IntTensor[I], rhs I) (*BoolTensor, error) {
	return LowerEqualElem(lhs, rhs)
}

// IntMaskWhere selects value where mask is set.
func (b *Backend[F, I]) IntMaskWhere(t *IntTensor[I], mask *BoolTensor, value *IntTensor[I]) (*IntTensor[I], error) {
	return MaskWhere(t, mask, value)
}

// IntMaskFill sets masked elements to value.
func (b *Backend[F, I]) IntMaskFill(t *IntTensor[I], mask *BoolTensor, value I) (*IntTensor[I], error) {
	return MaskFill(t, mask, value)
}

// IntGather reads t along dim at indices.
func (b *Backend[F, I]) IntGather(dim int, t *IntTensor[I], indices *IntTensor[I]) (*IntTensor[I], error) {
	return Gather(dim, t, indices)
}

// IntScatter adds values into t along dim at indices.
func (b *Backend[F, I]) IntScatter(dim int, t *IntTensor[I], indices *IntTensor[I], values *IntTensor[I]) (*IntTensor[I], error) {
	return Scatter(dim, t, indices, values)
}

// IntIntoFloat converts every element to F.
func (b *Backend[F, I]) IntIntoFloat(t *IntTensor[I]) (*FloatTensor[F], error) {
	return Cast[F](t)
}

// IntIndexSelectDim has no GPU kernel yet and panics with ErrNotImplemented.
func (b *Backend[F, I]) IntIndexSelectDim(t *IntTensor[I], dim int, indices *IntTensor[I]) (*IntTensor[I], error) {
	panic(errors.Wrap(ErrNotImplemented, "int index select dim"))
}

// IntIndexSelectDimAssign has no GPU kernel yet and panics with ErrNotImplemented.
func (b *Backend[F, I]) IntIndexSelectDimAssign(t *IntTensor[I], dim int, indices, value *IntTensor[I]) (*IntTensor[I], error) {
	panic(errors.Wrap(ErrNotImplemented, "int index select dim assign"))
}

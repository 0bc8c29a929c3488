package webgpu

import "github.com/born-ml/tensorgpu/internal/tensor"

// FloatEmpty allocates a float tensor with unspecified contents.
func (b *Backend[F, I]) FloatEmpty(shape tensor.Shape, device Device) (*FloatTensor[F], error) {
	return Empty[F](shape, device)
}

// FloatZeros allocates a zero-filled float tensor.
func (b *Backend[F, I]) FloatZeros(shape tensor.Shape, device Device) (*FloatTensor[F], error) {
	return Zeros[F](shape, device)
}

// FloatOnes allocates a float tensor filled with ones.
func (b *Backend[F, I]) FloatOnes(shape tensor.Shape, device Device) (*FloatTensor[F], error) {
	return Ones[F](shape, device)
}

// FloatFromData uploads host data.
func (b *Backend[F, I]) FloatFromData(data tensor.Data[F], device Device) (*FloatTensor[F], error) {
	return FromData(data, device)
}

// FloatIntoData reads the tensor back to the host.
func (b *Backend[F, I]) FloatIntoData(t *FloatTensor[F]) (tensor.Data[F], error) {
	return IntoData(t)
}

// FloatShape returns the shape of t without consuming it.
func (b *Backend[F, I]) FloatShape(t *FloatTensor[F]) tensor.Shape {
	return t.Shape()
}

// FloatDevice returns the device of t without consuming it.
func (b *Backend[F, I]) FloatDevice(t *FloatTensor[F]) Device {
	return t.Device()
}

// FloatClone returns a second handle on t's buffer.
func (b *Backend[F, I]) FloatClone(t *FloatTensor[F]) *FloatTensor[F] {
	return t.Clone()
}

// FloatToDevice moves t to device.
func (b *Backend[F, I]) FloatToDevice(t *FloatTensor[F], device Device) (*FloatTensor[F], error) {
	return ToDevice(t, device)
}

// FloatReshape changes the shape of t.
func (b *Backend[F, I]) FloatReshape(t *FloatTensor[F], shape tensor.Shape) (*FloatTensor[F], error) {
	return Reshape(t, shape)
}

// FloatIndex extracts a sub-tensor.
func (b *Backend[F, I]) FloatIndex(t *FloatTensor[F], ranges []Range) (*FloatTensor[F], error) {
	return Index(t, ranges)
}

// FloatIndexAssign writes value into a sub-tensor.
func (b *Backend[F, I]) FloatIndexAssign(t *FloatTensor[F], ranges []Range, value *FloatTensor[F]) (*FloatTensor[F], error) {
	return IndexAssign(t, ranges, value)
}

// FloatCat concatenates tensors along dim.
func (b *Backend[F, I]) FloatCat(tensors []*FloatTensor[F], dim int) (*FloatTensor[F], error) {
	return Cat(tensors, dim)
}

// FloatAdd returns lhs + rhs.
func (b *Backend[F, I]) FloatAdd(lhs, rhs *FloatTensor[F]) (*FloatTensor[F], error) {
	return Add(lhs, rhs)
}

// FloatSub returns lhs - rhs.
func (b *Backend[F, I]) FloatSub(lhs, rhs *FloatTensor[F]) (*FloatTensor[F], error) {
	return Sub(lhs, rhs)
}

// FloatMul returns lhs * rhs.
func (b *Backend[F, I]) FloatMul(lhs, rhs *FloatTensor[F]) (*FloatTensor[F], error) {
	return Mul(lhs, rhs)
}

// FloatDiv returns lhs / rhs.
func (b *Backend[F, I]) FloatDiv(lhs, rhs *FloatTensor[F]) (*FloatTensor[F], error) {
	return Div(lhs, rhs)
}

// FloatAddScalar returns lhs + rhs.
func (b *Backend[F, I]) FloatAddScalar(lhs *FloatTensor[F], rhs F) (*FloatTensor[F], error) {
	return AddScalar(lhs, rhs)
}

// FloatSubScalar returns lhs - rhs.
func (b *Backend[F, I]) FloatSubScalar(lhs *FloatTensor[F], rhs F) (*FloatTensor[F], error) {
	return SubScalar(lhs, rhs)
}

// FloatMulScalar returns lhs * rhs.
func (b *Backend[F, I]) FloatMulScalar(lhs *FloatTensor[F], rhs F) (*FloatTensor[F], error) {
	return MulScalar(lhs, rhs)
}

// FloatDivScalar returns lhs / rhs.
func (b *Backend[F, I]) FloatDivScalar(lhs *FloatTensor[F], rhs F) (*FloatTensor[F], error) {
	return DivScalar(lhs, rhs)
}

// FloatSum adds all elements.
func (b *Backend[F, I]) FloatSum(t *FloatTensor[F]) (*FloatTensor[F], error) {
	return Sum(t)
}

// FloatSumDim sums along dim.
func (b *Backend[F, I]) FloatSumDim(t *FloatTensor[F], dim int) (*FloatTensor[F], error) {
	return SumDim(t, dim)
}

// FloatMean averages all elements.
func (b *Backend[F, I]) FloatMean(t *FloatTensor[F]) (*FloatTensor[F], error) {
	return Mean(t)
}

// FloatMeanDim averages along dim.
func (b *Backend[F, I]) FloatMeanDim(t *FloatTensor[F], dim int) (*FloatTensor[F], error) {
	return MeanDim(t, dim)
}

// FloatArgMax returns the index of the largest element along dim.
func (b *Backend[F, I]) FloatArgMax(t *FloatTensor[F], dim int) (*IntTensor[I], error) {
	return ArgMax[F, I](t, dim)
}

// FloatArgMin returns the index of the smallest element along dim.
func (b *Backend[F, I]) FloatArgMin(t *FloatTensor[F], dim int) (*IntTensor[I], error) {
	return ArgMin[F, I](t, dim)
}

// FloatEqual compares two tensors elementwise.
func (b *Backend[F, I]) FloatEqual(lhs, rhs *FloatTensor[F]) (*BoolTensor, error) {
	return Equal(lhs, rhs)
}

// FloatEqualElem compares every element with rhs.
func (b *Backend[F, I]) FloatEqualElem(lhs *FloatTensor[F], rhs F) (*BoolTensor, error) {
	return EqualElem(lhs, rhs)
}

// FloatGreater returns lhs > rhs.
func (b *Backend[F, I]) FloatGreater(lhs, rhs *FloatTensor[F]) (*BoolTensor, error) {
	return Greater(lhs, rhs)
}

// FloatGreaterElem returns lhs > rhs.
func (b *Backend[F, I]) FloatGreaterElem(lhs *FloatTensor[F], rhs F) (*BoolTensor, error) {
	return GreaterElem(lhs, rhs)
}

// FloatGreaterEqual returns lhs >= rhs.
func (b *Backend[F, I]) FloatGreaterEqual(lhs, rhs *FloatTensor[F]) (*BoolTensor, error) {
	return GreaterEqual(lhs, rhs)
}

// FloatGreaterEqualElem returns lhs >= rhs.
func (b *Backend[F, I]) FloatGreaterEqualElem(lhs *FloatTensor[F], rhs F) (*BoolTensor, error) {
	return GreaterEqualElem(lhs, rhs)
}

// FloatLower returns lhs < rhs.
func (b *Backend[F, I]) FloatLower(lhs, rhs *FloatTensor[F]) (*BoolTensor, error) {
	return Lower(lhs, rhs)
}

// FloatLowerElem returns lhs < rhs.
func (b *Backend[F, I]) FloatLowerElem(lhs *FloatTensor[F], rhs F) (*BoolTensor, error) {
	return LowerElem(lhs, rhs)
}

// FloatLowerEqual returns lhs <= rhs.
func (b *Backend[F, I]) FloatLowerEqual(lhs, rhs *FloatTensor[F]) (*BoolTensor, error) {
	return LowerEqual(lhs, rhs)
}

// FloatLowerEqualElem returns lhs <= rhs.
func (b *Backend[F, I]) FloatLowerEqualElem(lhs *FloatTensor[F], rhs F) (*BoolTensor, error) {
	return LowerEqualElem(lhs, rhs)
}

// FloatMaskWhere selects value where mask is set.
func (b *Backend[F, I]) FloatMaskWhere(t *FloatTensor[F], mask *BoolTensor, value *FloatTensor[F]) (*FloatTensor[F], error) {
	return MaskWhere(t, mask, value)
}

// FloatMaskFill sets masked elements to value.
func (b *Backend[F, I]) FloatMaskFill(t *FloatTensor[F], mask *BoolTensor, value F) (*FloatTensor[F], error) {
	return MaskFill(t, mask, value)
}

// FloatGather reads t along dim at indices.
func (b *Backend[F, I]) FloatGather(dim int, t *FloatTensor[F], indices *IntTensor[I]) (*FloatTensor[F], error) {
	return Gather(dim, t, indices)
}

// FloatScatter adds values into t along dim at indices.
func (b *Backend[F, I]) FloatScatter(dim int, t *FloatTensor[F], indices *IntTensor[I], values *FloatTensor[F]) (*FloatTensor[F], error) {
	return Scatter(dim, t, indices, values)
}

// FloatIntoInt truncates every element toward zero.
func (b *Backend[F, I]) FloatIntoInt(t *FloatTensor[F]) (*IntTensor[I], error) {
	return Cast[I](t)
}

package webgpu

import (
	"fmt"

	"github.com/born-ml/tensorgpu/internal/tensor"
)

// Tensor is a handle on a device buffer: a shape, a shared buffer reference
// and the context owning the buffer.
//
// Operations consume their tensor arguments: after a successful call the
// handles passed in must not be used again, and the result is the only
// handle the caller owns. Clone a handle first to keep using it. On error
// the arguments are left untouched and still owned by the caller.
type Tensor[E tensor.Element] struct {
	ctx     *Context
	shape   tensor.Shape
	strides []int
	buffer  *Buffer
}

// FloatTensor is the float element kind.
type FloatTensor[F tensor.Float] = Tensor[F]

// IntTensor is the integer element kind.
type IntTensor[I tensor.Int] = Tensor[I]

// BoolTensor is the boolean element kind, stored as 0/1 uint32 values.
type BoolTensor = Tensor[uint32]

// newTensor wraps buffer in a new handle. The handle adopts the caller's
// reference to buffer.
func newTensor[E tensor.Element](ctx *Context, shape tensor.Shape, buffer *Buffer) *Tensor[E] {
	shape = shape.Clone()
	return &Tensor[E]{
		ctx:     ctx,
		shape:   shape,
		strides: shape.ComputeStrides(),
		buffer:  buffer,
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[E]) Shape() tensor.Shape {
	t.mustBeLive()
	return t.shape.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor[E]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor[E]) NumElements() int {
	return t.shape.NumElements()
}

// Device returns the device the tensor lives on.
func (t *Tensor[E]) Device() Device {
	t.mustBeLive()
	return t.ctx.device
}

// Context returns the compute context owning the tensor's buffer.
func (t *Tensor[E]) Context() *Context {
	return t.ctx
}

// Buffer returns the underlying shared buffer.
func (t *Tensor[E]) Buffer() *Buffer {
	return t.buffer
}

// Clone returns a second handle on the same buffer.
func (t *Tensor[E]) Clone() *Tensor[E] {
	t.mustBeLive()
	t.buffer.Retain()
	return newTensor[E](t.ctx, t.shape, t.buffer)
}

// Release drops the handle's reference to its buffer. Releasing a handle
// twice is a no-op.
func (t *Tensor[E]) Release() {
	if t.buffer == nil {
		return
	}
	t.buffer.Release()
	t.buffer = nil
}

// IsReleased reports whether the handle was consumed or released.
func (t *Tensor[E]) IsReleased() bool {
	return t.buffer == nil
}

// CanMut reports whether the handle is the sole owner of its buffer, which
// makes an in-place write unobservable by any other handle.
func (t *Tensor[E]) CanMut() bool {
	return t.buffer != nil && t.buffer.IsUnique()
}

// CanMutBroadcast reports whether the result of a broadcast elementwise
// operation with other can be written into t's buffer: t must be the sole
// owner, must not share its buffer with other, and must already have the
// broadcast shape.
func (t *Tensor[E]) CanMutBroadcast(other *Tensor[E]) bool {
	if !t.CanMut() || t.buffer == other.buffer {
		return false
	}
	if len(t.shape) != len(other.shape) {
		return false
	}
	for i := range t.shape {
		// Output tensor will be different from the mutable tensor.
		if t.shape[i] < other.shape[i] {
			return false
		}
	}
	return true
}

// String describes the handle without reading the device.
func (t *Tensor[E]) String() string {
	if t.buffer == nil {
		return fmt.Sprintf("Tensor[%s](released)", tensor.DataTypeOf[E]())
	}
	return fmt.Sprintf("Tensor[%s]%v on %s", tensor.DataTypeOf[E](), t.shape, t.ctx.device)
}

func (t *Tensor[E]) layoutShape() tensor.Shape {
	return t.shape
}

func (t *Tensor[E]) layoutStrides() []int {
	return t.strides
}

func (t *Tensor[E]) mustBeLive() {
	if t.buffer == nil {
		panic(ErrReleased)
	}
}

// moveTo transfers t's buffer reference into a new handle of another shape
// and element type. t is consumed.
func moveTo[To, From tensor.Element](t *Tensor[From], shape tensor.Shape) *Tensor[To] {
	out := newTensor[To](t.ctx, shape, t.buffer)
	t.buffer = nil
	return out
}

// byteSize returns the buffer size of numElems elements of type E.
func byteSize[E tensor.Element](numElems int) int {
	return numElems * tensor.SizeOf[E]()
}

package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
)

// Backend exposes the tensor operation set over the three element kinds:
// float tensors of F, integer tensors of I and boolean tensors.
//
// Every method delegates to the generic operations of this package. Like
// them, methods consume their tensor arguments.
type Backend[F tensor.Float, I tensor.Int] struct {
	device Device
	ctx    *Context
}

// New creates a backend bound to device. The device context is created
// eagerly so that an unavailable device is reported here.
func New[F tensor.Float, I tensor.Int](device Device) (*Backend[F, I], error) {
	ctx, err := GetContext(device)
	if err != nil {
		return nil, err
	}
	return &Backend[F, I]{device: device, ctx: ctx}, nil
}

// Device returns the device the backend was created for.
func (b *Backend[F, I]) Device() Device {
	return b.device
}

// Name returns the name of the adapter behind the backend.
func (b *Backend[F, I]) Name() string {
	return b.ctx.Name()
}

// Context returns the compute context of the backend's device.
func (b *Backend[F, I]) Context() *Context {
	return b.ctx
}

// Flush submits recorded work without waiting for it.
func (b *Backend[F, I]) Flush() {
	b.ctx.Flush()
}

// MemoryStats returns device memory usage statistics.
func (b *Backend[F, I]) MemoryStats() MemoryStats {
	return b.ctx.MemoryStats()
}

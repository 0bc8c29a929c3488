package webgpu

import (
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"
)

// storageUsage is the usage of every tensor and metadata buffer.
const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// Buffer is a reference-counted device buffer shared by tensor handles.
//
// A handle may write into the buffer in place only when IsUnique reports
// that no other handle references it.
type Buffer struct {
	ctx      *Context
	handle   *wgpu.Buffer
	size     uint64 // bytes requested by the owner
	capacity uint64 // bytes allocated on the device
	refs     atomic.Int32
}

func newBuffer(ctx *Context, handle *wgpu.Buffer, size, capacity uint64) *Buffer {
	b := &Buffer{
		ctx:      ctx,
		handle:   handle,
		size:     size,
		capacity: capacity,
	}
	b.refs.Store(1)
	return b
}

// Size returns the logical size of the buffer in bytes.
func (b *Buffer) Size() uint64 {
	return b.size
}

// bindingSize is the size used when binding the buffer to a kernel.
// Bindings must be non-empty and 4-byte aligned.
func (b *Buffer) bindingSize() uint64 {
	return alignedSize(b.size)
}

// Retain increments the reference count.
func (b *Buffer) Retain() {
	b.refs.Add(1)
}

// Release decrements the reference count and recycles the device buffer
// once no reference is left.
func (b *Buffer) Release() {
	n := b.refs.Add(-1)
	switch {
	case n == 0:
		if b.ctx != nil {
			b.ctx.recycle(b)
		}
	case n < 0:
		panic(ErrReleased)
	}
}

// IsUnique reports whether exactly one handle references the buffer.
func (b *Buffer) IsUnique() bool {
	return b.refs.Load() == 1
}

// RefCount returns the current number of references.
func (b *Buffer) RefCount() int {
	return int(b.refs.Load())
}

// alignedSize rounds size up to a non-zero multiple of 4 bytes.
func alignedSize(size uint64) uint64 {
	if size == 0 {
		return 4
	}
	return (size + 3) &^ 3
}

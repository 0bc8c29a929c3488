package webgpu

import (
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"k8s.io/klog/v2"
)

// maxWorkgroupsPerDim is the WebGPU default limit on workgroups per axis.
const maxWorkgroupsPerDim = 65535

// ceilDiv returns n / d rounded up.
func ceilDiv[T constraints.Integer](n, d T) T {
	return (n + d - 1) / d
}

// WorkGroup is the number of workgroups of a dispatch along each axis.
type WorkGroup struct {
	X, Y, Z uint32
}

func (w WorkGroup) empty() bool {
	return w.X == 0 || w.Y == 0 || w.Z == 0
}

// elemwiseWorkgroup returns a near-square 2D grid of workgroups of
// workgroupSize x workgroupSize invocations covering numElems elements.
// Kernels linearize the invocation id as y * (groups_x * workgroupSize) + x.
func elemwiseWorkgroup(numElems, workgroupSize int) WorkGroup {
	if numElems <= 0 {
		return WorkGroup{}
	}
	perGroup := workgroupSize * workgroupSize
	groups := ceilDiv(numElems, perGroup)
	x := int(math.Ceil(math.Sqrt(float64(groups))))
	y := ceilDiv(numElems, x*perGroup)

	//nolint:gosec // G115: workgroup counts are positive and bounded by sqrt of the element count
	return WorkGroup{X: uint32(x), Y: uint32(y), Z: 1}
}

// linearWorkgroup spreads numGroups one-dimensional workgroups over X and Y
// so that neither axis exceeds the per-dimension limit.
func linearWorkgroup(numGroups int) WorkGroup {
	if numGroups <= 0 {
		return WorkGroup{}
	}
	x := min(numGroups, maxWorkgroupsPerDim)
	y := ceilDiv(numGroups, x)

	//nolint:gosec // G115: both values are bounded by maxWorkgroupsPerDim
	return WorkGroup{X: uint32(x), Y: uint32(y), Z: 1}
}

// allocateDevice creates a storage buffer of exactly size bytes.
func (c *Context) allocateDevice(size uint64) (buffer *wgpu.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buffer = nil
			err = errors.Wrapf(ErrAllocation, "%d bytes: %v", size, r)
		}
	}()

	buffer = c.gpu.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: storageUsage,
		Size:  size,
	})
	if buffer == nil {
		return nil, errors.Wrapf(ErrAllocation, "%d bytes", size)
	}
	c.trackBufferAllocation(size)
	return buffer, nil
}

// freeDevice releases a device buffer for good.
func (c *Context) freeDevice(buffer *wgpu.Buffer, size uint64) {
	buffer.Release()
	c.trackBufferRelease(size)
}

// CreateBuffer allocates a zero-initialized buffer of size bytes.
// The buffer never comes from the pool: WebGPU guarantees fresh buffers
// are zeroed, recycled ones are not.
func (c *Context) CreateBuffer(size int) (*Buffer, error) {
	//nolint:gosec // G115: sizes are derived from non-negative element counts
	capacity := alignedSize(uint64(size))
	handle, err := c.allocateDevice(capacity)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G115: see above
	return newBuffer(c, handle, uint64(size), capacity), nil
}

// allocate returns a buffer with unspecified contents, recycled from the
// pool when possible. Callers must overwrite it completely before reading.
func (c *Context) allocate(size int) (*Buffer, error) {
	//nolint:gosec // G115: sizes are derived from non-negative element counts
	handle, capacity, err := c.bufferPool.Acquire(alignedSize(uint64(size)))
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G115: see above
	return newBuffer(c, handle, uint64(size), capacity), nil
}

// CreateBufferWithData allocates a buffer and uploads data into it.
// The upload happens through a mapping at creation, so it is complete when
// the call returns from the caller's point of view.
func (c *Context) CreateBufferWithData(data []byte) (buffer *Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buffer = nil
			err = errors.Wrapf(ErrAllocation, "%d bytes: %v", len(data), r)
		}
	}()

	size := uint64(len(data))
	capacity := alignedSize(size)

	handle := c.gpu.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            storageUsage,
		Size:             capacity,
		MappedAtCreation: wgpu.True,
	})
	if handle == nil {
		return nil, errors.Wrapf(ErrAllocation, "%d bytes", capacity)
	}
	c.trackBufferAllocation(capacity)

	mappedPtr := handle.GetMappedRange(0, capacity)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), capacity)
	copy(mappedSlice, data)
	handle.Unmap()

	return newBuffer(c, handle, size, capacity), nil
}

// recycle hands the device buffer of a dead Buffer back to the pool, or
// frees it when the context was already released.
func (c *Context) recycle(b *Buffer) {
	if b.handle == nil {
		return
	}
	if c.closed.Load() {
		c.freeDevice(b.handle, b.capacity)
	} else {
		c.bufferPool.Release(b.handle, b.capacity)
	}
	b.handle = nil
}

// copyBuffer records a device-side copy of src into a new buffer.
func (c *Context) copyBuffer(src *Buffer) (*Buffer, error) {
	//nolint:gosec // G115: buffer sizes fit in int
	dst, err := c.allocate(int(src.size))
	if err != nil {
		return nil, err
	}

	encoder := c.gpu.CreateCommandEncoder(nil)
	defer encoder.Release()
	encoder.CopyBufferToBuffer(src.handle, 0, dst.handle, 0, src.bindingSize())
	c.queueCommand(encoder.Finish(nil))

	return dst, nil
}

// Read blocks until every submitted command that may write b has completed
// and returns the contents of b. This is the only synchronization point
// between the host and the device.
func (c *Context) Read(b *Buffer) ([]byte, error) {
	size := b.bindingSize()

	// Create staging buffer for reading (MAP_READ | COPY_DST)
	stagingBuffer := c.gpu.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	if stagingBuffer == nil {
		return nil, errors.Wrapf(ErrAllocation, "staging buffer of %d bytes", size)
	}
	defer stagingBuffer.Release()

	encoder := c.gpu.CreateCommandEncoder(nil)
	defer encoder.Release()
	encoder.CopyBufferToBuffer(b.handle, 0, stagingBuffer, 0, size)

	// The copy goes behind every pending dispatch, then all of it is submitted.
	c.pendingMu.Lock()
	c.pendingCommands = append(c.pendingCommands, encoder.Finish(nil))
	c.flushCommandsLocked()
	c.pendingMu.Unlock()

	if err := stagingBuffer.MapAsync(c.gpu, wgpu.MapModeRead, 0, size); err != nil {
		return nil, errors.Wrap(err, "webgpu: failed to map staging buffer")
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, b.size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// Execute records a dispatch of kernel over workgroup, binding buffers to
// bindings 0..n-1 in order. It returns as soon as the command is recorded.
func (c *Context) Execute(workgroup WorkGroup, kernel *Kernel, buffers ...*Buffer) {
	if workgroup.empty() {
		return
	}

	entries := make([]wgpu.BindGroupEntry, len(buffers))
	for i, buf := range buffers {
		//nolint:gosec // G115: binding index is bounded by the number of buffers
		entries[i] = wgpu.BufferBindingEntry(uint32(i), buf.handle, 0, buf.bindingSize())
	}

	bindGroupLayout := kernel.pipeline.GetBindGroupLayout(0)
	defer bindGroupLayout.Release()
	bindGroup := c.gpu.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := c.gpu.CreateCommandEncoder(nil)
	defer encoder.Release()
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(kernel.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(workgroup.X, workgroup.Y, workgroup.Z)
	computePass.End()
	computePass.Release()

	klog.V(4).InfoS("Dispatch", "kernel", kernel.key, "workgroups", workgroup)
	c.queueCommand(encoder.Finish(nil))
}

// dispatch compiles settings and executes the kernel. When info is not nil
// it is uploaded and bound after buffers.
func (c *Context) dispatch(settings KernelSettings, workgroup WorkGroup, info []uint32, buffers ...*Buffer) error {
	if workgroup.empty() {
		return nil
	}

	kernel, err := c.Compile(settings)
	if err != nil {
		return err
	}

	if info != nil {
		infoBuffer, err := c.uploadInfo(info)
		if err != nil {
			return err
		}
		defer c.retireInfo(infoBuffer)
		buffers = append(buffers, infoBuffer)
	}

	c.Execute(workgroup, kernel, buffers...)
	return nil
}

// Package webgpu implements the WebGPU compute backend for dense tensors.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"
)

// Context owns the connection to one device: its queue, the compiled kernel
// cache and the buffer pool. All dispatches of a context are serialized in
// submission order on its single queue.
type Context struct {
	device Device
	cfg    Config

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	gpu      *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo

	// Compiled kernel cache
	kernels   map[string]*Kernel
	kernelsMu sync.RWMutex
	compiling singleflight.Group

	// Buffer pool for memory management
	bufferPool *BufferPool
	// Info buffers are rewritten with queue.WriteBuffer, which runs ahead of
	// unsubmitted commands, so they only return to their pool once the
	// dispatch reading them has been submitted.
	infoPool    *BufferPool
	retiredInfo []pooledBuffer

	closed atomic.Bool

	// Command batching: recorded command buffers are submitted together on
	// readback, on Flush, or when the batch limit is reached.
	pendingCommands []*wgpu.CommandBuffer
	pendingMu       sync.Mutex

	// Memory tracking
	memoryStats struct {
		totalAllocatedBytes uint64
		peakMemoryBytes     uint64
		activeBuffers       int64
		mu                  sync.RWMutex
	}
}

// newContext acquires an adapter and a device for the given identity.
func newContext(device Device, cfg Config) (ctx *Context, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = errors.Wrapf(ErrDeviceUnavailable, "native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrapf(ErrDeviceUnavailable, "failed to create instance: %v", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(device.adapterOptions())
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrapf(ErrDeviceUnavailable, "failed to request adapter: %v", adapterErr)
	}

	gpu, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(ErrDeviceUnavailable, "failed to request device: %v", deviceErr)
	}

	queue := gpu.GetQueue()
	if queue == nil {
		gpu.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(ErrDeviceUnavailable, "failed to get queue")
	}

	ctx = &Context{
		device:      device,
		cfg:         cfg,
		instance:    instance,
		adapter:     adapter,
		gpu:         gpu,
		queue:       queue,
		kernels:     make(map[string]*Kernel),
	}
	ctx.bufferPool = NewBufferPool(ctx.allocateDevice, ctx.freeDevice, cfg.PoolSize)
	ctx.infoPool = NewBufferPool(ctx.allocateDevice, ctx.freeDevice, cfg.PoolSize)

	info, infoErr := adapter.GetInfo()
	if infoErr != nil {
		klog.V(1).InfoS("Adapter info not available", "device", device, "err", infoErr)
	}
	ctx.adapterInfo = info

	klog.V(1).InfoS("Created compute context", "device", device, "adapter", ctx.Name())
	return ctx, nil
}

// Device returns the identity of the device this context drives.
func (c *Context) Device() Device {
	return c.device
}

// Name returns a description of the adapter.
func (c *Context) Name() string {
	return adapterName(c.adapterInfo)
}

func adapterName(info *wgpu.AdapterInfoGo) string {
	switch {
	case info == nil:
		return "WebGPU"
	case info.Device != "" && info.Vendor != "":
		return fmt.Sprintf("WebGPU (%s %s)", info.Vendor, info.Device)
	case info.Device != "":
		return fmt.Sprintf("WebGPU (%s)", info.Device)
	case info.Description != "":
		return fmt.Sprintf("WebGPU (%s)", info.Description)
	default:
		return "WebGPU"
	}
}

// AdapterInfo returns information about the GPU adapter, or nil when the
// adapter did not report any.
func (c *Context) AdapterInfo() *wgpu.AdapterInfoGo {
	return c.adapterInfo
}

// SetMaxBatchSize sets the maximum number of commands to accumulate before auto-flush.
// Set to 0 to disable the limit.
func (c *Context) SetMaxBatchSize(size int) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.cfg.MaxBatchSize = size
}

// queueCommand adds a command buffer to the pending queue for batch submission.
func (c *Context) queueCommand(cmdBuffer *wgpu.CommandBuffer) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	c.pendingCommands = append(c.pendingCommands, cmdBuffer)

	if c.cfg.MaxBatchSize > 0 && len(c.pendingCommands) >= c.cfg.MaxBatchSize {
		c.flushCommandsLocked()
	}
}

// Flush submits all pending command buffers to the queue without waiting
// for them to complete.
func (c *Context) Flush() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.flushCommandsLocked()
}

// flushCommandsLocked submits all pending command buffers (must hold pendingMu lock).
func (c *Context) flushCommandsLocked() {
	if len(c.pendingCommands) > 0 {
		klog.V(4).InfoS("Submitting command buffers", "device", c.device, "count", len(c.pendingCommands))
		c.queue.Submit(c.pendingCommands...)
		releaseAll(c.pendingCommands)
		clear(c.pendingCommands)
		c.pendingCommands = c.pendingCommands[:0]
	}

	for _, pb := range c.retiredInfo {
		c.infoPool.Release(pb.buffer, pb.size)
	}
	clear(c.retiredInfo)
	c.retiredInfo = c.retiredInfo[:0]
}

// retireInfo hands an info buffer back once the commands recorded so far
// are submitted.
func (c *Context) retireInfo(b *Buffer) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.retiredInfo = append(c.retiredInfo, pooledBuffer{buffer: b.handle, size: b.capacity})
	b.handle = nil
}

// releaser is any native object owned until its Release call.
type releaser interface {
	Release()
}

func releaseAll[T releaser](objects []T) {
	for _, o := range objects {
		o.Release()
	}
}

// release frees every device resource held by the context.
func (c *Context) release() {
	c.Flush()
	c.closed.Store(true)

	c.kernelsMu.Lock()
	for _, k := range c.kernels {
		k.release()
	}
	c.kernels = nil
	c.kernelsMu.Unlock()

	if c.bufferPool != nil {
		c.bufferPool.Clear()
	}
	if c.infoPool != nil {
		c.infoPool.Clear()
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.gpu != nil {
		c.gpu.Release()
		c.gpu = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
	klog.V(1).InfoS("Released compute context", "device", c.device)
}

// MemoryStats represents device memory usage statistics.
type MemoryStats struct {
	// Bytes currently allocated on the device, pooled buffers included
	TotalAllocatedBytes uint64
	// Peak memory usage in bytes
	PeakMemoryBytes uint64
	// Number of currently allocated device buffers
	ActiveBuffers int64
	// Buffer pool statistics
	PoolAllocated uint64
	PoolReleased  uint64
	PoolHits      uint64
	PoolMisses    uint64
	PooledBuffers int
	// Number of compiled kernels
	Kernels int
}

// MemoryStats returns current device memory usage statistics.
func (c *Context) MemoryStats() MemoryStats {
	c.memoryStats.mu.RLock()
	stats := MemoryStats{
		TotalAllocatedBytes: c.memoryStats.totalAllocatedBytes,
		PeakMemoryBytes:     c.memoryStats.peakMemoryBytes,
		ActiveBuffers:       c.memoryStats.activeBuffers,
	}
	c.memoryStats.mu.RUnlock()

	stats.PoolAllocated, stats.PoolReleased, stats.PoolHits, stats.PoolMisses, stats.PooledBuffers = c.bufferPool.Stats()
	stats.Kernels = c.Kernels()
	return stats
}

// trackBufferAllocation records a buffer allocation in memory statistics.
func (c *Context) trackBufferAllocation(size uint64) {
	c.memoryStats.mu.Lock()
	defer c.memoryStats.mu.Unlock()

	c.memoryStats.totalAllocatedBytes += size
	c.memoryStats.activeBuffers++

	if c.memoryStats.totalAllocatedBytes > c.memoryStats.peakMemoryBytes {
		c.memoryStats.peakMemoryBytes = c.memoryStats.totalAllocatedBytes
	}
}

// trackBufferRelease records a buffer release in memory statistics.
func (c *Context) trackBufferRelease(size uint64) {
	c.memoryStats.mu.Lock()
	defer c.memoryStats.mu.Unlock()

	if c.memoryStats.totalAllocatedBytes >= size {
		c.memoryStats.totalAllocatedBytes -= size
	}
	c.memoryStats.activeBuffers--
}

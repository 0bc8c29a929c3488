package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"k8s.io/klog/v2"
)

// sizeClass represents different buffer size categories for pooling.
type sizeClass int

const (
	// smallClass for buffers < 4KB.
	smallClass sizeClass = iota
	// mediumClass for buffers 4KB-1MB.
	mediumClass
	// largeClass for buffers > 1MB.
	largeClass
	numClasses
)

const (
	// Size thresholds for buffer categories.
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPoolSize     = 100         // Max buffers per category
)

// pooledBuffer wraps an idle device buffer with its allocated size.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// allocator creates device buffers on a pool miss.
type allocator func(size uint64) (*wgpu.Buffer, error)

// BufferPool recycles device buffers of released tensors.
//
// A recycled buffer keeps its previous contents, so the pool only serves
// allocations that are fully overwritten before being read.
type BufferPool struct {
	alloc   allocator
	free    func(*wgpu.Buffer, uint64)
	classes [numClasses][]pooledBuffer
	limit   int

	mu sync.Mutex

	// Statistics
	totalAllocated uint64
	totalReleased  uint64
	poolHits       uint64
	poolMisses     uint64
}

// NewBufferPool creates a pool that allocates through alloc and frees
// evicted buffers through free.
func NewBufferPool(alloc allocator, free func(*wgpu.Buffer, uint64), limit int) *BufferPool {
	if limit <= 0 {
		limit = maxPoolSize
	}
	return &BufferPool{alloc: alloc, free: free, limit: limit}
}

// Acquire gets a buffer of at least size bytes from the pool or allocates a
// new one. It returns the buffer and its allocated size.
func (p *BufferPool) Acquire(size uint64) (*wgpu.Buffer, uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	class := categorize(size)
	pool := p.classes[class]

	// Best fit inside the class keeps large buffers for large requests.
	best := -1
	for i, pb := range pool {
		if pb.size >= size && (best < 0 || pb.size < pool[best].size) {
			best = i
		}
	}
	if best >= 0 {
		pb := pool[best]
		p.classes[class] = append(pool[:best], pool[best+1:]...)
		p.poolHits++
		return pb.buffer, pb.size, nil
	}

	p.poolMisses++
	buffer, err := p.alloc(size)
	if err != nil {
		return nil, 0, err
	}
	p.totalAllocated++
	return buffer, size, nil
}

// Release returns a buffer to the pool for reuse.
// If the pool is full, the buffer is immediately freed.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.totalReleased++

	class := categorize(size)
	if len(p.classes[class]) >= p.limit {
		klog.V(4).InfoS("Buffer pool full, freeing buffer", "size", size)
		p.free(buffer, size)
		return
	}
	p.classes[class] = append(p.classes[class], pooledBuffer{buffer: buffer, size: size})
}

// Clear frees all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for class := range p.classes {
		for _, pb := range p.classes[class] {
			p.free(pb.buffer, pb.size)
		}
		p.classes[class] = nil
	}
}

// Stats returns statistics about buffer pool usage.
func (p *BufferPool) Stats() (allocated, released, hits, misses uint64, pooledCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pool := range p.classes {
		pooledCount += len(pool)
	}
	return p.totalAllocated, p.totalReleased, p.poolHits, p.poolMisses, pooledCount
}

// categorize determines the size category for a buffer.
func categorize(size uint64) sizeClass {
	if size < smallThreshold {
		return smallClass
	}
	if size < mediumThreshold {
		return mediumClass
	}
	return largeClass
}

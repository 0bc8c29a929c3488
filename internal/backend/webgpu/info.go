package webgpu

import "github.com/born-ml/tensorgpu/internal/tensor"

// layout is the part of a tensor that kernels need to address its elements.
type layout interface {
	layoutShape() tensor.Shape
	layoutStrides() []int
}

// buildInfo packs the metadata buffer shared by the strided kernels:
//
//	[rank, strides(t0)..strides(tn), shape(t0)..shape(tn)]
//
// Operation specific scalars are appended by the caller. All tensors must
// have the same rank.
func buildInfo(tensors ...layout) []uint32 {
	rank := 0
	if len(tensors) > 0 {
		rank = len(tensors[0].layoutShape())
	}

	info := make([]uint32, 0, 1+2*rank*len(tensors)+2)
	//nolint:gosec // G115: ranks, strides and dims are non-negative and fit in u32
	info = append(info, uint32(rank))
	for _, t := range tensors {
		for _, s := range t.layoutStrides() {
			info = append(info, uint32(s)) //nolint:gosec // G115: see above
		}
	}
	for _, t := range tensors {
		for _, d := range t.layoutShape() {
			info = append(info, uint32(d)) //nolint:gosec // G115: see above
		}
	}
	return info
}

// uploadInfo writes packed metadata into a buffer of the info pool. The
// buffer has no owning context: hand it to retireInfo once the dispatch
// using it is recorded.
func (c *Context) uploadInfo(info []uint32) (*Buffer, error) {
	data := tensor.AsBytes(info)
	size := uint64(len(data))
	handle, capacity, err := c.infoPool.Acquire(alignedSize(size))
	if err != nil {
		return nil, err
	}
	c.queue.WriteBuffer(handle, 0, data)
	return newBuffer(nil, handle, size, capacity), nil
}

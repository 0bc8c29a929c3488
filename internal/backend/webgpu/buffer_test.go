package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignedSize(t *testing.T) {
	tests := []struct {
		size, want uint64
	}{
		{0, 4},
		{1, 4},
		{4, 4},
		{5, 8},
		{1023, 1024},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, alignedSize(tt.size), "size %d", tt.size)
	}
}

func TestBufferRefCount(t *testing.T) {
	b := newBuffer(nil, nil, 16, 16)
	assert.True(t, b.IsUnique())
	assert.Equal(t, 1, b.RefCount())

	b.Retain()
	assert.False(t, b.IsUnique())
	assert.Equal(t, 2, b.RefCount())

	b.Release()
	assert.True(t, b.IsUnique())

	b.Release()
	assert.Equal(t, 0, b.RefCount())
	assert.PanicsWithValue(t, ErrReleased, b.Release)
}

func TestBufferBindingSize(t *testing.T) {
	assert.Equal(t, uint64(4), newBuffer(nil, nil, 0, 4).bindingSize())
	assert.Equal(t, uint64(12), newBuffer(nil, nil, 12, 64).bindingSize(), "binding uses the logical size")
}

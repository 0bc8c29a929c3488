package webgpu

import "github.com/pkg/errors"

// Sentinel errors. Operations wrap them with context; match with errors.Is.
var (
	// ErrAllocation is returned when the device cannot allocate a buffer.
	ErrAllocation = errors.New("webgpu: buffer allocation failed")
	// ErrDeviceUnavailable is returned when no adapter or device can be acquired.
	ErrDeviceUnavailable = errors.New("webgpu: device unavailable")
	// ErrDeviceMismatch is returned when operands live on different devices.
	ErrDeviceMismatch = errors.New("webgpu: tensors are on different devices")
	// ErrShapeMismatch is returned when operand extents are incompatible.
	ErrShapeMismatch = errors.New("webgpu: shape mismatch")
	// ErrRankMismatch is returned when operand ranks differ.
	ErrRankMismatch = errors.New("webgpu: rank mismatch")
	// ErrOutOfBounds is returned for ranges outside of a tensor.
	ErrOutOfBounds = errors.New("webgpu: index out of bounds")
	// ErrInvalidDim is returned when a dimension argument exceeds the rank.
	ErrInvalidDim = errors.New("webgpu: invalid dimension")
	// ErrEmptyInput is returned when an operation needs at least one tensor.
	ErrEmptyInput = errors.New("webgpu: empty input")
	// ErrKernel is returned when a kernel template cannot be specialized or compiled.
	ErrKernel = errors.New("webgpu: kernel compilation failed")

	// ErrReleased is the panic value for use of a consumed tensor handle.
	ErrReleased = errors.New("webgpu: use of a released tensor")
	// ErrNotImplemented is the panic value for operations without a GPU implementation.
	ErrNotImplemented = errors.New("webgpu: not implemented")
)

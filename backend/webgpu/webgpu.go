// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU compute backend for tensor operations.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// Operations consume their tensor arguments. Clone a tensor to keep using
// it after passing it to an operation; a tensor that is not shared may be
// updated in place.
//
// Example:
//
//	import (
//	    "github.com/born-ml/tensorgpu/backend/webgpu"
//	    "github.com/born-ml/tensorgpu/tensor"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New[float32, int32](webgpu.DefaultDevice)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer webgpu.Shutdown()
//
//	    x, _ := gpu.FloatOnes(tensor.Shape{1024, 1024}, gpu.Device())
//	    sum, _ := gpu.FloatSum(x)
//	    data, _ := gpu.FloatIntoData(sum)
//	    fmt.Println(data.Value[0])
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/tensorgpu/internal/backend/webgpu"
	"github.com/born-ml/tensorgpu/tensor"
)

// Backend exposes the float, integer and boolean tensor operations of one
// device.
type Backend[F tensor.Float, I tensor.Int] = internalwebgpu.Backend[F, I]

// Tensor is a handle on a device buffer together with its shape.
type Tensor[E tensor.Element] = internalwebgpu.Tensor[E]

// FloatTensor is a tensor of floating point elements.
type FloatTensor[F tensor.Float] = internalwebgpu.FloatTensor[F]

// IntTensor is a tensor of integer elements.
type IntTensor[I tensor.Int] = internalwebgpu.IntTensor[I]

// BoolTensor is a tensor of booleans stored as 0/1 uint32 values.
type BoolTensor = internalwebgpu.BoolTensor

// Range is the half-open interval [Start, End) along one dimension.
type Range = internalwebgpu.Range

// Device identifies a logical compute device.
type Device = internalwebgpu.Device

// DeviceKind selects which kind of adapter a Device resolves to.
type DeviceKind = internalwebgpu.DeviceKind

// Config holds tunables applied to devices when they are first used.
type Config = internalwebgpu.Config

// MemoryStats reports device memory usage.
type MemoryStats = internalwebgpu.MemoryStats

// Device kinds.
const (
	BestAvailable = internalwebgpu.BestAvailable
	DiscreteGpu   = internalwebgpu.DiscreteGpu
	IntegratedGpu = internalwebgpu.IntegratedGpu
	VirtualGpu    = internalwebgpu.VirtualGpu
	Cpu           = internalwebgpu.Cpu
)

// DefaultDevice is the device used when the caller has no preference.
var DefaultDevice = internalwebgpu.DefaultDevice

// Errors returned by backend operations. Match them with errors.Is.
var (
	ErrAllocation        = internalwebgpu.ErrAllocation
	ErrDeviceUnavailable = internalwebgpu.ErrDeviceUnavailable
	ErrDeviceMismatch    = internalwebgpu.ErrDeviceMismatch
	ErrShapeMismatch     = internalwebgpu.ErrShapeMismatch
	ErrRankMismatch      = internalwebgpu.ErrRankMismatch
	ErrOutOfBounds       = internalwebgpu.ErrOutOfBounds
	ErrInvalidDim        = internalwebgpu.ErrInvalidDim
	ErrEmptyInput        = internalwebgpu.ErrEmptyInput
	ErrKernel            = internalwebgpu.ErrKernel
	ErrReleased          = internalwebgpu.ErrReleased
	ErrNotImplemented    = internalwebgpu.ErrNotImplemented
)

// New creates a backend on device with float elements F and integer
// elements I.
//
// The device is initialized on first use and shared by every backend that
// names it. Returns an error if no compatible adapter is found.
func New[F tensor.Float, I tensor.Int](device Device) (*Backend[F, I], error) {
	return internalwebgpu.New[F, I](device)
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify
// that a compatible GPU and drivers are present.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// Shutdown releases every initialized device. Tensors created before the
// call must not be used afterwards.
func Shutdown() {
	internalwebgpu.Shutdown()
}

// DefaultConfig returns the configuration used when none was set.
func DefaultConfig() Config {
	return internalwebgpu.DefaultConfig()
}

// SetDefaultConfig replaces the configuration of devices initialized
// afterwards.
func SetDefaultConfig(cfg Config) {
	internalwebgpu.SetDefaultConfig(cfg)
}

// FromData uploads host data to device.
func FromData[E tensor.Element](data tensor.Data[E], device Device) (*Tensor[E], error) {
	return internalwebgpu.FromData(data, device)
}

// IntoData reads t back to the host and releases it.
func IntoData[E tensor.Element](t *Tensor[E]) (tensor.Data[E], error) {
	return internalwebgpu.IntoData(t)
}

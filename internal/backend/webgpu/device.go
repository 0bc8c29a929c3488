package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DeviceKind selects which kind of adapter a Device resolves to.
type DeviceKind int

// Supported device kinds.
const (
	BestAvailable DeviceKind = iota
	DiscreteGpu
	IntegratedGpu
	VirtualGpu
	Cpu
)

// String returns a human-readable kind name.
func (k DeviceKind) String() string {
	switch k {
	case BestAvailable:
		return "BestAvailable"
	case DiscreteGpu:
		return "DiscreteGpu"
	case IntegratedGpu:
		return "IntegratedGpu"
	case VirtualGpu:
		return "VirtualGpu"
	case Cpu:
		return "Cpu"
	default:
		return "Unknown"
	}
}

// Device identifies a logical compute device. It is comparable and used as
// the key of the process-wide context registry.
type Device struct {
	Kind  DeviceKind
	Index int
}

// DefaultDevice is the device used when the caller has no preference.
var DefaultDevice = Device{Kind: BestAvailable}

// String returns the device identity, e.g. "DiscreteGpu(0)".
func (d Device) String() string {
	if d.Kind == BestAvailable || d.Kind == Cpu {
		return d.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", d.Kind, d.Index)
}

func (d Device) adapterOptions() *wgpu.RequestAdapterOptions {
	switch d.Kind {
	case IntegratedGpu, Cpu:
		return &wgpu.RequestAdapterOptions{PowerPreference: wgpu.PowerPreferenceLowPower}
	default:
		return &wgpu.RequestAdapterOptions{PowerPreference: wgpu.PowerPreferenceHighPerformance}
	}
}

var registry = struct {
	mu       sync.Mutex
	contexts map[Device]*Context
}{contexts: make(map[Device]*Context)}

// GetContext returns the compute context of a device, creating it on first
// use. Contexts live for the rest of the process unless Shutdown is called.
func GetContext(device Device) (*Context, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if ctx, ok := registry.contexts[device]; ok {
		return ctx, nil
	}

	ctx, err := newContext(device, currentConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "creating context for %s", device)
	}
	registry.contexts[device] = ctx
	return ctx, nil
}

// Shutdown releases every registered context. Tensors created before the
// call must not be used afterwards.
func Shutdown() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for device, ctx := range registry.contexts {
		ctx.release()
		delete(registry.contexts, device)
	}
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			klog.V(1).InfoS("WebGPU native library not available", "reason", r)
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		klog.V(1).InfoS("WebGPU instance not available", "err", err)
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// Package main provides the tensorgpu diagnostic CLI.
//
// It opens a WebGPU device, prints the adapter in use and runs a small
// reduction to check that kernels compile and execute.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/born-ml/tensorgpu/backend/webgpu"
	"github.com/born-ml/tensorgpu/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

var deviceKinds = map[string]webgpu.DeviceKind{
	"best":       webgpu.BestAvailable,
	"discrete":   webgpu.DiscreteGpu,
	"integrated": webgpu.IntegratedGpu,
	"virtual":    webgpu.VirtualGpu,
	"cpu":        webgpu.Cpu,
}

func main() {
	klog.InitFlags(nil)
	kind := flag.String("device", "best", "device kind: best, discrete, integrated, virtual or cpu")
	index := flag.Int("index", 0, "index among adapters of the selected kind")
	size := flag.Int("size", 1<<20, "number of elements used by the smoke test")
	flag.Parse()
	defer klog.Flush()

	if flag.Arg(0) == "version" {
		fmt.Printf("tensorgpu %s\n", version)
		return
	}

	device, err := parseDevice(*kind, *index)
	if err != nil {
		klog.ErrorS(err, "invalid device")
		os.Exit(2)
	}

	if err := run(device, *size); err != nil {
		klog.ErrorS(err, "smoke test failed", "device", device)
		os.Exit(1)
	}
}

func parseDevice(kind string, index int) (webgpu.Device, error) {
	k, ok := deviceKinds[strings.ToLower(kind)]
	if !ok {
		return webgpu.Device{}, errors.Errorf("unknown device kind %q", kind)
	}
	if index < 0 {
		return webgpu.Device{}, errors.Errorf("device index must be non-negative, got %d", index)
	}
	return webgpu.Device{Kind: k, Index: index}, nil
}

func run(device webgpu.Device, size int) error {
	if !webgpu.IsAvailable() {
		return webgpu.ErrDeviceUnavailable
	}
	defer webgpu.Shutdown()

	gpu, err := webgpu.New[float32, int32](device)
	if err != nil {
		return err
	}
	fmt.Printf("Device:  %s\n", gpu.Device())
	fmt.Printf("Adapter: %s\n", gpu.Name())

	ones, err := gpu.FloatOnes(tensor.Shape{size}, gpu.Device())
	if err != nil {
		return err
	}
	sum, err := gpu.FloatSum(ones)
	if err != nil {
		return err
	}
	data, err := gpu.FloatIntoData(sum)
	if err != nil {
		return err
	}

	got := data.Value[0]
	fmt.Printf("Sum of %d ones: %g\n", size, got)
	if got != float32(size) {
		return errors.Errorf("sum mismatch: got %g, want %d", got, size)
	}

	stats := gpu.MemoryStats()
	fmt.Printf("Memory:  %+v\n", stats)
	return nil
}

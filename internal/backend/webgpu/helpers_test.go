package webgpu

import (
	"testing"

	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/stretchr/testify/require"
)

// testDevice skips the test when no WebGPU adapter can be acquired.
func testDevice(t *testing.T) Device {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	if _, err := GetContext(DefaultDevice); err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	return DefaultDevice
}

func upload[E tensor.Element](t *testing.T, device Device, shape tensor.Shape, values ...E) *Tensor[E] {
	t.Helper()
	data, err := tensor.NewData(values, shape)
	require.NoError(t, err)
	x, err := FromData(data, device)
	require.NoError(t, err)
	return x
}

func readback[E tensor.Element](t *testing.T, x *Tensor[E]) tensor.Data[E] {
	t.Helper()
	data, err := IntoData(x)
	require.NoError(t, err)
	return data
}

// peek reads x back without consuming the caller's handle.
func peek[E tensor.Element](t *testing.T, x *Tensor[E]) []E {
	t.Helper()
	return readback(t, x.Clone()).Value
}

func arange[E tensor.Element](n int) []E {
	values := make([]E, n)
	for i := range values {
		values[i] = E(i)
	}
	return values
}

package main

import (
	"testing"

	"github.com/born-ml/tensorgpu/backend/webgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevice(t *testing.T) {
	device, err := parseDevice("Discrete", 1)
	require.NoError(t, err)
	assert.Equal(t, webgpu.Device{Kind: webgpu.DiscreteGpu, Index: 1}, device)

	device, err = parseDevice("best", 0)
	require.NoError(t, err)
	assert.Equal(t, webgpu.DefaultDevice, device)

	_, err = parseDevice("tpu", 0)
	assert.Error(t, err)

	_, err = parseDevice("cpu", -1)
	assert.Error(t, err)
}

func TestRunSmoke(t *testing.T) {
	if !webgpu.IsAvailable() {
		t.Skip("WebGPU not available")
	}
	require.NoError(t, run(webgpu.DefaultDevice, 1000))
}

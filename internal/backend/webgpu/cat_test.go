package webgpu

import (
	"testing"

	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCatShape(t *testing.T) {
	ctx := &Context{device: DefaultDevice}
	tensors := []*Tensor[float32]{
		hostTensor[float32](ctx, tensor.Shape{6, 256}),
		hostTensor[float32](ctx, tensor.Shape{1, 256}),
		hostTensor[float32](ctx, tensor.Shape{3, 256}),
	}

	shape, err := catShape(tensors, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{10, 256}, shape)
	assert.Equal(t, tensor.Shape{6, 256}, tensors[0].Shape(), "inputs are not modified")
}

func TestCatShapeErrors(t *testing.T) {
	ctx := &Context{device: DefaultDevice}
	other := &Context{device: Device{Kind: DiscreteGpu, Index: 1}}

	_, err := catShape[float32](nil, 0)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = catShape([]*Tensor[float32]{hostTensor[float32](ctx, tensor.Shape{2, 2})}, 2)
	assert.True(t, errors.Is(err, ErrInvalidDim))

	_, err = catShape([]*Tensor[float32]{
		hostTensor[float32](ctx, tensor.Shape{2, 3}),
		hostTensor[float32](ctx, tensor.Shape{2, 4}),
		hostTensor[float32](ctx, tensor.Shape{2}),
		hostTensor[float32](other, tensor.Shape{2, 3}),
	}, 0)
	errs := multierr.Errors(err)
	require.Len(t, errs, 3, "every offending input is reported: %v", err)
	assert.True(t, errors.Is(errs[0], ErrShapeMismatch))
	assert.True(t, errors.Is(errs[1], ErrRankMismatch))
	assert.True(t, errors.Is(errs[2], ErrDeviceMismatch))
}

package webgpu

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	device := testDevice(t)

	floats := upload[float32](t, device, tensor.Shape{2, 3}, 1.5, -2, 0, 3.25, 1e6, -1e-3)
	got := readback(t, floats)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape)
	assert.Equal(t, []float32{1.5, -2, 0, 3.25, 1e6, -1e-3}, got.Value)
	assert.True(t, floats.IsReleased(), "IntoData consumes its argument")

	ints := upload[int32](t, device, tensor.Shape{5}, -7, 0, 1, 1<<30, -1<<31)
	assert.Equal(t, []int32{-7, 0, 1, 1 << 30, -1 << 31}, readback(t, ints).Value)

	// Odd byte count and rank 0.
	scalar := upload[uint32](t, device, tensor.Shape{}, 42)
	assert.Equal(t, []uint32{42}, readback(t, scalar).Value)

	empty := upload[float32](t, device, tensor.Shape{0, 3})
	got = readback(t, empty)
	assert.Empty(t, got.Value)
	assert.Equal(t, tensor.Shape{0, 3}, got.Shape)
}

func TestFromDataShapeMismatch(t *testing.T) {
	device := testDevice(t)

	_, err := FromData(tensor.Data[float32]{Value: []float32{1, 2, 3}, Shape: tensor.Shape{2, 2}}, device)
	assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
}

func TestReshape(t *testing.T) {
	device := testDevice(t)

	x := upload(t, device, tensor.Shape{2, 3}, arange[float32](6)...)
	buffer := x.Buffer()

	y, err := Reshape(x, tensor.Shape{3, 1, 2})
	require.NoError(t, err)
	assert.Same(t, buffer, y.Buffer(), "reshape shares the buffer")

	_, err = Reshape(y, tensor.Shape{4, 2})
	assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
	assert.False(t, y.IsReleased(), "failed operations leave their arguments alive")

	got := readback(t, y)
	assert.Equal(t, tensor.Shape{3, 1, 2}, got.Shape)
	assert.Equal(t, arange[float32](6), got.Value)
}

func TestEmptyAndToDevice(t *testing.T) {
	device := testDevice(t)

	x, err := Empty[int32](tensor.Shape{4, 4}, device)
	require.NoError(t, err)
	assert.Equal(t, 16, x.NumElements())

	same, err := ToDevice(x, device)
	require.NoError(t, err)
	assert.Same(t, x, same, "moving to the current device is a no-op")
	same.Release()

	other := Device{Kind: device.Kind, Index: device.Index + 1}
	y := upload[int32](t, device, tensor.Shape{2}, 3, 4)
	moved, err := ToDevice(y, other)
	if errors.Is(err, ErrDeviceUnavailable) {
		t.Skipf("second context not available: %v", err)
	}
	require.NoError(t, err)
	assert.Equal(t, other, moved.Device())
	assert.True(t, y.IsReleased())
	assert.Equal(t, []int32{3, 4}, readback(t, moved).Value)
}

func TestIndex(t *testing.T) {
	device := testDevice(t)

	x := upload(t, device, tensor.Shape{3, 4}, arange[float32](12)...)
	y, err := Index(x, []Range{{Start: 1, End: 3}, {Start: 1, End: 3}})
	require.NoError(t, err)

	got := readback(t, y)
	assert.Equal(t, tensor.Shape{2, 2}, got.Shape)
	assert.Equal(t, []float32{5, 6, 9, 10}, got.Value)
}

func TestIndexOutOfBounds(t *testing.T) {
	device := testDevice(t)

	x := upload(t, device, tensor.Shape{2, 2}, arange[int32](4)...)
	defer x.Release()

	_, err := Index(x, []Range{{Start: 0, End: 3}})
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
}

func TestIndexAssign(t *testing.T) {
	device := testDevice(t)

	x := upload(t, device, tensor.Shape{3, 3}, arange[float32](9)...)
	buffer := x.Buffer()
	value := upload[float32](t, device, tensor.Shape{1, 2}, -1, -2)

	y, err := IndexAssign(x, []Range{{Start: 2, End: 3}, {Start: 0, End: 2}}, value)
	require.NoError(t, err)
	assert.Same(t, buffer, y.Buffer(), "a unique tensor is written in place")
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5, -1, -2, 8}, readback(t, y).Value)
}

func TestIndexAssignKeepsAliases(t *testing.T) {
	device := testDevice(t)

	x := upload[float32](t, device, tensor.Shape{2, 2}, 1, 2, 3, 4)
	alias := x.Clone()
	value := upload[float32](t, device, tensor.Shape{1, 1}, 9)

	y, err := IndexAssign(x, []Range{{Start: 0, End: 1}, {Start: 1, End: 2}}, value)
	require.NoError(t, err)
	assert.NotSame(t, alias.Buffer(), y.Buffer())
	assert.True(t, alias.CanMut(), "the consumed handle dropped its reference")

	assert.Equal(t, []float32{1, 9, 3, 4}, readback(t, y).Value)
	assert.Equal(t, []float32{1, 2, 3, 4}, readback(t, alias).Value, "the alias must not observe the write")
}

func TestIndexAssignShapeMismatch(t *testing.T) {
	device := testDevice(t)

	x := upload[float32](t, device, tensor.Shape{2, 2}, 1, 2, 3, 4)
	value := upload[float32](t, device, tensor.Shape{2, 1}, 9, 9)
	_, err := IndexAssign(x, []Range{{Start: 0, End: 1}}, value)
	assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
	x.Release()
	value.Release()
}

// catReference concatenates row-major host data along dim.
func catReference(inputs []tensor.Data[float32], dim int) tensor.Data[float32] {
	shape := inputs[0].Shape.Clone()
	shape[dim] = 0
	for _, in := range inputs {
		shape[dim] += in.Shape[dim]
	}

	outer := 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	var value []float32
	for o := range outer {
		for _, in := range inputs {
			chunk := in.Shape[dim:].NumElements()
			value = append(value, in.Value[o*chunk:(o+1)*chunk]...)
		}
	}
	return tensor.Data[float32]{Value: value, Shape: shape}
}

func TestCatSameAsReference(t *testing.T) {
	device := testDevice(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for _, shape := range []tensor.Shape{{6, 256}, {1, 137}} {
		t.Run(fmt.Sprint(shape), func(t *testing.T) {
			var inputs []tensor.Data[float32]
			var tensors []*Tensor[float32]
			for range 2 {
				values := make([]float32, shape.NumElements())
				for i := range values {
					values[i] = rng.Float32()
				}
				inputs = append(inputs, tensor.Data[float32]{Value: values, Shape: shape})
				tensors = append(tensors, upload(t, device, shape, values...))
			}

			out, err := Cat(tensors, 0)
			require.NoError(t, err)

			require.NoError(t, tensor.ApproxEqual(readback(t, out), catReference(inputs, 0), 3))
		})
	}
}

func TestCatDecomposes(t *testing.T) {
	device := testDevice(t)

	a := upload(t, device, tensor.Shape{2, 3}, arange[int32](6)...)
	b := upload[int32](t, device, tensor.Shape{2, 2}, 10, 11, 12, 13)

	out, err := Cat([]*Tensor[int32]{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 5}, out.Shape())
	assert.True(t, a.IsReleased())

	left, err := Index(out.Clone(), []Range{{Start: 0, End: 2}, {Start: 0, End: 3}})
	require.NoError(t, err)
	right, err := Index(out.Clone(), []Range{{Start: 0, End: 2}, {Start: 3, End: 5}})
	require.NoError(t, err)

	assert.Equal(t, []int32{0, 1, 2, 10, 11, 3, 4, 5, 12, 13}, readback(t, out).Value)
	assert.Equal(t, arange[int32](6), readback(t, left).Value)
	assert.Equal(t, []int32{10, 11, 12, 13}, readback(t, right).Value)
}

func TestComparison(t *testing.T) {
	device := testDevice(t)

	lhs := upload[float32](t, device, tensor.Shape{4}, 1, 2, 3, 4)
	rhs := upload[float32](t, device, tensor.Shape{4}, 4, 2, 1, 4)

	tests := []struct {
		name string
		op   func(lhs, rhs *Tensor[float32]) (*BoolTensor, error)
		want []uint32
	}{
		{"equal", Equal[float32], []uint32{0, 1, 0, 1}},
		{"greater", Greater[float32], []uint32{0, 0, 1, 0}},
		{"greater_equal", GreaterEqual[float32], []uint32{0, 1, 1, 1}},
		{"lower", Lower[float32], []uint32{1, 0, 0, 0}},
		{"lower_equal", LowerEqual[float32], []uint32{1, 1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(lhs.Clone(), rhs.Clone())
			require.NoError(t, err)
			assert.Equal(t, tt.want, readback(t, got).Value)
		})
	}

	// Unique operands take the in-place path.
	buffer := lhs.Buffer()
	rhs.Release()
	got, err := GreaterElem(lhs, 2)
	require.NoError(t, err)
	assert.Same(t, buffer, got.Buffer())
	assert.Equal(t, []uint32{0, 0, 1, 1}, readback(t, got).Value)
}

func TestComparisonElem(t *testing.T) {
	device := testDevice(t)

	x := upload[int32](t, device, tensor.Shape{2, 2}, -1, 0, 1, 2)
	defer x.Release()

	eq, err := EqualElem(x.Clone(), 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 0, 0}, readback(t, eq).Value)

	le, err := LowerEqualElem(x.Clone(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 1, 1, 0}, readback(t, le).Value)

	ge, err := GreaterEqualElem(x.Clone(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 0, 1, 1}, readback(t, ge).Value)

	lt, err := LowerElem(x.Clone(), 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 0, 0, 0}, readback(t, lt).Value)
	assert.Equal(t, []int32{-1, 0, 1, 2}, peek(t, x), "clones keep the input intact")
}

func TestComparisonShapeMismatch(t *testing.T) {
	device := testDevice(t)

	lhs := upload[float32](t, device, tensor.Shape{2, 2}, 1, 2, 3, 4)
	rhs := upload[float32](t, device, tensor.Shape{1, 2}, 1, 2)
	_, err := Equal(lhs, rhs)
	assert.True(t, errors.Is(err, ErrShapeMismatch), "comparisons do not broadcast: %v", err)
	lhs.Release()
	rhs.Release()
}

func TestCast(t *testing.T) {
	device := testDevice(t)

	x := upload[float32](t, device, tensor.Shape{4}, -1.5, 0.4, 2.9, 7)
	ints, err := Cast[int32](x)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, 0, 2, 7}, peek(t, ints))

	floats, err := Cast[float32](ints)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0, 2, 7}, readback(t, floats).Value)
}

func TestCopy(t *testing.T) {
	device := testDevice(t)

	x := upload[uint32](t, device, tensor.Shape{3}, 7, 8, 9)
	alias := x.Clone()
	y, err := Copy(x)
	require.NoError(t, err)
	assert.NotSame(t, alias.Buffer(), y.Buffer())
	assert.True(t, alias.CanMut())
	assert.Equal(t, []uint32{7, 8, 9}, readback(t, y).Value)
	alias.Release()
}

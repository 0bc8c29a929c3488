package webgpu

import (
	"github.com/born-ml/tensorgpu/internal/tensor"
	"github.com/pkg/errors"
)

// workgroupSize is the edge of the 2D workgroup used by elementwise kernels.
// 16x16 stays within the default limit of 256 invocations per workgroup.
const workgroupSize = 16

// binaryOp describes an elementwise operator. The name is part of the kernel
// cache key, the symbol is spliced into the template.
type binaryOp struct {
	name        string
	symbol      string
	commutative bool
}

var (
	opAdd = binaryOp{name: "add", symbol: "+", commutative: true}
	opSub = binaryOp{name: "sub", symbol: "-"}
	opMul = binaryOp{name: "mul", symbol: "*", commutative: true}
	opDiv = binaryOp{name: "div", symbol: "/"}

	opEqual        = binaryOp{name: "equal", symbol: "=="}
	opGreater      = binaryOp{name: "greater", symbol: ">"}
	opGreaterEqual = binaryOp{name: "greater_equal", symbol: ">="}
	opLower        = binaryOp{name: "lower", symbol: "<"}
	opLowerEqual   = binaryOp{name: "lower_equal", symbol: "<="}
)

func (op binaryOp) settings(template string, elem tensor.DataType) KernelSettings {
	s := elemwiseSettings(template, elem)
	s.Op = op.name
	s.Replacements = []Replacement{{Placeholder: "{{ ops }}", Value: op.symbol}}
	return s
}

func elemwiseSettings(template string, elem tensor.DataType) KernelSettings {
	return KernelSettings{
		Template:   template,
		Elem:       elem,
		WorkgroupX: workgroupSize,
		WorkgroupY: workgroupSize,
		WorkgroupZ: 1,
	}
}

// sameContext checks that every tensor lives on the context of the first.
func sameContext[E tensor.Element](op string, tensors ...*Tensor[E]) error {
	for _, t := range tensors[1:] {
		if t.ctx != tensors[0].ctx {
			return errors.Wrapf(ErrDeviceMismatch, "%s: %s vs %s", op, tensors[0].ctx.device, t.ctx.device)
		}
	}
	return nil
}

// broadcastShape wraps tensor.BroadcastShapes into the backend sentinels.
func broadcastShape(op string, lhs, rhs tensor.Shape) (tensor.Shape, error) {
	if len(lhs) != len(rhs) {
		return nil, errors.Wrapf(ErrRankMismatch, "%s: %v vs %v", op, lhs, rhs)
	}
	shape, err := tensor.BroadcastShapes(lhs, rhs)
	if err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: %v", op, err)
	}
	return shape, nil
}

// binaryElemwise applies op to lhs and rhs with broadcasting. The result is
// written into lhs (or rhs for commutative operators) when that operand is
// the sole owner of its buffer and already has the broadcast shape;
// otherwise a new buffer is allocated.
func binaryElemwise[E tensor.Element](op binaryOp, lhs, rhs *Tensor[E]) (*Tensor[E], error) {
	lhs.mustBeLive()
	rhs.mustBeLive()

	if err := sameContext(op.name, lhs, rhs); err != nil {
		return nil, err
	}
	shape, err := broadcastShape(op.name, lhs.shape, rhs.shape)
	if err != nil {
		return nil, err
	}

	self := lhs == rhs
	if self {
		rhs = lhs.Clone()
	}

	var out *Tensor[E]
	switch {
	case lhs.CanMutBroadcast(rhs):
		out, err = binaryElemwiseInplace(op, lhs, rhs)
	case op.commutative && rhs.CanMutBroadcast(lhs):
		out, err = binaryElemwiseInplace(op, rhs, lhs)
	default:
		out, err = binaryElemwiseDefault(op, lhs, rhs, shape)
	}
	if err != nil && self {
		rhs.Release()
	}
	return out, err
}

// binaryElemwiseDefault writes the result into a new buffer.
func binaryElemwiseDefault[E tensor.Element](op binaryOp, lhs, rhs *Tensor[E], shape tensor.Shape) (*Tensor[E], error) {
	out, err := empty[E](lhs.ctx, shape)
	if err != nil {
		return nil, err
	}

	err = lhs.ctx.dispatch(
		op.settings("binary_elemwise", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(out.NumElements(), workgroupSize),
		buildInfo(lhs, rhs, out),
		lhs.buffer, rhs.buffer, out.buffer,
	)
	if err != nil {
		out.Release()
		return nil, err
	}

	lhs.Release()
	rhs.Release()
	return out, nil
}

// binaryElemwiseInplace writes the result into target, which must satisfy
// target.CanMutBroadcast(other).
func binaryElemwiseInplace[E tensor.Element](op binaryOp, target, other *Tensor[E]) (*Tensor[E], error) {
	err := target.ctx.dispatch(
		op.settings("binary_elemwise_inplace", tensor.DataTypeOf[E]()),
		elemwiseWorkgroup(target.NumElements(), workgroupSize),
		buildInfo(target, other),
		target.buffer, other.buffer,
	)
	if err != nil {
		return nil, err
	}

	other.Release()
	return target, nil
}

// scalarBuffer uploads a single element.
func scalarBuffer[E tensor.Element](ctx *Context, value E) (*Buffer, error) {
	return ctx.CreateBufferWithData(tensor.AsBytes([]E{value}))
}

// scalarElemwise applies op between every element of lhs and rhs, in place
// when lhs is the sole owner of its buffer.
func scalarElemwise[E tensor.Element](op binaryOp, lhs *Tensor[E], rhs E) (*Tensor[E], error) {
	lhs.mustBeLive()
	ctx := lhs.ctx

	scalar, err := scalarBuffer(ctx, rhs)
	if err != nil {
		return nil, err
	}
	defer scalar.Release()

	workgroup := elemwiseWorkgroup(lhs.NumElements(), workgroupSize)
	elem := tensor.DataTypeOf[E]()

	if lhs.CanMut() {
		err = ctx.dispatch(op.settings("unary_scalar_inplace", elem), workgroup, nil, lhs.buffer, scalar)
		if err != nil {
			return nil, err
		}
		return lhs, nil
	}

	out, err := empty[E](ctx, lhs.shape)
	if err != nil {
		return nil, err
	}
	err = ctx.dispatch(op.settings("unary_scalar", elem), workgroup, nil, lhs.buffer, scalar, out.buffer)
	if err != nil {
		out.Release()
		return nil, err
	}

	lhs.Release()
	return out, nil
}

package cpu

import (
	"fmt"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar,
		func(dst, src []float32, s float32) {
			for i := range src {
				dst[i] = src[i] * s
			}
		},
		func(dst, src []float64, s float64) {
			for i := range src {
				dst[i] = src[i] * s
			}
		})
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar,
		func(dst, src []float32, s float32) {
			for i := range src {
				dst[i] = src[i] + s
			}
		},
		func(dst, src []float64, s float64) {
			for i := range src {
				dst[i] = src[i] + s
			}
		})
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("subScalar", x, scalar,
		func(dst, src []float32, s float32) {
			for i := range src {
				dst[i] = src[i] - s
			}
		},
		func(dst, src []float64, s float64) {
			for i := range src {
				dst[i] = src[i] - s
			}
		})
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("divScalar", x, scalar,
		func(dst, src []float32, s float32) {
			for i := range src {
				dst[i] = src[i] / s
			}
		},
		func(dst, src []float64, s float64) {
			for i := range src {
				dst[i] = src[i] / s
			}
		})
}

// scalarOp allocates the result tensor and dispatches on dtype.
// The scalar's Go type must match the tensor's dtype.
func (cpu *CPUBackend) scalarOp(
	name string,
	x *tensor.RawTensor,
	scalar any,
	f32 func(dst, src []float32, s float32),
	f64 func(dst, src []float64, s float64),
) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		s, ok := scalar.(float32)
		if !ok {
			panic(fmt.Sprintf("%s: scalar type %T does not match tensor dtype float32", name, scalar))
		}
		f32(result.AsFloat32(), x.AsFloat32(), s)
	case tensor.Float64:
		s, ok := scalar.(float64)
		if !ok {
			panic(fmt.Sprintf("%s: scalar type %T does not match tensor dtype float64", name, scalar))
		}
		f64(result.AsFloat64(), x.AsFloat64(), s)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}

	return result
}

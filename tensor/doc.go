// Package tensor provides type-safe tensor operations for the Fathom
// attention library.
//
// # Overview
//
// Tensors are the fundamental data structure in Fathom. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy data access where possible
//   - Copy-on-write buffer sharing
//
// # Basic Usage
//
//	import (
//	    "github.com/fathom-ml/fathom/tensor"
//	    "github.com/fathom-ml/fathom/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    scores := x.MatMul(y.T())
//	}
//
// # Supported Data Types
//
// The attention core is floating-point only: float32 and float64 via the
// DType constraint.
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                           // (3, 4)
//
// # Memory Management
//
// The underlying buffers are reference-counted: Clone shares the buffer
// and backends copy only when an operation would modify shared data.
package tensor

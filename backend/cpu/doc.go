// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Parallel execution of matrix multiplication and softmax
//
// # Basic Usage
//
//	import (
//	    "github.com/fathom-ml/fathom/backend/cpu"
//	    "github.com/fathom-ml/fathom/tensor"
//	    "github.com/fathom-ml/fathom/nn"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Use with attention layers
//	    attn := nn.NewMultiHeadAttention(nn.Config{EmbedDim: 64, NumHeads: 4}, backend)
//	    _ = attn
//	}
//
// # Performance
//
// Matrix multiplication, batched matrix multiplication, and softmax split
// their work across worker goroutines when the row or batch count is large
// enough to amortize the scheduling overhead. Everything else runs on the
// calling goroutine.
package cpu

// Package nn provides the attention modules of the Fathom library: linear
// projections, scaled dot-product attention, and its single-head and
// multi-head wrappers.
package nn

import (
	"fmt"
	"math"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// ScaledDotProductAttention computes attention scores using the scaled dot-product mechanism.
//
// This is the core attention mechanism used in transformers, implementing:
//
//	Attention(Q, K, V) = softmax(QK^T / sqrt(d_k)) * V
//
// Where:
//   - Q (query): what information we're looking for
//   - K (key): what information is available
//   - V (value): the actual information to retrieve
//
// Inputs are either 3D [batch, seq, head_dim] or 4D [batch, heads, seq,
// head_dim]; in the 4D case batch and heads together form one combined
// batch axis and every head is an independent slice of the computation.
//
// The division by sqrt(head_dim) is mandatory: raw dot products grow in
// variance with head_dim, and without the rescaling softmax saturates into
// near-one-hot rows as the dimension increases. The softmax itself
// subtracts each row's maximum before exponentiating, so large score
// magnitudes cannot overflow.
//
// Parameters:
//   - query: Query tensor [batch, (heads,) seq_q, head_dim]
//   - key: Key tensor [batch, (heads,) seq_k, head_dim]
//   - value: Value tensor [batch, (heads,) seq_k, head_dim]
//   - scale: Scaling factor (0 for auto-compute as 1/sqrt(head_dim))
//
// Returns:
//   - output: Attended values [batch, (heads,) seq_q, head_dim]
//   - weights: Attention weights [batch, (heads,) seq_q, seq_k]; every row
//     sums to 1 and all entries are non-negative
//
// Example:
//
//	backend := cpu.New()
//	Q := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	K := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	V := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	output, weights := nn.ScaledDotProductAttention(Q, K, V, 0) // auto-scale
func ScaledDotProductAttention[B tensor.Backend](
	query, key, value *tensor.Tensor[float32, B],
	scale float32,
) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	validateAttentionInputs(query, key, value)

	ndim := len(query.Shape())

	// Auto-compute scale if not provided
	headDim := query.Shape()[ndim-1]
	if scale == 0 {
		scale = float32(1.0 / math.Sqrt(float64(headDim)))
	}

	// 1. Compute attention scores: Q @ K^T using BatchMatMul
	// K^T: swap the last two dimensions
	axes := transposeLastTwo(ndim)
	kT := key.Transpose(axes...)
	scores := query.BatchMatMul(kT)

	// 2. Scale
	scores = scores.MulScalar(scale)

	// 3. Softmax along last dimension (over keys)
	weights := scores.Softmax(-1)

	// 4. Compute output: weights @ V using BatchMatMul
	output := weights.BatchMatMul(value)

	return output, weights
}

// transposeLastTwo returns the axis permutation that swaps the last two of
// ndim axes.
func transposeLastTwo(ndim int) []int {
	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-2], axes[ndim-1] = axes[ndim-1], axes[ndim-2]
	return axes
}

// validateAttentionInputs validates the input tensors for attention.
func validateAttentionInputs[B tensor.Backend](
	query, key, value *tensor.Tensor[float32, B],
) {
	ndim := len(query.Shape())
	if ndim != 3 && ndim != 4 {
		panic(fmt.Sprintf("ScaledDotProductAttention: query must be 3D [batch, seq_q, head_dim] or 4D [batch, heads, seq_q, head_dim], got %dD", ndim))
	}
	if len(key.Shape()) != ndim {
		panic(fmt.Sprintf("ScaledDotProductAttention: key must be %dD like query, got %dD", ndim, len(key.Shape())))
	}
	if len(value.Shape()) != ndim {
		panic(fmt.Sprintf("ScaledDotProductAttention: value must be %dD like query, got %dD", ndim, len(value.Shape())))
	}

	// Q and K must have same head_dim
	if query.Shape()[ndim-1] != key.Shape()[ndim-1] {
		panic("ScaledDotProductAttention: query and key must have same head_dim")
	}

	// K and V must have same seq length
	if key.Shape()[ndim-2] != value.Shape()[ndim-2] {
		panic("ScaledDotProductAttention: key and value must have same seq length")
	}
}

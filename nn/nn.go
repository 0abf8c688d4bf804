package nn

import (
	"math/rand"

	"github.com/fathom-ml/fathom/internal/nn"
	"github.com/fathom-ml/fathom/internal/tensor"
)

// Parameter represents a named parameter of an attention layer.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(64, 32, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// NewLinearRand creates a new linear layer initialized from rng.
// A nil rng falls back to the global source.
func NewLinearRand[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinearRand(inFeatures, outFeatures, rng, backend)
}

// Attention Functions

// ScaledDotProductAttention computes attention scores using the scaled dot-product mechanism.
//
// This is the core attention mechanism used in transformers.
//
// Parameters:
//   - query: Query tensor [batch, (heads,) seq_q, head_dim]
//   - key: Key tensor [batch, (heads,) seq_k, head_dim]
//   - value: Value tensor [batch, (heads,) seq_k, head_dim]
//   - scale: Scaling factor (0 for auto-compute as 1/sqrt(head_dim))
//
// Returns:
//   - output: Attended values [batch, (heads,) seq_q, head_dim]
//   - weights: Attention weights [batch, (heads,) seq_q, seq_k]
//
// Example:
//
//	Q := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	K := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	V := tensor.Randn[float32](tensor.Shape{2, 8, 10, 64}, backend)
//	output, weights := nn.ScaledDotProductAttention(Q, K, V, 0)
func ScaledDotProductAttention[B tensor.Backend](
	query, key, value *tensor.Tensor[float32, B],
	scale float32,
) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	return nn.ScaledDotProductAttention(query, key, value, scale)
}

// SelfAttention represents a single-head self-attention layer.
type SelfAttention[B tensor.Backend] = nn.SelfAttention[B]

// NewSelfAttention creates a new single-head self-attention layer.
//
// Example:
//
//	backend := cpu.New()
//	attn := nn.NewSelfAttention(64, 32, backend)  // embed_dim=64, head_dim=32
//	output, weights := attn.Forward(x)  // [1, seq, 64] -> [1, seq, 32], [1, seq, seq]
func NewSelfAttention[B tensor.Backend](embedDim, headDim int, backend B) *SelfAttention[B] {
	return nn.NewSelfAttention(embedDim, headDim, backend)
}

// NewSelfAttentionRand creates a single-head self-attention layer initialized
// from rng. A nil rng falls back to the global source.
func NewSelfAttentionRand[B tensor.Backend](embedDim, headDim int, rng *rand.Rand, backend B) *SelfAttention[B] {
	return nn.NewSelfAttentionRand(embedDim, headDim, rng, backend)
}

// Config holds the configuration for multi-head attention.
type Config = nn.Config

// MultiHeadAttention represents the multi-head attention mechanism.
type MultiHeadAttention[B tensor.Backend] = nn.MultiHeadAttention[B]

// NewMultiHeadAttention creates a new multi-head attention module.
//
// Example:
//
//	backend := cpu.New()
//	mha := nn.NewMultiHeadAttention(nn.Config{EmbedDim: 768, NumHeads: 12}, backend)
//	output, weights := mha.Forward(x, x, x)  // Self-attention
func NewMultiHeadAttention[B tensor.Backend](cfg Config, backend B) *MultiHeadAttention[B] {
	return nn.NewMultiHeadAttention(cfg, backend)
}

// Initialization functions

// Xavier initializes a tensor using Xavier/Glorot initialization.
// A nil rng falls back to the global source.
//
// Example:
//
//	backend := cpu.New()
//	weights := nn.Xavier(nil, 64, 32, tensor.Shape{32, 64}, backend)
func Xavier[B tensor.Backend](rng *rand.Rand, fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(rng, fanIn, fanOut, shape, backend)
}

// Zeros initializes a tensor with zeros (for biases).
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones initializes a tensor with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn initializes a tensor with random values from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}

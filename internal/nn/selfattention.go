package nn

import (
	"fmt"
	"math/rand"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// SelfAttention implements a single scaled dot-product attention head with
// its own learned Q/K/V projections.
//
// Architecture:
//
//	SelfAttention(x) = SDPA(x*W_Q, x*W_K, x*W_V)
//
// Unlike MultiHeadAttention there is no output projection: the result lives
// in the head's own head_dim-sized space. head_dim does not have to match
// embed_dim.
//
// Example:
//
//	backend := cpu.New()
//	attn := nn.NewSelfAttention(64, 32, backend) // embed_dim=64, head_dim=32
//	output, weights := attn.Forward(x)           // x: [batch, seq, 64]
//	// output: [batch, seq, 32], weights: [batch, seq, seq]
type SelfAttention[B tensor.Backend] struct {
	WQ       *Linear[B] // Query projection [head_dim, embed_dim]
	WK       *Linear[B] // Key projection [head_dim, embed_dim]
	WV       *Linear[B] // Value projection [head_dim, embed_dim]
	EmbedDim int
	HeadDim  int
	backend  B
}

// NewSelfAttention creates a single-head self-attention module.
//
// The three projections are built eagerly at construction and initialized
// with Xavier uniform weights from the shared random source.
//
// Panics if embedDim or headDim is not positive.
func NewSelfAttention[B tensor.Backend](embedDim, headDim int, backend B) *SelfAttention[B] {
	return NewSelfAttentionRand[B](embedDim, headDim, nil, backend)
}

// NewSelfAttentionRand creates a single-head self-attention module drawing
// its initial weights from the given random source.
func NewSelfAttentionRand[B tensor.Backend](embedDim, headDim int, rng *rand.Rand, backend B) *SelfAttention[B] {
	if embedDim <= 0 {
		panic(fmt.Sprintf("SelfAttention: embed_dim must be positive, got %d", embedDim))
	}
	if headDim <= 0 {
		panic(fmt.Sprintf("SelfAttention: head_dim must be positive, got %d", headDim))
	}

	return &SelfAttention[B]{
		WQ:       NewLinearRand[B](embedDim, headDim, rng, backend),
		WK:       NewLinearRand[B](embedDim, headDim, rng, backend),
		WV:       NewLinearRand[B](embedDim, headDim, rng, backend),
		EmbedDim: embedDim,
		HeadDim:  headDim,
		backend:  backend,
	}
}

// Forward computes single-head self-attention over the input sequence.
//
// Args:
//   - input: [batch, seq, embed_dim]
//
// Returns:
//   - output: [batch, seq, head_dim]
//   - weights: [batch, seq, seq] post-softmax attention weights; returned
//     for inspection and visualization, every row sums to 1
//
// Panics if the input is not 3D or its trailing dimension does not equal
// embed_dim.
func (s *SelfAttention[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	shape := input.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("SelfAttention.Forward: expected 3D input [batch, seq, embed_dim], got shape %v", shape))
	}
	if shape[2] != s.EmbedDim {
		panic(fmt.Sprintf("SelfAttention.Forward: expected embed_dim %d, got %d", s.EmbedDim, shape[2]))
	}

	q := s.WQ.Forward(input)
	k := s.WK.Forward(input)
	v := s.WV.Forward(input)

	return ScaledDotProductAttention(q, k, v, 0)
}

// Parameters returns all learned parameters (WQ, WK, WV weights and biases).
func (s *SelfAttention[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 6)
	params = append(params, s.WQ.Parameters()...)
	params = append(params, s.WK.Parameters()...)
	params = append(params, s.WV.Parameters()...)
	return params
}

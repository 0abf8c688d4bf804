package nn

import (
	"fmt"
	"math/rand"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// Config holds the construction parameters for MultiHeadAttention.
type Config struct {
	// EmbedDim is the input and output embedding dimension.
	EmbedDim int

	// NumHeads is the number of attention heads.
	NumHeads int

	// HeadDim is the per-head dimension. If zero, it is computed as
	// EmbedDim / NumHeads (which must divide evenly). An explicit HeadDim
	// may diverge from EmbedDim / NumHeads: the Q/K/V projections map
	// embed_dim -> num_heads*head_dim independent of the output
	// projection, which always maps back to embed_dim.
	HeadDim int

	// Seed selects a deterministic weight initialization when non-zero.
	// Zero uses the shared math/rand source.
	Seed int64
}

// MultiHeadAttention implements the multi-head attention mechanism.
//
// Architecture:
//
//	MHA(Q, K, V) = Concat(head_1, ..., head_h) * W_O
//	head_i = SDPA(Q*W_Q_i, K*W_K_i, V*W_V_i)
//
// All heads are computed in one batched scaled dot-product attention call
// by folding the head axis into the batch axis; heads never interact until
// their outputs are concatenated along the feature axis and recombined by
// the output projection.
//
// Example:
//
//	backend := cpu.New()
//	mha := nn.NewMultiHeadAttention(nn.Config{EmbedDim: 64, NumHeads: 4, HeadDim: 16}, backend)
//	output, weights := mha.Forward(x, x, x) // self-attention
type MultiHeadAttention[B tensor.Backend] struct {
	WQ      *Linear[B] // Query projection [num_heads*head_dim, embed_dim]
	WK      *Linear[B] // Key projection [num_heads*head_dim, embed_dim]
	WV      *Linear[B] // Value projection [num_heads*head_dim, embed_dim]
	WO      *Linear[B] // Output projection [embed_dim, num_heads*head_dim]
	config  Config
	backend B
}

// NewMultiHeadAttention creates a new multi-head attention module.
//
// Panics if EmbedDim or NumHeads is not positive, if HeadDim is negative,
// or if HeadDim is zero and EmbedDim is not divisible by NumHeads.
func NewMultiHeadAttention[B tensor.Backend](cfg Config, backend B) *MultiHeadAttention[B] {
	if cfg.EmbedDim <= 0 {
		panic(fmt.Sprintf("MultiHeadAttention: embed_dim must be positive, got %d", cfg.EmbedDim))
	}
	if cfg.NumHeads <= 0 {
		panic(fmt.Sprintf("MultiHeadAttention: num_heads must be positive, got %d", cfg.NumHeads))
	}
	if cfg.HeadDim < 0 {
		panic(fmt.Sprintf("MultiHeadAttention: head_dim must not be negative, got %d", cfg.HeadDim))
	}
	if cfg.HeadDim == 0 {
		if cfg.EmbedDim%cfg.NumHeads != 0 {
			panic(fmt.Sprintf("MultiHeadAttention: embed_dim (%d) must be divisible by num_heads (%d) when head_dim is unset",
				cfg.EmbedDim, cfg.NumHeads))
		}
		cfg.HeadDim = cfg.EmbedDim / cfg.NumHeads
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic init, not security-critical
	}

	innerDim := cfg.NumHeads * cfg.HeadDim

	return &MultiHeadAttention[B]{
		WQ:      NewLinearRand[B](cfg.EmbedDim, innerDim, rng, backend),
		WK:      NewLinearRand[B](cfg.EmbedDim, innerDim, rng, backend),
		WV:      NewLinearRand[B](cfg.EmbedDim, innerDim, rng, backend),
		WO:      NewLinearRand[B](innerDim, cfg.EmbedDim, rng, backend),
		config:  cfg,
		backend: backend,
	}
}

// Config returns the module's resolved configuration (HeadDim filled in).
func (m *MultiHeadAttention[B]) Config() Config {
	return m.config
}

// Forward computes multi-head attention.
//
// Args:
//   - query: Query tensor [batch, seq_q, embed_dim]
//   - key: Key tensor [batch, seq_k, embed_dim]
//   - value: Value tensor [batch, seq_k, embed_dim]
//
// Returns:
//   - output: [batch, seq_q, embed_dim]
//   - weights: [batch, num_heads, seq_q, seq_k], all heads unreduced; every
//     row sums to 1
//
// For self-attention, pass the same tensor for query, key, and value.
// Panics if an input is not 3D or its trailing dimension does not equal
// embed_dim.
func (m *MultiHeadAttention[B]) Forward(
	query, key, value *tensor.Tensor[float32, B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	m.validateInput("query", query)
	m.validateInput("key", key)
	m.validateInput("value", value)

	batch := query.Shape()[0]
	seqQ := query.Shape()[1]
	seqK := key.Shape()[1]

	numHeads := m.config.NumHeads
	headDim := m.config.HeadDim
	innerDim := numHeads * headDim

	// 1. Project Q, K, V: [batch, seq, embed_dim] -> [batch, seq, num_heads*head_dim]
	q := m.WQ.Forward(query)
	k := m.WK.Forward(key)
	v := m.WV.Forward(value)

	// 2. Split heads: reshape to [batch, seq, num_heads, head_dim], then
	// transpose to [batch, num_heads, seq, head_dim] so that (batch, heads)
	// form the combined batch axis of one batched SDPA call.
	q = q.Reshape(batch, seqQ, numHeads, headDim).Transpose(0, 2, 1, 3)
	k = k.Reshape(batch, seqK, numHeads, headDim).Transpose(0, 2, 1, 3)
	v = v.Reshape(batch, seqK, numHeads, headDim).Transpose(0, 2, 1, 3)

	// 3. Scaled dot-product attention, batched over (batch, heads) jointly
	attnOut, weights := ScaledDotProductAttention(q, k, v, 0)

	// 4. Merge heads: inverse of step 2, concatenating head outputs along
	// the feature axis in head-index order.
	attnOut = attnOut.Transpose(0, 2, 1, 3).Reshape(batch, seqQ, innerDim)

	// 5. Output projection back to embed_dim
	output := m.WO.Forward(attnOut)

	return output, weights
}

// validateInput checks one forward input against the configuration.
func (m *MultiHeadAttention[B]) validateInput(name string, t *tensor.Tensor[float32, B]) {
	shape := t.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("MultiHeadAttention.Forward: %s must be 3D [batch, seq, embed_dim], got shape %v", name, shape))
	}
	if shape[2] != m.config.EmbedDim {
		panic(fmt.Sprintf("MultiHeadAttention.Forward: %s embed_dim mismatch: expected %d, got %d",
			name, m.config.EmbedDim, shape[2]))
	}
}

// Parameters returns all learned parameters (WQ, WK, WV, WO weights and biases).
func (m *MultiHeadAttention[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 8)
	params = append(params, m.WQ.Parameters()...)
	params = append(params, m.WK.Parameters()...)
	params = append(params, m.WV.Parameters()...)
	params = append(params, m.WO.Parameters()...)
	return params
}

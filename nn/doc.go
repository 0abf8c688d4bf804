// Package nn provides attention layers and building blocks.
//
// # Overview
//
// This package contains:
//   - ScaledDotProductAttention: the core attention function
//   - SelfAttention: single-head self-attention layer
//   - MultiHeadAttention: multi-head attention with learned projections
//   - Linear: fully connected layer used for Q/K/V/output projections
//   - Initialization: Xavier, Zeros, Ones, Randn
//
// # Basic Usage
//
//	import (
//	    "github.com/fathom-ml/fathom/nn"
//	    "github.com/fathom-ml/fathom/tensor"
//	    "github.com/fathom-ml/fathom/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    mha := nn.NewMultiHeadAttention(nn.Config{
//	        EmbedDim: 64,
//	        NumHeads: 4,
//	    }, backend)
//
//	    x := tensor.Randn[float32](tensor.Shape{1, 10, 64}, backend)
//	    output, weights := mha.Forward(x, x, x)
//	    _ = output  // [1, 10, 64]
//	    _ = weights // [1, 4, 10, 10]
//	}
//
// # Attention
//
// ScaledDotProductAttention works on 3D [batch, seq, head_dim] or
// 4D [batch, heads, seq, head_dim] tensors:
//
//	output, weights := nn.ScaledDotProductAttention(Q, K, V, 0)
//
// Passing scale=0 uses the standard 1/sqrt(head_dim). The returned weights
// are a first-class result: each row is a probability distribution over the
// key positions.
//
// MultiHeadAttention projects queries, keys, and values, splits them into
// heads, runs scaled dot-product attention per head in one batched call,
// then recombines the heads through an output projection.
//
// # Determinism
//
// Layers are initialized from the global random source by default. For
// reproducible parameters, set Config.Seed or use the *Rand constructors
// with your own rand.Rand.
package nn

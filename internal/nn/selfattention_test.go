package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathom-ml/fathom/internal/backend/cpu"
	"github.com/fathom-ml/fathom/internal/tensor"
)

func TestNewSelfAttention(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(64, 32, backend)

	require.NotNil(t, sa)
	assert.Equal(t, 64, sa.EmbedDim)
	assert.Equal(t, 32, sa.HeadDim)
	assert.NotNil(t, sa.WQ)
	assert.NotNil(t, sa.WK)
	assert.NotNil(t, sa.WV)

	// Each projection maps embed_dim -> head_dim
	assert.Equal(t, 64, sa.WQ.InFeatures())
	assert.Equal(t, 32, sa.WQ.OutFeatures())
}

func TestNewSelfAttention_InvalidDims(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() { NewSelfAttention(0, 32, backend) })
	assert.Panics(t, func() { NewSelfAttention(64, 0, backend) })
	assert.Panics(t, func() { NewSelfAttention(64, -1, backend) })
}

func TestSelfAttention_Forward(t *testing.T) {
	backend := cpu.New()

	// embed_dim=64, head_dim=32, sequence of 5 tokens
	sa := NewSelfAttention(64, 32, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 5, 64}, backend)

	output, weights := sa.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{1, 5, 32}),
		"output shape = %v", output.Shape())
	assert.True(t, weights.Shape().Equal(tensor.Shape{1, 5, 5}),
		"weights shape = %v", weights.Shape())

	assertRowsSumToOne(t, weights)
}

func TestSelfAttention_ForwardBatched(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(16, 8, backend)
	input := tensor.Randn[float32](tensor.Shape{3, 7, 16}, backend)

	output, weights := sa.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{3, 7, 8}))
	assert.True(t, weights.Shape().Equal(tensor.Shape{3, 7, 7}))

	assertRowsSumToOne(t, weights)
}

func TestSelfAttention_ForwardValidation(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(16, 8, backend)

	// Wrong embedding dimension
	bad := tensor.Randn[float32](tensor.Shape{1, 4, 32}, backend)
	assert.Panics(t, func() { sa.Forward(bad) })

	// Wrong rank
	flat := tensor.Randn[float32](tensor.Shape{4, 16}, backend)
	assert.Panics(t, func() { sa.Forward(flat) })
}

func TestSelfAttention_EmptySequence(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(16, 8, backend)
	input := tensor.Zeros[float32](tensor.Shape{1, 0, 16}, backend)

	output, weights := sa.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{1, 0, 8}),
		"output shape = %v", output.Shape())
	assert.True(t, weights.Shape().Equal(tensor.Shape{1, 0, 0}),
		"weights shape = %v", weights.Shape())
}

func TestSelfAttention_Parameters(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(16, 8, backend)
	params := sa.Parameters()

	// WQ, WK, WV with weight and bias each
	assert.Len(t, params, 6)
}

func TestSelfAttention_Deterministic(t *testing.T) {
	backend := cpu.New()

	sa := NewSelfAttention(16, 8, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 4, 16}, backend)

	out1, w1 := sa.Forward(input)
	out2, w2 := sa.Forward(input)

	assert.Equal(t, out1.Data(), out2.Data(), "repeated forward passes should match")
	assert.Equal(t, w1.Data(), w2.Data())
}

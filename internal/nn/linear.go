package nn

import (
	"fmt"
	"math/rand"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// Linear implements a learned affine projection.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [..., in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [..., out_features]
//
// All leading dimensions of the input are preserved; only the trailing
// feature dimension is transformed. Weights are initialized using
// Xavier/Glorot initialization, biases to zeros.
//
// Example:
//
//	backend := cpu.New()
//	proj := nn.NewLinear(64, 32, backend)
//
//	input := tensor.Randn[float32](tensor.Shape{2, 5, 64}, backend)
//	output := proj.Forward(input) // shape: [2, 5, 32]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
	backend     B
}

// NewLinear creates a new Linear projection.
//
// Weights are initialized using Xavier/Glorot uniform distribution from the
// shared random source; use NewLinearRand to control the source.
//
// Panics if inFeatures or outFeatures is not positive.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return NewLinearRand[B](inFeatures, outFeatures, nil, backend)
}

// NewLinearRand creates a Linear projection drawing its initial weights
// from the given random source. A nil rng uses the shared math/rand source.
func NewLinearRand[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("Linear: features must be positive, got in=%d out=%d", inFeatures, outFeatures))
	}

	// Weight: [out_features, in_features]
	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", Xavier(rng, inFeatures, outFeatures, weightShape, backend))

	// Bias: [out_features]
	biasShape := tensor.Shape{outFeatures}
	bias := NewParameter("bias", Zeros(biasShape, backend))

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward computes the output of the projection.
//
// Performs: y = x @ W.T + b
//
// Input shape: [..., in_features]
// Output shape: [..., out_features]
//
// The input may have any number of leading dimensions; they are flattened
// for the matrix multiply and restored on the result. Panics if the
// trailing dimension does not equal in_features.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) == 0 {
		panic("Linear.Forward: input must have at least 1 dimension")
	}
	if inputShape[len(inputShape)-1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d (shape %v)",
			l.inFeatures, inputShape[len(inputShape)-1], inputShape))
	}

	// Flatten leading dims: [..., in_features] -> [rows, in_features]
	lead := inputShape[:len(inputShape)-1]
	rows := 1
	for _, d := range lead {
		rows *= d
	}
	input2D := input.Reshape(rows, l.inFeatures)

	// x @ W.T: [rows, in_features] @ [in_features, out_features]
	wT := l.weight.Tensor().T()
	output := input2D.MatMul(wT)

	// Broadcast bias over rows
	b := l.bias.Tensor().Reshape(1, l.outFeatures)
	output = output.Add(b)

	// Restore leading dims: [rows, out_features] -> [..., out_features]
	outShape := append(lead.Clone(), l.outFeatures)
	return output.Reshape(outShape...)
}

// Parameters returns the projection's parameters: [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns a map of parameter names to raw tensors.
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"weight": l.weight.Tensor().Raw(),
		"bias":   l.bias.Tensor().Raw(),
	}
}

// LoadStateDict loads parameters from a state dictionary.
// Shapes and dtypes must match the projection's configuration.
func (l *Linear[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	weightRaw, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}

	expectedWeightShape := tensor.Shape{l.outFeatures, l.inFeatures}
	if !weightRaw.Shape().Equal(expectedWeightShape) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v",
			expectedWeightShape, weightRaw.Shape())
	}
	if weightRaw.DType() != tensor.Float32 {
		return fmt.Errorf("weight dtype mismatch: expected float32, got %v", weightRaw.DType())
	}

	copy(l.weight.Tensor().Data(), weightRaw.AsFloat32())

	biasRaw, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}

	expectedBiasShape := tensor.Shape{l.outFeatures}
	if !biasRaw.Shape().Equal(expectedBiasShape) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v",
			expectedBiasShape, biasRaw.Shape())
	}
	if biasRaw.DType() != tensor.Float32 {
		return fmt.Errorf("bias dtype mismatch: expected float32, got %v", biasRaw.DType())
	}

	copy(l.bias.Tensor().Data(), biasRaw.AsFloat32())

	return nil
}

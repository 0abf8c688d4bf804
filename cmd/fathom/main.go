// Command fathom runs multi-head self-attention over a tokenized input
// text and prints the resulting attention-weight matrix.
//
// It is a demo harness around the library: it supplies the input tensors
// (token embeddings) and consumes the output plus attention weights; the
// attention computation itself lives in the nn package.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pkoukk/tiktoken-go"

	"github.com/fathom-ml/fathom/backend/cpu"
	"github.com/fathom-ml/fathom/nn"
	"github.com/fathom-ml/fathom/tensor"
)

func main() {
	text := flag.String("text", "the quick brown fox jumps over the lazy dog", "input text to attend over")
	embedDim := flag.Int("embed-dim", 64, "embedding dimension")
	numHeads := flag.Int("heads", 4, "number of attention heads")
	headDim := flag.Int("head-dim", 0, "per-head dimension (0 = embed-dim / heads)")
	seed := flag.Int64("seed", 42, "seed for embeddings and weight initialization")
	flag.Parse()

	if err := run(*text, *embedDim, *numHeads, *headDim, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "fathom: %v\n", err)
		os.Exit(1)
	}
}

func run(text string, embedDim, numHeads, headDim int, seed int64) error {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return fmt.Errorf("load tokenizer: %w", err)
	}

	ids := enc.Encode(text, nil, nil)
	if len(ids) == 0 {
		return fmt.Errorf("input text produced no tokens")
	}

	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = enc.Decode([]int{id})
	}

	backend := cpu.New()
	input := embedTokens(ids, embedDim, seed, backend)

	mha := nn.NewMultiHeadAttention(nn.Config{
		EmbedDim: embedDim,
		NumHeads: numHeads,
		HeadDim:  headDim,
		Seed:     seed,
	}, backend)

	output, weights := mha.Forward(input, input, input)

	cfg := mha.Config()
	fmt.Printf("tokens: %d  embed_dim: %d  heads: %d  head_dim: %d\n",
		len(ids), embedDim, cfg.NumHeads, cfg.HeadDim)
	fmt.Printf("output shape:  %v\n", output.Shape())
	fmt.Printf("weights shape: %v\n\n", weights.Shape())

	for h := 0; h < cfg.NumHeads; h++ {
		fmt.Printf("head %d attention weights:\n", h)
		printHeatmap(weights, h, labels)
		fmt.Println()
	}

	return nil
}

// embedTokens builds a [1, seq, embedDim] input batch with a deterministic
// pseudo-embedding per token id. Equal tokens map to equal vectors, so
// repeated words are visible in the attention pattern.
func embedTokens(ids []int, embedDim int, seed int64, backend *cpu.Backend) *tensor.Tensor[float32, *cpu.Backend] {
	input := tensor.Zeros[float32](tensor.Shape{1, len(ids), embedDim}, backend)
	data := input.Data()

	for i, id := range ids {
		rng := rand.New(rand.NewSource(seed + int64(id))) //nolint:gosec // demo embeddings, not security-critical
		for d := 0; d < embedDim; d++ {
			data[i*embedDim+d] = float32(rng.NormFloat64())
		}
	}
	return input
}

// printHeatmap renders one head's seq x seq weight matrix as shaded cells,
// darkest where the query attends most.
func printHeatmap(weights *tensor.Tensor[float32, *cpu.Backend], head int, labels []string) {
	shades := []rune(" .:-=+*#%@")
	seq := len(labels)

	for i := 0; i < seq; i++ {
		fmt.Printf("%12.12s |", labels[i])
		for j := 0; j < seq; j++ {
			w := weights.At(0, head, i, j)
			idx := int(w * float32(len(shades)))
			if idx >= len(shades) {
				idx = len(shades) - 1
			}
			fmt.Printf(" %c", shades[idx])
		}
		fmt.Println()
	}
}

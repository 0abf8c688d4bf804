package cpu

import (
	"math"
	"testing"

	"github.com/fathom-ml/fathom/internal/parallel"
	"github.com/fathom-ml/fathom/internal/tensor"
)

// TestCPUBackend_Softmax tests softmax along the last dimension.
func TestCPUBackend_Softmax(t *testing.T) {
	backend := newTestBackend()

	t.Run("RowsSumToOne", func(t *testing.T) {
		x := newFloat32(t, []float32{1, 2, 3, -1, 0, 1}, tensor.Shape{2, 3})

		result := backend.Softmax(x, -1)
		data := result.AsFloat32()

		for row := 0; row < 2; row++ {
			sum := float32(0)
			for j := 0; j < 3; j++ {
				v := data[row*3+j]
				if v < 0 {
					t.Errorf("Softmax produced negative value %v", v)
				}
				sum += v
			}
			if math.Abs(float64(sum-1)) > 1e-5 {
				t.Errorf("Row %d sum = %v, want 1.0", row, sum)
			}
		}
	})

	t.Run("UniformInput", func(t *testing.T) {
		x := newFloat32(t, []float32{3, 3, 3, 3}, tensor.Shape{1, 4})

		result := backend.Softmax(x, -1)

		for i, v := range result.AsFloat32() {
			if math.Abs(float64(v-0.25)) > 1e-6 {
				t.Errorf("Uniform softmax[%d] = %v, want 0.25", i, v)
			}
		}
	})

	t.Run("LargeValues", func(t *testing.T) {
		// Without the max-subtraction trick these would overflow exp
		x := newFloat32(t, []float32{1000, 1001, 1002}, tensor.Shape{1, 3})

		result := backend.Softmax(x, -1)
		data := result.AsFloat32()

		sum := float32(0)
		for _, v := range data {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("Softmax produced non-finite value %v", v)
			}
			sum += v
		}
		if math.Abs(float64(sum-1)) > 1e-5 {
			t.Errorf("Sum = %v, want 1.0", sum)
		}

		// Same result as the shifted small values
		shifted := newFloat32(t, []float32{0, 1, 2}, tensor.Shape{1, 3})
		want := backend.Softmax(shifted, -1)
		if !float32SliceEqual(data, want.AsFloat32()) {
			t.Errorf("Softmax not shift-invariant: %v vs %v", data, want.AsFloat32())
		}
	})

	t.Run("MiddleDim", func(t *testing.T) {
		// Softmax along dim 1 of a [2, 2, 2] tensor
		x := newFloat32(t, []float32{
			1, 2, 3, 4,
			5, 6, 7, 8,
		}, tensor.Shape{2, 2, 2})

		result := backend.Softmax(x, 1)
		data := result.AsFloat32()

		// Columns (b, :, d) sum to 1
		for b := 0; b < 2; b++ {
			for d := 0; d < 2; d++ {
				sum := data[b*4+d] + data[b*4+2+d]
				if math.Abs(float64(sum-1)) > 1e-5 {
					t.Errorf("Softmax dim=1 column (%d,%d) sum = %v, want 1.0", b, d, sum)
				}
			}
		}
	})

	t.Run("EmptyAxis", func(t *testing.T) {
		x, _ := tensor.NewRaw(tensor.Shape{1, 0, 4}, tensor.Float32, tensor.CPU)

		result := backend.Softmax(x, -1)

		if !shapeEqual(result.Shape(), tensor.Shape{1, 0, 4}) {
			t.Errorf("Softmax shape = %v, want [1 0 4]", result.Shape())
		}
	})

	t.Run("EmptyRows", func(t *testing.T) {
		x, _ := tensor.NewRaw(tensor.Shape{1, 4, 0}, tensor.Float32, tensor.CPU)

		result := backend.Softmax(x, -1)

		if result.NumElements() != 0 {
			t.Errorf("Softmax over empty axis should stay empty, got %d elements", result.NumElements())
		}
	})
}

// TestCPUBackend_SoftmaxParallel tests that the parallel path matches sequential.
func TestCPUBackend_SoftmaxParallel(t *testing.T) {
	sequential := NewWithParallel(parallel.Sequential())
	parallelBackend := NewWithParallel(parallel.Config{
		Enabled:      true,
		NumWorkers:   4,
		MinChunkSize: 1,
	})

	x, _ := tensor.NewRaw(tensor.Shape{64, 32}, tensor.Float32, tensor.CPU)
	data := x.AsFloat32()
	for i := range data {
		data[i] = float32(i%17) - 8
	}

	want := sequential.Softmax(x, -1)
	got := parallelBackend.Softmax(x, -1)

	if !float32SliceEqual(got.AsFloat32(), want.AsFloat32()) {
		t.Error("parallel Softmax differs from sequential result")
	}
}

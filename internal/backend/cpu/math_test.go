package cpu

import (
	"math"
	"testing"

	"github.com/fathom-ml/fathom/internal/tensor"
)

// TestCPUBackend_Exp tests element-wise exponential.
func TestCPUBackend_Exp(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32(t, []float32{0, 1, -1}, tensor.Shape{3})
	result := backend.Exp(x)

	data := result.AsFloat32()
	want := []float32{1, float32(math.E), float32(1 / math.E)}
	for i := range want {
		if math.Abs(float64(data[i]-want[i])) > 1e-6 {
			t.Errorf("Exp[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}

// TestCPUBackend_Sqrt tests element-wise square root.
func TestCPUBackend_Sqrt(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32(t, []float32{0, 4, 9, 2}, tensor.Shape{4})
	result := backend.Sqrt(x)

	data := result.AsFloat32()
	want := []float32{0, 2, 3, float32(math.Sqrt2)}
	if !float32SliceEqual(data, want) {
		t.Errorf("Sqrt failed: got %v, expected %v", data, want)
	}

	t.Run("Negative", func(t *testing.T) {
		neg := newFloat32(t, []float32{-1}, tensor.Shape{1})

		defer func() {
			if r := recover(); r == nil {
				t.Error("Sqrt of negative value should panic")
			}
		}()
		backend.Sqrt(neg)
	})
}

// TestCPUBackend_ScalarOps tests element-wise operations with a scalar.
func TestCPUBackend_ScalarOps(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32(t, []float32{2, 4, 6, 8}, tensor.Shape{2, 2})

	mul := backend.MulScalar(x, float32(0.5))
	if !float32SliceEqual(mul.AsFloat32(), []float32{1, 2, 3, 4}) {
		t.Errorf("MulScalar failed: got %v", mul.AsFloat32())
	}

	add := backend.AddScalar(x, float32(1))
	if !float32SliceEqual(add.AsFloat32(), []float32{3, 5, 7, 9}) {
		t.Errorf("AddScalar failed: got %v", add.AsFloat32())
	}

	sub := backend.SubScalar(x, float32(2))
	if !float32SliceEqual(sub.AsFloat32(), []float32{0, 2, 4, 6}) {
		t.Errorf("SubScalar failed: got %v", sub.AsFloat32())
	}

	div := backend.DivScalar(x, float32(2))
	if !float32SliceEqual(div.AsFloat32(), []float32{1, 2, 3, 4}) {
		t.Errorf("DivScalar failed: got %v", div.AsFloat32())
	}
}

// TestCPUBackend_ScalarTypeMismatch tests dtype/scalar type agreement.
func TestCPUBackend_ScalarTypeMismatch(t *testing.T) {
	backend := newTestBackend()

	x := newFloat32(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("MulScalar with float64 scalar on float32 tensor should panic")
		}
	}()
	backend.MulScalar(x, float64(2))
}

package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	if Float32.String() != "float32" {
		t.Errorf("Float32.String() = %q, want %q", Float32.String(), "float32")
	}
	if Float64.String() != "float64" {
		t.Errorf("Float64.String() = %q, want %q", Float64.String(), "float64")
	}
}

// Tensor Tests

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	data := []float32{1, 2, 3, 4, 5, 6}
	tensor, err := FromSlice(data, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, tensor.Shape(), "FromSlice shape")

	if tensor.DType() != Float32 {
		t.Errorf("DType = %v, want Float32", tensor.DType())
	}

	got := tensor.Data()
	for i, want := range data {
		assertEqualFloat32(t, want, got[i], "FromSlice data")
	}
}

func TestFromSliceSizeMismatch(t *testing.T) {
	backend := NewMockBackend()

	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, backend)
	if err == nil {
		t.Error("FromSlice should fail when data length doesn't match shape")
	}
}

func TestFromSliceFloat64(t *testing.T) {
	backend := NewMockBackend()

	tensor, err := FromSlice([]float64{1.5, 2.5}, Shape{2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if tensor.DType() != Float64 {
		t.Errorf("DType = %v, want Float64", tensor.DType())
	}
	if tensor.Data()[1] != 2.5 {
		t.Errorf("Data()[1] = %v, want 2.5", tensor.Data()[1])
	}
}

func TestTensorAtSet(t *testing.T) {
	backend := NewMockBackend()

	tensor, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	// Row-major layout: element [1][2] is the last one
	assertEqualFloat32(t, 6, tensor.At(1, 2), "At(1,2)")
	assertEqualFloat32(t, 2, tensor.At(0, 1), "At(0,1)")

	tensor.Set(42, 1, 0)
	assertEqualFloat32(t, 42, tensor.At(1, 0), "At(1,0) after Set")
}

func TestTensorNumElements(t *testing.T) {
	backend := NewMockBackend()

	tensor := Zeros[float32](Shape{2, 3, 4}, backend)
	if tensor.NumElements() != 24 {
		t.Errorf("NumElements = %d, want 24", tensor.NumElements())
	}
}

func TestTensorClone(t *testing.T) {
	backend := NewMockBackend()

	a, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	b := a.Clone()

	assertEqualShape(t, a.Shape(), b.Shape(), "Clone shape")

	// Clone shares the buffer until a write forces a copy
	if a.Raw().IsUnique() {
		t.Error("original should not be unique after Clone")
	}
	if b.Raw().IsUnique() {
		t.Error("clone should not be unique while original is alive")
	}
}

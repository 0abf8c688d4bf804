package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float32, CPU)
	data := raw.AsFloat32()

	if len(data) != 6 {
		t.Errorf("AsFloat32 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat64(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float64, CPU)
	data := raw.AsFloat64()

	if len(data) != 4 {
		t.Errorf("AsFloat64 length = %d, want 4", len(data))
	}

	data[3] = 1.5
	if raw.AsFloat64()[3] != 1.5 {
		t.Error("AsFloat64 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat32WrongDType(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float64, CPU)

	defer func() {
		if r := recover(); r == nil {
			t.Error("AsFloat32 on Float64 tensor should panic")
		}
	}()
	_ = raw.AsFloat32()
}

func TestRawTensorEmpty(t *testing.T) {
	raw, err := NewRaw(Shape{1, 0, 64}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw with zero-size dim failed: %v", err)
	}

	if raw.NumElements() != 0 {
		t.Errorf("NumElements = %d, want 0", raw.NumElements())
	}
	if data := raw.AsFloat32(); data != nil {
		t.Errorf("AsFloat32 on empty tensor = %v, want nil", data)
	}
}

func TestRawTensorNegativeShape(t *testing.T) {
	_, err := NewRaw(Shape{2, -3}, Float32, CPU)
	if err == nil {
		t.Error("NewRaw with negative dimension should fail")
	}
}

func TestRawTensorByteSize(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3}, Float32, CPU)
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", raw.ByteSize())
	}

	raw64, _ := NewRaw(Shape{2, 3}, Float64, CPU)
	if raw64.ByteSize() != 48 {
		t.Errorf("ByteSize = %d, want 48", raw64.ByteSize())
	}
}

// Copy-on-Write Tests

func TestRawTensorCloneSharesBuffer(t *testing.T) {
	a, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	a.AsFloat32()[0] = 7

	b := a.Clone()

	if a.IsUnique() || b.IsUnique() {
		t.Error("clone should share the buffer with the original")
	}

	// Shared buffer: writes through one view are visible in the other
	if b.AsFloat32()[0] != 7 {
		t.Errorf("clone data = %v, want 7", b.AsFloat32()[0])
	}
}

func TestRawTensorReleaseRestoresUniqueness(t *testing.T) {
	a, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	b := a.Clone()

	b.Release()

	if !a.IsUnique() {
		t.Error("original should be unique again after releasing the clone")
	}
}

func TestRawTensorStrides(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3, 4}, Float32, CPU)
	strides := raw.Strides()

	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("Strides() = %v, want %v", strides, want)
			break
		}
	}
}

package tensor

import (
	"fmt"
	"math"
	"testing"
)

func TestTensorAdd(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)

	c := a.Add(b)

	expected := []float32{11, 22, 33, 44}
	got := c.Data()
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], fmt.Sprintf("Add[%d]", i))
	}
}

func TestTensorAddBroadcast(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	bias, _ := FromSlice([]float32{10, 20, 30}, Shape{1, 3}, backend)

	c := a.Add(bias)

	assertEqualShape(t, Shape{2, 3}, c.Shape(), "broadcast Add shape")

	expected := []float32{11, 22, 33, 14, 25, 36}
	got := c.Data()
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], fmt.Sprintf("broadcast Add[%d]", i))
	}
}

func TestTensorAddBroadcastRankMismatch(t *testing.T) {
	backend := NewMockBackend()

	// Lower-rank operand aligns to the trailing dimensions
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	row, _ := FromSlice([]float32{10, 20, 30}, Shape{3}, backend)

	c := a.Add(row)

	assertEqualShape(t, Shape{2, 3}, c.Shape(), "rank-mismatch Add shape")

	expected := []float32{11, 22, 33, 14, 25, 36}
	got := c.Data()
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], fmt.Sprintf("rank-mismatch Add[%d]", i))
	}

	// Size-1 middle dimension broadcasts against a full one
	x, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 1, 2}, backend)
	y, _ := FromSlice([]float32{10, 10, 20, 20, 30, 30, 40, 40}, Shape{2, 2, 2}, backend)

	z := x.Mul(y)

	assertEqualShape(t, Shape{2, 2, 2}, z.Shape(), "middle-dim broadcast shape")

	expectedZ := []float32{10, 20, 20, 40, 90, 120, 120, 160}
	gotZ := z.Data()
	for i := range expectedZ {
		assertEqualFloat32(t, expectedZ[i], gotZ[i], fmt.Sprintf("middle-dim broadcast[%d]", i))
	}
}

func TestTensorSubMulDiv(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{2, 4, 5, 8}, Shape{2, 2}, backend)

	sub := a.Sub(b).Data()
	mul := a.Mul(b).Data()
	div := a.Div(b).Data()

	wantSub := []float32{8, 16, 25, 32}
	wantMul := []float32{20, 80, 150, 320}
	wantDiv := []float32{5, 5, 6, 5}

	for i := 0; i < 4; i++ {
		assertEqualFloat32(t, wantSub[i], sub[i], fmt.Sprintf("Sub[%d]", i))
		assertEqualFloat32(t, wantMul[i], mul[i], fmt.Sprintf("Mul[%d]", i))
		assertEqualFloat32(t, wantDiv[i], div[i], fmt.Sprintf("Div[%d]", i))
	}
}

func TestTensorMatMul(t *testing.T) {
	backend := NewMockBackend()

	// [1 2]   [5 6]   [19 22]
	// [3 4] @ [7 8] = [43 50]
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{5, 6, 7, 8}, Shape{2, 2}, backend)

	c := a.MatMul(b)

	expected := []float32{19, 22, 43, 50}
	got := c.Data()
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], fmt.Sprintf("MatMul[%d]", i))
	}
}

func TestTensorBatchMatMul(t *testing.T) {
	backend := NewMockBackend()

	// Two independent 2x2 matmuls in one call
	a, _ := FromSlice([]float32{
		1, 2, 3, 4, // batch 0
		1, 0, 0, 1, // batch 1 (identity)
	}, Shape{2, 2, 2}, backend)
	b, _ := FromSlice([]float32{
		5, 6, 7, 8,
		9, 10, 11, 12,
	}, Shape{2, 2, 2}, backend)

	c := a.BatchMatMul(b)

	assertEqualShape(t, Shape{2, 2, 2}, c.Shape(), "BatchMatMul shape")

	expected := []float32{
		19, 22, 43, 50, // same as the 2D case
		9, 10, 11, 12, // identity passes through
	}
	got := c.Data()
	for i := range expected {
		assertEqualFloat32(t, expected[i], got[i], fmt.Sprintf("BatchMatMul[%d]", i))
	}
}

func TestTensorReshape(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b := a.Reshape(3, 2)

	assertEqualShape(t, Shape{3, 2}, b.Shape(), "Reshape shape")

	// Data order is preserved
	got := b.Data()
	for i := 0; i < 6; i++ {
		assertEqualFloat32(t, float32(i+1), got[i], fmt.Sprintf("Reshape[%d]", i))
	}
}

func TestTensorTranspose(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b := a.T()

	assertEqualShape(t, Shape{3, 2}, b.Shape(), "Transpose shape")

	assertEqualFloat32(t, 1, b.At(0, 0), "T[0][0]")
	assertEqualFloat32(t, 4, b.At(0, 1), "T[0][1]")
	assertEqualFloat32(t, 2, b.At(1, 0), "T[1][0]")
	assertEqualFloat32(t, 6, b.At(2, 1), "T[2][1]")
}

func TestTensorTransposeAxes(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24,
	}, Shape{1, 3, 2, 4}, backend)

	// The head-split permutation used by multi-head attention
	b := a.Transpose(0, 2, 1, 3)

	assertEqualShape(t, Shape{1, 2, 3, 4}, b.Shape(), "Transpose(0,2,1,3) shape")

	// b[0][h][s][d] == a[0][s][h][d]
	assertEqualFloat32(t, a.At(0, 1, 0, 2), b.At(0, 0, 1, 2), "permuted element")
	assertEqualFloat32(t, a.At(0, 2, 1, 3), b.At(0, 1, 2, 3), "permuted element")
}

func TestTensorScalarOps(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{2, 4, 6, 8}, Shape{4}, backend)

	mul := a.MulScalar(0.5).Data()
	add := a.AddScalar(1).Data()
	sub := a.SubScalar(2).Data()
	div := a.DivScalar(2).Data()

	for i, v := range []float32{1, 2, 3, 4} {
		assertEqualFloat32(t, v, mul[i], fmt.Sprintf("MulScalar[%d]", i))
	}
	for i, v := range []float32{3, 5, 7, 9} {
		assertEqualFloat32(t, v, add[i], fmt.Sprintf("AddScalar[%d]", i))
	}
	for i, v := range []float32{0, 2, 4, 6} {
		assertEqualFloat32(t, v, sub[i], fmt.Sprintf("SubScalar[%d]", i))
	}
	for i, v := range []float32{1, 2, 3, 4} {
		assertEqualFloat32(t, v, div[i], fmt.Sprintf("DivScalar[%d]", i))
	}
}

func TestTensorExpSqrt(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{0, 1, 2}, Shape{3}, backend)
	exp := a.Exp().Data()

	assertEqualFloat32(t, 1, exp[0], "Exp(0)")
	assertEqualFloat32(t, float32(math.E), exp[1], "Exp(1)")

	b, _ := FromSlice([]float32{4, 9, 16}, Shape{3}, backend)
	sqrt := b.Sqrt().Data()

	for i, v := range []float32{2, 3, 4} {
		assertEqualFloat32(t, v, sqrt[i], fmt.Sprintf("Sqrt[%d]", i))
	}
}

func TestTensorSoftmax(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 1, 1, 1}, Shape{2, 3}, backend)
	s := a.Softmax(-1)

	assertEqualShape(t, Shape{2, 3}, s.Shape(), "Softmax shape")

	got := s.Data()

	// Each row sums to 1
	row0 := got[0] + got[1] + got[2]
	row1 := got[3] + got[4] + got[5]
	assertEqualFloat32(t, 1, row0, "Softmax row 0 sum")
	assertEqualFloat32(t, 1, row1, "Softmax row 1 sum")

	// Uniform inputs give uniform probabilities
	for i := 3; i < 6; i++ {
		assertEqualFloat32(t, 1.0/3.0, got[i], fmt.Sprintf("uniform Softmax[%d]", i))
	}

	// Monotone: larger input, larger probability
	if !(got[0] < got[1] && got[1] < got[2]) {
		t.Errorf("Softmax not monotone: %v", got[:3])
	}
}

func TestTensorSumDim(t *testing.T) {
	backend := NewMockBackend()

	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	rows := a.SumDim(-1, false)
	assertEqualShape(t, Shape{2}, rows.Shape(), "SumDim(-1) shape")
	assertEqualFloat32(t, 6, rows.Data()[0], "row 0 sum")
	assertEqualFloat32(t, 15, rows.Data()[1], "row 1 sum")

	cols := a.SumDim(0, true)
	assertEqualShape(t, Shape{1, 3}, cols.Shape(), "SumDim(0, keep) shape")
	assertEqualFloat32(t, 5, cols.Data()[0], "col 0 sum")
	assertEqualFloat32(t, 9, cols.Data()[2], "col 2 sum")
}

package hwy

import (
	"errors"
	"math"
	"testing"
)

func TestLoad(t *testing.T) {
	n := MaxLanes[float32]()
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i + 1)
	}
	v, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.NumLanes() != n {
		t.Fatalf("Load: got %d lanes, want %d", v.NumLanes(), n)
	}
	for i := range data {
		if v.data[i] != data[i] {
			t.Errorf("Load: lane %d: got %v, want %v", i, v.data[i], data[i])
		}
	}

	// The register owns its lanes.
	data[0] = 100
	if v.data[0] != 1 {
		t.Errorf("Load: register aliases its source, lane 0 = %v", v.data[0])
	}
}

func TestLoadWrongLength(t *testing.T) {
	n := MaxLanes[float64]()
	for _, size := range []int{0, n - 1, n + 1, 2 * n} {
		_, err := Load(make([]float64, size))
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("Load(%d values) with %d lanes: got %v, want ErrShapeMismatch", size, n, err)
		}
	}
}

func TestLoadTag(t *testing.T) {
	tests := []struct {
		tag   Tag
		lanes int
	}{
		{FixedTag128[float32]{}, 4},
		{FixedTag256[float32]{}, 8},
		{FixedTag512[float32]{}, 16},
	}
	for _, tt := range tests {
		v, err := LoadTag(tt.tag, make([]float32, tt.lanes))
		if err != nil {
			t.Errorf("LoadTag(%s): %v", tt.tag.Name(), err)
			continue
		}
		if v.NumLanes() != tt.lanes {
			t.Errorf("LoadTag(%s): got %d lanes, want %d", tt.tag.Name(), v.NumLanes(), tt.lanes)
		}
		if _, err := LoadTag(tt.tag, make([]float32, tt.lanes-1)); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("LoadTag(%s) short input: got %v, want ErrShapeMismatch", tt.tag.Name(), err)
		}
	}
}

type tinyTag struct{}

func (tinyTag) Width() int   { return 4 }
func (tinyTag) Name() string { return "tiny" }

func TestZeroLaneTagRejected(t *testing.T) {
	if _, err := LoadTag[float64](tinyTag{}, nil); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("LoadTag with 0 float64 lanes: got %v, want ErrShapeMismatch", err)
	}
	if _, err := ZeroTag[float64](tinyTag{}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ZeroTag with 0 float64 lanes: got %v, want ErrShapeMismatch", err)
	}
	if _, err := MaskFromBitsTag[float64](tinyTag{}, nil); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("MaskFromBitsTag with 0 float64 lanes: got %v, want ErrShapeMismatch", err)
	}
}

func TestSet(t *testing.T) {
	v := Set[float32](42.0)

	if v.NumLanes() == 0 {
		t.Error("Set created empty vector")
	}

	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != 42.0 {
			t.Errorf("Set: lane %d: got %v, want %v", i, v.data[i], 42.0)
		}
	}
}

func TestZero(t *testing.T) {
	v := Zero[int32]()

	if v.NumLanes() != MaxLanes[int32]() {
		t.Errorf("Zero: got %d lanes, want %d", v.NumLanes(), MaxLanes[int32]())
	}

	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != 0 {
			t.Errorf("Zero: lane %d: got %v, want 0", i, v.data[i])
		}
	}
}

func TestIota(t *testing.T) {
	v := Iota[uint16]()
	for i := 0; i < v.NumLanes(); i++ {
		if v.data[i] != uint16(i) {
			t.Errorf("Iota: lane %d: got %v, want %d", i, v.data[i], i)
		}
	}
}

func TestLane(t *testing.T) {
	v := Iota[int64]()
	for i := 0; i < v.NumLanes(); i++ {
		got, err := v.Lane(i)
		if err != nil {
			t.Fatalf("Lane(%d): %v", i, err)
		}
		if got != int64(i) {
			t.Errorf("Lane(%d): got %v, want %d", i, got, i)
		}
	}
	for _, i := range []int{-1, v.NumLanes(), v.NumLanes() + 5} {
		if _, err := v.Lane(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Lane(%d): got %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestDataIsCopy(t *testing.T) {
	v := Set[float64](3)
	d := v.Data()
	d[0] = 7
	if v.data[0] != 3 {
		t.Errorf("Data: writing the copy changed lane 0 to %v", v.data[0])
	}
}

func TestStore(t *testing.T) {
	v := Iota[int32]()
	dst := make([]int32, v.NumLanes()+2)
	if n := v.Store(dst); n != v.NumLanes() {
		t.Errorf("Store: wrote %d lanes, want %d", n, v.NumLanes())
	}
	for i := 0; i < v.NumLanes(); i++ {
		if dst[i] != int32(i) {
			t.Errorf("Store: dst[%d] = %v, want %d", i, dst[i], i)
		}
	}
}

func TestAdd(t *testing.T) {
	result, err := Add(Set[float32](10.0), Set[float32](5.0))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 15.0 {
			t.Errorf("Add: lane %d: got %v, want 15.0", i, result.data[i])
		}
	}
}

func TestSub(t *testing.T) {
	result, err := Sub(Set[int16](10), Set[int16](3))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 7 {
			t.Errorf("Sub: lane %d: got %v, want 7", i, result.data[i])
		}
	}
}

func TestMul(t *testing.T) {
	result, err := Mul(Set[float64](4.0), Set[float64](5.0))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 20.0 {
			t.Errorf("Mul: lane %d: got %v, want 20.0", i, result.data[i])
		}
	}
}

func TestDiv(t *testing.T) {
	result, err := Div(Set[float32](20.0), Set[float32](4.0))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 5.0 {
			t.Errorf("Div: lane %d: got %v, want 5.0", i, result.data[i])
		}
	}
}

func TestMinMax(t *testing.T) {
	a := Iota[int32]()
	b := Set[int32](2)
	lo, err := Min(a, b)
	if err != nil {
		t.Fatalf("Min: %v", err)
	}
	hi, err := Max(a, b)
	if err != nil {
		t.Fatalf("Max: %v", err)
	}
	for i := 0; i < a.NumLanes(); i++ {
		if want := min(int32(i), 2); lo.data[i] != want {
			t.Errorf("Min: lane %d: got %v, want %v", i, lo.data[i], want)
		}
		if want := max(int32(i), 2); hi.data[i] != want {
			t.Errorf("Max: lane %d: got %v, want %v", i, hi.data[i], want)
		}
	}
}

func TestNeg(t *testing.T) {
	result, err := Neg(Set[float32](42.0))
	if err != nil {
		t.Fatalf("Neg: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != -42.0 {
			t.Errorf("Neg: lane %d: got %v, want -42.0", i, result.data[i])
		}
	}
}

func TestAbs(t *testing.T) {
	result, err := Abs(Set[float32](-42.0))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}

	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 42.0 {
			t.Errorf("Abs: lane %d: got %v, want 42.0", i, result.data[i])
		}
	}

	negZero, err := Abs(Set(math.Copysign(0, -1)))
	if err != nil {
		t.Fatalf("Abs(-0): %v", err)
	}
	if math.Signbit(negZero.data[0]) {
		t.Errorf("Abs(-0): got -0, want +0")
	}

	ints, err := Abs(Set[int8](-5))
	if err != nil {
		t.Fatalf("Abs int8: %v", err)
	}
	if ints.data[0] != 5 {
		t.Errorf("Abs int8: got %v, want 5", ints.data[0])
	}

	nan, err := Abs(Set(math.Copysign(math.NaN(), -1)))
	if err != nil {
		t.Fatalf("Abs(-NaN): %v", err)
	}
	if !math.IsNaN(nan.data[0]) || math.Signbit(nan.data[0]) {
		t.Errorf("Abs(-NaN): got %v with sign bit %v, want +NaN", nan.data[0], math.Signbit(nan.data[0]))
	}
}

func TestSqrt(t *testing.T) {
	result, err := Sqrt(Set[float64](16))
	if err != nil {
		t.Fatalf("Sqrt: %v", err)
	}
	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 4 {
			t.Errorf("Sqrt: lane %d: got %v, want 4", i, result.data[i])
		}
	}
}

func TestMulAdd(t *testing.T) {
	result, err := MulAdd(Set[float32](2), Set[float32](3), Set[float32](1))
	if err != nil {
		t.Fatalf("MulAdd: %v", err)
	}
	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 7 {
			t.Errorf("MulAdd: lane %d: got %v, want 7", i, result.data[i])
		}
	}
}

func TestMulSub(t *testing.T) {
	result, err := MulSub(Set[float64](2), Set[float64](3), Set[float64](1))
	if err != nil {
		t.Fatalf("MulSub: %v", err)
	}
	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != 5 {
			t.Errorf("MulSub: lane %d: got %v, want 5", i, result.data[i])
		}
	}
}

func TestNegMulSub(t *testing.T) {
	result, err := NegMulSub(Set[float32](2), Set[float32](3), Set[float32](1))
	if err != nil {
		t.Fatalf("NegMulSub: %v", err)
	}
	for i := 0; i < result.NumLanes(); i++ {
		if result.data[i] != -7 {
			t.Errorf("NegMulSub: lane %d: got %v, want -7", i, result.data[i])
		}
	}
}

func testNegMulAdd[T Floats](t *testing.T) {
	n := MaxLanes[T]()
	in1 := make([]T, n)
	in2 := make([]T, n)
	in3 := make([]T, n)
	for i := range n {
		in1[i] = T(i + 1)
		in2[i] = T(n - i)
		in3[i] = T(2*i + 1)
	}
	a, _ := Load(in1)
	b, _ := Load(in2)
	c, _ := Load(in3)

	r, err := NegMulAdd(a, b, c)
	if err != nil {
		t.Fatalf("NegMulAdd: %v", err)
	}
	for i := range n {
		want := in3[i] - in1[i]*in2[i]
		if r.data[i] != want {
			t.Errorf("NegMulAdd: lane %d: got %v, want %v", i, r.data[i], want)
		}
	}
}

func TestNegMulAdd(t *testing.T) {
	t.Run("float32", testNegMulAdd[float32])
	t.Run("float64", testNegMulAdd[float64])
}

func TestNegMulAddSingleRounding(t *testing.T) {
	// a*b = 1 - 2^-104 is not representable in float64; a two-step
	// c - a*b would round the product to 1 and return 0.
	a := Set(1 + 0x1p-52)
	b := Set(1 - 0x1p-52)
	c := Set[float64](1)
	r, err := NegMulAdd(a, b, c)
	if err != nil {
		t.Fatalf("NegMulAdd: %v", err)
	}
	if want := 0x1p-104; r.data[0] != want {
		t.Errorf("NegMulAdd: got %v, want %v", r.data[0], want)
	}
}

func TestNegMulAddFloat32RoundsThroughFloat64(t *testing.T) {
	// c - a*b = 1 + 2^-23 + 2^-24 - 2^-70. float64 drops the 2^-70 term,
	// leaving a float32 tie that rounds to even (1 + 2^-22) instead of the
	// fused float32 result 1 + 2^-23.
	a := Set(float32(-(1 + 0x1p-23) * 0x1p-24))
	b := Set(float32(1 - 0x1p-23))
	c := Set(float32(1 + 0x1p-23))
	r, err := NegMulAdd(a, b, c)
	if err != nil {
		t.Fatalf("NegMulAdd: %v", err)
	}
	if got, want := math.Float32bits(r.data[0]), uint32(0x3f800002); got != want {
		t.Errorf("NegMulAdd: got %#x, want %#x", got, want)
	}
}

func TestNegMulAddNaNInf(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name    string
		a, b, c float32
		check   func(float32) bool
	}{
		{"nan a", nan, 1, 1, isNaN32},
		{"nan b", 1, nan, 1, isNaN32},
		{"nan c", 1, 1, nan, isNaN32},
		{"inf product", inf, 2, 1, func(x float32) bool { return math.IsInf(float64(x), -1) }},
		{"inf minus inf", inf, 1, inf, isNaN32},
		{"zero times inf", 0, inf, 1, isNaN32},
	}
	for _, tt := range tests {
		r, err := NegMulAdd(Set(tt.a), Set(tt.b), Set(tt.c))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		for i := 0; i < r.NumLanes(); i++ {
			if !tt.check(r.data[i]) {
				t.Errorf("%s: lane %d: got %v", tt.name, i, r.data[i])
			}
		}
	}
}

func TestKernelLaneCountMismatch(t *testing.T) {
	a, _ := SetTag[float32](FixedTag128[float32]{}, 1)
	b, _ := SetTag[float32](FixedTag256[float32]{}, 1)
	if _, err := NegMulAdd(a, a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("NegMulAdd with 4 and 8 lanes: got %v, want ErrShapeMismatch", err)
	}
	if _, err := Add(b, a); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Add with 8 and 4 lanes: got %v, want ErrShapeMismatch", err)
	}
}

func isNaN32(x float32) bool {
	return math.IsNaN(float64(x))
}

//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64 architectures fall back to scalar mode for now.
	// Future implementations will add:
	// - wasm: SIMD128 support
	// - riscv64: Vector extension support
	setScalarMode()
}

// HasFMA returns false; the scalar configuration computes fused kernels
// with math.FMA.
func HasFMA() bool {
	return false
}

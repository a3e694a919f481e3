// Package hostcap probes the host for the instruction-set extensions the
// renderer's build variants depend on.
package hostcap

import "golang.org/x/sys/cpu"

// Capabilities is the boolean capability set consumed by variant enumeration.
// It is detected once at harness start and never re-probed.
type Capabilities struct {
	// AVX512 reports whether the host supports the extended-width SIMD
	// instruction set the avx512 build feature compiles for.
	AVX512 bool
}

// Detect probes the running host. On non-x86 architectures the cpu feature
// flags are all false, which yields a baseline-only capability set.
func Detect() Capabilities {
	return Capabilities{
		AVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ,
	}
}

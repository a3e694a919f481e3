// Package variant enumerates the compiled build configurations of the
// external renderer.
//
// A variant's identity is the SIMD extension crossed with the numeric data
// width. The extension axis is conditioned on the host capability set: the
// extended-width variant is only enumerated when the host can execute it.
package variant

import (
	"github.com/roach88/raybench/internal/hostcap"
)

// Extension is the SIMD instruction-set choice a variant is compiled for.
type Extension string

const (
	// ExtAVX is the baseline vector width; no compile feature required.
	ExtAVX Extension = "AVX"
	// ExtAVX512 is the extended vector width, gated behind the avx512
	// compile feature and the matching host capability.
	ExtAVX512 Extension = "AVX512"
)

// Width is the floating-point precision a variant is compiled with.
type Width string

const (
	// WidthF32 is reduced precision, enabled by the f32 compile feature.
	WidthF32 Width = "F32"
	// WidthF64 is the compiler's default precision.
	WidthF64 Width = "F64"
)

// Variant identifies one compiled configuration of the renderer.
type Variant struct {
	HostTag   string    `json:"host_tag"`
	Extension Extension `json:"extension"`
	Width     Width     `json:"data_width"`
}

// Prefix returns the string that uniquely names this variant. It is the
// leading component of every artifact name produced for the variant's runs,
// e.g. "Intel13700K-AVX-F32".
func (v Variant) Prefix() string {
	return v.HostTag + "-" + string(v.Extension) + "-" + string(v.Width)
}

// Features returns the compile feature flags for this variant, in the order
// they are passed to the release build. Baseline extension and F64 width are
// compiler defaults and contribute no feature.
func (v Variant) Features() []string {
	var features []string
	if v.Extension == ExtAVX512 {
		features = append(features, "avx512")
	}
	if v.Width == WidthF32 {
		features = append(features, "f32")
	}
	return features
}

// Enumerate returns the ordered variant list for the given capability set:
// the supported extensions crossed with every data width. An extension the
// host cannot execute is never included.
func Enumerate(hostTag string, caps hostcap.Capabilities) []Variant {
	extensions := []Extension{ExtAVX}
	if caps.AVX512 {
		extensions = append(extensions, ExtAVX512)
	}
	widths := []Width{WidthF32, WidthF64}

	variants := make([]Variant, 0, len(extensions)*len(widths))
	for _, ext := range extensions {
		for _, w := range widths {
			variants = append(variants, Variant{HostTag: hostTag, Extension: ext, Width: w})
		}
	}
	return variants
}

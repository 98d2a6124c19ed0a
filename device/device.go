// Package device reports the compute hardware available for training
package device

import "fmt"

import "github.com/klauspost/cpuid/v2"

// Report describes the CPU, followed by the CUDA devices in builds with the cuda tag
func Report() (lines []string) {
	lines = append(lines, fmt.Sprintf("CPU: %s (%d physical, %d logical cores)",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores))
	lines = append(lines, "SIMD: "+simd())
	return append(lines, accelerators()...)
}

func simd() (o string) {
	for _, f := range []struct {
		name string
		ids  []cpuid.FeatureID
	}{
		{"avx2", []cpuid.FeatureID{cpuid.AVX2}},
		{"fma3", []cpuid.FeatureID{cpuid.FMA3}},
		{"avx512", []cpuid.FeatureID{cpuid.AVX512F, cpuid.AVX512DQ}},
		{"neon", []cpuid.FeatureID{cpuid.ASIMD}},
	} {
		if cpuid.CPU.Supports(f.ids...) {
			if o != "" {
				o += " "
			}
			o += f.name
		}
	}
	if o == "" {
		return "none"
	}
	return o
}

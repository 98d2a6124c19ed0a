//go:build cuda

package device

import "fmt"

import "gorgonia.org/cu"

func accelerators() (lines []string) {
	devices, err := cu.NumDevices()
	if err != nil {
		return []string{"CUDA: " + err.Error()}
	}
	lines = append(lines, fmt.Sprintf("CUDA version %v, %d devices", cu.Version(), devices))
	for d := 0; d < devices; d++ {
		name, _ := cu.Device(d).Name()
		mem, _ := cu.Device(d).TotalMem()
		maj, _ := cu.Device(d).Attribute(cu.ComputeCapabilityMajor)
		min, _ := cu.Device(d).Attribute(cu.ComputeCapabilityMinor)
		lines = append(lines, fmt.Sprintf("Device %d: %q, %v bytes, compute %d.%d", d, name, mem, maj, min))
	}
	return
}

//go:build !cuda

package device

func accelerators() []string {
	return nil
}

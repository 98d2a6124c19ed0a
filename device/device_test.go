package device

import "strings"
import "testing"

import "github.com/stretchr/testify/assert"

func TestReport(t *testing.T) {
	lines := Report()
	if assert.GreaterOrEqual(t, len(lines), 2) {
		assert.True(t, strings.HasPrefix(lines[0], "CPU: "))
		assert.True(t, strings.HasPrefix(lines[1], "SIMD: "))
		assert.NotEqual(t, "SIMD: ", lines[1])
	}
}

package trainer

// mix is the xorshift modular hash of the neurlang classifier, salted by s and
// reduced to the range 0 to max-1 with the multiply shift trick.
func mix(n uint32, s uint32, max uint32) uint32 {
	var m = n - s
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19
	m += s
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// Permutation returns a reproducible shuffled order of 0..n-1 for the epoch
func Permutation(n int, epoch uint32) []int {
	var o = make([]int, n)
	for i := range o {
		o[i] = i
	}
	var salt = 0x9e3779b9 * (epoch + 1)
	for i := n - 1; i > 0; i-- {
		j := int(mix(uint32(i), salt, uint32(i+1)))
		o[i], o[j] = o[j], o[i]
	}
	return o
}

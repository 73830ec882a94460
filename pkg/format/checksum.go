package format

// Checksum returns the 32-bit wraparound sum of every byte in b, in order.
// An empty input sums to zero.
func Checksum(b []byte) uint32 {
	var sum uint32
	for _, c := range b {
		sum += uint32(c)
	}
	return sum
}

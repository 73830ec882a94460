package format

// obfuscationKey is XORed over data by position. The table is part of the
// file format.
var obfuscationKey = [...]byte{
	0x5a, 0xc3, 0x17, 0x8e, 0x21, 0xf4, 0x6b, 0x39,
	0xd2, 0x07, 0x94, 0x4f, 0xb8, 0x1d, 0x72, 0xe6,
}

// Obfuscate XORs b in place with the fixed key table, starting at key
// index zero. Applying it twice restores the original bytes.
func Obfuscate(b []byte) {
	for i := range b {
		b[i] ^= obfuscationKey[i%len(obfuscationKey)]
	}
}

// Obfuscated returns an obfuscated copy of b, leaving b untouched.
func Obfuscated(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	Obfuscate(out)
	return out
}

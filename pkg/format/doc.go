// Package format implements the on-disk layout of save files.
//
// A save file is a fixed 16-byte header followed by the payload:
//
//	offset 0  : u32 magic1   ('prot')
//	offset 4  : u32 magic2   ('save')
//	offset 8  : u32 size     (HeaderSize + payload length)
//	offset 12 : u32 checksum (byte-sum of the plaintext payload)
//	offset 16 : payload
//
// All integers are little-endian. The header and the payload are each
// passed through Obfuscate separately before being written, so the
// checksum only ever covers plaintext payload bytes.
//
// Neither Obfuscate nor Checksum is cryptographic. They exist to keep
// casual edits out of save files and to detect accidental corruption.
// Changing either one changes the file format.
package format

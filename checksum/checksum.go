// Package checksum implements the BSD disklabel's 16-bit XOR checksum and
// the Alpha-only 64-bit boot-block checksum. Neither is a cryptographic
// hash; both exist only to catch accidental corruption.
package checksum

import "encoding/binary"

// XOR16 treats data as an array of little-endian 16-bit words and XORs
// them together. Callers must zero the checksum field within data before
// calling this, and data's length must be even.
func XOR16(data []byte) uint16 {
	var sum uint16
	for i := 0; i+1 < len(data); i += 2 {
		sum ^= binary.LittleEndian.Uint16(data[i : i+2])
	}
	return sum
}

// AlphaBootChecksum treats the first 504 bytes of buf as 63 little-endian
// 64-bit words, sums them with wrapping addition, and writes the result
// into the 64th (final) word of the first 512 bytes. buf must be at least
// 512 bytes long.
func AlphaBootChecksum(buf []byte) {
	_ = buf[511]

	var sum uint64
	for i := 0; i < 63; i++ {
		sum += binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
	}
	binary.LittleEndian.PutUint64(buf[63*8:63*8+8], sum)
}

package checksum

import (
	"encoding/binary"
	"testing"
)

func TestXOR16CancelsWhenFieldHoldsTheSum(t *testing.T) {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint16(data[4:], 0xBEEF)
	binary.LittleEndian.PutUint16(data[10:], 0x1234)

	data[0], data[1] = 0, 0 // checksum field, zeroed before computing
	sum := XOR16(data)
	binary.LittleEndian.PutUint16(data[0:], sum)

	if XOR16(data) != 0 {
		t.Errorf("expected self-canceling XOR once checksum field holds the sum, got %#x", XOR16(data))
	}
}

func TestXOR16EmptyIsZero(t *testing.T) {
	if got := XOR16(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %#x", got)
	}
}

func TestAlphaBootChecksumIsAdditive(t *testing.T) {
	buf := make([]byte, 512)
	binary.LittleEndian.PutUint64(buf[0:8], 1)
	binary.LittleEndian.PutUint64(buf[8:16], 2)

	AlphaBootChecksum(buf)

	got := binary.LittleEndian.Uint64(buf[63*8 : 63*8+8])
	if got != 3 {
		t.Errorf("expected checksum word 3, got %d", got)
	}
}

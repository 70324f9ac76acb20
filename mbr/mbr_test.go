package mbr

import (
	"testing"

	"github.com/aarsakian/bsdlabel/label"
)

func TestParseFourEntries(t *testing.T) {
	region := make([]byte, 64)
	// entry 0: type 0x83 (Linux), start=2048, size=204800
	region[4] = 0x83
	putLE32(region[8:12], 2048)
	putLE32(region[12:16], 204800)
	// entry 1: type 0xA5 (FreeBSD), start=206848, size=100000
	region[16+4] = 0xA5
	putLE32(region[16+8:16+12], 206848)
	putLE32(region[16+12:16+16], 100000)

	table := Parse(region)

	p0 := table.GetPartition(0)
	if p0.Type != 0x83 || p0.Start() != 2048 || p0.SectorCount() != 204800 {
		t.Errorf("entry 0: got %+v", p0)
	}

	p1 := table.GetPartition(1)
	if !p1.IsBSDFamily() {
		t.Error("entry 1 (0xA5) should be recognized as BSD-family")
	}
}

func TestIsBSDFamilyRecognizesHiddenVariants(t *testing.T) {
	tests := []struct {
		name string
		typ  uint8
		want bool
	}{
		{"FreeBSD", SysFreeBSD, true},
		{"hidden FreeBSD", SysFreeBSD ^ 0x10, true},
		{"NetBSD", SysNetBSD, true},
		{"OpenBSD", SysOpenBSD, true},
		{"Linux", 0x83, false},
		{"NTFS", 0x07, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Partition{Type: tt.typ}
			if got := p.IsBSDFamily(); got != tt.want {
				t.Errorf("IsBSDFamily(%#x): expected %v, got %v", tt.typ, tt.want, got)
			}
		})
	}
}

func TestTranslateFSType(t *testing.T) {
	tests := []struct {
		sysInd uint8
		want   label.FSType
	}{
		{0x06, label.FSMSDOSOrEXT2},
		{0x07, label.FSHPFS},
		{0x83, label.FSOther},
	}
	for _, tt := range tests {
		p := Partition{Type: tt.sysInd}
		if got := p.TranslateFSType(); got != tt.want {
			t.Errorf("TranslateFSType(%#x): expected %v, got %v", tt.sysInd, tt.want, got)
		}
	}
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

package label

import (
	"testing"

	"github.com/aarsakian/bsdlabel/platform"
)

func TestFSTypeNameCode8IsPlatformDependent(t *testing.T) {
	if got := FSMSDOSOrEXT2.Name(platform.Generic); got != "MS-DOS" {
		t.Errorf("generic: expected MS-DOS, got %q", got)
	}
	if got := FSMSDOSOrEXT2.Name(platform.Alpha); got != "ext2" {
		t.Errorf("alpha: expected ext2, got %q", got)
	}
}

func TestFSTypeNameUnknownCode(t *testing.T) {
	if got := FSType(200).Name(platform.Generic); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
}

func TestTranslateMBRType(t *testing.T) {
	tests := []struct {
		sysInd uint8
		want   FSType
	}{
		{0x01, FSMSDOSOrEXT2},
		{0x04, FSMSDOSOrEXT2},
		{0x06, FSMSDOSOrEXT2},
		{0xe1, FSMSDOSOrEXT2},
		{0x07, FSHPFS},
		{0x83, FSOther},
	}
	for _, tt := range tests {
		if got := TranslateMBRType(tt.sysInd); got != tt.want {
			t.Errorf("TranslateMBRType(%#x): expected %v, got %v", tt.sysInd, tt.want, got)
		}
	}
}

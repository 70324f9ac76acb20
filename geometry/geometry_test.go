package geometry

import "testing"

func TestCylinderSectorConversionsRoundTrip(t *testing.T) {
	const secPerCyl = 1008

	tests := []struct {
		name       string
		firstCyl   uint64
		lastCyl    uint64
		wantOffset uint64
		wantSize   uint64
	}{
		{name: "cylinders 2 to 5", firstCyl: 2, lastCyl: 5, wantOffset: 1008, wantSize: 4032},
		{name: "single cylinder 1", firstCyl: 1, lastCyl: 1, wantOffset: 0, wantSize: secPerCyl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := FirstSectorFromCylinder(tt.firstCyl, secPerCyl)
			last := LastSectorFromCylinder(tt.lastCyl, secPerCyl)
			size := last - offset + 1

			if offset != tt.wantOffset {
				t.Errorf("offset: expected %d, got %d", tt.wantOffset, offset)
			}
			if size != tt.wantSize {
				t.Errorf("size: expected %d, got %d", tt.wantSize, size)
			}

			if got := CylinderOfFirstSector(offset, secPerCyl); got != tt.firstCyl {
				t.Errorf("CylinderOfFirstSector: expected %d, got %d", tt.firstCyl, got)
			}
			if got := CylinderOfLastSector(offset+size, secPerCyl); got != tt.lastCyl {
				t.Errorf("CylinderOfLastSector: expected %d, got %d", tt.lastCyl, got)
			}
		})
	}
}

func TestCylinderOfLastSectorRoundsUpWhenUnaligned(t *testing.T) {
	got := CylinderOfLastSector(1009, 1008)
	if got != 2 {
		t.Errorf("expected cylinder 2 for a spillover of one sector, got %d", got)
	}
}

func TestBoundsNestedVsWholeDisk(t *testing.T) {
	low, high := Bounds(true, 2048, 20480, 1000000)
	if low != 2048 || high != 22527 {
		t.Errorf("nested bounds: expected [2048,22527], got [%d,%d]", low, high)
	}

	low, high = Bounds(false, 2048, 20480, 1000000)
	if low != 0 || high != 999999 {
		t.Errorf("whole-disk bounds: expected [0,999999], got [%d,%d]", low, high)
	}
}

func TestNormalizeSecPerCylForcesOne(t *testing.T) {
	if got := NormalizeSecPerCyl(0); got != 1 {
		t.Errorf("expected 1 for zero input, got %d", got)
	}
	if got := NormalizeSecPerCyl(1008); got != 1008 {
		t.Errorf("expected passthrough of 1008, got %d", got)
	}
}

package label

import "strconv"

// DType is the small display-only drive-type enum.
type DType uint16

const (
	DTypeUnknown DType = 0
	DTypeSMD     DType = 1
	DTypeMSCP    DType = 2
	DTypeDEC     DType = 3
	DTypeSCSI    DType = 4
	DTypeESDI    DType = 5
	DTypeST506   DType = 6
	DTypeHPIB    DType = 7
	DTypeHPFL    DType = 8
	DType9       DType = 9
	DTypeFloppy  DType = 10
)

var dtypeNames = [...]string{
	"unknown", "SMD", "MSCP", "old DEC", "SCSI", "ESDI",
	"ST506", "HP-IB", "HP-FL", "type 9", "floppy",
}

// Name returns the display string for t, or its raw numeric value as a
// decimal string when t exceeds the known table (matches the original
// driver's "type: %d" fallback).
func (t DType) Name() string {
	if int(t) < len(dtypeNames) {
		return dtypeNames[t]
	}
	return strconv.Itoa(int(t))
}

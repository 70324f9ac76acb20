package label

import "github.com/aarsakian/bsdlabel/platform"

// FSType is the one-byte filesystem-type tag stored in a partition slot.
// The numeric codes match the historical NetBSD/FreeBSD disklabel table;
// this module never invents new ones (spec.md §9).
type FSType uint8

const (
	FSUnused       FSType = 0
	FSSwap         FSType = 1
	FSV6           FSType = 2
	FSV7           FSType = 3
	FSSysV         FSType = 4
	FS41BSD        FSType = 5 // "V71K" in the original table
	FSV8           FSType = 6
	FSBSDFFS       FSType = 7
	FSMSDOSOrEXT2  FSType = 8 // BSD_FS_MSDOS on non-Alpha, BSD_FS_EXT2 on Alpha
	FSBSDLFS       FSType = 9
	FSOther        FSType = 10
	FSHPFS         FSType = 11
	FSISO9660      FSType = 12
	FSBoot         FSType = 13
	FSADOS         FSType = 14
	FSHFS          FSType = 15
	FSAdvFS        FSType = 16
)

var fstypeNames = map[FSType]string{
	FSUnused:      "unused",
	FSSwap:        "swap",
	FSV6:          "Version 6",
	FSV7:          "Version 7",
	FSSysV:        "System V",
	FS41BSD:       "4.1BSD",
	FSV8:          "Eighth Edition",
	FSBSDFFS:      "4.2BSD",
	FSBSDLFS:      "4.4LFS",
	FSOther:       "unknown",
	FSHPFS:        "HPFS",
	FSISO9660:     "ISO-9660",
	FSBoot:        "boot",
	FSADOS:        "ADOS",
	FSHFS:         "HFS",
	FSAdvFS:       "AdvFS",
}

// Name resolves the display name for a fstype code under p. Code
// FSMSDOSOrEXT2 is the one spot where the name depends on platform.
func (t FSType) Name(p platform.Platform) string {
	if t == FSMSDOSOrEXT2 {
		if p == platform.Alpha {
			return "ext2"
		}
		return "MS-DOS"
	}
	if name, ok := fstypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// TranslateMBRType maps a DOS/MBR system byte to a BSD fstype, per the
// table spec.md §4.5 "link" gives.
func TranslateMBRType(sysInd uint8) FSType {
	switch sysInd {
	case 0x01, 0x04, 0x06, 0xe1, 0xe3, 0xf2:
		return FSMSDOSOrEXT2
	case 0x07:
		return FSHPFS
	default:
		return FSOther
	}
}

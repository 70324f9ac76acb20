// Package mbr adapts the teacher's MBR/DOS partition-table parser
// (github.com/aarsakian/MFTExtractor/disk/partition/MBR) into the
// "Parent MBR driver" consumed interface spec.md §6.3 describes: just
// enough of a DOS partition table reader for the BSD disklabel driver to
// find and bind to its containing DOS partition, without reimplementing
// the MBR/DOS label driver itself (spec.md §1 keeps that out of scope).
package mbr

import (
	"github.com/aarsakian/bsdlabel/label"
)

// BSD-family and "hidden" MBR system bytes (spec.md §6.2).
const (
	SysFreeBSD   uint8 = 0xA5
	SysNetBSD    uint8 = 0xA9
	SysOpenBSD   uint8 = 0xA6
	hiddenMask   uint8 = 0x10
)

// Partition is one DOS/MBR partition table entry, laid out exactly as it
// sits on disk (16 bytes), matching the teacher's MBR.Partition.
type Partition struct {
	Flag     uint8
	StartCHS [3]byte
	Type     uint8
	EndCHS   [3]byte
	StartLBA uint32
	Size     uint32 // sectors
}

// Table is the four primary partition entries of an MBR.
type Table struct {
	Partitions [4]Partition
}

// Parse decodes the 4 primary partition entries from the 64-byte MBR
// partition-table region (offset 446 of the boot sector).
func Parse(region []byte) Table {
	var t Table
	for i := 0; i < 4; i++ {
		t.Partitions[i] = parseEntry(region[i*16 : i*16+16])
	}
	return t
}

func parseEntry(b []byte) Partition {
	var p Partition
	p.Flag = b[0]
	copy(p.StartCHS[:], b[1:4])
	p.Type = b[4]
	copy(p.EndCHS[:], b[5:8])
	p.StartLBA = leUint32(b[8:12])
	p.Size = leUint32(b[12:16])
	return p
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// GetPartition returns the i-th (0-based) primary partition entry.
func (t Table) GetPartition(i int) Partition {
	return t.Partitions[i]
}

// Start is this partition's starting sector, relative to the whole disk.
func (p Partition) Start() uint64 { return uint64(p.StartLBA) }

// SectorCount is this partition's length in sectors.
func (p Partition) SectorCount() uint64 { return uint64(p.Size) }

// IsBSDFamily reports whether p's system byte is FreeBSD/NetBSD/OpenBSD,
// including their "hidden" (XOR 0x10) variants, per spec.md §6.2.
func (p Partition) IsBSDFamily() bool {
	switch p.Type {
	case SysFreeBSD, SysFreeBSD ^ hiddenMask,
		SysNetBSD, SysNetBSD ^ hiddenMask,
		SysOpenBSD, SysOpenBSD ^ hiddenMask:
		return true
	default:
		return false
	}
}

// TranslateFSType maps this partition's DOS system byte to a BSD fstype
// for PartitionEditor.link (spec.md §4.5).
func (p Partition) TranslateFSType() label.FSType {
	return label.TranslateMBRType(p.Type)
}

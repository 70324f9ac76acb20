// Package label implements the in-memory BSD disklabel and its
// fixed on-disk layout (Codec), generalizing the field-by-field decode
// style the teacher repo uses for NTFS/MFT structures
// (github.com/aarsakian/MFTExtractor/utils.Unmarshal) to a single strict
// binary record with a checksum.
package label

// DiskMagic is the sentinel value both d_magic and d_magic2 must carry.
const DiskMagic uint32 = 0x82564557

// MaxPartitions is the fixed upper bound on partition slots, lettered
// 'a' through 'p'.
const MaxPartitions = 16

// HeaderSize is the size in bytes of the fixed part of the label, not
// counting the partition table.
const HeaderSize = 100

// PartitionSize is the size in bytes of one serialized Partition slot.
const PartitionSize = 16

// Size is the total serialized size of a label: header plus the full
// MaxPartitions-entry partition table.
const Size = HeaderSize + MaxPartitions*PartitionSize

// Label is the in-memory mirror of the on-disk disklabel header.
type Label struct {
	Magic       uint32
	DType       DType
	TypeName    [16]byte
	PackName    [16]byte
	Flags       uint32
	SecSize     uint32
	NSectors    uint32
	NTracks     uint32
	NCylinders  uint32
	SecPerCyl   uint32
	SecPerUnit  uint32
	RPM         uint16
	Interleave  uint16
	TrackSkew   uint16
	CylSkew     uint16
	HeadSwitch  uint32
	TrkSeek     uint32
	BBSize      uint32
	SBSize      uint32
	Magic2      uint32
	Checksum    uint16
	NPartitions uint16
	Partitions  [MaxPartitions]Partition
}

// Partition is one disklabel partition slot.
type Partition struct {
	Offset uint32 // sectors, 512-byte units, relative to the whole disk
	Size   uint32 // sectors; 0 means unused
	FSize  uint32 // fragment size in bytes (UNUSED/BSDFFS only)
	FSType FSType
	Frag   uint8
	CPG    uint16 // cylinders per group (BSDFFS only)
}

// Used reports whether the slot holds a live partition.
func (p Partition) Used() bool {
	return p.Size > 0
}

// BSize is the block size implied by FSize/Frag.
func (p Partition) BSize() uint32 {
	return p.FSize * uint32(p.Frag)
}

package label

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/aarsakian/bsdlabel/checksum"
)

// ErrNotFound is a parse outcome, not an I/O error: the label region did
// not carry a valid DISKMAGIC pair.
var ErrNotFound = errors.New("label: no disklabel magic found")

// field offsets within the HeaderSize-byte header.
const (
	offMagic      = 0
	offDType      = 4
	offTypeName   = 8
	offPackName   = 24
	offFlags      = 40
	offSecSize    = 44
	offNSectors   = 48
	offNTracks    = 52
	offNCylinders = 56
	offSecPerCyl  = 60
	offSecPerUnit = 64
	offRPM        = 68
	offInterleave = 70
	offTrackSkew  = 72
	offCylSkew    = 74
	offHeadSwitch = 76
	offTrkSeek    = 80
	offBBSize     = 84
	offSBSize     = 88
	offMagic2     = 92
	offChecksum   = 96
	offNParts     = 98
)

// partition field offsets within one PartitionSize-byte slot.
const (
	poffOffset = 0
	poffSize   = 4
	poffFSize  = 8
	poffFSType = 12
	poffFrag   = 13
	poffCPG    = 14
)

// Parse reads a Label out of buf at byte offset labelOff. It verifies
// both magics, zero-fills trailing partition slots, and clamps
// npartitions to MaxPartitions (returning a warning string, non-empty
// only when clamping occurred, alongside the label).
func Parse(buf []byte, labelOff int) (Label, string, error) {
	if labelOff+Size > len(buf) {
		return Label{}, "", fmt.Errorf("label: region [%d,%d) exceeds buffer of %d bytes", labelOff, labelOff+Size, len(buf))
	}
	h := buf[labelOff : labelOff+Size]

	var l Label
	l.Magic = binary.LittleEndian.Uint32(h[offMagic:])
	l.Magic2 = binary.LittleEndian.Uint32(h[offMagic2:])
	if l.Magic != DiskMagic || l.Magic2 != DiskMagic {
		return Label{}, "", ErrNotFound
	}

	l.DType = DType(binary.LittleEndian.Uint16(h[offDType:]))
	copy(l.TypeName[:], h[offTypeName:offTypeName+16])
	copy(l.PackName[:], h[offPackName:offPackName+16])
	l.Flags = binary.LittleEndian.Uint32(h[offFlags:])
	l.SecSize = binary.LittleEndian.Uint32(h[offSecSize:])
	l.NSectors = binary.LittleEndian.Uint32(h[offNSectors:])
	l.NTracks = binary.LittleEndian.Uint32(h[offNTracks:])
	l.NCylinders = binary.LittleEndian.Uint32(h[offNCylinders:])
	l.SecPerCyl = binary.LittleEndian.Uint32(h[offSecPerCyl:])
	l.SecPerUnit = binary.LittleEndian.Uint32(h[offSecPerUnit:])
	l.RPM = binary.LittleEndian.Uint16(h[offRPM:])
	l.Interleave = binary.LittleEndian.Uint16(h[offInterleave:])
	l.TrackSkew = binary.LittleEndian.Uint16(h[offTrackSkew:])
	l.CylSkew = binary.LittleEndian.Uint16(h[offCylSkew:])
	l.HeadSwitch = binary.LittleEndian.Uint32(h[offHeadSwitch:])
	l.TrkSeek = binary.LittleEndian.Uint32(h[offTrkSeek:])
	l.BBSize = binary.LittleEndian.Uint32(h[offBBSize:])
	l.SBSize = binary.LittleEndian.Uint32(h[offSBSize:])
	l.Checksum = binary.LittleEndian.Uint16(h[offChecksum:])
	l.NPartitions = binary.LittleEndian.Uint16(h[offNParts:])

	warning := ""
	nValid := int(l.NPartitions)
	if nValid > MaxPartitions {
		warning = fmt.Sprintf("too many partitions (%d, maximum is %d)", l.NPartitions, MaxPartitions)
		nValid = MaxPartitions
		l.NPartitions = MaxPartitions
	}

	partsBase := HeaderSize
	for i := 0; i < MaxPartitions; i++ {
		if i >= nValid {
			l.Partitions[i] = Partition{}
			continue
		}
		p := h[partsBase+i*PartitionSize : partsBase+(i+1)*PartitionSize]
		l.Partitions[i] = Partition{
			Offset: binary.LittleEndian.Uint32(p[poffOffset:]),
			Size:   binary.LittleEndian.Uint32(p[poffSize:]),
			FSize:  binary.LittleEndian.Uint32(p[poffFSize:]),
			FSType: FSType(p[poffFSType]),
			Frag:   p[poffFrag],
			CPG:    binary.LittleEndian.Uint16(p[poffCPG:]),
		}
	}

	return l, warning, nil
}

// Serialize zeros l.Checksum, computes the XOR checksum over the header
// plus the live partition slots, stores it back into l.Checksum, and
// writes l into buf at byte offset labelOff.
func Serialize(l *Label, buf []byte, labelOff int) error {
	if labelOff+Size > len(buf) {
		return fmt.Errorf("label: region [%d,%d) exceeds buffer of %d bytes", labelOff, labelOff+Size, len(buf))
	}
	l.Checksum = 0

	scratch := make([]byte, Size)
	encode(l, scratch)

	nParts := int(l.NPartitions)
	if nParts > MaxPartitions {
		nParts = MaxPartitions
	}
	sum := checksum.XOR16(scratch[:HeaderSize+nParts*PartitionSize])
	l.Checksum = sum
	binary.LittleEndian.PutUint16(scratch[offChecksum:], sum)

	copy(buf[labelOff:labelOff+Size], scratch)
	return nil
}

func encode(l *Label, h []byte) {
	binary.LittleEndian.PutUint32(h[offMagic:], l.Magic)
	binary.LittleEndian.PutUint16(h[offDType:], uint16(l.DType))
	copy(h[offTypeName:offTypeName+16], l.TypeName[:])
	copy(h[offPackName:offPackName+16], l.PackName[:])
	binary.LittleEndian.PutUint32(h[offFlags:], l.Flags)
	binary.LittleEndian.PutUint32(h[offSecSize:], l.SecSize)
	binary.LittleEndian.PutUint32(h[offNSectors:], l.NSectors)
	binary.LittleEndian.PutUint32(h[offNTracks:], l.NTracks)
	binary.LittleEndian.PutUint32(h[offNCylinders:], l.NCylinders)
	binary.LittleEndian.PutUint32(h[offSecPerCyl:], l.SecPerCyl)
	binary.LittleEndian.PutUint32(h[offSecPerUnit:], l.SecPerUnit)
	binary.LittleEndian.PutUint16(h[offRPM:], l.RPM)
	binary.LittleEndian.PutUint16(h[offInterleave:], l.Interleave)
	binary.LittleEndian.PutUint16(h[offTrackSkew:], l.TrackSkew)
	binary.LittleEndian.PutUint16(h[offCylSkew:], l.CylSkew)
	binary.LittleEndian.PutUint32(h[offHeadSwitch:], l.HeadSwitch)
	binary.LittleEndian.PutUint32(h[offTrkSeek:], l.TrkSeek)
	binary.LittleEndian.PutUint32(h[offBBSize:], l.BBSize)
	binary.LittleEndian.PutUint32(h[offSBSize:], l.SBSize)
	binary.LittleEndian.PutUint32(h[offMagic2:], l.Magic2)
	binary.LittleEndian.PutUint16(h[offChecksum:], l.Checksum)
	binary.LittleEndian.PutUint16(h[offNParts:], l.NPartitions)

	partsBase := HeaderSize
	for i := 0; i < MaxPartitions; i++ {
		p := h[partsBase+i*PartitionSize : partsBase+(i+1)*PartitionSize]
		pt := l.Partitions[i]
		binary.LittleEndian.PutUint32(p[poffOffset:], pt.Offset)
		binary.LittleEndian.PutUint32(p[poffSize:], pt.Size)
		binary.LittleEndian.PutUint32(p[poffFSize:], pt.FSize)
		p[poffFSType] = uint8(pt.FSType)
		p[poffFrag] = pt.Frag
		binary.LittleEndian.PutUint16(p[poffCPG:], pt.CPG)
	}
}

package label

import "github.com/aarsakian/bsdlabel/platform"

// Row is one line of the fixed display column set from spec.md §6.5:
// Slice, Start, End, Size, Type, Fsize, Bsize, Cpg.
type Row struct {
	Slice      string
	Used       bool
	Start      uint64
	StartMark  bool // '*' marker: start not aligned to a cylinder boundary
	End        uint64
	EndMark    bool
	Size       uint64
	Type       string
	FSize      uint32
	BSize      uint32
	CPG        uint16
}

// Describe produces display rows for every used partition slot, in
// cylinder or sector mode per useCylinders. Letters run 'a'+index.
func Describe(l Label, p platform.Platform, useCylinders bool) []Row {
	var rows []Row
	for i := 0; i < int(l.NPartitions); i++ {
		part := l.Partitions[i]
		if !part.Used() {
			continue
		}
		row := Row{
			Slice: string(rune('a' + i)),
			Used:  true,
			Size:  uint64(part.Size),
			Type:  part.FSType.Name(p),
		}
		if part.FSType == FSUnused || part.FSType == FSBSDFFS {
			row.FSize = part.FSize
			row.BSize = part.BSize()
		}
		if part.FSType == FSBSDFFS {
			row.CPG = part.CPG
		}

		if useCylinders && l.SecPerCyl > 0 {
			spc := uint64(l.SecPerCyl)
			row.Start = uint64(part.Offset)/spc + 1
			row.StartMark = uint64(part.Offset)%spc != 0
			row.End = ceilDiv(uint64(part.Offset)+uint64(part.Size), spc)
			row.EndMark = (uint64(part.Offset)+uint64(part.Size))%spc != 0
		} else {
			row.Start = uint64(part.Offset)
			row.End = uint64(part.Offset) + uint64(part.Size) - 1
		}
		rows = append(rows, row)
	}
	return rows
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// Package editor implements PartitionEditor (spec.md §4.4, §6.4):
// add/delete/get/set-type/link/is-used operations against an in-memory
// label.Label, mirroring bsd_add_part / bsd_delete_part /
// bsd_get_partition / bsd_set_parttype / fdisk_bsd_link_partition /
// bsd_partition_is_used from the original bsd.c.
package editor

import (
	"fmt"

	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/geometry"
	"github.com/aarsakian/bsdlabel/label"
	"github.com/aarsakian/bsdlabel/mbr"
	"github.com/aarsakian/bsdlabel/platform"
)

// Editor wraps a label.Label pointer with the geometry and bounds
// needed to validate partition edits.
type Editor struct {
	Label        *label.Label
	Platform     platform.Platform
	Nested       bool
	DOSStart     uint64
	DOSSize      uint64
	UseCylinders bool
}

// IsUsed reports whether partition slot i is occupied (non-zero size). An
// out-of-range index is simply unused, not an error (bsd_partition_is_used
// returns 0 for partnum >= BSD_MAXPARTITIONS rather than failing).
func (e *Editor) IsUsed(i int) (bool, error) {
	if i < 0 || i >= label.MaxPartitions {
		return false, nil
	}
	return e.Label.Partitions[i].Used(), nil
}

// Get returns a display Row for slot i (spec.md §6.5). Only npartitions
// bounds the index (bsd_get_partition returns rc=0 for any in-range
// slot, setting pa->used = p->p_size ? 1 : 0); an in-range but unused
// slot is not an error, it is simply reported with Used=false.
func (e *Editor) Get(i int) (label.Row, error) {
	if i < 0 || i >= int(e.Label.NPartitions) {
		return label.Row{}, fmt.Errorf("%w: partition index %d", errs.ErrInvalidArgument, i)
	}
	want := string(rune('a' + i))
	rows := label.Describe(*e.Label, e.Platform, e.UseCylinders)
	for _, r := range rows {
		if r.Slice == want {
			return r, nil
		}
	}
	return label.Row{Slice: want, Used: false}, nil
}

// bounds returns the inclusive sector range [low, high] new/edited
// partitions must stay within: the whole disk unless nested, else the
// bound DOS partition's own extent (spec.md §4.2 nesting rule).
func (e *Editor) bounds() (uint64, uint64) {
	return geometry.Bounds(e.Nested, e.DOSStart, e.DOSSize, uint64(e.Label.SecPerUnit))
}

// Add creates or overwrites partition slot i with the given offset,
// size, and fstype, after validating it stays within bounds
// (bsd_add_part). Partition slices are allowed to overlap one another
// by design — slice 'c' conventionally spans the whole disk — so Add
// does not check for it; only BootstrapInstaller's second-stage image
// is checked for intruding into the label region.
func (e *Editor) Add(i int, offset, size uint64, fstype label.FSType) error {
	if i < 0 || i >= label.MaxPartitions {
		return fmt.Errorf("%w: partition index %d", errs.ErrInvalidArgument, i)
	}
	low, high := e.bounds()
	if size == 0 || offset < low || offset+size-1 > high {
		return fmt.Errorf("%w: partition %c [%d,%d) outside bounds [%d,%d]",
			errs.ErrInvalidArgument, byte('a'+i), offset, offset+size, low, high)
	}
	e.Label.Partitions[i] = label.Partition{
		Offset: uint32(offset),
		Size:   uint32(size),
		FSType: fstype,
	}
	if uint16(i+1) > e.Label.NPartitions {
		e.Label.NPartitions = uint16(i + 1)
	}
	return nil
}

// Delete clears partition slot i (bsd_delete_part). Deleting an
// already-empty slot is a no-op, not an error. When the cleared slot was
// the last counted one, npartitions shrinks to one past the
// highest-numbered slot still in use, or 0 if none remain.
func (e *Editor) Delete(i int) error {
	if i < 0 || i >= label.MaxPartitions {
		return fmt.Errorf("%w: partition index %d", errs.ErrInvalidArgument, i)
	}
	e.Label.Partitions[i] = label.Partition{}
	if i == int(e.Label.NPartitions)-1 {
		n := 0
		for j := label.MaxPartitions - 1; j >= 0; j-- {
			if e.Label.Partitions[j].Used() {
				n = j + 1
				break
			}
		}
		e.Label.NPartitions = uint16(n)
	}
	return nil
}

// SetType rewrites slot i's fstype in place without touching its
// offset or size (bsd_set_parttype). Only npartitions bounds the index;
// an unused slot (size 0, as slots 'a' and 'b' start out under the init
// conventions) is a perfectly valid target.
func (e *Editor) SetType(i int, fstype label.FSType) error {
	if i < 0 || i >= label.MaxPartitions {
		return fmt.Errorf("%w: partition index %d", errs.ErrInvalidArgument, i)
	}
	if i >= int(e.Label.NPartitions) {
		return fmt.Errorf("%w: partition index %d >= npartitions %d", errs.ErrInvalidArgument, i, e.Label.NPartitions)
	}
	e.Label.Partitions[i].FSType = fstype
	return nil
}

// FirstFreeSlot returns the lowest-numbered unused partition index, or
// -1 if the table is full.
func (e *Editor) FirstFreeSlot() int {
	for i, p := range e.Label.Partitions {
		if !p.Used() {
			return i
		}
	}
	return -1
}

// Link installs a mirror of the bound DOS/MBR partition dp into slot
// (firstFreeSlot, or the lowest unused slot when negative), translating
// its system byte to a BSD fstype (fdisk_bsd_link_partition). Offsets
// carried in dp are whole-disk relative, matching the Offset rule
// every other slot obeys.
func (e *Editor) Link(dp mbr.Partition, firstFreeSlot int) (int, error) {
	slot := firstFreeSlot
	if slot < 0 {
		slot = e.FirstFreeSlot()
		if slot < 0 {
			return 0, fmt.Errorf("%w: no free partition slot", errs.ErrInvalidArgument)
		}
	}
	if err := e.Add(slot, dp.Start(), dp.SectorCount(), dp.TranslateFSType()); err != nil {
		return 0, err
	}
	return slot, nil
}

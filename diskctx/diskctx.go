// Package diskctx provides the concrete "Context" type behind the
// external collaborator spec.md §6.3 calls the "Context provider": the
// device handle, its geometry, an optional parent DOS/MBR binding, and
// the cylinder/sector display-mode flag that every other component in
// this module reads from.
package diskctx

import (
	"github.com/aarsakian/bsdlabel/img"
	"github.com/aarsakian/bsdlabel/mbr"
)

// Geometry is the heads/sectors/cylinders triple used to seed a fresh
// label (spec.md §4.5 init conventions) when no disklabel is present yet.
type Geometry struct {
	Heads     uint32
	Sectors   uint32
	Cylinders uint32
}

// ParentBinding records the DOS/MBR partition a nested BSD label lives
// inside. Index is -1 until LabelLifecycle.assignDOSPartition (called from
// Probe/Create) scans Table for the BSD-family slot and binds it, unless
// the caller already supplied an explicit index up front.
type ParentBinding struct {
	Table mbr.Table
	Index int // 0-based index into Table.Partitions, or -1 if not yet assigned
}

// Assigned reports whether Index has been bound to a concrete DOS slot.
func (p ParentBinding) Assigned() bool {
	return p.Index >= 0
}

// Partition returns the bound DOS partition entry. Only valid once
// Assigned reports true.
func (p ParentBinding) Partition() mbr.Partition {
	return p.Table.GetPartition(p.Index)
}

// Context is the per-device state every label operation is threaded
// through. It owns the device reader/writer exclusively for as long as
// it is open (spec.md §5: "no concurrent mutation").
type Context struct {
	DevicePath   string
	Device       img.DiskReader // img.DiskReaderWriter when writes are needed
	SectorSize   uint64         // device-native sector size; may exceed 512
	Geometry     Geometry
	Parent       *ParentBinding // nil when not nested
	UseCylinders bool           // display-mode flag
}

// Nested reports whether this label lives inside a DOS/MBR partition
// rather than at the start of the whole device.
func (c *Context) Nested() bool {
	return c.Parent != nil
}

// BaseOffset is the byte offset on the device where this label's boot
// block begins: the parent partition's start (in device-native sectors)
// when nested, or 0 otherwise (spec.md §4.1's "Offset rule").
func (c *Context) BaseOffset() int64 {
	if c.Parent == nil {
		return 0
	}
	return int64(c.Parent.Partition().Start() * c.SectorSize)
}

// Writer returns the device as a DiskReaderWriter, or false when the
// backing store is read-only (a forensic image).
func (c *Context) Writer() (img.DiskReaderWriter, bool) {
	w, ok := c.Device.(img.DiskReaderWriter)
	return w, ok
}

// Close releases the device. Per spec.md §3.3, the Context (and
// everything it owns) is destroyed when the caller releases it.
func (c *Context) Close() error {
	if c.Device == nil {
		return nil
	}
	return c.Device.Close()
}

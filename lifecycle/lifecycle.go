// Package lifecycle implements LabelLifecycle (spec.md §4.5, §6.4): the
// probe / create / read / write / edit state machine that moves a BSD
// disklabel between its on-disk boot-block encoding and an editable
// label.Label, mirroring bsd_probe_label / bsd_create_disklabel /
// bsd_initlabel / bsd_readlabel / bsd_write_disklabel /
// fdisk_bsd_edit_disklabel / sync_disks from the original bsd.c.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aarsakian/bsdlabel/bootblock"
	"github.com/aarsakian/bsdlabel/checksum"
	"github.com/aarsakian/bsdlabel/diskctx"
	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/geometry"
	"github.com/aarsakian/bsdlabel/label"
	"github.com/aarsakian/bsdlabel/logger"
	"github.com/aarsakian/bsdlabel/platform"
	"github.com/aarsakian/bsdlabel/prompt"
	"github.com/aarsakian/bsdlabel/store"
)

// syncer is implemented by the unix/windows img backends that expose a
// best-effort device flush after a write (img.rawDevice.Sync).
type syncer interface {
	Sync() error
}

// Lifecycle carries the state a single editing session threads through
// Probe/Create/Read/Write/Edit.
type Lifecycle struct {
	Ctx      *diskctx.Context
	Platform platform.Platform
}

// labelOffset is the byte offset of the disklabel within the boot block,
// per p's LabelSector/LabelOffset convention.
func (lc *Lifecycle) labelOffset() int {
	return lc.Platform.LabelSector()*bootblock.DefaultSectorSize + lc.Platform.LabelOffset()
}

// LabelOffset exposes labelOffset to BootstrapInstaller, which needs it
// to locate the label region within the boot block it is splicing.
func (lc *Lifecycle) LabelOffset() int {
	return lc.labelOffset()
}

// ReadRaw loads the current boot block unparsed, for BootstrapInstaller
// to splice bootstrap code into around the embedded label.
func (lc *Lifecycle) ReadRaw() (bootblock.Buffer, error) {
	return store.Read(lc.Ctx, bootblock.BBSIZE)
}

// WriteRaw stores buf as-is and flushes the device, for callers (like
// BootstrapInstaller) that have already serialized the label into buf
// themselves.
func (lc *Lifecycle) WriteRaw(buf bootblock.Buffer) error {
	if err := store.Write(lc.Ctx, buf); err != nil {
		return err
	}
	if w, ok := lc.Ctx.Writer(); ok {
		if s, ok := w.(syncer); ok {
			if err := s.Sync(); err != nil {
				logger.DisklabelLogger.Warning(fmt.Sprintf("sync failed: %v", err))
			}
		}
	}
	return nil
}

// assignDOSPartition implements bsd_assign_dos_partition: when the
// context is nested but no DOS slot has been bound yet, scans the four
// MBR entries for a BSD/NetBSD/OpenBSD (or "hidden" 0x10-xored) system
// byte and binds lc.Ctx.Parent to it. A candidate starting at sector 0 is
// rejected with a warning rather than accepted, per spec.md §4.6. Does
// nothing when the context is not nested or already bound.
func (lc *Lifecycle) assignDOSPartition() error {
	if lc.Ctx.Parent == nil || lc.Ctx.Parent.Assigned() {
		return nil
	}
	table := lc.Ctx.Parent.Table
	for i := 0; i < 4; i++ {
		part := table.GetPartition(i)
		if !part.IsBSDFamily() {
			continue
		}
		if part.Start() == 0 {
			logger.DisklabelLogger.Warning(fmt.Sprintf("DOS partition %d is BSD-family but starts at sector 0, skipping", i))
			continue
		}
		lc.Ctx.Parent.Index = i
		return nil
	}
	return fmt.Errorf("%w: no BSD-family DOS partition found", errs.ErrNotFound)
}

// deriveDType infers the drive type from the device path the way
// bsd_initlabel does: SCSI-named devices (/dev/sd*, /dev/sr*) get
// DTypeSCSI, everything else is assumed ST506.
func deriveDType(devicePath string) label.DType {
	base := devicePath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if strings.HasPrefix(base, "sd") || strings.HasPrefix(base, "sr") {
		return label.DTypeSCSI
	}
	return label.DTypeST506
}

// Probe reads the boot block and attempts to parse a disklabel out of
// it, returning errs.ErrNotFound (never a hard failure) when no magic is
// present (bsd_probe_label). When nested, it first locates the BSD-family
// DOS partition via assignDOSPartition (bsd_assign_dos_partition); failure
// to find one is itself reported as errs.ErrNotFound rather than a hard
// error, matching "return found/not-found, not an error" (spec.md §4.6).
func (lc *Lifecycle) Probe() (label.Label, error) {
	if err := lc.assignDOSPartition(); err != nil {
		return label.Label{}, err
	}
	buf, err := store.Read(lc.Ctx, bootblock.BBSIZE)
	if err != nil {
		return label.Label{}, err
	}
	l, warning, err := label.Parse(buf, lc.labelOffset())
	if err != nil {
		if errors.Is(err, label.ErrNotFound) {
			return label.Label{}, fmt.Errorf("%w", errs.ErrNotFound)
		}
		return label.Label{}, err
	}
	if warning != "" {
		logger.DisklabelLogger.Warning(warning)
	}
	return l, nil
}

// Read is Probe without the soft-fail translation: callers who already
// know a label is present call Read and treat absence as corruption
// (bsd_readlabel).
func (lc *Lifecycle) Read() (label.Label, error) {
	buf, err := store.Read(lc.Ctx, bootblock.BBSIZE)
	if err != nil {
		return label.Label{}, err
	}
	l, warning, err := label.Parse(buf, lc.labelOffset())
	if err != nil {
		return label.Label{}, fmt.Errorf("%w: %v", errs.ErrCorrupt, err)
	}
	if warning != "" {
		logger.DisklabelLogger.Warning(warning)
	}
	return l, nil
}

// Create builds a fresh in-memory label following the init conventions
// (spec.md §4.5): when nested, npartitions=4 with slot 'c' mirroring the
// bound DOS partition and slot 'd' covering the whole disk; otherwise
// npartitions=3 with slot 'c' covering the whole disk. geo seeds the
// disk-wide geometry fields, and secperunit is derived from it
// (sectors*heads*cylinders); an empty packname is left as zero bytes.
// When nested, the DOS child assignment (assignDOSPartition) must succeed
// (spec.md §4.6 "create": "Assign DOS child if nested (must succeed)");
// failure to find a BSD-family partition is a hard error here, unlike
// Probe's soft not-found outcome. Before building anything, Create asks
// for confirmation (bsd_create_disklabel calls fdisk_ask_yesno and
// returns early on decline, bsd.c:285-298); a decline is reported as
// prompt.ErrUserCancel, a no-op outcome rather than a failure, exactly
// like Edit's cancel path.
func (lc *Lifecycle) Create(geo diskctx.Geometry, p prompt.Prompter) (label.Label, error) {
	ok, err := p.AskYesNo("Create new disklabel")
	if err != nil {
		return label.Label{}, err
	}
	if !ok {
		return label.Label{}, prompt.ErrUserCancel
	}

	if err := lc.assignDOSPartition(); err != nil {
		return label.Label{}, err
	}

	var l label.Label
	l.Magic = label.DiskMagic
	l.Magic2 = label.DiskMagic
	l.DType = deriveDType(lc.Ctx.DevicePath)
	l.Flags = lc.Platform.DefaultFlags()
	l.SecSize = bootblock.DefaultSectorSize
	l.NSectors = geo.Sectors
	l.NTracks = geo.Heads
	l.NCylinders = geo.Cylinders
	l.SecPerCyl = uint32(geometry.NormalizeSecPerCyl(uint64(geo.Sectors * geo.Heads)))
	l.SecPerUnit = geo.Sectors * geo.Heads * geo.Cylinders
	l.BBSize = bootblock.BBSIZE
	l.SBSize = 8192

	if lc.Ctx.Nested() {
		l.NPartitions = 4
		dp := lc.Ctx.Parent.Partition()
		l.Partitions[2] = label.Partition{Offset: uint32(dp.Start()), Size: uint32(dp.SectorCount())}
		l.Partitions[3] = label.Partition{Offset: 0, Size: l.SecPerUnit}
	} else {
		l.NPartitions = 3
		l.Partitions[2] = label.Partition{Offset: 0, Size: l.SecPerUnit}
	}
	return l, nil
}

// Write recomputes the checksum, recomputes the Alpha boot checksum when
// this platform requires it, stores the label back into the boot block,
// writes the block out through LabelStore, and flushes the device when
// the backend supports it (bsd_write_disklabel + sync_disks).
func (lc *Lifecycle) Write(l *label.Label) error {
	buf, err := store.Read(lc.Ctx, bootblock.BBSIZE)
	if err != nil {
		return err
	}
	if err := label.Serialize(l, buf, lc.labelOffset()); err != nil {
		return err
	}
	if lc.Platform.HasBootChecksum() {
		checksum.AlphaBootChecksum(buf)
	}
	return lc.WriteRaw(buf)
}

// Edit drives the interactive geometry/performance-hint prompt sequence
// fdisk_bsd_edit_disklabel lays out: secsize/nsectors/ntracks/ncylinders
// only on Alpha/ia64 (PromptsExtraGeometry), then secpercyl, rpm,
// interleave, trackskew, cylskew, headswitch, and trkseek unconditionally
// on every platform, finishing with the secperunit recompute the original
// does at the very end (`d_secperunit = d_secpercyl * d_ncylinders`).
// Returning prompt.ErrUserCancel is a no-op outcome, not a failure, per
// spec.md §7.
func (lc *Lifecycle) Edit(l *label.Label, p prompt.Prompter) error {
	if lc.Platform.PromptsExtraGeometry() {
		secSize, err := p.AskNumber(1, int(l.SecSize), 1<<16-1, "sector size")
		if err != nil {
			return err
		}
		l.SecSize = uint32(secSize)

		nsectors, err := p.AskNumber(1, int(l.NSectors), 1<<16-1, "sectors/track")
		if err != nil {
			return err
		}
		l.NSectors = uint32(nsectors)

		ntracks, err := p.AskNumber(1, int(l.NTracks), 1<<16-1, "tracks/cylinder")
		if err != nil {
			return err
		}
		l.NTracks = uint32(ntracks)

		ncylinders, err := p.AskNumber(1, int(l.NCylinders), 1<<32-1, "cylinders")
		if err != nil {
			return err
		}
		l.NCylinders = uint32(ncylinders)
	}

	secPerCylDefault := int(l.NSectors * l.NTracks)
	secPerCyl, err := p.AskNumber(1, secPerCylDefault, secPerCylDefault, "sectors/cylinder")
	if err != nil {
		return err
	}
	l.SecPerCyl = uint32(secPerCyl)

	rpm, err := p.AskNumber(1, int(l.RPM), 1<<16-1, "rpm")
	if err != nil {
		return err
	}
	l.RPM = uint16(rpm)

	interleave, err := p.AskNumber(1, int(l.Interleave), 1<<16-1, "interleave")
	if err != nil {
		return err
	}
	l.Interleave = uint16(interleave)

	trackSkew, err := p.AskNumber(1, int(l.TrackSkew), 1<<16-1, "trackskew")
	if err != nil {
		return err
	}
	l.TrackSkew = uint16(trackSkew)

	cylSkew, err := p.AskNumber(1, int(l.CylSkew), 1<<16-1, "cylinderskew")
	if err != nil {
		return err
	}
	l.CylSkew = uint16(cylSkew)

	headSwitch, err := p.AskNumber(1, int(l.HeadSwitch), 1<<32-1, "headswitch")
	if err != nil {
		return err
	}
	l.HeadSwitch = uint32(headSwitch)

	trkSeek, err := p.AskNumber(1, int(l.TrkSeek), 1<<32-1, "track-to-track seek")
	if err != nil {
		return err
	}
	l.TrkSeek = uint32(trkSeek)

	l.SecPerUnit = l.SecPerCyl * l.NCylinders
	return nil
}

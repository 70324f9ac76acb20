// Package bootstrap implements BootstrapInstaller (spec.md §4.7):
// composing a two-stage boot program into a BootBlockBuffer while
// preserving the embedded disklabel that lives inside the same block,
// mirroring fdisk_bsd_write_bootstrap from the original bsd.c.
package bootstrap

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aarsakian/bsdlabel/bootblock"
	"github.com/aarsakian/bsdlabel/checksum"
	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/label"
	"github.com/aarsakian/bsdlabel/lifecycle"
)

// Installer writes a two-stage boot program into ctx's boot block
// without disturbing the disklabel already embedded in it.
type Installer struct {
	Lifecycle *lifecycle.Lifecycle
}

// baseName picks the bootstrap file naming stem fdisk_bsd_write_bootstrap
// uses: the user-supplied name if given, else "sd" for SCSI drives and
// "wd" for everything else (bsd.c:510-524).
func baseName(l *label.Label, userName string) string {
	if userName != "" {
		return userName
	}
	if l.DType == label.DTypeSCSI {
		return "sd"
	}
	return "wd"
}

// Install reads the first-stage bootstrap (exactly secsize bytes) from
// "<bootdirPrefix>/<name>boot" and the second-stage bootstrap (exactly
// bbsize-secsize bytes) from "<bootdirPrefix>/boot<name>", splicing both
// into the current boot block around the already-embedded label, per
// fdisk_bsd_write_bootstrap's naming convention. name defaults to "sd" or
// "wd" (deriving from l.DType) when userName is empty. The in-place
// save/zero/restore ordering is load-bearing: second-stage and embedded
// label compete for the same byte range, so the label is saved and
// zeroed before the second stage is written, and the zeroed region is
// checked for intrusion before the label is restored.
func (in *Installer) Install(l *label.Label, bootdirPrefix, userName string) error {
	name := baseName(l, userName)
	firstStagePath := bootdirPrefix + "/" + name + "boot"
	secondStagePath := bootdirPrefix + "/boot" + name

	secSize := int(l.SecSize)
	if secSize == 0 {
		secSize = bootblock.DefaultSectorSize
	}
	bbsize := int(l.BBSize)
	if bbsize == 0 {
		bbsize = bootblock.BBSIZE
	}
	labelOff := in.Lifecycle.LabelOffset()

	buf, err := in.Lifecycle.ReadRaw()
	if err != nil {
		return err
	}
	if len(buf) < bbsize {
		grown := bootblock.New(bbsize)
		copy(grown, buf)
		buf = grown
	}

	first, err := readExactly(firstStagePath, secSize)
	if err != nil {
		return err
	}
	copy(buf[:secSize], first)

	saved := make([]byte, label.Size)
	copy(saved, buf[labelOff:labelOff+label.Size])
	for i := range buf[labelOff : labelOff+label.Size] {
		buf[labelOff+i] = 0
	}

	second, err := readExactly(secondStagePath, bbsize-secSize)
	if err != nil {
		return err
	}
	copy(buf[secSize:bbsize], second)

	if !allZero(buf[labelOff : labelOff+label.Size]) {
		return fmt.Errorf("%w: second-stage bootstrap intrudes on disklabel region", errs.ErrOverlap)
	}

	copy(buf[labelOff:labelOff+label.Size], saved)

	if err := label.Serialize(l, buf, labelOff); err != nil {
		return err
	}

	if in.Lifecycle.Platform.HasBootChecksum() {
		checksum.AlphaBootChecksum(buf)
	}

	return in.Lifecycle.WriteRaw(buf)
}

func readExactly(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", errs.ErrIO, path, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.ErrIO, path, err)
	}
	return buf, nil
}

func allZero(b []byte) bool {
	return bytes.Equal(b, make([]byte, len(b)))
}

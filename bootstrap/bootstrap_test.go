package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aarsakian/bsdlabel/bootblock"
	"github.com/aarsakian/bsdlabel/diskctx"
	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/label"
	"github.com/aarsakian/bsdlabel/lifecycle"
	"github.com/aarsakian/bsdlabel/platform"
	"github.com/aarsakian/bsdlabel/prompt"
)

type memDevice struct {
	data []byte
}

func (d *memDevice) ReadAt(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	copy(buf, d.data[off:off+int64(n)])
	return buf, nil
}

func (d *memDevice) WriteAt(off int64, p []byte) error {
	copy(d.data[off:], p)
	return nil
}

func (d *memDevice) Size() int64  { return int64(len(d.data)) }
func (d *memDevice) Close() error { return nil }

func writeStageFile(t *testing.T, dir, name string, n int, fill byte) {
	t.Helper()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = fill
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
		t.Fatalf("writing stage file %s: %v", name, err)
	}
}

// writeSecondStageAvoidingLabel builds a second-stage image of n bytes
// that leaves its first labelSize bytes zero (where the label sits,
// since LABELSECTOR*512+LABELOFFSET falls at the very start of the
// second-stage region under the generic platform) and fills the rest
// with fill, so a correct splice succeeds.
func writeSecondStageAvoidingLabel(t *testing.T, dir, name string, n, labelSize int, fill byte) {
	t.Helper()
	buf := make([]byte, n)
	for i := labelSize; i < n; i++ {
		buf[i] = fill
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
		t.Fatalf("writing stage file %s: %v", name, err)
	}
}

func newTestInstaller(t *testing.T) (*Installer, *label.Label) {
	t.Helper()
	dev := &memDevice{data: make([]byte, bootblock.BBSIZE)}
	ctx := &diskctx.Context{DevicePath: "/dev/wd0", Device: dev, SectorSize: 512}
	lc := &lifecycle.Lifecycle{Ctx: ctx, Platform: platform.Generic}

	p := prompt.NewStdin(strings.NewReader("y\n"), &bytes.Buffer{})
	l, err := lc.Create(diskctx.Geometry{Heads: 16, Sectors: 63, Cylinders: 1024}, p)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := lc.Write(&l); err != nil {
		t.Fatalf("seeding label: %v", err)
	}
	return &Installer{Lifecycle: lc}, &l
}

func TestInstallSplicesAroundLabel(t *testing.T) {
	in, l := newTestInstaller(t)
	dir := t.TempDir()
	writeStageFile(t, dir, "wdboot", int(l.SecSize), 0x11)
	writeSecondStageAvoidingLabel(t, dir, "bootwd", int(l.BBSize)-int(l.SecSize), label.Size, 0x22)

	if err := in.Install(l, dir, ""); err != nil {
		t.Fatalf("Install: %v", err)
	}

	buf, err := in.Lifecycle.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if buf[0] != 0x11 {
		t.Errorf("first-stage byte not written: got %#x", buf[0])
	}
	labelOff := in.Lifecycle.LabelOffset()
	if buf[labelOff] == 0x22 {
		t.Error("second-stage image overwrote the label region")
	}
	got, _, err := label.Parse(buf, labelOff)
	if err != nil {
		t.Fatalf("label did not survive the splice: %v", err)
	}
	if got.Magic != label.DiskMagic {
		t.Error("restored label lost its magic")
	}
}

func TestInstallDerivesSCSIName(t *testing.T) {
	in, l := newTestInstaller(t)
	l.DType = label.DTypeSCSI
	dir := t.TempDir()
	writeStageFile(t, dir, "sdboot", int(l.SecSize), 0x11)
	writeSecondStageAvoidingLabel(t, dir, "bootsd", int(l.BBSize)-int(l.SecSize), label.Size, 0x22)

	if err := in.Install(l, dir, ""); err != nil {
		t.Fatalf("Install: %v", err)
	}
}

func TestInstallHonorsUserSuppliedName(t *testing.T) {
	in, l := newTestInstaller(t)
	dir := t.TempDir()
	writeStageFile(t, dir, "xyzboot", int(l.SecSize), 0x11)
	writeSecondStageAvoidingLabel(t, dir, "bootxyz", int(l.BBSize)-int(l.SecSize), label.Size, 0x22)

	if err := in.Install(l, dir, "xyz"); err != nil {
		t.Fatalf("Install: %v", err)
	}
}

func TestInstallRejectsOverlappingSecondStage(t *testing.T) {
	in, l := newTestInstaller(t)
	dir := t.TempDir()
	writeStageFile(t, dir, "wdboot", int(l.SecSize), 0x11)
	// A second-stage image large enough, filled entirely with non-zero
	// bytes, always intrudes into the zeroed label region.
	writeStageFile(t, dir, "bootwd", int(l.BBSize)-int(l.SecSize), 0xFF)

	err := in.Install(l, dir, "")
	if !errors.Is(err, errs.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

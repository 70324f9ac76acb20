// Package store implements LabelStore (spec.md §4.1): placing the
// BootBlockBuffer at the correct byte offset on the underlying device,
// accounting for DOS nesting and the two sector sizes in play.
package store

import (
	"fmt"

	"github.com/aarsakian/bsdlabel/bootblock"
	"github.com/aarsakian/bsdlabel/diskctx"
	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/img"
)

// Read loads the whole BBSIZE-byte boot block from ctx's device at the
// correct base offset (spec.md §4.1's "Offset rule"): dos_start *
// ctx.SectorSize when nested, 0 otherwise.
func Read(ctx *diskctx.Context, bbsize int) (bootblock.Buffer, error) {
	buf, err := ctx.Device.ReadAt(ctx.BaseOffset(), bbsize)
	if err != nil {
		return nil, fmt.Errorf("%w: reading boot block from %s: %v", errs.ErrIO, ctx.DevicePath, err)
	}
	return bootblock.Buffer(buf), nil
}

// Write stores buf back to ctx's device at the same base offset Read
// uses. It fails with a read-only-backend error against forensic image
// backends (EWF, VMDK): those can be probed and listed, never written.
func Write(ctx *diskctx.Context, buf bootblock.Buffer) error {
	w, ok := ctx.Writer()
	if !ok {
		return fmt.Errorf("%w: %s: %v", errs.ErrIO, ctx.DevicePath, img.ErrReadOnlyBackend)
	}
	if err := w.WriteAt(ctx.BaseOffset(), buf); err != nil {
		return fmt.Errorf("%w: writing boot block to %s: %v", errs.ErrIO, ctx.DevicePath, err)
	}
	return nil
}

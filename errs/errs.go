// Package errs collects the disklabel driver's error-kind sentinels
// (spec.md §7), so callers can distinguish them with errors.Is the same
// way the teacher distinguishes disk.ErrNTFSVol in disk/disk.go.
package errs

import "errors"

var (
	// ErrInvalidArgument: bad index, bad type, MAXPARTITIONS exceeded at
	// an API boundary.
	ErrInvalidArgument = errors.New("disklabel: invalid argument")

	// ErrNotFound: no magic, or no BSD-family MBR child found during
	// probe. A soft outcome, not fatal.
	ErrNotFound = errors.New("disklabel: not found")

	// ErrIO: seek/read/write failure against the device.
	ErrIO = errors.New("disklabel: i/o error")

	// ErrOverlap: bootstrap install detected second-stage bytes
	// intruding into the label region.
	ErrOverlap = errors.New("disklabel: bootstrap overlaps disklabel")

	// ErrCorrupt: inconsistent npartitions, or magic missing on reread.
	ErrCorrupt = errors.New("disklabel: corrupt label")
)

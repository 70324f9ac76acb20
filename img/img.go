// Package img provides the pluggable device/image backends LabelStore
// reads and writes boot blocks through, generalizing the teacher's
// github.com/aarsakian/MFTExtractor/img package (which only needed
// read-only access for forensic recovery) to also support writes against
// a live raw device.
package img

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DiskReader is the minimal read side every backend supports.
type DiskReader interface {
	ReadAt(off int64, n int) ([]byte, error)
	Size() int64
	Close() error
}

// DiskReaderWriter additionally supports writing back, which only a live
// raw block device backend can meaningfully do.
type DiskReaderWriter interface {
	DiskReader
	WriteAt(off int64, p []byte) error
}

// ErrReadOnlyBackend is reported (by store.Write) when the backend has no
// WriteAt, as with the read-only forensic evidence backends (EWF, VMDK):
// the label can be inspected from such an image but never written back to
// it.
var ErrReadOnlyBackend = fmt.Errorf("img: backend is read-only")

// Kind selects which backend Open constructs. Unlike the teacher's
// img.GetHandler, which dispatched solely on runtime.GOOS, an EWF or VMDK
// image is picked by file extension rather than host OS, so the kind is
// explicit here.
type Kind int

const (
	KindRawDevice Kind = iota
	KindEWFImage
	KindVMDKImage
)

// DetectKind infers the backend kind from a path's extension, falling
// back to a raw device for anything else (a real block device path like
// /dev/sda or \\.\PhysicalDrive0 has no meaningful extension).
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".e01":
		return KindEWFImage
	case ".vmdk":
		return KindVMDKImage
	default:
		return KindRawDevice
	}
}

// Open constructs the backend for kind against path.
func Open(kind Kind, path string) (DiskReader, error) {
	switch kind {
	case KindEWFImage:
		return openEWF(path)
	case KindVMDKImage:
		return openVMDK(path)
	default:
		return openRawDevice(path)
	}
}

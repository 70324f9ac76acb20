package img

import (
	"fmt"
	"path/filepath"
	"strings"

	extent "github.com/aarsakian/VMDK_Reader/extent"
)

// vmdkImage is the read-only VMDK sparse-extent backend, adapted from
// the teacher's img.VMDKReader. Like ewfImage, it never supports WriteAt.
type vmdkImage struct {
	path string
	fd   extent.Extents
}

func openVMDK(path string) (DiskReader, error) {
	if strings.ToLower(filepath.Ext(path)) != ".vmdk" {
		return nil, fmt.Errorf("img: %s: only VMDK sparse images are supported", path)
	}
	return &vmdkImage{path: path, fd: extent.ProcessExtents(path)}, nil
}

func (r *vmdkImage) ReadAt(off int64, n int) ([]byte, error) {
	return r.fd.RetrieveData(filepath.Dir(r.path), off, int64(n)), nil
}

func (r *vmdkImage) Size() int64 {
	return r.fd.GetHDSize()
}

func (r *vmdkImage) Close() error {
	return nil
}

package img

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	ewf "github.com/aarsakian/EWF_Reader/ewf"
)

// ewfImage is the read-only forensic-evidence backend, adapted from the
// teacher's img.ImageReader. A disklabel can be probed and listed out of
// an E01 acquisition; it can never be written back to one.
type ewfImage struct {
	path string
	fd   ewf.EWF_Image
}

func openEWF(path string) (DiskReader, error) {
	if strings.ToLower(filepath.Ext(path)) != ".e01" {
		return nil, fmt.Errorf("img: %s: only EWF (.E01) images are supported", path)
	}
	segments, err := findEvidenceSegments(path)
	if err != nil {
		return nil, err
	}

	var image ewf.EWF_Image
	image.ParseEvidence(segments)

	return &ewfImage{path: path, fd: image}, nil
}

// findEvidenceSegments collects the .E01, .E02, ... segment files that
// make up a split EWF acquisition alongside path.
func findEvidenceSegments(path string) ([]string, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	matches, err := filepath.Glob(base + ".[Ee]??")
	if err != nil {
		return nil, fmt.Errorf("img: globbing segments for %s: %w", path, err)
	}
	if len(matches) == 0 {
		return []string{path}, nil
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *ewfImage) ReadAt(off int64, n int) ([]byte, error) {
	return r.fd.RetrieveData(off, int64(n)), nil
}

func (r *ewfImage) Size() int64 {
	return int64(r.fd.Chuncksize) * int64(r.fd.NofChunks)
}

func (r *ewfImage) Close() error {
	return nil
}

package diskctx

import (
	"testing"

	"github.com/aarsakian/bsdlabel/mbr"
)

type fakeReader struct{ closed bool }

func (f *fakeReader) ReadAt(off int64, n int) ([]byte, error) { return make([]byte, n), nil }
func (f *fakeReader) Size() int64                             { return 0 }
func (f *fakeReader) Close() error                            { f.closed = true; return nil }

func TestBaseOffsetNonNestedIsZero(t *testing.T) {
	ctx := &Context{SectorSize: 512}
	if got := ctx.BaseOffset(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if ctx.Nested() {
		t.Error("expected Nested() false without a parent")
	}
}

func TestBaseOffsetNestedUsesParentStartTimesSectorSize(t *testing.T) {
	table := mbr.Table{}
	table.Partitions[1] = mbr.Partition{StartLBA: 2048}
	ctx := &Context{SectorSize: 512, Parent: &ParentBinding{Table: table, Index: 1}}

	if !ctx.Nested() {
		t.Fatal("expected Nested() true with a parent")
	}
	if got := ctx.BaseOffset(); got != 2048*512 {
		t.Errorf("expected %d, got %d", 2048*512, got)
	}
}

func TestWriterFalseForReadOnlyBackend(t *testing.T) {
	ctx := &Context{Device: &fakeReader{}}
	_, ok := ctx.Writer()
	if ok {
		t.Error("expected Writer() to report false for a read-only DiskReader")
	}
}

func TestCloseDelegatesToDevice(t *testing.T) {
	fr := &fakeReader{}
	ctx := &Context{Device: fr}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fr.closed {
		t.Error("expected Close() to close the underlying device")
	}
}

// Command disklabel is a thin smoke-test CLI over the disklabel driver,
// wiring a device path and an action flag to LabelLifecycle and
// PartitionEditor the way the teacher's own main.go wires a device path
// and action flags to disk.Disk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aarsakian/bsdlabel/bootstrap"
	"github.com/aarsakian/bsdlabel/diskctx"
	"github.com/aarsakian/bsdlabel/editor"
	"github.com/aarsakian/bsdlabel/errs"
	"github.com/aarsakian/bsdlabel/img"
	"github.com/aarsakian/bsdlabel/label"
	"github.com/aarsakian/bsdlabel/lifecycle"
	"github.com/aarsakian/bsdlabel/logger"
	"github.com/aarsakian/bsdlabel/mbr"
	"github.com/aarsakian/bsdlabel/platform"
	"github.com/aarsakian/bsdlabel/prompt"
)

func checkErr(err error, msg string) {
	if err != nil {
		log.Fatalln(msg, err)
	}
}

func main() {
	devicePath := flag.String("device", "", "absolute path to the device or image (EWF .E01 and VMDK accepted)")
	action := flag.String("action", "list", "probe, list, create, edit, link, bootstrap")
	platformName := flag.String("platform", "generic", "generic, alpha, ia64")
	useCylinders := flag.Bool("cylinders", false, "display start/end in cylinder mode instead of sectors")
	heads := flag.Uint("heads", 16, "heads, used by create")
	sectors := flag.Uint("sectors", 63, "sectors/track, used by create")
	cylinders := flag.Uint("cylinders-count", 1024, "cylinders, used by create")
	dosPartIndex := flag.Int("dospart", -1, "0-based MBR partition index this label nests in, -1 for whole disk")
	nested := flag.Bool("nested", false, "label nests in a DOS/MBR partition; auto-discover the BSD-family slot unless -dospart overrides it")
	logactive := flag.Bool("log", false, "enable logging")
	bootdir := flag.String("bootdir", "", "path prefix holding the bootstrap files, used by action=bootstrap")
	bootName := flag.String("bootname", "", "bootstrap file base name, defaults to sd/wd from the drive type, used by action=bootstrap")

	flag.Parse()

	if *devicePath == "" {
		log.Fatalln("disklabel: -device is required")
	}

	if *logactive {
		now := time.Now()
		logfilename := "disklabel" + now.Format("2006-01-02T15_04_05") + ".txt"
		checkErr(logger.Initialize(true, logfilename, *devicePath), "failed to initialize logger")
	} else {
		checkErr(logger.Initialize(false, "", *devicePath), "failed to initialize logger")
	}

	plat := parsePlatform(*platformName)

	kind := img.DetectKind(*devicePath)
	device, err := img.Open(kind, *devicePath)
	checkErr(err, "failed to open device")
	defer device.Close()

	ctx := &diskctx.Context{
		DevicePath:   *devicePath,
		Device:       device,
		SectorSize:   512,
		Geometry:     diskctx.Geometry{Heads: uint32(*heads), Sectors: uint32(*sectors), Cylinders: uint32(*cylinders)},
		UseCylinders: *useCylinders,
	}

	if *dosPartIndex >= 0 || *nested {
		region, err := device.ReadAt(0, 512)
		checkErr(err, "failed to read MBR")
		table := parseMBRTable(region)
		ctx.Parent = &diskctx.ParentBinding{Table: table, Index: *dosPartIndex}
	}

	lc := &lifecycle.Lifecycle{Ctx: ctx, Platform: plat}

	switch *action {
	case "probe":
		l, err := lc.Probe()
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				fmt.Println("no disklabel found")
				return
			}
			log.Fatalln("probe failed:", err)
		}
		fmt.Printf("disklabel found, npartitions=%d\n", l.NPartitions)

	case "list":
		l, err := lc.Probe()
		checkErr(err, "probe failed")
		printRows(l, plat, *useCylinders)

	case "create":
		p := prompt.NewStdin(os.Stdin, os.Stdout)
		l, err := lc.Create(ctx.Geometry, p)
		if errors.Is(err, prompt.ErrUserCancel) {
			fmt.Println("cancelled")
			return
		}
		checkErr(err, "create failed")
		checkErr(lc.Write(&l), "write failed")
		fmt.Println("disklabel created")

	case "edit":
		l, err := lc.Probe()
		checkErr(err, "probe failed")
		p := prompt.NewStdin(os.Stdin, os.Stdout)
		err = lc.Edit(&l, p)
		if errors.Is(err, prompt.ErrUserCancel) {
			fmt.Println("cancelled")
			return
		}
		checkErr(err, "edit failed")
		checkErr(lc.Write(&l), "write failed")

	case "link":
		l, err := lc.Probe()
		checkErr(err, "probe failed")
		if ctx.Parent == nil {
			log.Fatalln("disklabel: -dospart or -nested is required for link")
		}
		e := &editor.Editor{Label: &l, Platform: plat, Nested: true, DOSStart: ctx.Parent.Partition().Start(), DOSSize: ctx.Parent.Partition().SectorCount()}
		slot, err := e.Link(ctx.Parent.Partition(), -1)
		checkErr(err, "link failed")
		checkErr(lc.Write(&l), "write failed")
		fmt.Printf("linked into slot %c\n", byte('a'+slot))

	case "bootstrap":
		if *bootdir == "" {
			log.Fatalln("disklabel: -bootdir is required for bootstrap")
		}
		l, err := lc.Probe()
		checkErr(err, "probe failed")
		installer := &bootstrap.Installer{Lifecycle: lc}
		checkErr(installer.Install(&l, *bootdir, *bootName), "bootstrap install failed")
		fmt.Println("bootstrap installed")

	default:
		log.Fatalf("disklabel: unknown action %q", *action)
	}
}

func parsePlatform(name string) platform.Platform {
	switch strings.ToLower(name) {
	case "alpha":
		return platform.Alpha
	case "ia64":
		return platform.IA64
	default:
		return platform.Generic
	}
}

func parseMBRTable(region []byte) mbr.Table {
	return mbr.Parse(region[446:510])
}

func printRows(l label.Label, plat platform.Platform, useCylinders bool) {
	fmt.Printf("%-6s %10s %10s %10s %-10s %6s %6s %4s\n",
		"Slice", "Start", "End", "Size", "Type", "Fsize", "Bsize", "Cpg")
	for _, r := range label.Describe(l, plat, useCylinders) {
		fmt.Printf("%-6s %9d%s %9d%s %10d %-10s %6d %6d %4d\n",
			r.Slice, r.Start, mark(r.StartMark), r.End, mark(r.EndMark), r.Size,
			r.Type, r.FSize, r.BSize, r.CPG)
	}
}

func mark(set bool) string {
	if set {
		return "*"
	}
	return " "
}

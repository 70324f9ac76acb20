// Package logger provides the disklabel driver's info sink (spec.md
// §6.3), generalizing the teacher's hand-rolled logger.Logger (three
// levels, togglable, backed by stdlib log.Logger writing to a file) to
// wrap a structured logger instead, matching the logging library already
// used by the linuxkit-linuxkit, siderolabs-talos, and google-gvisor
// repos in this retrieval pack.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is keyed by device path, matching the "info sink ... keyed by
// device path" contract in spec.md §6.3.
type Logger struct {
	entry  *logrus.Entry
	active bool
}

// DisklabelLogger is the process-wide logger, set up once via
// Initialize, mirroring the teacher's package-level MFTExtractorlogger.
var DisklabelLogger Logger

// Initialize opens logfilename for appending and wires a logrus logger
// to it. When active is false every Logger method becomes a no-op,
// matching the teacher's disabled-logger shortcut. devicePath is
// attached to every log line as a field.
func Initialize(active bool, logfilename, devicePath string) error {
	if !active {
		DisklabelLogger = Logger{active: false}
		return nil
	}

	file, err := os.OpenFile(logfilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return err
	}

	base := logrus.New()
	base.Out = file
	base.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	DisklabelLogger = Logger{
		entry:  base.WithField("device", devicePath),
		active: true,
	}
	return nil
}

func (l Logger) Info(msg string) {
	if l.active {
		l.entry.Info(msg)
	}
}

func (l Logger) Warning(msg string) {
	if l.active {
		l.entry.Warn(msg)
	}
}

func (l Logger) Error(msg any) {
	if l.active {
		l.entry.Error(msg)
	}
}

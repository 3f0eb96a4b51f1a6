// Package logx wires logrus into the rest of the codebase, grounded in
// rcornwell-S370/util/logger's structured-logging role for a comparable
// register/channel/device simulator (SPEC_FULL.md §10.1).
//
// License: GPLv3 or later
package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger every subsystem calls through. Field
// used at call sites: "pc" (see Fault).
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// UseJSON switches the log formatter, for cmd/aiz32's --log-format=json.
func UseJSON() {
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Fault logs a fatal machine fault (ROM write, out-of-bounds access,
// unknown opcode) at Error level with structured context.
func Fault(pc uint32, err error) {
	Log.WithField("pc", pc).WithError(err).Error("machine fault")
}

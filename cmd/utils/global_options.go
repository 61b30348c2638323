package utils

import (
	"github.com/sirupsen/logrus"

	"github.com/stellar/otp-prober/internal/crashtracker"
)

type GlobalOptionsType struct {
	LogLevel         logrus.Level
	SentryDSN        string
	CrashTrackerType crashtracker.CrashTrackerType
	Environment      string
	Version          string
	GitCommit        string
}

// CrashTrackerOptions builds the crash tracker options out of the global options.
func (g GlobalOptionsType) CrashTrackerOptions() crashtracker.CrashTrackerOptions {
	opts := crashtracker.CrashTrackerOptions{
		CrashTrackerType: g.CrashTrackerType,
		Environment:      g.Environment,
		GitCommit:        g.GitCommit,
	}
	if g.CrashTrackerType == crashtracker.CrashTrackerTypeSentry {
		opts.SentryDSN = g.SentryDSN
	}
	return opts
}

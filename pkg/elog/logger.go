// Package elog provides the logging and progress-reporting surface used
// by cmd/lfsutil. It mirrors the teacher's logging view (pkg/elog's
// Logger/View split and colorized logrus Format), trimmed to the one
// progress case this explorer has: a single streaming file read
// (cmd/lfsutil cat). The teacher's multi-bar tracking, spinners, Seek,
// ProxyReader, and MultiWriteSeeker exist to support concurrent
// image-build/provisioning progress across several long-running
// operations at once; a read-only explorer only ever streams one file
// at a time, so none of that surface has a caller here.
package elog

/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2020 vorteil.io Pty Ltd
 */

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

// Logger is an interface that has the ability to hide debug/info output.
type Logger interface {
	Debugf(format string, x ...interface{})
	Errorf(format string, x ...interface{})
	Infof(format string, x ...interface{})
	Printf(format string, x ...interface{})
	Warnf(format string, x ...interface{})
	IsInfoEnabled() bool
	IsDebugEnabled() bool
}

// Progress reports the progress of a single streaming read. cmd/lfsutil's
// cat command is the only caller: it reads the whole file, writes its
// bytes through a Progress in a single Write, then calls Finish when the
// command returns.
type Progress interface {
	Write(p []byte) (n int, err error)
	Finish(success bool)
}

// View is a Logger plus the ability to start a Progress for a streaming
// read of a known byte length. cmd/lfsutil commands take a View rather
// than calling fmt.Println or the standard log package directly.
type View interface {
	Logger
	NewProgress(label string, total int64) Progress
}

// CLI is a generic object setup for logging to terminal outputs.
type CLI struct {
	DisableColors bool
	DisableTTY    bool
	IsDebug       bool
	IsVerbose     bool
}

// Debugf executes logrus.Tracef if debug is enabled.
func (log *CLI) Debugf(format string, x ...interface{}) {
	if log.IsDebug {
		logrus.Tracef(format, x...)
	}
}

// Errorf executes logrus.Errorf.
func (log *CLI) Errorf(format string, x ...interface{}) {
	logrus.Errorf(format, x...)
}

// Infof executes logrus.Debugf only if verbose is enabled.
func (log *CLI) Infof(format string, x ...interface{}) {
	if log.IsVerbose {
		logrus.Debugf(format, x...)
	}
}

// Printf executes logrus.Printf.
func (log *CLI) Printf(format string, x ...interface{}) {
	logrus.Printf(format, x...)
}

// Warnf executes logrus.Warnf.
func (log *CLI) Warnf(format string, x ...interface{}) {
	logrus.Warnf(format, x...)
}

// IsInfoEnabled returns whether InfoLevel logging is enabled.
func (log *CLI) IsInfoEnabled() bool {
	return logrus.IsLevelEnabled(logrus.InfoLevel)
}

// IsDebugEnabled returns whether DebugLevel logging is enabled.
func (log *CLI) IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// NewProgress starts a progress bar for a streaming read of total bytes.
// While the bar is active, logrus output is buffered and flushed to
// stdout on Finish so log lines don't tear the bar's redraw; since a
// single CLI invocation only ever streams one file, there is no need to
// track more than one bar at a time the way the teacher's multi-command
// surface does.
func (log *CLI) NewProgress(label string, total int64) Progress {
	if log.DisableTTY || total == 0 {
		return &nilProgress{}
	}

	buf := new(bytes.Buffer)
	logrus.SetOutput(buf)

	container := mpb.New(mpb.WithWidth(80))
	bar := container.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DidentRight}),
			decor.OnComplete(
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 4}), "done",
			),
		),
		mpb.AppendDecorators(decor.Counters(decor.UnitKiB, "% .1f / % .1f")),
	)

	return &pb{container: container, bar: bar, total: total, buffered: buf}
}

// nilProgress is returned when there is no terminal to draw to, or the
// stream has no known length (an empty file).
type nilProgress struct{}

func (np *nilProgress) Write(p []byte) (int, error) { return len(p), nil }
func (np *nilProgress) Finish(success bool)         {}

type pb struct {
	container *mpb.Progress
	bar       *mpb.Bar
	total     int64
	cursor    int64
	buffered  *bytes.Buffer
	closed    bool
}

// Write advances the bar by len(p) bytes.
func (pb *pb) Write(p []byte) (n int, err error) {
	n = len(p)
	pb.cursor += int64(n)
	pb.bar.IncrInt64(int64(n))
	return
}

// Finish closes the bar and restores logrus to stdout, flushing whatever
// was buffered while the bar was live.
func (pb *pb) Finish(success bool) {
	if pb.closed {
		return
	}
	pb.closed = true

	if pb.cursor != pb.total || !success {
		pb.bar.Abort(false)
	}

	pb.container.Wait()
	logrus.SetOutput(os.Stdout)
	_, _ = pb.buffered.WriteTo(os.Stdout)
}

// Format renders a logrus entry for terminal output, colorized by level
// unless DisableColors is set.
func (log *CLI) Format(entry *logrus.Entry) ([]byte, error) {

	faint := color.New(color.Faint).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	x := entry.Message
	if !log.DisableColors {
		switch entry.Level {
		case logrus.TraceLevel:
			x = fmt.Sprintf("%s\n", faint(x))
		case logrus.DebugLevel:
			x = fmt.Sprintf("%s\n", blue(x))
		case logrus.InfoLevel:
			x = fmt.Sprintf("%s\n", x)
		case logrus.WarnLevel:
			x = fmt.Sprintf("%s\n", yellow(x))
		case logrus.ErrorLevel:
			x = fmt.Sprintf("%s\n", red(x))
		default:
		}
	} else {
		x = fmt.Sprintf("%s\n", x)
	}

	return []byte(x), nil
}

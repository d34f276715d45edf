// bsdfcheck validates binary BSDF grid files.
//
// Usage:
//
//	bsdfcheck [-q] [-s] <file> ...
//
// -q prints errors only. -s adds angle range, sign and energy checks.
// The exit status is 0 when every file is valid, 1 when any file is
// invalid and 2 when a file cannot be read or the arguments are wrong.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitFailure = 2
)

const usage = "usage: bsdfcheck [-q] [-s] <file> ..."

type severity int

const (
	severityError severity = iota
	severityWarning
)

func (s severity) String() string {
	if s == severityError {
		return "error"
	}
	return "warning"
}

// finding is one problem in a file.
type finding struct {
	severity severity
	message  string
}

// report collects the findings for one file.
type report struct {
	filename string
	findings []finding
	checks   []string
}

// valid reports whether r has no error findings.
func (r *report) valid() bool {
	for _, f := range r.findings {
		if f.severity == severityError {
			return false
		}
	}
	return true
}

func (r *report) errorf(format string, args ...any) {
	r.findings = append(r.findings, finding{severityError, fmt.Sprintf(format, args...)})
}

func (r *report) warnf(format string, args ...any) {
	r.findings = append(r.findings, finding{severityWarning, fmt.Sprintf(format, args...)})
}

func (r *report) print(w io.Writer, quiet bool) {
	if quiet {
		for _, f := range r.findings {
			if f.severity == severityError {
				fmt.Fprintf(w, "%s: %s\n", r.filename, f.message)
			}
		}
		return
	}

	status := "ok"
	if !r.valid() {
		status = "invalid"
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", r.filename, status, strings.Join(r.checks, ", "))
	for _, f := range r.findings {
		fmt.Fprintf(w, "  %s: %s\n", f.severity, f.message)
	}
}

// run checks the files named in args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var quiet, strict bool
	var files []string
	for _, arg := range args {
		switch {
		case arg == "-q":
			quiet = true
		case arg == "-s":
			strict = true
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(stderr, "bsdfcheck: unknown flag %s\n%s\n", arg, usage)
			return exitFailure
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, usage)
		return exitFailure
	}

	status := exitValid
	for _, name := range files {
		r, err := validateFile(name, strict)
		if err != nil {
			fmt.Fprintf(stderr, "bsdfcheck: %v\n", err)
			status = exitFailure
			continue
		}
		if quiet {
			r.print(stderr, true)
		} else {
			r.print(stdout, false)
		}
		if !r.valid() && status == exitValid {
			status = exitInvalid
		}
	}
	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrjoshuak/go-bsdf/bsdf"
	"github.com/mrjoshuak/go-bsdf/bsdfio"
)

func encode(t *testing.T, b *bsdf.Brdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bsdfio.WriteGrid(&buf, b, bsdfio.DefaultWriteOptions()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func constantBrdf(v float32) *bsdf.Brdf {
	b := bsdf.NewBrdf(bsdf.Spherical, 2, 1, 19, 37, bsdf.Monochromatic, 0)
	data := b.Samples().SpectraData()
	for i := range data {
		data[i] = v
	}
	return b
}

func hasFinding(r *report, s severity, substr string) bool {
	for _, f := range r.findings {
		if f.severity == s && strings.Contains(f.message, substr) {
			return true
		}
	}
	return false
}

func TestValidateData(t *testing.T) {
	nan := constantBrdf(0.1)
	nan.Samples().SpectraData()[5] = float32(math.NaN())

	unordered := constantBrdf(0.1)
	unordered.Samples().SetAngles(3, append(make([]float64, 36), 1))

	bright := constantBrdf(1)
	negative := constantBrdf(-0.1)

	tests := []struct {
		name      string
		data      []byte
		strict    bool
		valid     bool
		severity  severity
		substring string
	}{
		{"valid", encode(t, constantBrdf(0.1)), true, true, -1, ""},
		{"magic", []byte("gimp xcf file"), false, false, severityError, "magic number"},
		{"truncated", encode(t, constantBrdf(0.1))[:20], false, false, severityError, "failed to parse"},
		{"nan", encode(t, nan), false, false, severityError, "NaN"},
		{"unordered", encode(t, unordered), false, false, severityError, "not strictly ascending"},
		{"energy lenient", encode(t, bright), false, true, -1, ""},
		{"energy strict", encode(t, bright), true, true, severityWarning, "exceeds 1"},
		{"negative strict", encode(t, negative), true, true, severityWarning, "negative values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validateData(tt.name, tt.data, tt.strict)
			if r.valid() != tt.valid {
				t.Errorf("valid() = %v, want %v (findings %+v)", r.valid(), tt.valid, r.findings)
			}
			if tt.severity < 0 {
				if len(r.findings) != 0 {
					t.Errorf("unexpected findings: %+v", r.findings)
				}
				return
			}
			if !hasFinding(r, tt.severity, tt.substring) {
				t.Errorf("missing %v containing %q in %+v", tt.severity, tt.substring, r.findings)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.bsdg")
	if err := os.WriteFile(path, encode(t, constantBrdf(0.1)), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := validateFile(path, false)
	if err != nil {
		t.Fatalf("validateFile() error = %v", err)
	}
	if !r.valid() {
		t.Errorf("findings: %+v", r.findings)
	}

	if _, err := validateFile(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("missing file should return an error")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.bsdg")
	bad := filepath.Join(dir, "bad.bsdg")
	if err := os.WriteFile(good, encode(t, constantBrdf(0.1)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("not a grid"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		want   int
		stdout string
		stderr string
	}{
		{"valid", []string{good}, exitValid, "good.bsdg: ok", ""},
		{"invalid", []string{good, bad}, exitInvalid, "bad.bsdg: invalid", ""},
		{"quiet", []string{"-q", bad}, exitInvalid, "", "invalid magic number"},
		{"missing", []string{filepath.Join(dir, "missing"), bad}, exitFailure, "bad.bsdg: invalid", "bsdfcheck:"},
		{"no files", []string{"-s"}, exitFailure, "", "usage:"},
		{"unknown flag", []string{"-x", good}, exitFailure, "", "unknown flag -x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run() = %d, want %d\nstdout: %s\nstderr: %s", got, tt.want, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}

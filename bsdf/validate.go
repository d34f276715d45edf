package bsdf

import "fmt"

// Category is the part of a SampleSet a diagnostic refers to.
type Category string

// Validation categories.
const (
	CategorySpectra     Category = "spectra"
	CategoryAngle0      Category = "angle0"
	CategoryAngle1      Category = "angle1"
	CategoryAngle2      Category = "angle2"
	CategoryAngle3      Category = "angle3"
	CategoryWavelengths Category = "wavelengths"
)

var angleCategories = [NumAxes]Category{CategoryAngle0, CategoryAngle1, CategoryAngle2, CategoryAngle3}

// Diagnostic is one finding of Validate.
type Diagnostic struct {
	Category Category
	Valid    bool
	Message  string
}

// ValidationReport is the result of Validate.
type ValidationReport struct {
	Valid       bool
	Diagnostics []Diagnostic
}

// Invalid returns the diagnostics that report a problem.
func (r *ValidationReport) Invalid() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Valid {
			out = append(out, d)
		}
	}
	return out
}

// CategoryValid reports whether no problem was found in category c.
func (r *ValidationReport) CategoryValid(c Category) bool {
	for _, d := range r.Diagnostics {
		if d.Category == c && !d.Valid {
			return false
		}
	}
	return true
}

func (r *ValidationReport) add(c Category, valid bool, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Category: c, Valid: valid, Message: msg})
	if valid {
		logger.Infof("%s", msg)
	} else {
		r.Valid = false
		logger.Warningf("%s", msg)
	}
}

// Validate checks that every spectrum value, angle and wavelength is
// finite. It never modifies the SampleSet. Each problem is reported in
// the returned report and logged; the caller decides whether to proceed.
func (ss *SampleSet) Validate() *ValidationReport {
	r := &ValidationReport{Valid: true}

	spectraValid := true
	n := ss.NumSamples()
	n1, n2, n3 := len(ss.angles[1]), len(ss.angles[2]), len(ss.angles[3])
	for index := 0; index < n; index++ {
		sp := ss.spectrumAt(index)
		if sp.IsFinite() {
			continue
		}
		spectraValid = false

		i3 := index % n3
		i2 := (index / n3) % n2
		i1 := (index / (n3 * n2)) % n1
		i0 := index / (n3 * n2 * n1)
		kind := "+/-Inf"
		if sp.HasNaN() {
			kind = "NaN"
		}
		r.add(CategorySpectra, false, "spectrum contains %s values at (%d, %d, %d, %d)", kind, i0, i1, i2, i3)
	}
	if spectraValid {
		r.add(CategorySpectra, true, "spectra are valid")
	} else {
		r.add(CategorySpectra, false, "invalid spectra found")
	}

	for axis, c := range angleCategories {
		if allFinite(ss.angles[axis]) {
			r.add(c, true, "%s values are valid", c)
		} else {
			r.add(c, false, "invalid %s value found", c)
		}
	}

	wlValid := true
	for _, wl := range ss.wavelengths {
		if !isFinite(float64(wl)) {
			wlValid = false
			break
		}
	}
	if wlValid {
		r.add(CategoryWavelengths, true, "wavelengths are valid")
	} else {
		r.add(CategoryWavelengths, false, "invalid wavelength found")
	}

	return r
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/sensorview/internal/common"
)

func inRange(p *float64, lo, hi float64) bool {
	return p == nil || (!math.IsNaN(*p) && *p >= lo && *p <= hi)
}

// Validate checks a single detection's documented bounds.
func (d LogicalDetection) Validate() error {
	var errs []error
	if !inRange(d.ExistenceProbability, 0, 1) {
		errs = append(errs, fmt.Errorf("existence_probability must be between 0 and 1, got %g", *d.ExistenceProbability))
	}
	if !inRange(d.PointTargetProbability, 0, 1) {
		errs = append(errs, fmt.Errorf("point_target_probability must be between 0 and 1, got %g", *d.PointTargetProbability))
	}
	if !inRange(d.Intensity, 0, 100) {
		errs = append(errs, fmt.Errorf("intensity must be between 0 and 100, got %g", *d.Intensity))
	}
	if !inRange(d.EchoPulseWidth, 0, math.Inf(1)) {
		errs = append(errs, fmt.Errorf("echo_pulse_width must be >= 0, got %g", *d.EchoPulseWidth))
	}
	rmse := []struct {
		name string
		v    *common.Vector3d
	}{{"position_rmse", d.PositionRMSE}, {"velocity_rmse", d.VelocityRMSE}}
	for _, r := range rmse {
		if r.v != nil && !r.v.NonNegative() {
			errs = append(errs, fmt.Errorf("%s must be >= 0 component-wise, got %+v", r.name, *r.v))
		}
	}
	if d.Classification != nil && !d.Classification.IsValid() {
		errs = append(errs, fmt.Errorf("classification must be a known value, got %s", *d.Classification))
	}
	return errors.Join(errs...)
}

// Validate checks every detection plus the valid-count invariant: when any
// entry is invalid the header must declare how many valid entries lead the
// list, the count must not exceed the list length, and no invalid entry may
// sit inside the declared prefix.
func (d *LogicalDetectionData) Validate() error {
	if d == nil {
		return nil
	}
	var errs []error
	for i, ld := range d.LogicalDetection {
		if err := ld.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("logical_detection[%d]: %w", i, err))
		}
	}

	var declared *uint32
	if d.Header != nil {
		declared = d.Header.NumberOfValidLogicalDetections
		if d.Header.DataQualifier != nil && !d.Header.DataQualifier.IsValid() {
			errs = append(errs, fmt.Errorf("header.data_qualifier must be a known value, got %s", *d.Header.DataQualifier))
		}
	}

	anyInvalid := false
	for _, ld := range d.LogicalDetection {
		if ld.IsInvalid() {
			anyInvalid = true
			break
		}
	}
	if anyInvalid && declared == nil {
		errs = append(errs, errors.New("header.number_of_valid_logical_detections must be populated when any detection is invalid"))
	}
	if declared != nil {
		n := int(*declared)
		if n > len(d.LogicalDetection) {
			errs = append(errs, fmt.Errorf("header.number_of_valid_logical_detections must be <= %d, got %d", len(d.LogicalDetection), n))
			n = len(d.LogicalDetection)
		}
		for i := 0; i < n; i++ {
			if d.LogicalDetection[i].IsInvalid() {
				errs = append(errs, fmt.Errorf("logical_detection[%d] is invalid but inside the declared valid prefix of %d", i, n))
			}
		}
	}
	return errors.Join(errs...)
}

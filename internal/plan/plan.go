package plan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/skylimit/internal/profile"
	"github.com/roach88/skylimit/internal/radiometry"
)

// Load reads and parses a plan YAML file. A relative profile path is
// resolved against the directory of the plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if p.Profile != "" && !filepath.IsAbs(p.Profile) {
		p.Profile = filepath.Join(filepath.Dir(path), p.Profile)
	}
	return p, nil
}

// Parse decodes plan YAML. Unknown fields are rejected so that typos such as
// "exp-time" fail loudly instead of silently using zero.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validatePlan(&p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

// LoadProfile returns the plan's profile, or fallback when the plan does not
// name one.
func (p *Plan) LoadProfile(fallback *radiometry.Profile) (*radiometry.Profile, error) {
	if p.Profile == "" {
		return fallback, nil
	}
	prof, err := profile.Load(p.Profile)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.Name, err)
	}
	return prof, nil
}

// validatePlan checks required fields. Numeric ranges are left to the
// radiometry package so they surface as step outcomes.
func validatePlan(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range p.Steps {
		switch step.count() {
		case 0:
			return fmt.Errorf("steps[%d]: one of snr, exptime or limit is required", i)
		case 1:
		default:
			return fmt.Errorf("steps[%d]: only one of snr, exptime or limit may be set", i)
		}

		var band string
		switch {
		case step.SNR != nil:
			band = step.SNR.Band
		case step.ExpTime != nil:
			band = step.ExpTime.Band
		case step.Limit != nil:
			band = step.Limit.Band
		}
		if band == "" {
			return fmt.Errorf("steps[%d].%s: band is required", i, step.Kind())
		}

		if e := step.Expect; e != nil {
			if e.Error != "" && (e.Min != nil || e.Max != nil) {
				return fmt.Errorf("steps[%d].expect: error cannot be combined with min/max", i)
			}
			if e.Min != nil && e.Max != nil && *e.Min > *e.Max {
				return fmt.Errorf("steps[%d].expect: min %g exceeds max %g", i, *e.Min, *e.Max)
			}
		}
	}
	return nil
}

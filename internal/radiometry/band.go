package radiometry

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Band holds the calibration constants of one photometric band.
type Band struct {
	// Name is the band identifier, e.g. "g" or "r".
	Name string `json:"name"`

	// SkyMu is the sky surface brightness in AB mag/arcsec².
	SkyMu float64 `json:"sky_mu"`

	// Gamma0 is the photon rate in photons/s/pixel at 0 AB mag/arcsec².
	Gamma0 float64 `json:"gamma0"`

	// Efficiency is the fractional throughput of optics and detector, in (0, 1].
	Efficiency float64 `json:"efficiency"`
}

// Instrument holds the detector constants shared by every band.
type Instrument struct {
	Name        string  `json:"name"`
	DarkCurrent float64 `json:"dark_current"` // e/pixel/s
	ReadNoise   float64 `json:"read_noise"`   // e/pixel/read
}

// Profile is an immutable instrument description: detector constants plus a
// band table. Construct with NewProfile or DefaultProfile.
type Profile struct {
	instrument Instrument
	bands      map[string]Band
}

// Default constants: Gunn g and r bands on an SBIG STD-8300M.
const (
	DefaultDarkCurrent = 0.04 // e/pixel/s
	DefaultReadNoise   = 10.0 // e/pixel/read
)

var defaultProfile = mustProfile(
	Instrument{Name: "SBIG STD-8300M", DarkCurrent: DefaultDarkCurrent, ReadNoise: DefaultReadNoise},
	Band{Name: "g", SkyMu: 22.0, Gamma0: 1.79e9, Efficiency: 0.34},
	Band{Name: "r", SkyMu: 21.0, Gamma0: 1.16e9, Efficiency: 0.35},
)

// DefaultProfile returns the built-in profile with the g and r bands.
func DefaultProfile() *Profile {
	return defaultProfile
}

// NewProfile validates the instrument and bands and returns a Profile.
// Band names are normalized with NormalizeBand; duplicates are rejected.
func NewProfile(inst Instrument, bands ...Band) (*Profile, error) {
	if !isFinite(inst.DarkCurrent) || inst.DarkCurrent < 0 {
		return nil, invalidInput("dark_current", inst.DarkCurrent, "finite and >= 0")
	}
	if !isFinite(inst.ReadNoise) || inst.ReadNoise < 0 {
		return nil, invalidInput("read_noise", inst.ReadNoise, "finite and >= 0")
	}
	if len(bands) == 0 {
		return nil, &Error{Code: ErrCodeInvalidInput, Message: "profile must define at least one band"}
	}

	p := &Profile{
		instrument: inst,
		bands:      make(map[string]Band, len(bands)),
	}
	for _, b := range bands {
		name := NormalizeBand(b.Name)
		if name == "" {
			return nil, invalidInput("band name", b.Name, "non-empty")
		}
		if _, dup := p.bands[name]; dup {
			return nil, &Error{Code: ErrCodeInvalidInput, Message: "duplicate band", Band: name}
		}
		if !isFinite(b.SkyMu) {
			return nil, withBand(invalidInput("sky_mu", b.SkyMu, "finite"), name)
		}
		if !isFinite(b.Gamma0) || b.Gamma0 <= 0 {
			return nil, withBand(invalidInput("gamma0", b.Gamma0, "finite and > 0"), name)
		}
		if !isFinite(b.Efficiency) || b.Efficiency <= 0 || b.Efficiency > 1 {
			return nil, withBand(invalidInput("efficiency", b.Efficiency, "in (0, 1]"), name)
		}
		b.Name = name
		p.bands[name] = b
	}
	return p, nil
}

func mustProfile(inst Instrument, bands ...Band) *Profile {
	p, err := NewProfile(inst, bands...)
	if err != nil {
		panic(fmt.Sprintf("radiometry: invalid built-in profile: %v", err))
	}
	return p
}

// Instrument returns the detector constants.
func (p *Profile) Instrument() Instrument {
	return p.instrument
}

// Band looks up a band by identifier. The identifier is normalized first.
// Returns an UNKNOWN_BAND error if the band is not defined.
func (p *Profile) Band(name string) (Band, error) {
	b, ok := p.bands[NormalizeBand(name)]
	if !ok {
		return Band{}, NewUnknownBandError(name, p.BandNames())
	}
	return b, nil
}

// BandNames returns the defined band identifiers in sorted order.
func (p *Profile) BandNames() []string {
	names := make([]string, 0, len(p.bands))
	for name := range p.bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bands returns a copy of the band table, sorted by name.
func (p *Profile) Bands() []Band {
	names := p.BandNames()
	out := make([]Band, len(names))
	for i, name := range names {
		out[i] = p.bands[name]
	}
	return out
}

// NormalizeBand trims surrounding space and applies Unicode NFC so that
// composed and decomposed spellings of a band (e.g. "g′") match.
// Case is preserved: "r" and "R" are different photometric systems.
func NormalizeBand(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func withBand(e *Error, band string) *Error {
	e.Band = band
	return e
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

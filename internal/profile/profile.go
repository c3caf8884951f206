package profile

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/token"

	"github.com/roach88/skylimit/internal/radiometry"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for profile loading.
const (
	ErrCodeNotFound = "P001" // Profile file missing or unreadable
	ErrCodeCompile  = "P002" // CUE syntax or evaluation error
	ErrCodeSchema   = "P003" // Value does not satisfy #Profile
	ErrCodeDecode   = "P004" // Concrete value could not be decoded
	ErrCodeEmpty    = "P005" // No bands defined
)

// LoadError represents an error that occurred while loading a profile.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type document struct {
	Instrument instrumentDoc      `json:"instrument"`
	Bands      map[string]bandDoc `json:"bands"`
}

type instrumentDoc struct {
	Name        string  `json:"name,omitempty"`
	DarkCurrent float64 `json:"dark_current"`
	ReadNoise   float64 `json:"read_noise"`
}

type bandDoc struct {
	SkyMu      float64 `json:"sky_mu"`
	Gamma0     float64 `json:"gamma0"`
	Efficiency float64 `json:"efficiency"`
}

// Load reads and parses a profile file.
func Load(path string) (*radiometry.Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading profile: %v", err)}
	}
	return Parse(path, src)
}

// Parse compiles CUE source, validates it against #Profile and converts it to
// a radiometry.Profile. filename is used in error positions only.
func Parse(filename string, src []byte) (*radiometry.Profile, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling embedded schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Profile"))

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrCodeCompile, err)
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	var doc document
	if err := unified.Decode(&doc); err != nil {
		return nil, formatCUEError(ErrCodeDecode, err)
	}
	if len(doc.Bands) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "profile defines no bands", Pos: v.Pos()}
	}

	names := make([]string, 0, len(doc.Bands))
	for name := range doc.Bands {
		names = append(names, name)
	}
	sort.Strings(names)

	bands := make([]radiometry.Band, 0, len(names))
	for _, name := range names {
		b := doc.Bands[name]
		bands = append(bands, radiometry.Band{
			Name:       name,
			SkyMu:      b.SkyMu,
			Gamma0:     b.Gamma0,
			Efficiency: b.Efficiency,
		})
	}

	p, err := radiometry.NewProfile(radiometry.Instrument{
		Name:        doc.Instrument.Name,
		DarkCurrent: doc.Instrument.DarkCurrent,
		ReadNoise:   doc.Instrument.ReadNoise,
	}, bands...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Pos: v.Pos()}
	}
	return p, nil
}

// Format renders a profile as CUE source that Parse accepts.
func Format(p *radiometry.Profile) ([]byte, error) {
	inst := p.Instrument()
	doc := document{
		Instrument: instrumentDoc{
			Name:        inst.Name,
			DarkCurrent: inst.DarkCurrent,
			ReadNoise:   inst.ReadNoise,
		},
		Bands: make(map[string]bandDoc),
	}
	for _, b := range p.Bands() {
		doc.Bands[b.Name] = bandDoc{SkyMu: b.SkyMu, Gamma0: b.Gamma0, Efficiency: b.Efficiency}
	}

	v := cuecontext.New().Encode(doc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return format.Node(v.Syntax(cue.Concrete(true)))
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(code string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	// Return first error with position info
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}

// Package preset loads named engine configurations from YAML.
//
// A preset document is decoded with yaml.v3 and checked against an embedded
// CUE schema, which also fills in defaults for omitted fields.
package preset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-patgen/pattern"
)

var (
	//go:embed preset.cue
	schemaCUE string

	//go:embed builtin/*.yaml
	builtinFS embed.FS
)

var (
	// ErrInvalidPreset reports a document rejected by the schema.
	ErrInvalidPreset = errors.New("invalid preset")
	// ErrNotFound reports an unknown preset name.
	ErrNotFound = errors.New("preset not found")
)

// Preset is a validated preset document with defaults applied.
type Preset struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	BitWidth          int     `json:"bit_width"`
	Channels          int     `json:"channels"`
	Steps             int     `json:"steps"`
	SampleRateMHz     float64 `json:"sample_rate_mhz"`
	IOStandard        string  `json:"io_standard"`
	Mode              string  `json:"mode"`
	DutyCycle         float64 `json:"duty_cycle"`
	TargetFrequencyHz float64 `json:"target_frequency_hz"`
	Expression        string  `json:"expression"`
	Seed              *int64  `json:"seed,omitempty"`
}

// schema compiles the #Preset definition into a fresh context. cue values
// are not safe for concurrent use, so each Parse gets its own.
func schema() (cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaCUE, cue.Filename("preset.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile preset schema: %w", err)
	}
	return v.LookupPath(cue.ParsePath("#Preset")), nil
}

// Parse decodes and validates one YAML preset document.
func Parse(data []byte) (Preset, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Preset{}, fmt.Errorf("%w: empty document", ErrInvalidPreset)
		}
		return Preset{}, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	def, err := schema()
	if err != nil {
		return Preset{}, err
	}
	v := def.Unify(def.Context().Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Preset{}, fmt.Errorf("%w: %s", ErrInvalidPreset,
			strings.TrimSpace(cueerrors.Details(err, nil)))
	}

	var p Preset
	if err := v.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return p, nil
}

// Load reads a preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// LoadAll reads every *.yaml and *.yml file of fsys's root directory and
// returns the presets sorted by name. Duplicate names are an error.
func LoadAll(fsys fs.FS, dir string) ([]Preset, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var presets []Preset
	seen := map[string]string{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, pathJoin(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if prev, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("%w: %s: name %q already defined in %s",
				ErrInvalidPreset, entry.Name(), p.Name, prev)
		}
		seen[p.Name] = entry.Name()
		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

func pathJoin(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

// Builtin returns the presets shipped with the package.
func Builtin() ([]Preset, error) {
	return LoadAll(builtinFS, "builtin")
}

// Lookup finds a built-in preset by name.
func Lookup(name string) (Preset, error) {
	presets, err := Builtin()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Resolve treats ref as a file path when it names an existing file and as
// a built-in preset name otherwise.
func Resolve(ref string) (Preset, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return Load(ref)
	}
	return Lookup(ref)
}

// Options converts the preset to engine options.
func (p Preset) Options() ([]pattern.Option, error) {
	width, err := pattern.ParseBitWidth(fmt.Sprint(p.BitWidth))
	if err != nil {
		return nil, err
	}
	std, err := pattern.ParseIOStandard(p.IOStandard)
	if err != nil {
		return nil, err
	}
	mode, err := pattern.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	return []pattern.Option{
		pattern.WithBitWidth(width),
		pattern.WithShape(p.Channels, p.Steps),
		pattern.WithSampleRateMHz(p.SampleRateMHz),
		pattern.WithIOStandard(std),
		pattern.WithMode(mode),
		pattern.WithDutyCycle(p.DutyCycle),
		pattern.WithTargetFrequency(p.TargetFrequencyHz),
		pattern.WithExpression(p.Expression),
	}, nil
}

// Build creates an engine from the preset, followed by extra options.
// A Manual-mode preset with a seed starts out randomized.
func (p Preset) Build(extra ...pattern.Option) (*pattern.Engine, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	e, err := pattern.New(append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if p.Seed != nil && e.Config().Mode == pattern.ModeManual {
		e.Randomize(*p.Seed)
	}
	return e, nil
}

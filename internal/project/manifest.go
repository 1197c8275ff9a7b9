package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultSuffix replaces the input extension in generated file names.
const DefaultSuffix = ".g.rs"

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "// Code generated by traitgen. DO NOT EDIT."

// Manifest is a loaded traitgen.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the traitgen.toml layout.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
}

// GenerateConfig is the [generate] table.
type GenerateConfig struct {
	// Inputs are files or directories relative to the project root.
	Inputs []string `toml:"inputs"`
	// OutDir mirrors the input tree under this directory; empty writes
	// next to each input.
	OutDir string `toml:"out_dir"`
	Suffix string `toml:"suffix"`
	// Jobs bounds parallel expansion; 0 means GOMAXPROCS.
	Jobs   int    `toml:"jobs"`
	Header string `toml:"header"`
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir defaults to $XDG_CACHE_HOME/traitgen.
	Dir string `toml:"dir"`
}

// DefaultConfig is what `traitgen init` writes and what a missing manifest
// behaves like.
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Inputs: []string{"."},
			Suffix: DefaultSuffix,
			Header: DefaultHeader,
		},
		Cache: CacheConfig{Enabled: false},
	}
}

// Load finds traitgen.toml above startDir and decodes it. ok is false when
// there is no manifest.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes the manifest at path, filling unset keys from
// DefaultConfig.
func LoadFile(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", abs, undecoded[0])
	}
	if !meta.IsDefined("cache", "enabled") && meta.IsDefined("cache", "dir") {
		// указали каталог, значит кеш нужен
		cfg.Cache.Enabled = true
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func (c *Config) validate() error {
	g := &c.Generate
	if len(g.Inputs) == 0 {
		return errors.New("[generate].inputs must not be empty")
	}
	for _, in := range g.Inputs {
		if strings.TrimSpace(in) == "" {
			return errors.New("[generate].inputs contains an empty path")
		}
	}
	if g.Jobs < 0 {
		return fmt.Errorf("[generate].jobs must be >= 0, got %d", g.Jobs)
	}
	if g.Suffix == "" {
		g.Suffix = DefaultSuffix
	}
	if !strings.HasPrefix(g.Suffix, ".") {
		return fmt.Errorf("[generate].suffix must start with '.', got %q", g.Suffix)
	}
	return nil
}

// InputPaths returns the configured inputs as absolute paths.
func (m *Manifest) InputPaths() []string {
	out := make([]string, 0, len(m.Config.Generate.Inputs))
	for _, in := range m.Config.Generate.Inputs {
		out = append(out, m.abs(in))
	}
	return out
}

// Jobs returns the effective worker count.
func (m *Manifest) Jobs() int {
	if m == nil || m.Config.Generate.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return m.Config.Generate.Jobs
}

// CacheDir returns the absolute cache directory, or "" for the default
// location.
func (m *Manifest) CacheDir() string {
	if m.Config.Cache.Dir == "" {
		return ""
	}
	return m.abs(m.Config.Cache.Dir)
}

// OutputPath maps an input file to the file its expansion is written to.
func (m *Manifest) OutputPath(input string) string {
	return OutputPath(input, m.Root, m.abs(m.Config.Generate.OutDir), m.Config.Generate.Suffix)
}

func (m *Manifest) abs(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}

// OutputPath replaces the extension of input with suffix. When outDir is not
// empty the path of input relative to root is recreated under outDir; inputs
// outside root keep only their base name.
func OutputPath(input, root, outDir, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	name := strings.TrimSuffix(input, filepath.Ext(input)) + suffix
	if outDir == "" || outDir == root {
		return name
	}
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}

// DefaultManifest renders the manifest written by Init.
func DefaultManifest() string {
	cfg := DefaultConfig()
	return fmt.Sprintf(`# traitgen project manifest

[generate]
# files or directories with .ta / .rs sources, relative to this file
inputs = [%q]
# out_dir = "gen"
suffix = %q
jobs = 0
header = %q

[cache]
enabled = %t
# dir = ".traitgen-cache"
`, cfg.Generate.Inputs[0], cfg.Generate.Suffix, cfg.Generate.Header, cfg.Cache.Enabled)
}

// Init writes a default manifest into dir, creating dir if needed. It refuses
// to overwrite an existing manifest.
func Init(dir string) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}

	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	}
	if err := os.WriteFile(path, []byte(DefaultManifest()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

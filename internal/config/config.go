// internal/config/config.go
//
// This package handles configuration and the .routecipher directory.
// The directory is optional: without it every setting falls back to the
// defaults below, which reproduce the classic cipher (filler X, clockwise).

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/routecipher/internal/cipher"
)

const (
	// StateDirName is the directory created in the project root
	StateDirName = ".routecipher"

	// HomeEnv overrides the state directory location when set
	HomeEnv = "ROUTECIPHER_HOME"

	defaultLogbookPath = "logs/journey.log"
)

const defaultProjectConfigYAML = `# routecipher configuration
version: 1

cipher:
  # Letter used to pad the grid when the message runs out. Must be A-Z.
  filler: X
  # Default spiral direction: c (clockwise) or cc (counter-clockwise).
  direction: c

logbook:
  enabled: true
  # Relative paths are resolved against the .routecipher directory.
  path: logs/journey.log
`

// CipherConfig holds the cipher defaults.
type CipherConfig struct {
	Filler    string `yaml:"filler"`
	Direction string `yaml:"direction"`
}

// LogbookConfig controls the activity log.
type LogbookConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Path    string `yaml:"path"`
}

// ProjectConfig models .routecipher/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Cipher  CipherConfig  `yaml:"cipher"`
	Logbook LogbookConfig `yaml:"logbook"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory routecipher was started from
	ProjectDir string

	// StateDir is ProjectDir/.routecipher unless ROUTECIPHER_HOME is set
	StateDir string

	Project ProjectConfig
}

// InitDir creates the state directory and writes a default config.yaml if
// none exists yet. The TUI calls this on start-up.
//
// Structure created:
// .routecipher/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	stateDir := resolveStateDir(projectDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig creates a Config populated with the project settings, or the
// defaults when no config file exists.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   resolveStateDir(projectDir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// LogbookPath returns the absolute path of the activity log. Relative
// paths are resolved against StateDir.
func (c *Config) LogbookPath() string {
	return resolvePath(c.StateDir, c.Project.Logbook.Path)
}

// LogbookEnabled reports whether encryption runs should be logged.
func (c *Config) LogbookEnabled() bool {
	enabled := c.Project.Logbook.Enabled
	return enabled == nil || *enabled
}

// Filler returns the padding letter.
func (c *Config) Filler() byte {
	return c.Project.Cipher.Filler[0]
}

// Direction returns the default spiral direction.
func (c *Config) Direction() cipher.Direction {
	// validate has already accepted the token
	dir, _ := cipher.ParseDirection(c.Project.Cipher.Direction)
	return dir
}

// Clone returns an independent copy that can be handed to another
// goroutine.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if enabled := c.Project.Logbook.Enabled; enabled != nil {
		v := *enabled
		clone.Project.Logbook.Enabled = &v
	}
	return &clone
}

// UseFiller changes the padding letter in memory only.
func (c *Config) UseFiller(filler byte) {
	c.Project.Cipher.Filler = string(filler)
}

// UseDirection changes the default direction in memory only.
func (c *Config) UseDirection(dir cipher.Direction) {
	c.Project.Cipher.Direction = dir.Token()
}

// SetDefaultDirection persists the default direction to config.yaml and
// then applies it in memory. On error the receiver is left unchanged.
func (c *Config) SetDefaultDirection(token string) error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	dir, err := cipher.ParseDirection(token)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	next := c.Project
	next.Cipher.Direction = dir.Token()
	if err := next.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.saveDirection(dir.Token()); err != nil {
		return err
	}
	c.Project = next
	return nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize()
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Cipher: CipherConfig{
			Filler:    string(cipher.Filler),
			Direction: cipher.Clockwise.Token(),
		},
		Logbook: LogbookConfig{
			Path: defaultLogbookPath,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if strings.TrimSpace(pc.Cipher.Filler) == "" {
		pc.Cipher.Filler = defaults.Cipher.Filler
	}
	if strings.TrimSpace(pc.Cipher.Direction) == "" {
		pc.Cipher.Direction = defaults.Cipher.Direction
	}
	if strings.TrimSpace(pc.Logbook.Path) == "" {
		pc.Logbook.Path = defaults.Logbook.Path
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Cipher.Filler = strings.ToUpper(strings.TrimSpace(pc.Cipher.Filler))
	pc.Cipher.Direction = strings.TrimSpace(pc.Cipher.Direction)
	pc.Logbook.Path = strings.TrimSpace(pc.Logbook.Path)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if _, err := cipher.ParseFiller(pc.Cipher.Filler); err != nil {
		return fmt.Errorf("cipher.filler: %w", err)
	}
	if _, err := cipher.ParseDirection(pc.Cipher.Direction); err != nil {
		return fmt.Errorf("cipher.direction: %w", err)
	}
	if pc.Logbook.Path == "" {
		return fmt.Errorf("logbook.path is required")
	}
	return nil
}

func resolveStateDir(projectDir string) string {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		return filepath.Clean(home)
	}
	return filepath.Join(projectDir, StateDirName)
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default config: %w", err)
	}
	return nil
}

// saveDirection rewrites cipher.direction in config.yaml. The file is edited
// as a yaml.Node tree so comments and the other values survive untouched.
func (c *Config) saveDirection(token string) error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(defaultProjectConfigYAML)
	} else if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := setScalar(&doc, token, "cipher", "direction"); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}

	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

// setScalar sets the value at keys inside doc, creating missing mappings.
func setScalar(doc *yaml.Node, value string, keys ...string) error {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"})
		}
		node = node.Content[0]
	} else if node.Kind == 0 {
		*node = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}

	for i, k := range keys {
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			// "cipher:" with nothing under it
			*node = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		if node.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(keys[:i], "."))
		}
		var child *yaml.Node
		for j := 0; j+1 < len(node.Content); j += 2 {
			if node.Content[j].Value == k {
				child = node.Content[j+1]
				break
			}
		}
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		node = child
	}

	node.Kind = yaml.ScalarNode
	node.Tag = "!!str"
	node.Value = value
	node.Content = nil
	return nil
}

package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/sr"
)

// ErrUnknownFormat is returned for scene files that are neither TOML nor
// YAML.
var ErrUnknownFormat = errors.New("scene: unknown format")

// Format is a scene file encoding.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Load reads, defaults and validates a scene file.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	c, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	sr.Logger().Debug("scene: loaded", "path", path, "models", len(c.Models))
	return c, nil
}

// Decode parses data, fills unset fields with defaults and validates the
// result. A scene without models gets the default cube.
func Decode(data []byte, format Format) (*Config, error) {
	var c Config
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, &c)
	case YAML:
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if len(c.Models) == 0 {
		c.Models = Default().Models
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes c in the given format.
func Encode(c *Config, format Format) ([]byte, error) {
	switch format {
	case TOML:
		return toml.Marshal(c)
	case YAML:
		return yaml.Marshal(c)
	default:
		return nil, ErrUnknownFormat
	}
}

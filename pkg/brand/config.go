// config.go — Load brand overrides from a YAML file.
package brand

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds per-brand overrides keyed by brand name. Brands themselves are
// a closed set: the file can restyle them but not add new ones.
type Config struct {
	Brands map[string]Override `yaml:"brands"`
}

// Override replaces parts of a built-in brand. Empty fields keep the default.
type Override struct {
	BoldFont    string `yaml:"bold_font"`
	MediumFont  string `yaml:"medium_font"`
	Logo        string `yaml:"logo"`
	TextColor   string `yaml:"text_color"`
	MaskColor   string `yaml:"mask_color"`
	LogoWidth   int    `yaml:"logo_width"`
	Avatar      *bool  `yaml:"avatar"`       // false hides the avatar
	SplitAuthor *bool  `yaml:"split_author"` // first name and surname on separate lines
}

// LoadConfig reads and validates a brand override file. Relative asset paths
// are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brands config: %w", err)
	}

	cfg, err := ParseConfig(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML overrides, resolving relative paths against baseDir.
func ParseConfig(data []byte, baseDir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse brands config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid brands config: %w", err)
	}

	resolveAssetPaths(&cfg, baseDir)
	return &cfg, nil
}

// Validate rejects unknown brands, malformed colours and negative sizes.
func (c *Config) Validate() error {
	for name, ov := range c.Brands {
		if !Known(name) {
			return fmt.Errorf("%w %q", ErrUnknownBrand, name)
		}
		if ov.TextColor != "" {
			if _, err := ParseColor(ov.TextColor); err != nil {
				return fmt.Errorf("brands.%s.text_color: %w", name, err)
			}
		}
		if ov.MaskColor != "" {
			if _, err := ParseColor(ov.MaskColor); err != nil {
				return fmt.Errorf("brands.%s.mask_color: %w", name, err)
			}
		}
		if ov.LogoWidth < 0 {
			return fmt.Errorf("brands.%s.logo_width must not be negative", name)
		}
	}
	return nil
}

// resolveAssetPaths makes all relative asset paths absolute using baseDir.
func resolveAssetPaths(cfg *Config, baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	for name, ov := range cfg.Brands {
		ov.BoldFont = resolve(ov.BoldFont)
		ov.MediumFont = resolve(ov.MediumFont)
		ov.Logo = resolve(ov.Logo)
		cfg.Brands[name] = ov
	}
}

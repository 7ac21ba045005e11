package wdfsdk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFileName is the standard manifest filename in a driver package.
const ManifestFileName = "driver.toml"

// Manifest is the driver.toml package description: who the driver is and
// which framework builds it can run against. Tooling and the host read it;
// the dispatcher itself never does.
type Manifest struct {
	Driver    DriverInfo           `toml:"driver"`
	Framework FrameworkRequirement `toml:"framework"`
	Meta      map[string]string    `toml:"meta"`

	// Dir is the directory containing the driver.toml file (set at load time).
	Dir string `toml:"-"`
}

// DriverInfo contains driver package identity.
type DriverInfo struct {
	ID      string `toml:"id"`   // "com.vendor.product"
	Name    string `toml:"name"` // display name
	Version string `toml:"version"`
}

// FrameworkRequirement declares the framework build range the driver was
// built and tested against, as "major.minor" strings.
type FrameworkRequirement struct {
	MinVersion string `toml:"min-version"`
	MaxVersion string `toml:"max-version"` // optional; empty = no upper bound
}

// LoadManifest parses a driver.toml file from the given directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Driver.ID == "" {
		return nil, fmt.Errorf("%s: driver.id is required", path)
	}

	return &m, nil
}

// CheckFramework verifies the loaded function table satisfies the manifest's
// framework version range.
func (m *Manifest) CheckFramework(t *FuncTable) error {
	if t == nil {
		return fmt.Errorf("no function table loaded")
	}
	loaded := t.Version()

	if m.Framework.MinVersion != "" {
		min, err := ParseFrameworkVersion(m.Framework.MinVersion)
		if err != nil {
			return fmt.Errorf("manifest min-version: %w", err)
		}
		if !loaded.AtLeast(min) {
			return fmt.Errorf("framework %s is older than required %s", loaded, min)
		}
	}
	if m.Framework.MaxVersion != "" {
		max, err := ParseFrameworkVersion(m.Framework.MaxVersion)
		if err != nil {
			return fmt.Errorf("manifest max-version: %w", err)
		}
		if !max.AtLeast(loaded) {
			return fmt.Errorf("framework %s is newer than supported %s", loaded, max)
		}
	}
	return nil
}

// ParseFrameworkVersion parses a "major.minor" version string.
func ParseFrameworkVersion(s string) (FrameworkVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 {
		return FrameworkVersion{}, fmt.Errorf("invalid framework version %q", s)
	}
	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return FrameworkVersion{}, fmt.Errorf("invalid framework version %q", s)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return FrameworkVersion{}, fmt.Errorf("invalid framework version %q", s)
	}
	return FrameworkVersion{Major: uint32(major), Minor: uint32(minor)}, nil
}

// Package catalog describes the bodies shown in the scene.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for a catalog without bodies.
var ErrEmpty = errors.New("catalog has no bodies")

// earthRadiusKM is the unit of Entry.Size in the built-in catalog.
const earthRadiusKM = 6371.0

// Orbit holds moon orbit parameters. They are stored for a revolving
// orbit; moons are currently placed at a fixed offset.
type Orbit struct {
	Radius float64 `yaml:"radius"`
	Theta  float64 `yaml:"theta"`
	Phi    float64 `yaml:"phi"`
}

// MoonEntry describes a moon attached to a planet.
type MoonEntry struct {
	Name     string  `yaml:"name"`
	Size     float64 `yaml:"size"`
	Distance float64 `yaml:"distance"` // Gap between parent and moon surfaces
	Texture  string  `yaml:"texture"`
	Orbit    Orbit   `yaml:"orbit"`
}

// Entry describes one planet.
type Entry struct {
	Name    string      `yaml:"name"`
	Size    float64     `yaml:"size"` // Radius relative to Earth
	Texture string      `yaml:"texture"`
	Moons   []MoonEntry `yaml:"moons,omitempty"`
}

// File is the on-disk catalog layout.
type File struct {
	Bodies []Entry `yaml:"bodies"`
}

// Default returns the eight planets of the solar system in order from the Sun.
func Default() []Entry {
	planet := func(name string, radiusKM float64, texture string) Entry {
		return Entry{
			Name:    name,
			Size:    radiusKM / earthRadiusKM,
			Texture: "assets/" + texture,
		}
	}
	return []Entry{
		planet("mercury", 2440, "2k_mercury.jpg"),
		planet("venus", 6052, "2k_venus_surface.jpg"),
		planet("earth", 6371, "2k_earth_daymap.jpg"),
		planet("mars", 3390, "2k_mars.jpg"),
		planet("jupiter", 69911, "2k_jupiter.jpg"),
		planet("saturn", 58232, "2k_saturn.jpg"),
		planet("uranus", 25362, "2k_uranus.jpg"),
		planet("neptune", 24622, "2k_neptune.jpg"),
	}
}

// Parse decodes a YAML catalog.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Bodies) == 0 {
		return nil, ErrEmpty
	}
	for i, e := range f.Bodies {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog body %d: missing name", i)
		}
	}
	return f.Bodies, nil
}

// Load reads a YAML catalog file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Save writes entries as a YAML catalog file.
func Save(path string, entries []Entry) error {
	data, err := yaml.Marshal(File{Bodies: entries})
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// Count returns the number of bodies including moons.
func Count(entries []Entry) int {
	n := len(entries)
	for _, e := range entries {
		n += len(e.Moons)
	}
	return n
}

package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/mlvaren/tonic/internal/modules/engine/application/ports"
	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// fileSettings is the on-disk YAML shape. Frequencies are written alongside
// the gains so the file is self-describing when edited by hand.
type fileSettings struct {
	Equalizer struct {
		Frequencies []float64 `yaml:"frequencies"`
		Gains       []float64 `yaml:"gains"`
	} `yaml:"equalizer"`
	Compressor domain.CompressorSettings `yaml:"compressor"`
	Spatial    domain.SpatialSettings    `yaml:"spatial"`
}

// Store persists graph settings as a YAML file. A missing file loads as
// defaults; saves go through a temp file and rename.
type Store struct {
	path string
}

var _ ports.SettingsStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: path}
}

func defaults() ports.GraphSettings {
	return ports.GraphSettings{
		Compressor: domain.DefaultCompressor(),
		Spatial:    domain.SpatialSettings{Enabled: false, RolloffFactor: 1},
	}
}

func (s *Store) Load() (ports.GraphSettings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return defaults(), nil
	}
	if err != nil {
		return ports.GraphSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var file fileSettings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ports.GraphSettings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}

	settings := defaults()
	for i := 0; i < domain.NumBands && i < len(file.Equalizer.Gains); i++ {
		settings.Gains[i] = domain.ClampGain(file.Equalizer.Gains[i])
	}
	settings.Compressor = file.Compressor.Clamped()
	settings.Spatial = file.Spatial.Clamped()
	return settings, nil
}

func (s *Store) Save(settings ports.GraphSettings) error {
	var file fileSettings
	file.Equalizer.Frequencies = append([]float64(nil), domain.BandFrequencies[:]...)
	file.Equalizer.Gains = append([]float64(nil), settings.Gains[:]...)
	file.Compressor = settings.Compressor
	file.Spatial = settings.Spatial

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// Watch reloads the file on external edits and hands the result to onChange.
// The returned stop function tears the watcher down.
func (s *Store) Watch(onChange func(ports.GraphSettings)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory: editors and our own atomic save replace the
	// file, which would invalidate a watch on the path itself.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				settings, err := s.Load()
				if err != nil {
					slog.Warn("failed to reload settings", "path", s.path, "error", err)
					continue
				}
				onChange(settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("settings watcher error", "error", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

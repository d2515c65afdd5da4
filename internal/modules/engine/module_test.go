package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlvaren/tonic/internal/app"
)

func newTestModule(t *testing.T) *EngineModule {
	t.Helper()
	t.Setenv("TONIC_SETTINGS_PATH", filepath.Join(t.TempDir(), "audio.yaml"))
	t.Setenv("TONIC_AUDIO_BACKEND", "none")

	m := &EngineModule{}
	if err := m.LoadConfig(); err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if err := m.Init(app.ModuleDependencies{}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return m
}

func TestModule_SavesParameterChanges(t *testing.T) {
	m := newTestModule(t)
	defer m.Shutdown()

	m.graph.SetBandGain(0, 6)

	deadline := time.After(3 * time.Second)
	for {
		if _, err := os.Stat(m.config.SettingsPath); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("settings file was not written after a parameter change")
		case <-time.After(10 * time.Millisecond):
		}
	}

	loaded, err := m.store.Load()
	if err != nil {
		t.Fatalf("load saved settings failed: %v", err)
	}
	if loaded.Gains[0] != 6 {
		t.Errorf("saved band 0 gain = %v, want 6", loaded.Gains[0])
	}
}

func TestModule_ChangeAfterSaverStoppedIsHarmless(t *testing.T) {
	m := newTestModule(t)

	m.stopSaver()

	// The subscriber is still registered: a request draining out of the
	// HTTP server can fire a change notification this late. It must be
	// dropped, not panic the process.
	m.graph.SetBandGain(1, -3)

	if m.stopWatcher != nil {
		m.stopWatcher()
	}
	m.unsubscribe()
	m.graph.Teardown()
}

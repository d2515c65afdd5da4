package usecases

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

func TestInitialize_NoBackend(t *testing.T) {
	g := NewGraphService(nil)

	err := g.Initialize(context.Background(), &fakeSource{id: "track-1"})
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestInitialize_NilSource(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	if err := g.Initialize(context.Background(), nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)
	src := &fakeSource{id: "track-1"}

	if err := g.Initialize(context.Background(), src); err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	if err := g.Initialize(context.Background(), src); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}

	if got := len(backend.builtChains()); got != 1 {
		t.Errorf("expected 1 chain built for repeated source, got %d", got)
	}
}

func TestInitialize_NewSourceRebuilds(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)

	if err := g.Initialize(context.Background(), &fakeSource{id: "track-1"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := g.Initialize(context.Background(), &fakeSource{id: "track-2"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	chains := backend.builtChains()
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if chains[0].closeCount() != 1 {
		t.Error("previous chain was not released")
	}
	if chains[1].closeCount() != 0 {
		t.Error("active chain should not be closed")
	}
}

func TestInitialize_AppliesCurrentState(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)
	g.SetBandGain(0, 6)
	g.SetSpeed(1.5)
	g.SetPitchLocked(true)

	if err := g.Initialize(context.Background(), &fakeSource{id: "track-1"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	chain := backend.builtChains()[0]
	if chain.gains[0] != 6 {
		t.Errorf("band 0 gain = %v, want 6", chain.gains[0])
	}
	if chain.rate != 1.5 {
		t.Errorf("rate = %v, want 1.5", chain.rate)
	}
}

func TestTeardown_SafeBeforeInitializeAndRepeatable(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	g.Teardown()
	g.Teardown()

	if g.Initialized() {
		t.Error("graph reported initialized after teardown")
	}
}

func TestTeardown_ReleasesChain(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)

	if err := g.Initialize(context.Background(), &fakeSource{id: "track-1"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	g.Teardown()
	g.Teardown()

	if got := backend.builtChains()[0].closeCount(); got != 1 {
		t.Errorf("chain closed %d times, want 1", got)
	}
	if g.Initialized() {
		t.Error("graph still initialized after teardown")
	}
}

func TestTeardown_WinsAgainstInFlightInitialize(t *testing.T) {
	backend := newFakeBackend()
	backend.blockBuild = true
	g := NewGraphService(backend)

	done := make(chan error, 1)
	go func() {
		done <- g.Initialize(context.Background(), &fakeSource{id: "track-1"})
	}()

	<-backend.building
	g.Teardown()
	close(backend.release)

	if err := <-done; !errors.Is(err, ErrTornDown) {
		t.Fatalf("expected ErrTornDown, got %v", err)
	}
	if g.Initialized() {
		t.Error("graph initialized even though teardown won")
	}
	if got := backend.builtChains()[0].closeCount(); got != 1 {
		t.Errorf("orphaned chain closed %d times, want 1", got)
	}
}

func TestInitialize_ConcurrentSourcesReleaseLoser(t *testing.T) {
	backend := newFakeBackend()
	backend.blockBuild = true
	g := NewGraphService(backend)

	done := make(chan error, 2)
	for _, id := range []string{"track-1", "track-2"} {
		go func(id string) {
			done <- g.Initialize(context.Background(), &fakeSource{id: id})
		}(id)
	}

	// Both calls must be inside BuildChain before either may finish, so
	// both saw no installed chain.
	<-backend.building
	<-backend.building
	close(backend.release)

	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("initialize failed: %v", err)
		}
	}

	chains := backend.builtChains()
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if got := chains[0].closeCount() + chains[1].closeCount(); got != 1 {
		t.Errorf("displaced chain releases = %d, want 1", got)
	}

	g.Teardown()
	if got := chains[0].closeCount() + chains[1].closeCount(); got != 2 {
		t.Errorf("total releases after teardown = %d, want 2", got)
	}
}

func TestInitialize_BuildFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.buildErr = errors.New("device busy")
	g := NewGraphService(backend)

	err := g.Initialize(context.Background(), &fakeSource{id: "track-1"})
	if err == nil {
		t.Fatal("expected build error")
	}
	if g.Initialized() {
		t.Error("graph reported initialized after failed build")
	}
}

func TestSetBandGain_ClampsAndForwards(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)
	if err := g.Initialize(context.Background(), &fakeSource{id: "track-1"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	g.SetBandGain(3, 99)
	g.SetBandGain(4, -99)

	gains := g.BandGains()
	if gains[3] != domain.MaxGainDB {
		t.Errorf("band 3 = %v, want %v", gains[3], domain.MaxGainDB)
	}
	if gains[4] != domain.MinGainDB {
		t.Errorf("band 4 = %v, want %v", gains[4], domain.MinGainDB)
	}

	chain := backend.builtChains()[0]
	if chain.gains != gains {
		t.Error("chain gains out of sync with service state")
	}
	for _, ramp := range chain.ramps {
		if ramp < 0 {
			t.Error("negative ramp duration")
		}
	}
}

func TestSetBandGain_InvalidIndexIgnored(t *testing.T) {
	g := NewGraphService(newFakeBackend())
	before := g.BandGains()

	g.SetBandGain(-1, 6)
	g.SetBandGain(domain.NumBands, 6)

	if g.BandGains() != before {
		t.Error("invalid band index mutated gains")
	}
}

func TestApplyPreset_RoundTrip(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	if err := g.ApplyPreset("rock"); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	want := [domain.NumBands]float64{5, 4, 3, 1, -1, -1, 0, 2, 4, 5}
	if got := g.BandGains(); got != want {
		t.Errorf("BandGains() = %v, want %v", got, want)
	}
}

func TestApplyPreset_Unknown(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	if err := g.ApplyPreset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestConfigureCompressor_Clamps(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	g.ConfigureCompressor(domain.CompressorSettings{
		ThresholdDB: 10, KneeDB: -5, Ratio: 50, AttackSec: 2, ReleaseSec: -1,
	})

	got := g.Compressor()
	want := domain.CompressorSettings{ThresholdDB: 0, KneeDB: 0, Ratio: 20, AttackSec: 1, ReleaseSec: 0}
	if got != want {
		t.Errorf("Compressor() = %+v, want %+v", got, want)
	}
}

func TestConfigureSpatial(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	g.ConfigureSpatial(true, -2)

	got := g.Spatial()
	if !got.Enabled || got.RolloffFactor != 0 {
		t.Errorf("Spatial() = %+v, want enabled with rolloff 0", got)
	}
}

func TestEffectiveRate_PitchLockScenarios(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	g.SetPitchLocked(true)
	g.SetSpeed(1.5)
	if got := g.EffectiveRate(); got != 1.5 {
		t.Errorf("locked EffectiveRate() = %v, want 1.5", got)
	}

	g.SetPitchLocked(false)
	g.SetSpeed(1.0)
	g.SetPitchShift(12)
	if got := g.EffectiveRate(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("unlocked EffectiveRate() = %v, want 2.0", got)
	}
}

func TestSetMasterVolume_Clamps(t *testing.T) {
	backend := newFakeBackend()
	g := NewGraphService(backend)
	if err := g.Initialize(context.Background(), &fakeSource{id: "track-1"}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	g.SetMasterVolume(3, -1)
	if got := g.MasterVolume(); got != 1 {
		t.Errorf("MasterVolume() = %v, want 1", got)
	}
	g.SetMasterVolume(-0.5, 0.2)
	if got := g.MasterVolume(); got != 0 {
		t.Errorf("MasterVolume() = %v, want 0", got)
	}
}

func TestAnalysisSnapshot_RequiresChain(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	if _, err := g.AnalysisSnapshot(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestSubscribe(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	var changes []domain.Change
	unsubscribe := g.Subscribe(func(c domain.Change) {
		changes = append(changes, c)
	})

	g.SetBandGain(2, 4)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Kind != domain.ChangeEqualizer || changes[0].Band != 2 {
		t.Errorf("unexpected change %+v", changes[0])
	}

	unsubscribe()
	unsubscribe() // must be safe to call twice
	g.SetSpeed(1.2)
	if len(changes) != 1 {
		t.Error("subscriber fired after unsubscribe")
	}
}

func TestApplySettings(t *testing.T) {
	g := NewGraphService(newFakeBackend())

	settings := g.Settings()
	settings.Gains[0] = 99 // will be clamped on apply
	settings.Compressor.Ratio = 50
	settings.Spatial.Enabled = true
	g.ApplySettings(settings)

	if got := g.BandGains()[0]; got != domain.MaxGainDB {
		t.Errorf("gain restored as %v, want %v", got, domain.MaxGainDB)
	}
	if got := g.Compressor().Ratio; got != 20 {
		t.Errorf("ratio restored as %v, want 20", got)
	}
	if !g.Spatial().Enabled {
		t.Error("spatial flag lost on restore")
	}
}

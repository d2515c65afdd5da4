package engine

// Backend selection values for TONIC_AUDIO_BACKEND.
const (
	BackendNative   = "native"
	BackendLavalink = "lavalink"
	BackendNone     = "none"
)

// Config holds the engine module configuration.
type Config struct {
	SettingsPath string `env:"TONIC_SETTINGS_PATH" envDefault:"audio.yaml"`
	Backend      string `env:"TONIC_AUDIO_BACKEND" envDefault:"native"`
	SampleRate   int    `env:"TONIC_SAMPLE_RATE"   envDefault:"44100"`

	// Required only when Backend is "lavalink".
	LavalinkAddress  string `env:"LAVALINK_ADDRESS"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE"   envDefault:"false"`
	LavalinkUserID   string `env:"LAVALINK_USER_ID"  envDefault:"1"`
	LavalinkPlayerID string `env:"LAVALINK_PLAYER_ID" envDefault:"1"`
}

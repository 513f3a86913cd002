// Package config resolves, parses, validates, and defaults voxboard configuration.
package config

// Config is the fully materialized runtime configuration used by voxboard.
type Config struct {
	ASR       ASRConfig
	Audio     AudioConfig
	Store     StoreConfig
	HTTP      HTTPConfig
	Indicator IndicatorConfig
	Debug     DebugConfig
}

// ASRConfig selects and configures the speech-to-text backend.
type ASRConfig struct {
	Backend   string
	BaseURL   string
	APIKey    string
	Model     string
	TimeoutMS int
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// StoreConfig controls where the widget snapshot is persisted.
// An empty Path resolves to the state directory at startup.
type StoreConfig struct {
	Path string
}

// HTTPConfig controls the dashboard API server.
type HTTPConfig struct {
	Enable bool
	Listen string
}

// IndicatorConfig controls desktop notifications and audio cue behavior.
type IndicatorConfig struct {
	Enable            bool
	DesktopAppName    string
	SoundEnable       bool
	SoundStartFile    string
	SoundStopFile     string
	SoundCompleteFile string
	SoundCancelFile   string
	PlayCmd           CommandConfig
	ErrorTimeoutMS    int
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// DebugConfig controls optional debug artifact output.
type DebugConfig struct {
	EnableAudioDump bool
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

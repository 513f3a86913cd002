package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		ASR: ASRConfig{
			Backend:   "openai",
			BaseURL:   "http://127.0.0.1:8000/v1",
			Model:     "whisper-1",
			TimeoutMS: 20000,
		},
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Store: StoreConfig{Path: ""},
		HTTP: HTTPConfig{
			Enable: true,
			Listen: "127.0.0.1:8090",
		},
		Indicator: IndicatorConfig{
			Enable:         true,
			DesktopAppName: "voxboard",
			SoundEnable:    true,
			ErrorTimeoutMS: 1600,
		},
		Debug: DebugConfig{},
	}
}

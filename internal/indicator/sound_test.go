package indicator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voxboard/voxboard/internal/config"
)

func TestCueSamplesPresent(t *testing.T) {
	require.NotEmpty(t, cueSamples(cueStart))
	require.NotEmpty(t, cueSamples(cueStop))
	require.NotEmpty(t, cueSamples(cueComplete))
	require.NotEmpty(t, cueSamples(cueCancel))
}

func TestCuePathSelectsConfiguredFile(t *testing.T) {
	cfg := config.Default().Indicator
	cfg.SoundStartFile = "/tmp/start.wav"
	cfg.SoundCancelFile = "~/cues/cancel.wav"

	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, "/tmp/start.wav", cuePath(cueStart, cfg))
	require.Equal(t, filepath.Join(home, "cues", "cancel.wav"), cuePath(cueCancel, cfg))
	require.Empty(t, cuePath(cueStop, cfg))
}

func TestPlayCueFileUsesConfiguredPlayer(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "player-args.log")
	t.Setenv("PLAYER_ARGS_FILE", argsFile)

	dir := t.TempDir()
	player := filepath.Join(dir, "myplayer")
	script := "#!/usr/bin/env bash\nprintf '%s\\n' \"$*\" >> \"${PLAYER_ARGS_FILE}\"\n"
	require.NoError(t, os.WriteFile(player, []byte(script), 0o755))

	cue := filepath.Join(dir, "cue.wav")
	require.NoError(t, os.WriteFile(cue, []byte("RIFF"), 0o644))

	playCmd := config.CommandConfig{Raw: player + " --loud", Argv: []string{player, "--loud"}}
	require.NoError(t, playCueFile(cue, playCmd))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, "--loud "+cue+"\n", string(data))
}

func TestPlayCueFileMissingFile(t *testing.T) {
	err := playCueFile(filepath.Join(t.TempDir(), "absent.wav"), config.CommandConfig{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat cue file")
}

func TestSynthesizeToneDuration(t *testing.T) {
	got := synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0.2})
	want := samplesForDuration(100 * time.Millisecond)
	require.Len(t, got, want)
}

func TestSynthesizeToneInvalidSpecReturnsEmpty(t *testing.T) {
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 0, duration: 100 * time.Millisecond, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 0, volume: 0.2}))
	require.Empty(t, synthesizeTone(toneSpec{frequencyHz: 440, duration: 100 * time.Millisecond, volume: 0}))
}

func TestSamplesForDuration(t *testing.T) {
	require.Equal(t, 0, samplesForDuration(0))
	require.Greater(t, samplesForDuration(25*time.Millisecond), 0)
}

func TestExpandUserPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, "", expandUserPath("  "))
	require.Equal(t, home, expandUserPath("~"))
	require.Equal(t, filepath.Join(home, "a.wav"), expandUserPath("~/a.wav"))
	require.Equal(t, "/abs/a.wav", expandUserPath("/abs/a.wav"))
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithConfig(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/voxboard.conf", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/voxboard.conf", parsed.ConfigPath)
	require.False(t, parsed.ShowHelp)
}

func TestParseSayCollectsTrailingText(t *testing.T) {
	parsed, err := Parse([]string{"say", "set", "an", "alarm", "for", "8", "pm"})
	require.NoError(t, err)
	require.Equal(t, CommandSay, parsed.Command)
	require.Equal(t, "set an alarm for 8 pm", parsed.Text)
	require.False(t, parsed.ShowHelp)
}

func TestParseSayWithConfigAndQuotedText(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/cfg", "say", "remind me to call mom at 5 pm"})
	require.NoError(t, err)
	require.Equal(t, CommandSay, parsed.Command)
	require.Equal(t, "/tmp/cfg", parsed.ConfigPath)
	require.Equal(t, "remind me to call mom at 5 pm", parsed.Text)
}

func TestParseSayWithoutTextFails(t *testing.T) {
	_, err := Parse([]string{"say"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "say requires command text")

	_, err = Parse([]string{"say", "   "})
	require.Error(t, err)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
		wantPath string
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "help long flag",
			args:     []string{"--help"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "version flag",
			args:     []string{"--version"},
			wantCmd:  CommandVersion,
			wantHelp: false,
		},
		{
			name:    "config after command",
			args:    []string{"status", "--config", "/tmp/cfg"},
			wantErr: "unexpected arguments after command",
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a path",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:    "extra args after command",
			args:    []string{"doctor", "extra"},
			wantErr: "unexpected arguments",
		},
		{
			name:     "valid cancel command",
			args:     []string{"cancel"},
			wantCmd:  CommandCancel,
			wantHelp: false,
		},
		{
			name:     "valid confirm command",
			args:     []string{"confirm"},
			wantCmd:  CommandConfirm,
			wantHelp: false,
		},
		{
			name:     "valid reject command",
			args:     []string{"reject"},
			wantCmd:  CommandReject,
			wantHelp: false,
		},
		{
			name:     "valid widgets command",
			args:     []string{"widgets"},
			wantCmd:  CommandWidgets,
			wantHelp: false,
		},
		{
			name:     "valid serve command",
			args:     []string{"serve"},
			wantCmd:  CommandServe,
			wantHelp: false,
		},
		{
			name:     "valid stop with config",
			args:     []string{"--config", "/tmp/cfg", "stop"},
			wantCmd:  CommandStop,
			wantHelp: false,
			wantPath: "/tmp/cfg",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			require.Equal(t, tc.wantPath, parsed.ConfigPath)
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("voxboard")
	require.Contains(t, text, "toggle")
	require.Contains(t, text, "confirm")
	require.Contains(t, text, "reject")
	require.Contains(t, text, "say TEXT")
	require.Contains(t, text, "widgets")
	require.Contains(t, text, "serve")
	require.Contains(t, text, "doctor")
	require.Contains(t, text, "--config PATH")
}

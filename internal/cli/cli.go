package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandToggle  Command = "toggle"
	CommandStop    Command = "stop"
	CommandCancel  Command = "cancel"
	CommandConfirm Command = "confirm"
	CommandReject  Command = "reject"
	CommandSay     Command = "say"
	CommandStatus  Command = "status"
	CommandWidgets Command = "widgets"
	CommandServe   Command = "serve"
	CommandDevices Command = "devices"
	CommandDoctor  Command = "doctor"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandToggle:  {},
	CommandStop:    {},
	CommandCancel:  {},
	CommandConfirm: {},
	CommandReject:  {},
	CommandSay:     {},
	CommandStatus:  {},
	CommandWidgets: {},
	CommandServe:   {},
	CommandDevices: {},
	CommandDoctor:  {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Text       string
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp

			if cmd == CommandSay {
				text := strings.TrimSpace(strings.Join(args[i+1:], " "))
				if text == "" {
					return Parsed{}, errors.New("say requires command text")
				}
				parsed.Text = text
				return parsed, nil
			}

			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] <command>

Commands:
  toggle    Start recording or stage the transcript when already recording
  stop      Stop active recording and stage transcript for confirmation
  confirm   Apply the staged transcript to the dashboard
  reject    Discard the staged transcript
  cancel    Cancel active recording or staged transcript
  say TEXT  Run a typed command through the dashboard pipeline
  status    Print current state and staged transcript
  widgets   Print the widget dashboard snapshot
  serve     Run the dashboard HTTP API server
  devices   List available input devices
  doctor    Run configuration and environment checks
  version   Print version information
  help      Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/voxboard/config.conf)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}

package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/soap4/internal/domain"
)

var errNoPlayer = errors.New("no candidate players found")

// Launcher hands stream URLs to an external player
type Launcher struct {
	command   string   // configured player command, empty for auto-detect
	args      []string // additional arguments for the player
	titleFlag string   // window title flag prefix, e.g. "--force-media-title="
	logger    *slog.Logger

	// start runs a player without waiting for it; lookPath checks the PATH
	start    func(name string, args ...string) error
	lookPath func(name string) (string, error)
}

// playerConfig describes a known player
type playerConfig struct {
	titleFlag string              // "" when the player takes no title
	platforms map[string][]string // platform -> commands to try in order
}

var players = map[string]playerConfig{
	"mpv": {
		titleFlag: "--force-media-title=",
		platforms: map[string][]string{
			"darwin":  {"mpv"},
			"linux":   {"mpv"},
			"windows": {"mpv"},
		},
	},
	"vlc": {
		titleFlag: "--meta-title=",
		platforms: map[string][]string{
			"darwin":  {"vlc"},
			"linux":   {"vlc"},
			"windows": {"vlc"},
		},
	},
	"celluloid": {
		platforms: map[string][]string{
			"linux": {"celluloid"},
		},
	},
	"iina": {
		titleFlag: "--mpv-force-media-title=",
		platforms: map[string][]string{
			"darwin": {"iina"},
		},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a launcher for command, or for the first installed
// candidate when command is empty.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:   command,
		args:      args,
		titleFlag: playerTitleFlag(command),
		logger:    logger,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		lookPath: exec.LookPath,
	}
}

// playerTitleFlag looks up the title flag for a known player command
func playerTitleFlag(command string) string {
	if command == "" {
		return ""
	}
	base := strings.ToLower(filepath.Base(command))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return players[base].titleFlag
}

// Launch plays desc in the configured player, a detected one, or the
// system default handler, in that order.
func (l *Launcher) Launch(desc *domain.PlaybackDescriptor) error {
	if desc == nil || desc.URL == "" {
		return errors.New("nothing to play")
	}

	if l.command != "" {
		args := l.playerArgs(l.titleFlag, desc)
		l.logger.Info("launching player", "command", l.command, "eid", desc.EID, "quality", desc.Quality)
		return l.start(l.command, args...)
	}

	if name, err := l.detectAndLaunch(desc); err == nil {
		l.logger.Info("launched with detected player", "player", name, "eid", desc.EID)
		return nil
	}

	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(desc.URL)
}

func (l *Launcher) playerArgs(titleFlag string, desc *domain.PlaybackDescriptor) []string {
	args := append([]string{}, l.args...)
	if titleFlag != "" && desc.Title != "" {
		args = append(args, titleFlag+desc.Title)
	}
	return append(args, desc.URL)
}

// detectAndLaunch tries candidate players in order and returns the one started
func (l *Launcher) detectAndLaunch(desc *domain.PlaybackDescriptor) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		player := players[name]
		for _, command := range player.platforms[runtime.GOOS] {
			if _, err := l.lookPath(command); err != nil {
				l.logger.Debug("player not installed", "player", name, "command", command)
				continue
			}
			if err := l.start(command, l.playerArgs(player.titleFlag, desc)...); err != nil {
				l.logger.Debug("player failed to start", "player", name, "error", err)
				continue
			}
			return name, nil
		}
	}
	return "", errNoPlayer
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = l.start("open", url)
	case "windows":
		err = l.start("cmd", "/c", "start", "", url)
	default:
		err = l.start("xdg-open", url)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", runtime.GOOS, err)
	}
	return nil
}

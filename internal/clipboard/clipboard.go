// Package clipboard copies text to the system clipboard through the
// platform's command-line tools.
package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable means no clipboard tool was found.
var ErrUnavailable = errors.New("no clipboard tool available")

type tool struct {
	name string
	args []string
}

// candidates lists the tools to try for goos, most preferred first.
func candidates(goos string, wayland bool) []tool {
	switch goos {
	case "darwin":
		return []tool{{"pbcopy", nil}}
	case "windows":
		return []tool{{"cmd", []string{"/c", "clip"}}}
	default:
		tools := []tool{
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
		if wayland {
			tools = append([]tool{{"wl-copy", nil}}, tools...)
		}
		return tools
	}
}

func find() (tool, bool) {
	wayland := os.Getenv("WAYLAND_DISPLAY") != ""
	for _, t := range candidates(runtime.GOOS, wayland) {
		if _, err := exec.LookPath(t.name); err == nil {
			return t, true
		}
	}
	return tool{}, false
}

// Write copies text to the system clipboard.
func Write(text string) error {
	t, ok := find()
	if !ok {
		return ErrUnavailable
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available reports whether Write can work on this system.
func Available() bool {
	_, ok := find()
	return ok
}

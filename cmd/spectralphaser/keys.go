package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/cwbudde/algo-phaser/dsp/control"
)

// playback is a running audio output.
type playback interface {
	Close() error
}

const keyHelp = "keys: p phasy, 1-8 toggle layer, q quit"

// handleKey applies one key press to params. It returns a status line, or
// quit=true for q and Ctrl-C.
func handleKey(params *control.Params, b byte) (status string, quit bool) {
	switch {
	case b == 'q' || b == 3:
		return "", true
	case b == 'p':
		return fmt.Sprintf("phasy %s", onOff(params.TogglePhasy())), false
	case b >= '1' && b <= '8':
		i := int(b - '1')

		on, err := params.ToggleEnable(i)
		if err != nil {
			return err.Error(), false
		}

		return fmt.Sprintf("layer %d %s", i, onOff(on)), false
	default:
		return "", false
	}
}

// watchKeys puts the terminal into raw mode and forwards key presses to
// params until q is pressed. The returned channel is closed on quit. When
// stdin is not a terminal it returns a nil channel and a no-op restore.
func watchKeys(params *control.Params, out io.Writer) (<-chan struct{}, func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, func() {}, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("set raw mode: %w", err)
	}

	restore := func() { _ = term.Restore(fd, oldState) }
	quit := make(chan struct{})

	go func() {
		defer close(quit)

		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				return
			}

			status, q := handleKey(params, buf[0])
			if q {
				return
			}

			if status != "" {
				// Raw mode needs an explicit carriage return.
				fmt.Fprintf(out, "%s\r\n", status)
			}
		}
	}()

	return quit, restore, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}

	return "off"
}

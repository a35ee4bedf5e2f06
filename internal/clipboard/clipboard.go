// Package clipboard places clip content on the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ErrUnavailable reports that no clipboard backend accepted the text.
var ErrUnavailable = errors.New("clipboard unavailable")

// Relay copies text to a clipboard. A nil error means the text was placed.
type Relay interface {
	Copy(ctx context.Context, text string) error
	Name() string
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// System uses the platform clipboard (pbcopy, xclip/xsel, wl-copy, Win32).
type System struct{}

func (System) Name() string { return "system" }

func (System) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("system: %w", ErrUnavailable)
	}
	if err := clipboard.WriteAll(normalize(text)); err != nil {
		return fmt.Errorf("system: %w: %v", ErrUnavailable, err)
	}
	return nil
}

// OSC52 asks the terminal emulator to set the clipboard. It works over SSH
// but the terminal may silently ignore it.
type OSC52 struct {
	Out io.Writer
}

func (OSC52) Name() string { return "osc52" }

func (o OSC52) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := o.Out
	if w == nil {
		w = os.Stderr
	}
	out := termenv.NewOutput(w)
	if f, ok := w.(*os.File); ok && !isTerminal(f) {
		return fmt.Errorf("osc52: %w: output is not a terminal", ErrUnavailable)
	}
	out.Copy(normalize(text))
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Chain tries each relay in order and stops at the first success.
type Chain []Relay

func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, r := range c {
		names = append(names, r.Name())
	}
	return strings.Join(names, "+")
}

func (c Chain) Copy(ctx context.Context, text string) error {
	var errs []error
	for _, r := range c {
		err := r.Copy(ctx, text)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return errors.Join(errs...)
}

// FromEnv picks a relay from SNIPMAN_CLIPBOARD ("system", "osc52", or empty
// for system with an OSC52 fallback).
func FromEnv(out io.Writer) Relay {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SNIPMAN_CLIPBOARD"))) {
	case "system":
		return System{}
	case "osc52":
		return OSC52{Out: out}
	default:
		return Chain{System{}, OSC52{Out: out}}
	}
}

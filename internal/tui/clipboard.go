package tui

import (
	"context"
	"errors"
	"time"

	"snipman/internal/clipboard"
	"snipman/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

const copyTimeout = 3 * time.Second

// copyClipCmd copies the clip content off the UI goroutine.
func copyClipCmd(relay clipboard.Relay, c model.Clip) tea.Cmd {
	return func() tea.Msg {
		if relay == nil {
			return copyDoneMsg{title: c.Title, err: clipboard.ErrUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		return copyDoneMsg{title: c.Title, err: relay.Copy(ctx, c.Content)}
	}
}

// waitSaveErr blocks until the autosaver reports a failed write.
func waitSaveErr(errs <-chan error) tea.Cmd {
	if errs == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return saveErrMsg{err: err}
	}
}

func copyErrorText(err error) string {
	if errors.Is(err, clipboard.ErrUnavailable) {
		return "Copy failed: clipboard unavailable"
	}
	return "Copy failed: " + err.Error()
}

package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// eventSource is the part of tcell.Screen the input goroutine uses
type eventSource interface {
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}

// handleEvent reacts to one terminal event; it returns false once the demo should stop
func handleEvent(ev tcell.Event, onResize func()) bool {
	switch ev := ev.(type) {
	case nil:
		// Screen finalized
		return false
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return false
			}
		}
	case *tcell.EventResize:
		onResize()
	}
	return true
}

// pollInput blocks on the screen until a quit key, screen shutdown or ctx cancellation
// A watcher posts an interrupt so PollEvent returns once ctx is done
func pollInput(ctx context.Context, src eventSource, onResize func()) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			src.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for ctx.Err() == nil {
		if !handleEvent(src.PollEvent(), onResize) {
			return
		}
	}
}

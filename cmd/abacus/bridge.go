package main

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/abacus/pkg/calculator"
)

// sender is the part of *tea.Program the bridge needs. Send may block until
// the program's event loop is free or the program has exited.
type sender interface {
	Send(msg tea.Msg)
}

// bridge forwards engine events to the program as engineEventMsg. The
// watcher goroutine owns nothing but its subscription; model state changes
// only inside Update.
type bridge struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func startBridge(ctx context.Context, p sender, events *calculator.EventBus) *bridge {
	ctx, cancel := context.WithCancel(ctx)
	sub := events.Subscribe(64)

	b := &bridge{cancel: cancel}

	b.wg.Go(func() {
		defer events.Unsubscribe(sub)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if ctx.Err() != nil {
					return
				}
				p.Send(engineEventMsg{event: ev})
			}
		}
	})

	return b
}

// stop signals the watcher to exit and returns immediately. It is safe to
// call from Update, where a watcher blocked in Send cannot make progress.
func (b *bridge) stop() {
	b.cancel()
}

// wait blocks until the watcher has exited and unsubscribed. Call it only
// once the program has stopped reading messages, after tea.Program.Run
// returns.
func (b *bridge) wait() {
	b.wg.Wait()
}

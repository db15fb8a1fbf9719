// Package bg implements wrapper for running client in background.
//
// TODO: Once https://github.com/gotd/contrib/pull/216 is merged can be removed.
package bg

import (
	"context"
	"errors"
)

// Client abstracts telegram client.
type Client interface {
	Run(ctx context.Context, f func(ctx context.Context) error) error
}

// StopFunc closes Client and waits until Run returns.
type StopFunc func() error

// Connect blocks until the client is connected, calling Run internally in
// background.  The returned StopFunc terminates the session.
func Connect(client Client) (StopFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	initDone := make(chan struct{})
	errC := make(chan error, 1)
	go func() {
		defer close(errC)
		errC <- client.Run(ctx, func(ctx context.Context) error {
			close(initDone)
			<-ctx.Done()
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		})
	}()

	select {
	case err := <-errC: // startup error
		cancel()
		return func() error { return nil }, err
	case <-initDone: // init done
	}

	stopFn := func() error {
		cancel()
		return <-errC
	}
	return stopFn, nil
}

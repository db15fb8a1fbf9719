package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

func (app *App) initConfirm(ctx context.Context) {
	app.pages.AddPage(stConfirming, app.view.mbConfirm, false, false)
	app.view.mbConfirm.
		AddButtons([]string{btnYes, btnNo}).
		SetDoneFunc(func(_ int, buttonLabel string) { app.handleConfirm(ctx, buttonLabel) }).
		SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			if event.Key() == tcell.KeyESC {
				app.cancel(ctx)
				return nil
			}
			return event
		})
}

func (app *App) handleConfirm(ctx context.Context, buttonLabel string) {
	switch buttonLabel {
	case btnYes:
		if !app.event(ctx, evConfirmed) {
			return
		}
		// async leave is needed so that the tvLog will keep updating.
		go app.runLeave(ctx)
	case btnNo:
		app.cancel(ctx)
	}
}

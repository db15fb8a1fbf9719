// Package tui implements the interactive dialog picker.
package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/looplab/fsm"
	"github.com/rivo/tview"
	"github.com/rusq/dlog"
	"github.com/rusq/osenv/v2"

	"github.com/rusq/leavemychat/internal/dlg"
	"github.com/rusq/leavemychat/internal/levin"
)

const (
	btnYes = "Yes"
	btnNo  = "No"
	btnOK  = "OK"
)

type App struct {
	tva *tview.Application
	tg  levin.Telegramer
	log *dlog.Logger
	fsm *fsm.FSM

	pages *tview.Pages
	view  views

	dialogs []dlg.Dialog
}

type views struct {
	main      *tview.Flex
	mbConfirm *tview.Modal
	mbNothing *tview.Modal
	fmSearch  *tview.Form

	lvDialogs *tview.List
	tvLog     *tview.TextView
}

func New(ctx context.Context, tg levin.Telegramer) *App {
	app := &App{
		tva: tview.NewApplication(),
		tg:  tg,

		pages: tview.NewPages(),
		view: views{
			main:      tview.NewFlex(),
			mbConfirm: tview.NewModal(),
			mbNothing: tview.NewModal(),
			fmSearch:  tview.NewForm(),

			lvDialogs: tview.NewList(),
			tvLog:     tview.NewTextView(),
		},
	}

	app.initMain(ctx)
	app.initFind(ctx)
	app.initConfirm(ctx)
	app.initNothing(ctx)

	app.tva.SetInputCapture(app.handleKeystrokes)

	app.log = dlog.New(app.view.tvLog, "", dlog.Flags(), osenv.Value("DEBUG", "") != "")

	// init finite state machine
	app.fsm = initFSM(app)

	return app
}

func (app *App) Run(ctx context.Context, dialogs []dlg.Dialog) error {
	app.populateDialogList(ctx, dialogs)

	if err := app.tva.SetRoot(app.pages, true).EnableMouse(false).Run(); err != nil {
		return err
	}
	return nil
}

// event fires the fsm event, logging the failed transition, if any.
func (app *App) event(ctx context.Context, name string, args ...any) bool {
	if err := app.fsm.Event(ctx, name, args...); err != nil {
		app.log.Debugf("event %q: %s", name, err)
		return false
	}
	return true
}

func (app *App) cancel(ctx context.Context) {
	app.event(ctx, evCancelled)
}

func (app *App) logf(format string, a ...any) {
	app.log.Printf(format, a...)
}

func (app *App) error(err error) {
	app.log.Printf("ERROR: %s", err)
}

func (app *App) handleKeystrokes(event *tcell.EventKey) *tcell.EventKey {
	if app.fsm.Current() == stLeaving {
		// we do not process keystrokes until leaving is finished.
		return event
	}

	switch event.Key() {
	case tcell.KeyCtrlQ, tcell.KeyF10:
		app.tva.Stop()
	default:
		return event
	}
	return nil
}

// modal centers p in an otherwise empty flex of the given dimensions.
func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

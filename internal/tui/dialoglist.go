package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rusq/leavemychat/internal/dlg"
)

const infoText = "Press [Ctrl+Q] or [F10] to quit, [Ctrl+F] or [/] to search dialogs"

func (app *App) initMain(_ context.Context) {
	app.view.lvDialogs.
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.Color190).
		SetSelectedTextColor(tcell.ColorBlack).
		SetMainTextColor(tcell.Color190).
		ShowSecondaryText(true).
		SetBorder(true).
		SetInputCapture(app.dialogInputCapture).
		SetTitle("[ Dialogs ]")

	app.view.tvLog.
		SetWordWrap(true).
		SetScrollable(true).
		SetChangedFunc(func() { app.tva.Draw() }).
		SetBorder(true).
		SetTitle("[ Information ]")

	// main is the main screen, split in two parts.
	workspace := tview.NewFlex().
		AddItem(app.view.lvDialogs, 0, 25, true).
		AddItem(app.view.tvLog, 0, 75, false)

	// The bottom row is the help message
	info := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorRed).
		SetText(infoText)

	mainScreen := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(workspace, 0, 1, true).
		AddItem(info, 1, 1, false)

	app.pages.AddPage(stSelecting, mainScreen, true, true)
}

func (app *App) populateDialogList(ctx context.Context, dialogs []dlg.Dialog) {
	app.dialogs = dialogs
	app.view.lvDialogs.Clear()
	for _, d := range dialogs {
		app.view.lvDialogs.AddItem(
			d.Title(),
			fmt.Sprintf("  %s (%d)", d.Kind(), d.ID()),
			0,
			func() { app.handleSelect(ctx) },
		)
	}
}

// handleSelect is called when the user hits enter on a dialog.
func (app *App) handleSelect(ctx context.Context) {
	idx := app.view.lvDialogs.GetCurrentItem()
	if idx < 0 || len(app.dialogs) <= idx {
		return
	}
	selected := app.dialogs[idx]

	app.fsm.SetMetadata(metaDialog, selected)
	app.view.mbConfirm.SetText(fmt.Sprintf(
		"Leave %q?  The conversation will be removed from your dialog list,\nbut will remain intact for the other participants.",
		selected.Title(),
	))
	app.event(ctx, evSelected)
}

// runLeave leaves the dialog stored in the FSM metadata.  It is run
// asynchronously so that tvLog keeps updating.
func (app *App) runLeave(ctx context.Context) {
	d, err := metadata[dlg.Dialog](app.fsm, metaDialog)
	if err != nil {
		app.error(fmt.Errorf("dialog missing: %w", err))
		app.event(ctx, evLeft)
		return
	}

	app.logf("Leaving %q, please wait . . .", d.Title())
	if err := app.tg.DeleteDialog(ctx, d); err != nil {
		app.error(err)
		app.event(ctx, evLeft)
		return
	}
	app.logf("Left %q", d.Title())

	app.removeDialog(ctx, d)
	app.event(ctx, evLeft)
	if len(app.dialogs) == 0 {
		app.event(ctx, evNothingToDo)
	}
}

// removeDialog removes the dialog from the app state and the list view.
func (app *App) removeDialog(ctx context.Context, d dlg.Dialog) {
	for i := range app.dialogs {
		if app.dialogs[i].ID() == d.ID() {
			app.dialogs = append(app.dialogs[:i], app.dialogs[i+1:]...)
			break
		}
	}
	app.tva.QueueUpdateDraw(func() {
		app.populateDialogList(ctx, app.dialogs)
	})
}

func (app *App) dialogInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlF:
		if !app.event(context.TODO(), evSearch) {
			return event
		}
	case tcell.KeyRune:
		switch event.Rune() {
		case '/':
			if !app.event(context.TODO(), evSearch) {
				return event
			}
		}
	}
	return event
}

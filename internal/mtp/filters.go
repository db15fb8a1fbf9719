package mtp

import "github.com/rusq/leavemychat/internal/dlg"

// FilterFunc decides whether the dialog is included in the result set.
type FilterFunc func(d dlg.Dialog) bool

// FilterAll includes every dialog.
func FilterAll() FilterFunc {
	return func(dlg.Dialog) bool { return true }
}

// FilterChats includes basic groups and supergroups.
func FilterChats() FilterFunc {
	return func(d dlg.Dialog) bool {
		if _, ok := d.Chat(); ok {
			return true
		}
		ch, ok := d.Channel()
		return ok && !ch.Broadcast
	}
}

// FilterChannels includes broadcast channels.
func FilterChannels() FilterFunc {
	return func(d dlg.Dialog) bool {
		ch, ok := d.Channel()
		return ok && ch.Broadcast
	}
}

// FilterUsers includes one to one conversations.
func FilterUsers() FilterFunc {
	return func(d dlg.Dialog) bool {
		_, ok := d.User()
		return ok
	}
}

// Filter returns the subset of dialogs for which fn returns true.
func Filter(dialogs []dlg.Dialog, fn FilterFunc) []dlg.Dialog {
	var out []dlg.Dialog
	for _, d := range dialogs {
		if fn(d) {
			out = append(out, d)
		}
	}
	return out
}

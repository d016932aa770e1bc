// Channel addressing
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package device

import "fmt"

// ChannelRef addresses one channel of a Device either by numeric index
// or by string label.
type ChannelRef struct {
	index   int
	label   string
	byLabel bool
}

// ByIndex addresses a channel by its numeric index.
func ByIndex(index int) ChannelRef {
	return ChannelRef{index: index}
}

// ByLabel addresses a channel by its assigned label.
func ByLabel(label string) ChannelRef {
	return ChannelRef{label: label, byLabel: true}
}

// String describes the reference for error messages.
func (r ChannelRef) String() string {
	if r.byLabel {
		return fmt.Sprintf("%q", r.label)
	}
	return fmt.Sprintf("%d", r.index)
}

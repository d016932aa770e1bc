// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := Protocolf("echo mismatch: wrote 0x%02x, read 0x%02x", 0xFF, 0xF7).
		SetChannel(1).
		SetRegister("TCON")

	msg := err.Error()
	for _, want := range []string{"[PROTOCOL]", "channel 1", "register TCON", "0xff", "0xf7"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		err  error
		pred func(error) bool
		want bool
	}{
		{Validationf("bad value"), IsValidation, true},
		{Validationf("bad value"), IsAddress, false},
		{Addressf("channel %q not found", "gate"), IsAddress, true},
		{Protocolf("nil response"), IsProtocol, true},
		{NoTransport(), IsConnection, true},
		{stderrors.New("plain"), IsValidation, false},
		{nil, IsProtocol, false},
	}
	for i, tc := range cases {
		if got := tc.pred(tc.err); got != tc.want {
			t.Errorf("case %d: got %v, want %v (err=%v)", i, got, tc.want, tc.err)
		}
	}
}

func TestWrappedPredicates(t *testing.T) {
	inner := Connectionf("port closed")
	outer := fmt.Errorf("transfer failed: %w", inner)
	if !IsConnection(outer) {
		t.Errorf("expected wrapped connection error to be detected")
	}

	wrapped := Wrap(stderrors.New("io timeout"), ErrConnection, "serial bridge")
	if !IsConnection(wrapped) {
		t.Errorf("expected Wrap to produce a connection error")
	}
	if wrapped.Unwrap() == nil {
		t.Errorf("expected Unwrap to return the inner error")
	}
}

func TestChannelDefaultsUnset(t *testing.T) {
	err := Validationf("nope")
	if err.Channel != -1 {
		t.Errorf("fresh error channel = %d, want -1", err.Channel)
	}
	if strings.Contains(err.Error(), "channel") {
		t.Errorf("unset channel leaked into message: %q", err.Error())
	}
}

// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestChatUI_Header_MachineMode(t *testing.T) {
	var buf bytes.Buffer
	ui := NewChatUIWithWriter(&buf, PersonalityMachine)

	ui.Header(HeaderConfig{SessionID: "sess-1", Server: "http://localhost:8000"})

	output := buf.String()
	if !strings.Contains(output, "CHAT_START:") {
		t.Errorf("machine header missing CHAT_START, got %q", output)
	}
	if !strings.Contains(output, "session=sess-1") {
		t.Errorf("machine header missing session id, got %q", output)
	}
	if !strings.Contains(output, "server=http://localhost:8000") {
		t.Errorf("machine header missing server, got %q", output)
	}
}

func TestChatUI_Header_StyledModeMentionsCommands(t *testing.T) {
	var buf bytes.Buffer
	ui := NewChatUIWithWriter(&buf, PersonalityFull)

	ui.Header(HeaderConfig{Server: "http://localhost:8000"})

	output := buf.String()
	if !strings.Contains(output, "/sources") {
		t.Error("header missing the /sources hint")
	}
	if !strings.Contains(output, "/graph") {
		t.Error("header missing the /graph hint")
	}
}

func TestChatUI_Response(t *testing.T) {
	var buf bytes.Buffer
	ui := NewChatUIWithWriter(&buf, PersonalityMachine)

	ui.Response("9 invoices.")

	if got := buf.String(); got != "RESPONSE: 9 invoices.\n" {
		t.Errorf("machine response = %q", got)
	}
}

func TestChatUI_Error(t *testing.T) {
	var buf bytes.Buffer
	ui := NewChatUIWithWriter(&buf, PersonalityMachine)

	ui.Error(errors.New("connection refused"))

	if !strings.Contains(buf.String(), "CHAT_ERROR: connection refused") {
		t.Errorf("machine error = %q", buf.String())
	}
}

func TestChatUI_SessionEnd(t *testing.T) {
	var buf bytes.Buffer
	ui := NewChatUIWithWriter(&buf, PersonalityMachine)

	ui.SessionEnd("sess-1", 4)

	output := buf.String()
	if !strings.Contains(output, "SESSION_END:") {
		t.Errorf("machine session end = %q", output)
	}
	if !strings.Contains(output, "messages=4") {
		t.Errorf("session end missing message count, got %q", output)
	}
}

func TestChatUI_Prompt(t *testing.T) {
	var buf bytes.Buffer
	machine := NewChatUIWithWriter(&buf, PersonalityMachine)
	if got := machine.Prompt(); got != "> " {
		t.Errorf("machine prompt = %q, want plain", got)
	}

	styled := NewChatUIWithWriter(&buf, PersonalityFull)
	if !strings.Contains(styled.Prompt(), ">") {
		t.Errorf("styled prompt = %q, want to contain >", styled.Prompt())
	}
}

func TestChatUI_Thinking(t *testing.T) {
	var buf bytes.Buffer
	machine := NewChatUIWithWriter(&buf, PersonalityMachine)
	if got := machine.Thinking(); got != "THINKING" {
		t.Errorf("machine thinking = %q", got)
	}

	styled := NewChatUIWithWriter(&buf, PersonalityStandard)
	if styled.Thinking() == "" {
		t.Error("styled thinking line is empty")
	}
}

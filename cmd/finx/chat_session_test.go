// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/financex/finx/pkg/ux"
)

// =============================================================================
// Mock Implementations
// =============================================================================

// mockChatService implements ChatService for testing.
//
// Allows configuring responses and tracking calls for verification.
type mockChatService struct {
	sendMessageFunc func(ctx context.Context, query string) (*ChatResult, error)
	sessionID       string
	closeErr        error
	closed          bool
	queriesSent     []string
}

func (m *mockChatService) SendMessage(ctx context.Context, query string) (*ChatResult, error) {
	m.queriesSent = append(m.queriesSent, query)
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, query)
	}
	return &ChatResult{
		Answer:    "Mock answer",
		SessionID: m.sessionID,
	}, nil
}

func (m *mockChatService) SessionID() string {
	return m.sessionID
}

func (m *mockChatService) Close() error {
	m.closed = true
	return m.closeErr
}

// =============================================================================
// SessionController Tests
// =============================================================================

func TestSessionController_SeedsGreeting(t *testing.T) {
	controller := NewSessionController(&mockChatService{})

	transcript := controller.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("new transcript has %d messages, want 1", len(transcript))
	}
	if transcript[0].Role != RoleAssistant {
		t.Errorf("greeting role = %q, want %q", transcript[0].Role, RoleAssistant)
	}
	if transcript[0].Text == "" {
		t.Error("greeting text is empty")
	}
	if controller.Pending() {
		t.Error("new controller reports pending")
	}
}

func TestSessionController_Send_AppendsExactlyTwoMessages(t *testing.T) {
	service := &mockChatService{
		sessionID: "sess-123",
		sendMessageFunc: func(ctx context.Context, query string) (*ChatResult, error) {
			return &ChatResult{Answer: "9 invoices.", SessionID: "sess-123"}, nil
		},
	}
	controller := NewSessionController(service)
	before := len(controller.Transcript())

	msg, err := controller.Send(context.Background(), "How many invoices are there?")
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}

	after := controller.Transcript()
	if len(after) != before+2 {
		t.Fatalf("transcript grew by %d messages, want 2", len(after)-before)
	}
	if after[before].Role != RoleUser || after[before].Text != "How many invoices are there?" {
		t.Errorf("user message = %+v, want the sent question", after[before])
	}
	if msg.Role != RoleAssistant || msg.Text != "9 invoices." {
		t.Errorf("assistant message = %+v, want '9 invoices.'", msg)
	}
	if controller.Pending() {
		t.Error("pending still true after completed send")
	}
	if controller.SentCount() != 1 {
		t.Errorf("SentCount() = %d, want 1", controller.SentCount())
	}
}

func TestSessionController_Send_BlankIsRejectedNoOp(t *testing.T) {
	controller := NewSessionController(&mockChatService{})
	before := len(controller.Transcript())

	for _, input := range []string{"", "   ", "\t\n"} {
		msg, err := controller.Send(context.Background(), input)
		if msg != nil {
			t.Errorf("Send(%q) returned a message, want nil", input)
		}
		if !errors.Is(err, ErrSendRejected) {
			t.Errorf("Send(%q) error = %v, want ErrSendRejected", input, err)
		}
	}

	if got := len(controller.Transcript()); got != before {
		t.Errorf("transcript grew to %d on rejected sends, want %d", got, before)
	}
	if controller.SentCount() != 0 {
		t.Errorf("SentCount() = %d after rejected sends, want 0", controller.SentCount())
	}
}

func TestSessionController_Send_WhilePendingIsRejected(t *testing.T) {
	var controller *SessionController
	var nestedErr error
	service := &mockChatService{}
	service.sendMessageFunc = func(ctx context.Context, query string) (*ChatResult, error) {
		// Re-entrant send while the first is still in flight.
		_, nestedErr = controller.Send(ctx, "second question")
		return &ChatResult{Answer: "first answer"}, nil
	}
	controller = NewSessionController(service)

	if _, err := controller.Send(context.Background(), "first question"); err != nil {
		t.Fatalf("outer Send() unexpected error: %v", err)
	}

	if !errors.Is(nestedErr, ErrSendRejected) {
		t.Errorf("nested Send() error = %v, want ErrSendRejected", nestedErr)
	}
	if len(service.queriesSent) != 1 {
		t.Errorf("service received %d queries, want 1", len(service.queriesSent))
	}
	// Greeting + user + assistant only; the rejected send left no trace.
	if got := len(controller.Transcript()); got != 3 {
		t.Errorf("transcript has %d messages, want 3", got)
	}
}

func TestSessionController_Send_FailureAppendsRemediation(t *testing.T) {
	wantErr := errors.New("chat endpoint returned 500: internal error")
	service := &mockChatService{
		sendMessageFunc: func(ctx context.Context, query string) (*ChatResult, error) {
			return nil, wantErr
		},
	}
	controller := NewSessionController(service)

	msg, err := controller.Send(context.Background(), "What changed last month?")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Send() error = %v, want the service failure", err)
	}
	if msg == nil {
		t.Fatal("Send() returned nil message on failure, want remediation notice")
	}

	if msg.Role != RoleAssistant {
		t.Errorf("failure message role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.Text != failureNotice {
		t.Errorf("failure message text = %q, want the fixed notice", msg.Text)
	}
	if !errors.Is(msg.Err, wantErr) {
		t.Errorf("failure message Err = %v, want the service failure", msg.Err)
	}
	// User message plus exactly one assistant message.
	if got := len(controller.Transcript()); got != 3 {
		t.Errorf("transcript has %d messages, want 3", got)
	}
	if controller.Pending() {
		t.Error("pending still true after failed send")
	}
}

func TestSessionController_Send_FailureIsTerminalPerRequest(t *testing.T) {
	calls := 0
	service := &mockChatService{
		sendMessageFunc: func(ctx context.Context, query string) (*ChatResult, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("connection refused")
			}
			return &ChatResult{Answer: "recovered"}, nil
		},
	}
	controller := NewSessionController(service)

	if _, err := controller.Send(context.Background(), "first"); err == nil {
		t.Fatal("first Send() succeeded, want failure")
	}

	// No automatic retry happened.
	if calls != 1 {
		t.Fatalf("service called %d times after one send, want 1", calls)
	}

	msg, err := controller.Send(context.Background(), "second")
	if err != nil {
		t.Fatalf("second Send() unexpected error: %v", err)
	}
	if msg.Text != "recovered" {
		t.Errorf("second answer = %q, want %q", msg.Text, "recovered")
	}
}

func TestSessionController_Send_CarriesSourcesAndGraphRef(t *testing.T) {
	sources := []ux.ProvenanceTriple{
		{Source: "INV-V2-M02-828264", Relationship: "issued_by", Target: "Vendor 2"},
		{Source: "TX-V2-M02-176206", Relationship: "matches", Target: "INV-V2-M02-828264"},
	}
	service := &mockChatService{
		sendMessageFunc: func(ctx context.Context, query string) (*ChatResult, error) {
			return &ChatResult{
				Answer:   "Vendor 2 issued it.",
				Sources:  sources,
				GraphRef: "/graph/session/abc",
			}, nil
		},
	}
	controller := NewSessionController(service)

	msg, err := controller.Send(context.Background(), "Who issued invoice 828264?")
	if err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if len(msg.Sources) != 2 {
		t.Fatalf("assistant message has %d sources, want 2", len(msg.Sources))
	}
	if msg.GraphRef != "/graph/session/abc" {
		t.Errorf("GraphRef = %q, want %q", msg.GraphRef, "/graph/session/abc")
	}

	last := controller.LastAssistant()
	if last == nil || last.Text != "Vendor 2 issued it." {
		t.Errorf("LastAssistant() = %+v, want the latest answer", last)
	}
}

func TestSessionController_Send_TrimsInput(t *testing.T) {
	service := &mockChatService{}
	controller := NewSessionController(service)

	if _, err := controller.Send(context.Background(), "  padded question  "); err != nil {
		t.Fatalf("Send() unexpected error: %v", err)
	}
	if got := service.queriesSent[0]; got != "padded question" {
		t.Errorf("service received %q, want trimmed input", got)
	}
	if got := controller.Transcript()[1].Text; got != "padded question" {
		t.Errorf("transcript user text = %q, want trimmed input", got)
	}
}

func TestSessionController_TranscriptIsAppendOnly(t *testing.T) {
	service := &mockChatService{}
	controller := NewSessionController(service)

	var order []string
	for _, q := range []string{"one", "two", "three"} {
		if _, err := controller.Send(context.Background(), q); err != nil {
			t.Fatalf("Send(%q) unexpected error: %v", q, err)
		}
	}
	for _, m := range controller.Transcript() {
		order = append(order, string(m.Role))
	}

	want := "assistant user assistant user assistant user assistant"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("transcript role order = %q, want %q", got, want)
	}
}

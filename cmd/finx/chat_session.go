// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the chat session controller.
//
// This file implements the conversation state machine that sits between
// the chat runner (input/output) and the ChatService (transport). It owns
// the transcript and the single-in-flight-request invariant.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/financex/finx/pkg/ux"
)

// Role identifies who authored a transcript message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a backend answer or a local failure notice.
	RoleAssistant Role = "assistant"
)

// greetingText seeds the transcript so the session never opens on an
// empty screen.
const greetingText = "Hi! Ask me about your invoices, transactions, vendors, or products."

// failureNotice is the fixed remediation text appended when a send fails.
// The underlying error is attached separately so the UI can show detail.
const failureNotice = "I couldn't get an answer from the FinanceX backend. " +
	"Check that the server is running and reachable, then ask again."

// ErrSendRejected is returned when Send is a no-op: blank input or a
// request already in flight. The transcript is untouched in both cases.
var ErrSendRejected = errors.New("send rejected")

// ChatMessage is one transcript entry.
//
// # Fields
//
//   - Role: Author of the message.
//   - Text: Display text. For failed sends this is the remediation notice.
//   - Time: Local append time, for transcript ordering only.
//   - Sources: Provenance triples attached to an assistant answer.
//   - GraphRef: Opaque graph-view reference attached to an answer, or "".
//   - Err: The failure behind a remediation message, nil otherwise.
type ChatMessage struct {
	Role     Role
	Text     string
	Time     time.Time
	Sources  []ux.ProvenanceTriple
	GraphRef string
	Err      error
}

// SessionController owns the conversation transcript and send lifecycle.
//
// # Description
//
// The controller enforces the conversation invariants:
//
//   - The transcript is append-only and never reordered; the seeded
//     greeting is message 0.
//   - At most one request is in flight. Send during a pending request is
//     a rejected no-op.
//   - Blank input is a rejected no-op.
//   - Every accepted send appends the user message immediately, then
//     exactly one assistant message when the request completes: the
//     answer on success, a fixed remediation notice on failure.
//   - An error is terminal for its request. No automatic retry.
//
// # Thread Safety
//
// Not thread-safe. The chat runner drives the controller from a single
// goroutine; the pending flag models UI state, not cross-goroutine
// exclusion.
type SessionController struct {
	service    ChatService
	transcript []ChatMessage
	pending    bool
	sentCount  int
}

// NewSessionController creates a controller with the greeting seeded.
func NewSessionController(service ChatService) *SessionController {
	return &SessionController{
		service: service,
		transcript: []ChatMessage{{
			Role: RoleAssistant,
			Text: greetingText,
			Time: time.Now(),
		}},
	}
}

// Transcript returns the messages in append order. The returned slice is
// shared; callers must not mutate it.
func (c *SessionController) Transcript() []ChatMessage {
	return c.transcript
}

// Pending reports whether a request is in flight.
func (c *SessionController) Pending() bool {
	return c.pending
}

// SentCount returns the number of user messages accepted this session.
func (c *SessionController) SentCount() int {
	return c.sentCount
}

// SessionID returns the service's session correlation id.
func (c *SessionController) SessionID() string {
	return c.service.SessionID()
}

// LastAssistant returns the most recent assistant message. The seeded
// greeting guarantees a non-nil result.
func (c *SessionController) LastAssistant() *ChatMessage {
	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].Role == RoleAssistant {
			return &c.transcript[i]
		}
	}
	return nil
}

// Send submits one user message and blocks until the exchange completes.
//
// # Description
//
// Validates, appends the user message optimistically, performs the
// request, and appends exactly one assistant message for the outcome. A
// completed send always grows the transcript by exactly two messages.
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout.
//   - text: Raw user input. Trimmed before validation.
//
// # Outputs
//
//   - *ChatMessage: The appended assistant message (answer or remediation
//     notice). Nil only when the send was rejected.
//   - error: ErrSendRejected for no-ops; the send failure otherwise. A
//     non-nil error alongside a non-nil message means the failure was
//     recorded in the transcript.
func (c *SessionController) Send(ctx context.Context, text string) (*ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty message", ErrSendRejected)
	}
	if c.pending {
		return nil, fmt.Errorf("%w: request already in flight", ErrSendRejected)
	}

	c.pending = true
	c.sentCount++
	c.transcript = append(c.transcript, ChatMessage{
		Role: RoleUser,
		Text: trimmed,
		Time: time.Now(),
	})

	result, err := c.service.SendMessage(ctx, trimmed)
	c.pending = false

	if err != nil {
		slog.Warn("chat send failed",
			"session_id", c.service.SessionID(),
			"error", err,
		)
		failed := ChatMessage{
			Role: RoleAssistant,
			Text: failureNotice,
			Time: time.Now(),
			Err:  err,
		}
		c.transcript = append(c.transcript, failed)
		return &c.transcript[len(c.transcript)-1], err
	}

	answered := ChatMessage{
		Role:     RoleAssistant,
		Text:     result.Answer,
		Time:     time.Now(),
		Sources:  result.Sources,
		GraphRef: result.GraphRef,
	}
	c.transcript = append(c.transcript, answered)
	return &c.transcript[len(c.transcript)-1], nil
}

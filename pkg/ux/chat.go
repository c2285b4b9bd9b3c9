// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// HeaderConfig contains configuration for displaying the chat header.
//
// # Description
//
// HeaderConfig groups all optional parameters for the chat header display.
// This allows extending the header with new fields without breaking existing
// callers of the Header() method.
//
// # Fields
//
//   - SessionID: Session correlation id for this conversation.
//   - Server: Base URL of the FinanceX backend being queried.
type HeaderConfig struct {
	SessionID string
	Server    string
}

// ChatUI defines the interface for chat user interface operations.
// Implementations handle rendering chat elements to different outputs.
type ChatUI interface {
	// Header displays the chat session header with configuration.
	Header(config HeaderConfig)

	// Prompt returns the styled input prompt string
	Prompt() string

	// Response displays the assistant's response
	Response(answer string)

	// Thinking returns the styled "thinking" line shown while a request
	// is in flight.
	Thinking() string

	// Error displays a chat error message
	Error(err error)

	// SessionEnd displays session end information
	SessionEnd(sessionID string, messageCount int)
}

// terminalChatUI implements ChatUI for terminal output
type terminalChatUI struct {
	writer      io.Writer
	personality PersonalityLevel
}

// write is a helper that writes formatted output and handles errors.
// Errors are silently ignored as there's no meaningful recovery for terminal output.
func (u *terminalChatUI) write(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(u.writer, format, args...); err != nil {
		return
	}
}

// writeln is a helper that writes a line and handles errors.
func (u *terminalChatUI) writeln(args ...interface{}) {
	if _, err := fmt.Fprintln(u.writer, args...); err != nil {
		return
	}
}

// NewChatUI creates a new terminal-based ChatUI
func NewChatUI() ChatUI {
	return &terminalChatUI{
		writer:      os.Stdout,
		personality: GetPersonality().Level,
	}
}

// NewChatUIWithWriter creates a ChatUI with a custom writer (for testing)
func NewChatUIWithWriter(w io.Writer, personality PersonalityLevel) ChatUI {
	return &terminalChatUI{
		writer:      w,
		personality: personality,
	}
}

// Header displays the chat session header.
func (u *terminalChatUI) Header(config HeaderConfig) {
	if u.personality == PersonalityMachine {
		parts := []string{"mode=chat"}
		if config.SessionID != "" {
			parts = append(parts, fmt.Sprintf("session=%s", config.SessionID))
		}
		if config.Server != "" {
			parts = append(parts, fmt.Sprintf("server=%s", config.Server))
		}
		u.write("CHAT_START: %s\n", strings.Join(parts, " "))
		return
	}

	if u.personality == PersonalityMinimal {
		u.writeln("FinanceX Chat")
		if config.Server != "" {
			u.write("Server: %s\n", config.Server)
		}
		u.writeln("Type 'exit' to end.")
		return
	}

	var content strings.Builder
	content.WriteString(Styles.Highlight.Render("FinanceX Knowledge Graph Chat"))
	content.WriteString("\n")
	content.WriteString(Styles.Muted.Render("Invoices, transactions, vendors, and products"))
	if config.Server != "" {
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("Server: %s", Styles.Success.Render(config.Server)))
	}
	if config.SessionID != "" {
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("Session: %s", Styles.Muted.Render(config.SessionID)))
	}

	boxStyle := Styles.Box.Width(60)
	u.writeln(boxStyle.Render(content.String()))
	u.writeln()
	u.writeln(Styles.Muted.Render("Type 'exit' to end, '/sources' to expand citations, '/graph' to open the graph view."))
	u.writeln()
}

// Prompt returns the styled input prompt string
func (u *terminalChatUI) Prompt() string {
	if u.personality == PersonalityMachine {
		return "> "
	}
	return Styles.Highlight.Render("> ")
}

// Response displays the assistant's response
func (u *terminalChatUI) Response(answer string) {
	if u.personality == PersonalityMachine {
		u.write("RESPONSE: %s\n", answer)
		return
	}
	u.writeln()
	u.writeln(answer)
}

// Thinking returns the styled in-flight indicator line.
func (u *terminalChatUI) Thinking() string {
	if u.personality == PersonalityMachine {
		return "THINKING"
	}
	return Styles.Muted.Render("Consulting the knowledge graph...")
}

// Error displays a chat error message
func (u *terminalChatUI) Error(err error) {
	if u.personality == PersonalityMachine {
		u.write("CHAT_ERROR: %v\n", err)
		return
	}
	u.write("%s %s\n", IconError.Render(), Styles.Error.Render(fmt.Sprintf("Chat error: %v", err)))
}

// SessionEnd displays session end information.
//
// # Description
//
// Displays a goodbye line with the session id and how many messages were
// exchanged. The transcript itself is not persisted; the id only helps
// correlate against backend logs.
//
// # Inputs
//
//   - sessionID: The session identifier. May be empty.
//   - messageCount: Number of user messages sent this session.
func (u *terminalChatUI) SessionEnd(sessionID string, messageCount int) {
	if u.personality == PersonalityMachine {
		u.write("SESSION_END: session=%s messages=%d\n", sessionID, messageCount)
		return
	}
	u.writeln()
	u.write("%s %s\n", IconSuccess.Render(), Styles.Success.Render("Session ended."))
	if messageCount > 0 {
		u.writeln(Styles.Muted.Render(fmt.Sprintf("  %d question(s) asked · session %s", messageCount, sessionID)))
	}
}

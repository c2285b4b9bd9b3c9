// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the FinanceX CLI chat runner interfaces and
// input reader implementations.
//
// This file defines the ChatRunner interface for abstracting chat loop
// execution and the InputReader abstraction over stdin.
//
// Architecture:
//
//	cmd_chat.go → ChatRunner Interface → KGChatRunner
//	                                     ↓
//	                                     SessionController (chat_session.go)
//	                                     ChatService (chat_service.go)
//	                                     InputReader (stdin abstraction)
//	                                     ChatUI / SourcesPresenter (pkg/ux)
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// =============================================================================
// ChatRunner Interface
// =============================================================================

// ChatRunner defines the contract for running interactive chat sessions.
//
// # Description
//
// ChatRunner abstracts the chat loop execution. Implementations handle
// user input, service communication, and output rendering.
//
// ChatRunner embeds resource cleanup via Close. Callers MUST call Close()
// when done, typically via defer.
//
// # Outputs
//
// Run returns an error if the chat session failed to start or hit an
// unrecoverable error. Normal exit (user types "exit") returns nil.
// Context cancellation returns context.Canceled.
//
// # Limitations
//
//   - Implementations are not reusable after Run() returns
//   - Stdin reads cannot be interrupted mid-line (OS limitation)
type ChatRunner interface {
	// Run executes the interactive chat loop until exit, error, or
	// context cancellation.
	Run(ctx context.Context) error

	// Close releases all resources held by the runner. Safe to call
	// multiple times.
	Close() error
}

// =============================================================================
// InputReader Interface
// =============================================================================

// InputReader abstracts user input reading for testability.
//
// # Description
//
// InputReader enables mocking of stdin in unit tests. The production
// implementations wrap bufio.Reader or a bubbletea textinput; the test
// implementation returns predetermined inputs.
//
// # Outputs
//
// ReadLine returns the line read (trimmed) and any error. io.EOF means
// input is exhausted.
type InputReader interface {
	// ReadLine reads a single line of input. Blocks until input is
	// available; returns io.EOF when input is exhausted.
	ReadLine() (string, error)
}

// PromptingInputReader extends InputReader with prompt display.
//
// # Description
//
// Implemented by readers that draw their own prompt (the interactive
// bubbletea reader). The chat runner checks for this interface to avoid
// double-prompting:
//
//	if p, ok := reader.(PromptingInputReader); ok {
//	    p.SetPrompt(prompt)
//	} else {
//	    fmt.Print(prompt)
//	}
//	line, err := reader.ReadLine()
type PromptingInputReader interface {
	InputReader
	// SetPrompt sets the prompt string to display before input.
	SetPrompt(prompt string)
}

// =============================================================================
// StdinReader Implementation
// =============================================================================

// StdinReader implements InputReader for plain stdin reading.
//
// # Description
//
// StdinReader wraps bufio.Reader over os.Stdin. Used for piped input and
// non-TTY environments; interactive terminals get the history-capable
// reader instead.
//
// # Thread Safety
//
// Not thread-safe. Single reader per stdin.
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a StdinReader wrapping os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadLine reads until newline and returns the trimmed result. Returns
// io.EOF when stdin is closed.
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// =============================================================================
// InteractiveInputReader Implementation (with history)
// =============================================================================

// InteractiveInputReader implements InputReader with history navigation.
//
// # Description
//
// Uses charmbracelet/bubbletea to provide up/down arrow history
// navigation and line editing. Falls back to StdinReader for non-TTY
// environments (piped input, CI).
//
// # Fields
//
//   - history: Previous inputs, most recent last.
//   - maxHistory: Cap on kept entries.
//   - prompt: Prompt string drawn by the textinput component.
//
// # Limitations
//
//   - History is in-memory only, not persisted across sessions.
type InteractiveInputReader struct {
	history    []string
	maxHistory int
	prompt     string
}

// inputModel is the bubbletea model for one line of interactive input.
type inputModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	currentInput string // stashed draft while navigating history
	done         bool
	cancelled    bool
}

// NewInteractiveInputReader creates an input reader with history.
//
// # Description
//
// Returns an InteractiveInputReader when stdin is a TTY, otherwise a
// StdinReader. The caller sets the prompt via SetPrompt; non-prompting
// readers rely on the runner printing it.
//
// # Inputs
//
//   - maxHistory: Maximum number of history entries to keep.
func NewInteractiveInputReader(maxHistory int) InputReader {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return NewStdinReader()
	}
	return &InteractiveInputReader{
		history:    make([]string, 0, maxHistory),
		maxHistory: maxHistory,
		prompt:     "> ",
	}
}

// SetPrompt sets the prompt drawn by the textinput component.
func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// ReadLine reads one line with history support.
//
// # Description
//
// Runs a bubbletea textinput program for a single line:
//   - Up/down arrows navigate history
//   - Enter submits
//   - Ctrl+C clears the current line
//   - Ctrl+D on an empty line returns io.EOF
//
// Submitted non-empty inputs are added to history.
func (r *InteractiveInputReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	m := inputModel{
		textInput:    ti,
		history:      r.history,
		historyIndex: -1,
	}

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", finalModel)
	}

	if result.cancelled && result.textInput.Value() == "" {
		return "", io.EOF
	}

	input := strings.TrimSpace(result.textInput.Value())
	if input != "" {
		r.addToHistory(input)
	}
	return input, nil
}

// addToHistory appends an input, skipping immediate duplicates and
// trimming past the cap.
func (r *InteractiveInputReader) addToHistory(input string) {
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// Init initializes the bubbletea model.
func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events for the bubbletea model.
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC:
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.cancelled = true
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.currentInput = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textInput.SetValue(m.currentInput)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the input prompt.
func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

// =============================================================================
// MockInputReader Implementation (for testing)
// =============================================================================

// MockInputReader implements InputReader for tests.
//
// # Description
//
// Returns predetermined inputs in sequence, then io.EOF. Not thread-safe;
// designed for single-threaded tests.
type MockInputReader struct {
	inputs []string
	index  int
}

// NewMockInputReader creates a MockInputReader with predetermined inputs.
func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

// ReadLine returns the next predetermined input, or io.EOF when exhausted.
func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.inputs) {
		return "", io.EOF
	}
	line := m.inputs[m.index]
	m.index++
	return line, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// isExitCommand checks if the input ends the session. Case-sensitive;
// input must already be trimmed.
func isExitCommand(input string) bool {
	return input == "exit" || input == "quit"
}

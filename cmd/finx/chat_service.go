// Copyright (C) 2026 FinanceX Labs (dev@financex.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the FinanceX CLI chat service.
//
// This file defines the ChatService interface and its HTTP implementation
// against the FinanceX backend. The rich chat-with-sources endpoint is
// preferred; the plain chat endpoint is the fallback for backends deployed
// without provenance support.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financex/finx/pkg/ux"
)

const (
	chatSourcesPath = "/api/v1/chat/sources"
	chatPath        = "/api/v1/chat"
)

// ChatResult is one completed exchange with the backend.
//
// # Fields
//
//   - Answer: The assistant's answer text. Never empty on success.
//   - SessionID: Correlation id echoed or assigned by the backend.
//   - Sources: Provenance triples behind the answer. Nil when the backend
//     returned none or the plain endpoint was used.
//   - GraphRef: Opaque graph-view reference for the sources, or "".
type ChatResult struct {
	Answer    string
	SessionID string
	Sources   []ux.ProvenanceTriple
	GraphRef  string
}

// ChatService defines the contract for sending chat queries.
//
// # Description
//
// ChatService abstracts the backend conversation API so runners and the
// session controller can be tested against mocks. Implementations must be
// safe for sequential use from a single goroutine; concurrent SendMessage
// calls are not part of the contract (the session controller serializes
// sends).
type ChatService interface {
	// SendMessage sends one user query and returns the completed exchange.
	//
	// # Inputs
	//
	//   - ctx: Context for cancellation and deadline.
	//   - query: Non-empty user question (caller validates).
	//
	// # Outputs
	//
	//   - *ChatResult: The answer with optional provenance on success.
	//   - error: Transport failure, protocol error (non-2xx), parse
	//     failure, or a response with no recognized answer field.
	SendMessage(ctx context.Context, query string) (*ChatResult, error)

	// SessionID returns the current session correlation id.
	SessionID() string

	// Close releases underlying resources. Safe to call multiple times.
	Close() error
}

// chatRequest is the wire request for both chat endpoints.
type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// chatWireResponse covers both endpoint response shapes. The answer may
// arrive under different keys depending on backend version.
type chatWireResponse struct {
	Answer    string                `json:"answer"`
	Response  string                `json:"response"`
	Message   string                `json:"message"`
	SessionID string                `json:"session_id"`
	Sources   []ux.ProvenanceTriple `json:"sources"`
	GraphURL  string                `json:"graph_url"`
}

// answerText resolves the answer field precedence: answer, then response,
// then message. Whitespace-only values count as absent.
func (r *chatWireResponse) answerText() string {
	for _, candidate := range []string{r.Answer, r.Response, r.Message} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// graphChatService is the production ChatService over HTTP.
//
// # Description
//
// Sends queries to the FinanceX chat-with-sources endpoint, falling back
// to the plain chat endpoint when the rich one is absent (404). Once the
// fallback is chosen it sticks for the lifetime of the service, so a
// session talks to one endpoint consistently.
//
// The session id is generated client-side at construction and threaded
// through every request explicitly. If the backend assigns its own id in
// a response, that id wins from then on.
//
// # Thread Safety
//
// Not safe for concurrent SendMessage calls. The session controller
// guarantees a single in-flight request.
type graphChatService struct {
	baseURL     string
	httpClient  *http.Client
	sessionID   string
	useFallback bool
	closed      bool
}

// NewGraphChatService creates the production chat service.
//
// # Inputs
//
//   - baseURL: Backend base URL without trailing slash.
//   - timeout: Bound on every request. Zero falls back to 60s.
//   - sessionID: Session to resume, or "" to start a new one.
func NewGraphChatService(baseURL string, timeout time.Duration, sessionID string) ChatService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &graphChatService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		sessionID:  sessionID,
	}
}

// NewGraphChatServiceWithClient creates a chat service with an injected
// HTTP client, for tests against httptest servers.
func NewGraphChatServiceWithClient(baseURL string, httpClient *http.Client, sessionID string) *graphChatService {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &graphChatService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		sessionID:  sessionID,
	}
}

// SendMessage sends one query, preferring the sources endpoint.
func (s *graphChatService) SendMessage(ctx context.Context, query string) (*ChatResult, error) {
	if !s.useFallback {
		result, status, err := s.post(ctx, chatSourcesPath, query)
		if err == nil {
			return result, nil
		}
		if status != http.StatusNotFound {
			return nil, err
		}
		// Backend without provenance support; remember and retry plain.
		slog.Debug("sources endpoint unavailable, falling back", "path", chatPath)
		s.useFallback = true
	}

	result, _, err := s.post(ctx, chatPath, query)
	return result, err
}

// post issues one chat POST and decodes the response. The returned status
// is the HTTP status code when a response was received, else 0.
func (s *graphChatService) post(ctx context.Context, path, query string) (*ChatResult, int, error) {
	payload, err := json.Marshal(chatRequest{Query: query, SessionID: s.sessionID})
	if err != nil {
		return nil, 0, fmt.Errorf("encode chat request: %w", err)
	}

	url := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("sending chat query", "url", url, "session_id", s.sessionID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send chat query: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, resp.StatusCode, fmt.Errorf("chat endpoint returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wire chatWireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode chat response: %w", err)
	}

	answer := wire.answerText()
	if answer == "" {
		return nil, resp.StatusCode, fmt.Errorf("chat response carried no answer")
	}

	// The backend-assigned session id takes over for subsequent turns.
	if wire.SessionID != "" {
		s.sessionID = wire.SessionID
	}

	return &ChatResult{
		Answer:    answer,
		SessionID: s.sessionID,
		Sources:   wire.Sources,
		GraphRef:  wire.GraphURL,
	}, resp.StatusCode, nil
}

// SessionID returns the current session correlation id.
func (s *graphChatService) SessionID() string {
	return s.sessionID
}

// Close marks the service closed. The HTTP client holds no resources that
// outlive its idle connections, so this only guards against reuse.
func (s *graphChatService) Close() error {
	s.closed = true
	return nil
}

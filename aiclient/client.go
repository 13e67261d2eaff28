// Package aiclient talks to the external AI microservice that owns semantic
// search over statute sections
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTopK is the number of semantic hits requested when unspecified
const DefaultTopK = 10

// DefaultTimeout bounds a single call to the AI service
const DefaultTimeout = 15 * time.Second

// ErrorKind classifies a failed call
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindDecode    ErrorKind = "decode"
)

// Error is returned for every failed call to the AI service
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("ai service returned status %d", e.StatusCode)
	default:
		return fmt.Sprintf("ai service %s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an AI service error, or "" for other errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// SearchSectionsRequest is the body of POST /search-sections
type SearchSectionsRequest struct {
	QueryText    string `json:"query_text"`
	UserState    string `json:"user_state,omitempty"`
	UserLanguage string `json:"user_language,omitempty"`
	TopK         int    `json:"top_k"`
}

// SectionHit is one semantic search result. The service returns bilingual
// text; id, text and domain are accepted when present.
type SectionHit struct {
	ID           string  `json:"id,omitempty"`
	Act          string  `json:"act"`
	Section      string  `json:"section"`
	Text         string  `json:"text,omitempty"`
	TextPrimary  string  `json:"text_primary,omitempty"`
	TextEnglish  string  `json:"text_english,omitempty"`
	Jurisdiction string  `json:"jurisdiction,omitempty"`
	Domain       string  `json:"domain,omitempty"`
	SourceLink   *string `json:"source_link,omitempty"`
}

// SearchSectionsResponse is the body returned by POST /search-sections
type SearchSectionsResponse struct {
	DetectedLanguage string       `json:"detected_language,omitempty"`
	QueryText        string       `json:"query_text,omitempty"`
	Results          []SectionHit `json:"results"`
}

// Client calls the AI microservice over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption is a functional option for Client
type ClientOption func(*Client)

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the AI service rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchSections runs a semantic search. A zero TopK requests DefaultTopK.
// Every failure is returned as *Error.
func (c *Client) SearchSections(ctx context.Context, req SearchSectionsRequest) (*SearchSectionsResponse, error) {
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search-sections", bytes.NewReader(jsonData))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &Error{Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	var out SearchSectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	if out.Results == nil {
		out.Results = make([]SectionHit, 0)
	}
	return &out, nil
}

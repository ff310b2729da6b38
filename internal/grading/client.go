package grading

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
)

// ErrNoResponse means the grading service could not be reached at all
// (connection refused, DNS failure, timeout). Distinct from a served error
// status so the client can tell a network problem from a server problem.
var ErrNoResponse = errors.New("no response from grading service")

// ErrBadResponse means the service answered 2xx but the body did not decode
// into the expected evaluation shape.
var ErrBadResponse = errors.New("malformed grading response")

// StatusError is returned when the grading service answers with a non-2xx
// status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("grading service returned status %d", e.StatusCode)
}

// Client calls the external grading service. The service is an opaque black
// box; only the multipart request fields and the response JSON shape are
// contractual.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a grading Client for the given endpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Grade uploads a student answer sheet and the question paper / answer key
// and returns the parsed evaluation.
func (c *Client) Grade(ctx context.Context, studentPDF io.Reader, studentName string, keyPDF io.Reader, keyName string) (*model.GradeResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("student_pdf", studentName)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, studentPDF); err != nil {
		return nil, fmt.Errorf("copy student pdf: %w", err)
	}

	part, err = mw.CreateFormFile("qp_or_key_pdf", keyName)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, keyPDF); err != nil {
		return nil, fmt.Errorf("copy key pdf: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var result model.GradeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &result, nil
}

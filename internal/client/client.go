// Package client provides a typed HTTP client for the student record API.
// It mirrors the server's multipart form contract and response envelope so
// other Go services can manage records without hand-rolling requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/studentpro/studentpro-api/internal/models"
	appErrors "github.com/studentpro/studentpro-api/pkg/errors"
)

// MaxAttachmentSize is the client-side cap on avatar uploads. Oversize files
// are rejected before any request is sent.
const MaxAttachmentSize = 2 * 1024 * 1024

const defaultTimeout = 30 * time.Second

// StoreError reports a failed store operation: either the server answered
// with a non-2xx envelope or the request never completed.
type StoreError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error renders a human-readable description of the failure.
func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("student store: %s: %v", e.Message, e.Err)
	}
	if e.Status > 0 {
		return fmt.Sprintf("student store: %s (HTTP %d)", e.Message, e.Status)
	}
	return "student store: " + e.Message
}

// Unwrap returns the underlying transport error, if any.
func (e *StoreError) Unwrap() error { return e.Err }

// RecordForm carries the writable record fields. Numeric fields are strings
// because the API accepts them as form values; blank means absent.
type RecordForm struct {
	Name         string
	Email        string
	Course       string
	Age          string
	RollNumber   string
	Phone        string
	Department   string
	GPA          string
	Skills       string
	Achievements string
	Portfolio    string
}

func (f RecordForm) fields() map[string]string {
	return map[string]string{
		"name":         f.Name,
		"email":        f.Email,
		"course":       f.Course,
		"age":          f.Age,
		"rollNumber":   f.RollNumber,
		"phone":        f.Phone,
		"department":   f.Department,
		"gpa":          f.GPA,
		"skills":       f.Skills,
		"achievements": f.Achievements,
		"portfolio":    f.Portfolio,
	}
}

// Attachment is an avatar image submitted alongside the form.
type Attachment struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Client talks to the student record API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// List fetches the full record collection.
func (c *Client) List(ctx context.Context) ([]models.Student, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/students", nil)
	if err != nil {
		return nil, &StoreError{Message: "building list request", Err: err}
	}
	var students []models.Student
	if err := c.do(req, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Create submits a new record, attaching the avatar when provided. The
// collection is not touched on failure.
func (c *Client) Create(ctx context.Context, form RecordForm, attachment *Attachment) (*models.Student, error) {
	return c.submit(ctx, http.MethodPost, c.baseURL+"/students", form, attachment)
}

// Update replaces the record with the given id. Without an attachment the
// stored avatar is kept server-side.
func (c *Client) Update(ctx context.Context, id string, form RecordForm, attachment *Attachment) (*models.Student, error) {
	return c.submit(ctx, http.MethodPut, c.baseURL+"/students/"+id, form, attachment)
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/students/"+id, nil)
	if err != nil {
		return &StoreError{Message: "building delete request", Err: err}
	}
	return c.do(req, nil)
}

func (c *Client) submit(ctx context.Context, method, url string, form RecordForm, attachment *Attachment) (*models.Student, error) {
	if attachment != nil && attachment.Size > MaxAttachmentSize {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge, "image must be under 2MB")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range form.fields() {
		if err := writer.WriteField(name, value); err != nil {
			return nil, &StoreError{Message: "encoding form", Err: err}
		}
	}
	if attachment != nil {
		part, err := writer.CreateFormFile("avatar", attachment.Filename)
		if err != nil {
			return nil, &StoreError{Message: "encoding attachment", Err: err}
		}
		if _, err := io.Copy(part, attachment.Content); err != nil {
			return nil, &StoreError{Message: "reading attachment", Err: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &StoreError{Message: "encoding form", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &StoreError{Message: "building request", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var student models.Student
	if err := c.do(req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &StoreError{Message: "store unreachable", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &StoreError{Status: resp.StatusCode, Message: "reading response", Err: err}
	}

	var env envelope
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &env); err != nil && resp.StatusCode < http.StatusMultipleChoices {
			return &StoreError{Status: resp.StatusCode, Message: "malformed response", Err: err}
		}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		storeErr := &StoreError{Status: resp.StatusCode, Message: resp.Status}
		if env.Error != nil {
			storeErr.Code = env.Error.Code
			storeErr.Message = env.Error.Message
		}
		return storeErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &StoreError{Status: resp.StatusCode, Message: "decoding response data", Err: err}
		}
	}
	return nil
}

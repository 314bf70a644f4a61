package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Response struct {
	Data []byte
}

// StatusError is a response the server actually produced: the request
// arrived and was rejected. Retrying it unchanged will fail identically,
// so callers must not queue it.
type StatusError struct {
	Status       int
	Message      string
	ExpectedKind string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// IsTransient reports whether an error is worth retrying: the request
// never reached the server, or the server side was temporarily down.
func IsTransient(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= http.StatusInternalServerError
	}
	return err != nil
}

// Transport handles low-level HTTP and authentication. The base URL
// comes from the resolver on every call, so a failed endpoint can be
// swapped out between requests.
type Transport struct {
	Resolver   *Resolver
	AuthToken  string
	HTTPClient *http.Client
}

// RequestTimeout is the hard per-call timeout; past it the action is
// treated as failed and queued by the caller.
const RequestTimeout = 10 * time.Second

func NewTransport(resolver *Resolver, token string) *Transport {
	return &Transport{
		Resolver:   resolver,
		AuthToken:  token,
		HTTPClient: &http.Client{Timeout: RequestTimeout},
	}
}

func (t *Transport) buildURL(base, path string, query map[string]string) string {
	u, _ := url.Parse(base + path)
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, nil, query)
}

func (t *Transport) Post(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, data, nil)
}

func (t *Transport) Put(ctx context.Context, path string, data any) (*Response, error) {
	return t.do(ctx, http.MethodPut, path, data, nil)
}

func (t *Transport) Delete(ctx context.Context, path string) (*Response, error) {
	return t.do(ctx, http.MethodDelete, path, nil, nil)
}

func (t *Transport) do(ctx context.Context, method, path string, data any, query map[string]string) (*Response, error) {
	base, err := t.Resolver.Current(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.buildURL(base, path, query), body)
	if err != nil {
		return nil, err
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.AuthToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.AuthToken))
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		// the pinned endpoint stopped answering; probe again next call
		t.Resolver.Invalidate()
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, payload)
	}

	return &Response{Data: payload}, nil
}

func statusError(status int, payload []byte) *StatusError {
	var body struct {
		Message      string `json:"message"`
		ExpectedKind string `json:"expectedKind"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Message == "" {
		body.Message = string(payload)
	}
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}
	return &StatusError{Status: status, Message: body.Message, ExpectedKind: body.ExpectedKind}
}

// envelope is the server's uniform success wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func decodeData(resp *Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Data, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Data, out)
}

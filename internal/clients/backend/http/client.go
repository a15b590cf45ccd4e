package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codebycinar/lgs-yks-mobile-app/internal/domain"
	"github.com/codebycinar/lgs-yks-mobile-app/internal/pkg/serviceerrors"
)

const (
	AuthorizationKey    = "Authorization"
	ContentType         = "Content-Type"
	ApplicationJSONType = "application/json"

	bearerPrefix = "Bearer "
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// tokenSource yields the current bearer token, empty when unauthenticated.
type tokenSource interface {
	Token(ctx context.Context) string
}

// Client talks to the planning backend. Every response body is an envelope
// {data: ...}; the client unwraps it and normalizes payload naming drift.
type Client struct {
	client    httpClient
	serverURL url.URL
	tokens    tokenSource

	// onUnauthorized is invoked once per observed 401 so the session owner
	// can drop stored credentials; the client itself holds no app state.
	onUnauthorized func(ctx context.Context)

	now func() time.Time
}

func NewClient(client httpClient, serverURL url.URL) *Client {
	return &Client{
		client:    client,
		serverURL: serverURL,
		now:       time.Now,
	}
}

// SetTokenSource wires the token provider; set after construction because the
// session manager and the client reference each other.
func (c *Client) SetTokenSource(tokens tokenSource) {
	c.tokens = tokens
}

func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) send(ctx context.Context, method string, reqURL *url.URL, reqBody any) (json.RawMessage, error) {
	desc := method + " " + reqURL.Path

	var bodyReader io.Reader
	if reqBody != nil {
		buf, err := json.Marshal(reqBody)
		if err != nil {
			return nil, serviceerrors.AppErrorFromError(err)
		}
		bodyReader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bodyReader)
	if err != nil {
		return nil, serviceerrors.AppErrorFromError(err)
	}
	req.Header.Set(ContentType, ApplicationJSONType)

	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set(AuthorizationKey, bearerPrefix+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, serviceerrors.NewNetwork().Wrap(domain.ErrNetwork, desc)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serviceerrors.NewNetwork().Wrap(domain.ErrNetwork, desc)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if c.onUnauthorized != nil {
				c.onUnauthorized(ctx)
			}
			return nil, serviceerrors.NewUnauthorized().Wrap(domain.ErrUnauthorized, desc)
		case http.StatusNotFound:
			return nil, serviceerrors.NewNotFound().Wrap(domain.ErrNotFound, desc)
		default:
			if msg := serverMessage(body); msg != "" {
				desc = desc + ": " + msg
			}
			return nil, serviceerrors.NewHTTPError(resp.StatusCode).Wrap(nil, desc)
		}
	}

	if len(body) == 0 {
		return nil, nil
	}

	env := new(envelope)
	if err = json.Unmarshal(body, env); err != nil {
		return nil, serviceerrors.NewAppError(err).Wrap(err, desc)
	}

	return env.Data, nil
}

func serverMessage(body []byte) string {
	env := new(envelope)
	if err := json.Unmarshal(body, env); err != nil {
		return ""
	}
	return env.Message
}

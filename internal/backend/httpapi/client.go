// Package httpapi implements the service.Service interface over the task
// server's HTTP JSON API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"taskctl/internal/config"
	"taskctl/internal/service"
	"taskctl/internal/session"
)

const (
	authPath  = "/api/auth/"
	tasksPath = "/api/tasks/"

	// RequestIDHeader carries a per-request identifier for server logs.
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of a response is read.
	maxBodySize = 4 << 20
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New creates a client for cfg.APIURL. When sess holds a token, every
// request carries it as a bearer Authorization header; otherwise requests
// are sent without one and the server decides.
func New(cfg *config.Config, sess *session.Session) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if sess.Valid() {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: sess.Token,
				TokenType:   sess.TokenType,
			}),
			Base: http.DefaultTransport,
		}
	}
	return NewWithHTTPClient(cfg, &http.Client{Transport: transport})
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		http:    httpClient,
		timeout: timeout,
		log:     cfg.Logger(),
	}
}

// SignIn implements service.Service.
func (c *Client) SignIn(ctx context.Context, creds service.Credentials) (service.AuthResponse, error) {
	var resp service.AuthResponse
	if err := c.do(ctx, http.MethodPost, authPath+"signin", creds, &resp); err != nil {
		return service.AuthResponse{}, err
	}
	return resp, nil
}

// SignUp implements service.Service.
func (c *Client) SignUp(ctx context.Context, req service.SignUpRequest) (string, error) {
	var resp service.MessageResponse
	if err := c.do(ctx, http.MethodPost, authPath+"signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListMyTasks implements service.Service.
func (c *Client) ListMyTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath+"my", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAllTasks implements service.Service.
func (c *Client) ListAllTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id service.ID) (service.Task, error) {
	path, err := taskPath(id)
	if err != nil {
		return service.Task{}, err
	}
	var task service.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id service.ID, in service.TaskInput) (service.Task, error) {
	path, err := taskPath(id)
	if err != nil {
		return service.Task{}, err
	}
	var task service.Task
	if err := c.do(ctx, http.MethodPut, path, in, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTaskStatus implements service.Service.
func (c *Client) UpdateTaskStatus(ctx context.Context, id service.ID, status service.Status) error {
	path, err := taskPath(id)
	if err != nil {
		return err
	}
	body := struct {
		Status service.Status `json:"status"`
	}{status}
	return c.do(ctx, http.MethodPatch, path+"/status", body, nil)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id service.ID) error {
	path, err := taskPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func taskPath(id service.ID) (string, error) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return "", errors.New("task id required")
	}
	return tasksPath + url.PathEscape(s), nil
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// non-nil and the body is non-empty).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", append(fields, zap.Duration("elapsed", time.Since(start)), zap.Error(err))...)
		return &service.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Debug("read response failed", append(fields, zap.Error(err))...)
		return &service.TransportError{Err: err}
	}
	c.log.Debug("request done", append(fields,
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)...)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Debug("decode response failed", append(fields, zap.Error(err))...)
		return &service.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// apiError extracts the server's message field from an error body.
func apiError(status int, body []byte) error {
	var msg service.MessageResponse
	if err := json.Unmarshal(body, &msg); err != nil {
		msg.Message = ""
	}
	return service.NewAPIError(status, strings.TrimSpace(msg.Message))
}

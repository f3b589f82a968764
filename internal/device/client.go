// Package device talks to the jiggler appliance's HTTP JSON API.
package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"

	"github.com/stigoleg/jigglepad/internal/touchpad"
)

var (
	logger = golog.Child("[device]")
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
)

// API paths.
const (
	PathTouchpadMove   = "/api/touchpad/move"
	PathTouchpadClick  = "/api/touchpad/click"
	PathTouchpadButton = "/api/touchpad/button"
	PathTouchpadScroll = "/api/touchpad/scroll"
	PathStatus         = "/api/status"
	PathConfig         = "/api/config"
	PathMove           = "/api/move"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// ErrUnexpectedStatus is wrapped by every non-2xx response error.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Client is a device API client. It is safe for concurrent use.
type Client struct {
	http *req.Client
}

// NewClient creates a client for the device at opts.BaseURL.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := req.C().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetUserAgent("jigglepad").
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	if opts.Username != "" {
		c.SetCommonBasicAuth(opts.Username, opts.Password)
	}
	return &Client{http: c}
}

// Move moves the remote cursor by (x, y).
func (c *Client) Move(ctx context.Context, x, y int) error {
	return c.post(ctx, PathTouchpadMove, moveRequest{X: x, Y: y})
}

// Click sends a discrete click.
func (c *Client) Click(ctx context.Context, button, clickType string) error {
	return c.post(ctx, PathTouchpadClick, clickRequest{Button: button, ClickType: clickType})
}

// Button presses or releases a button.
func (c *Client) Button(ctx context.Context, button, state string) error {
	return c.post(ctx, PathTouchpadButton, buttonRequest{Button: button, State: state})
}

// Scroll sends a scroll delta in device units.
func (c *Client) Scroll(ctx context.Context, amount int) error {
	return c.post(ctx, PathTouchpadScroll, scrollRequest{Amount: amount})
}

// TriggerMovement asks the device to perform one jiggler movement now.
func (c *Client) TriggerMovement(ctx context.Context) error {
	return c.post(ctx, PathMove, nil)
}

// Status fetches the jiggler status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var s Status
	err := c.get(ctx, PathStatus, &s)
	return s, err
}

// Config fetches the jiggler configuration.
func (c *Client) Config(ctx context.Context) (Config, error) {
	var cfg Config
	err := c.get(ctx, PathConfig, &cfg)
	return cfg, err
}

// Send delivers a touchpad command.
func (c *Client) Send(ctx context.Context, cmd touchpad.Command) error {
	switch cmd.Kind {
	case touchpad.CommandMove:
		return c.Move(ctx, cmd.X, cmd.Y)
	case touchpad.CommandClick:
		return c.Click(ctx, cmd.Button, cmd.ClickType)
	case touchpad.CommandButton:
		return c.Button(ctx, cmd.Button, cmd.State)
	case touchpad.CommandScroll:
		return c.Scroll(ctx, cmd.Amount)
	default:
		return fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	r := c.http.R().SetContext(ctx)
	if body != nil {
		r.SetBodyJsonMarshal(body)
	}
	resp, err := r.Post(path)
	return check(http.MethodPost, path, resp, err)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err := check(http.MethodGet, path, resp, err); err != nil {
		return err
	}
	if err := resp.Unmarshal(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func check(method, path string, resp *req.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	return nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/juridik/internal/buildinfo"
	"github.com/dmitrijs2005/juridik/internal/client/attachments"
	"github.com/dmitrijs2005/juridik/internal/client/models"
	"github.com/dmitrijs2005/juridik/internal/client/session"
	"github.com/dmitrijs2005/juridik/internal/common"
	"github.com/dmitrijs2005/juridik/internal/logging"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

const refreshPath = "/auth/refresh"

// HTTPClient implements API over REST.
type HTTPClient struct {
	rc      *resty.Client
	session *session.Session
	log     logging.Logger
	observe StateObserver
	group   singleflight.Group
}

type Option func(*HTTPClient)

// WithStateObserver reports every call transition to o.
func WithStateObserver(o StateObserver) Option {
	return func(h *HTTPClient) { h.observe = o }
}

func New(baseURL string, timeout time.Duration, sess *session.Session, log logging.Logger, opts ...Option) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "juridik/"+buildinfo.Version)

	h := &HTTPClient{rc: rc, session: sess, log: log.With("component", "http")}
	for _, o := range opts {
		o(h)
	}
	return h
}

// call describes one logical backend operation. It is re-sent verbatim on
// the post-refresh attempt.
type call struct {
	method string
	path   string
	body   any
	form   map[string]string
	files  []formFile
	// credential calls (login, signup, password reset) treat a 401 as the
	// answer and never refresh
	noRefresh bool
}

type formFile struct {
	param string
	file  attachments.File
}

type tracker struct {
	h     *HTTPClient
	c     call
	state State
}

func (t *tracker) move(ctx context.Context, to State) {
	tr := Transition{Method: t.c.method, Path: t.c.path, From: t.state, To: to}
	t.state = to
	if to == StateRefreshingCredential || to == StateFailed {
		t.h.log.Debug(ctx, "call state", "method", tr.Method, "path", tr.Path, "from", tr.From.String(), "to", tr.To.String())
	}
	if t.h.observe != nil {
		t.h.observe(tr)
	}
}

func (t *tracker) finish(ctx context.Context, resp *resty.Response) (*resty.Response, error) {
	if resp.IsError() {
		t.move(ctx, StateFailed)
		return nil, newAPIError(resp)
	}
	t.move(ctx, StateIdle)
	return resp, nil
}

func (h *HTTPClient) do(ctx context.Context, c call) (*resty.Response, error) {
	t := &tracker{h: h, c: c, state: StateIdle}

	t.move(ctx, StateAwaitingResponse)
	token, _ := h.session.Token(ctx)
	resp, err := h.send(ctx, c, token, 1)
	if err != nil {
		t.move(ctx, StateFailed)
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized || c.noRefresh {
		return t.finish(ctx, resp)
	}

	original := newAPIError(resp)

	t.move(ctx, StateRefreshingCredential)
	fresh, err := h.refresh(ctx, token)
	if err != nil {
		h.log.Warn(ctx, "credential refresh failed", "path", c.path, "error", err)
		t.move(ctx, StateFailed)
		return nil, original
	}

	t.move(ctx, StateAwaitingResponse)
	resp, err = h.send(ctx, c, fresh, 2)
	if err != nil {
		t.move(ctx, StateFailed)
		return nil, err
	}
	return t.finish(ctx, resp)
}

func (h *HTTPClient) send(ctx context.Context, c call, token string, attempt int) (*resty.Response, error) {
	req := h.rc.R().SetContext(ctx)
	if token != "" {
		req.SetHeader(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
	if c.body != nil {
		req.SetBody(c.body)
	}
	if c.form != nil {
		req.SetMultipartFormData(c.form)
	}
	for _, f := range c.files {
		ct := f.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		req.SetMultipartField(f.param, f.file.Name, ct, bytes.NewReader(f.file.Data))
	}

	start := time.Now()
	resp, err := req.Execute(c.method, c.path)
	if err != nil {
		h.log.Debug(ctx, "backend call failed", "method", c.method, "path", c.path, "attempt", attempt, "error", err)
		return nil, transportError(err)
	}

	h.log.Debug(ctx, "backend call",
		"method", c.method, "path", c.path, "status", resp.StatusCode(),
		"latency", time.Since(start), "attempt", attempt)
	return resp, nil
}

// refresh obtains a new access token after a 401 for stale. Concurrent
// callers share one refresh request.
func (h *HTTPClient) refresh(ctx context.Context, stale string) (string, error) {
	if cur, ok := h.session.Token(ctx); ok && cur != stale {
		return cur, nil
	}

	v, err, _ := h.group.Do("refresh", func() (any, error) {
		return h.refreshOnce(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (h *HTTPClient) refreshOnce(ctx context.Context) (string, error) {
	rt, ok := h.session.RefreshToken(ctx)
	if !ok {
		return "", common.ErrNoRefreshToken
	}

	resp, err := h.rc.R().
		SetContext(ctx).
		SetBody(refreshRequest{RefreshToken: rt}).
		Post(refreshPath)
	if err != nil {
		h.session.Forget(ctx)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, transportError(err))
	}
	if resp.IsError() {
		h.session.Forget(ctx)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, newAPIError(resp))
	}

	var out refreshResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil || out.AccessToken == "" {
		h.session.Forget(ctx)
		return "", fmt.Errorf("%w: response carries no access token", ErrRefreshFailed)
	}

	if err := h.session.Persist(ctx, models.Credential{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}); err != nil {
		h.log.Warn(ctx, "refreshed credential not persisted", "error", err)
	}
	h.log.Debug(ctx, "credential refreshed", "rotated", out.RefreshToken != "")
	return out.AccessToken, nil
}

func newAPIError(resp *resty.Response) *APIError {
	return &APIError{StatusCode: resp.StatusCode(), Payload: ParseErrorPayload(resp.Body())}
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func decode[T any](resp *resty.Response) (*T, error) {
	var v T
	if err := json.Unmarshal(resp.Body(), &v); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resp.Request.URL, err)
	}
	return &v, nil
}

func decodeList[T any](resp *resty.Response) ([]T, error) {
	v, err := decode[[]T](resp)
	if err != nil {
		return nil, err
	}
	return *v, nil
}

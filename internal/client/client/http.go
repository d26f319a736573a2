package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/collegeportal/internal/client/models"
	"github.com/dmitrijs2005/collegeportal/internal/common"
	"github.com/dmitrijs2005/collegeportal/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
	newID   func() string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. http://localhost:5000/api). timeout bounds every request; zero
// leaves requests unbounded apart from the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
		newID:   uuid.NewString,
	}, nil
}

type call struct {
	method     string
	path       []string
	query      url.Values
	credential string
	body       any
}

func (c *HTTPClient) do(ctx context.Context, in call, out any) error {
	u := c.baseURL.JoinPath(in.path...)
	if len(in.query) > 0 {
		u.RawQuery = in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.credential != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+in.credential)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", in.method, "url", u.Redacted(), "request_id", reqID, "err", err)
		return mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", in.method, "url", u.Redacted(), "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}
	if err := decodeData(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return nil
}

func mapTransportError(ctx context.Context, err error) error {
	// the caller gave up; that is not a server failure
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(raw, &body) == nil {
		msg = body.Message
		if msg == "" {
			msg = body.Error
		}
	}
	return NewAPIError(resp.StatusCode, msg)
}

// decodeData decodes raw into out, unwrapping the {"data": ...} envelope
// most endpoints use. Bodies without the envelope decode as-is.
func decodeData(raw []byte, out any) error {
	if r, ok := out.(*rawInto); ok {
		return json.Unmarshal(raw, r.v)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, call{method: http.MethodPost, path: []string{"auth", "register"}, body: r}, &res)
	if err != nil {
		return models.AuthResult{}, err
	}
	return res, checkAuthResult(res)
}

func (c *HTTPClient) Login(ctx context.Context, cr models.Credentials) (models.AuthResult, error) {
	var res models.AuthResult
	err := c.do(ctx, call{method: http.MethodPost, path: []string{"auth", "login"}, body: cr}, &res)
	if err != nil {
		return models.AuthResult{}, err
	}
	return res, checkAuthResult(res)
}

func checkAuthResult(res models.AuthResult) error {
	if res.Token == "" || res.User.ID == "" {
		return fmt.Errorf("%w: auth response without token or user", ErrUnavailable)
	}
	return nil
}

// profileBody accepts {"user": {...}} as well as a bare or data-wrapped user.
type profileBody struct {
	models.User
	Wrapped *models.User `json:"user"`
}

// user returns the decoded user; a body without one is a server fault.
func (p profileBody) user() (models.User, error) {
	u := p.User
	if p.Wrapped != nil {
		u = *p.Wrapped
	}
	if u.ID == "" {
		return models.User{}, fmt.Errorf("%w: profile response without user", ErrUnavailable)
	}
	return u, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, credential string) (models.User, error) {
	var body profileBody
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"auth", "profile"}, credential: credential}, &body); err != nil {
		return models.User{}, err
	}
	return body.user()
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, credential string, fields models.ProfileUpdate) (models.User, error) {
	var body profileBody
	err := c.do(ctx, call{method: http.MethodPut, path: []string{"auth", "profile"}, credential: credential, body: fields}, &body)
	if err != nil {
		return models.User{}, err
	}
	return body.user()
}

func (c *HTTPClient) SearchColleges(ctx context.Context, term string, limit int) ([]models.CollegeSummary, error) {
	q := url.Values{}
	q.Set("search", term)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var res []models.CollegeSummary
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"colleges"}, query: q}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) ListColleges(ctx context.Context, cq models.CollegeQuery) (models.CollegePage, error) {
	q := url.Values{}
	if cq.Page > 0 {
		q.Set("page", strconv.Itoa(cq.Page))
	}
	if cq.Limit > 0 {
		q.Set("limit", strconv.Itoa(cq.Limit))
	}
	if cq.Search != "" {
		q.Set("search", cq.Search)
	}

	// the list endpoint always wraps, and carries pagination next to data
	var body struct {
		Data       []models.College  `json:"data"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"colleges"}, query: q}, &rawInto{&body}); err != nil {
		return models.CollegePage{}, err
	}
	return models.CollegePage{Colleges: body.Data, Pagination: body.Pagination}, nil
}

func (c *HTTPClient) FeaturedColleges(ctx context.Context, limit int) ([]models.College, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var res []models.College
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"colleges", "featured"}, query: q}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) GetCollege(ctx context.Context, id string) (models.College, error) {
	var res models.College
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"colleges", url.PathEscape(id)}}, &res); err != nil {
		return models.College{}, err
	}
	return res, nil
}

func (c *HTTPClient) CreateAdmission(ctx context.Context, credential string, req models.AdmissionRequest) (models.Admission, error) {
	var res models.Admission
	err := c.do(ctx, call{method: http.MethodPost, path: []string{"admissions"}, credential: credential, body: req}, &res)
	if err != nil {
		return models.Admission{}, err
	}
	return res, nil
}

func (c *HTTPClient) MyAdmissions(ctx context.Context, credential string) ([]models.Admission, error) {
	var res []models.Admission
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"admissions", "my"}, credential: credential}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, credential string, req models.ReviewRequest) (models.Review, error) {
	var res models.Review
	err := c.do(ctx, call{method: http.MethodPost, path: []string{"reviews"}, credential: credential, body: req}, &res)
	if err != nil {
		return models.Review{}, err
	}
	return res, nil
}

func (c *HTTPClient) CollegeReviews(ctx context.Context, collegeID string) ([]models.Review, error) {
	var res []models.Review
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"reviews", "college", url.PathEscape(collegeID)}}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *HTTPClient) FeaturedReviews(ctx context.Context, limit int) ([]models.Review, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var res []models.Review
	if err := c.do(ctx, call{method: http.MethodGet, path: []string{"reviews", "featured"}, query: q}, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// rawInto bypasses the envelope unwrapping for endpoints whose siblings of
// "data" matter.
type rawInto struct {
	v any
}

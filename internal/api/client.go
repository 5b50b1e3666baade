// Package api is the authenticated REST client for the Signify backend.
// All bodies are JSON; authenticated calls carry a bearer token and every
// request gets a correlation ID. Non-2xx responses map to typed errors,
// and any 401 on an authenticated call funnels through a single
// session-expired handler.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signify/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource supplies the current bearer token; empty means logged out.
type TokenSource interface {
	Token() string
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
}

// Client issues requests against the Signify backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	onExpired  func()
}

// New creates a client. BaseURL must not have a trailing slash.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     opts.Tokens,
	}
}

// OnSessionExpired registers the single handler invoked when an
// authenticated request returns 401. Typically it clears the session and
// routes back to login.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// do performs one request. out may be nil for empty responses. authed
// attaches the bearer token and arms the 401 funnel.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := logging.L(logging.CategoryAPI)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed",
			zap.String("method", method), zap.String("path", path),
			zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug("request done",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode == http.StatusUnauthorized && authed {
		if c.onExpired != nil {
			c.onExpired()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrSessionExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError maps a non-2xx response to a typed *Error, picking up the
// backend's {"message": ...} body when present.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// Login authenticates with email and password. A 401 maps to a friendly
// invalid-credentials message; it is not session expiry.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out, false)
	if err != nil {
		if apiErr := AsError(err); apiErr != nil && apiErr.IsUnauthorized() {
			apiErr.Message = "Invalid email or password"
		}
		return nil, err
	}
	return &out, nil
}

// Register creates a new admin account. A 409 means the email is taken.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &out, false)
	if err != nil {
		if apiErr := AsError(err); apiErr != nil && apiErr.IsConflict() {
			apiErr.Message = "Email already exists"
		}
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Surveys
// ---------------------------------------------------------------------------

// Surveys lists surveys, optionally filtered by location.
func (c *Client) Surveys(ctx context.Context, filter *Location) ([]Survey, error) {
	query := url.Values{}
	if filter != nil {
		if filter.Country != "" {
			query.Set("country", filter.Country)
		}
		if filter.District != "" {
			query.Set("district", filter.District)
		}
		if filter.Sector != "" {
			query.Set("sector", filter.Sector)
		}
	}
	var out []Survey
	if err := c.do(ctx, http.MethodGet, "/surveys", query, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Survey fetches one survey by ID, including questions and locations.
func (c *Client) Survey(ctx context.Context, id string) (*Survey, error) {
	var out Survey
	if err := c.do(ctx, http.MethodGet, "/surveys/"+url.PathEscape(id), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSurvey creates a survey and returns the stored definition.
func (c *Client) CreateSurvey(ctx context.Context, in CreateSurvey) (*Survey, error) {
	var out Survey
	if err := c.do(ctx, http.MethodPost, "/surveys", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSurvey patches a survey.
func (c *Client) UpdateSurvey(ctx context.Context, id string, in UpdateSurvey) (*Survey, error) {
	var out Survey
	if err := c.do(ctx, http.MethodPatch, "/surveys/"+url.PathEscape(id), nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSurvey deletes a survey. A 403 means the admin lacks permission.
func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/surveys/"+url.PathEscape(id), nil, nil, nil, true)
	if err != nil {
		if apiErr := AsError(err); apiErr != nil && apiErr.IsForbidden() {
			apiErr.Message = "You do not have permission to delete surveys"
		}
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Responses and analytics
// ---------------------------------------------------------------------------

// Responses lists submitted responses, optionally for one survey.
func (c *Client) Responses(ctx context.Context, surveyID string) ([]Response, error) {
	query := url.Values{}
	if surveyID != "" {
		query.Set("surveyId", surveyID)
	}
	var out []Response
	if err := c.do(ctx, http.MethodGet, "/responses", query, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardSummary fetches the home screen totals.
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SurveyAnalytics fetches per-question aggregates for a survey.
func (c *Client) SurveyAnalytics(ctx context.Context, surveyID string) (*SurveyAnalytics, error) {
	var out SurveyAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/survey/"+url.PathEscape(surveyID), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SurveyLocationAnalytics fetches per-location risk counts for a survey.
func (c *Client) SurveyLocationAnalytics(ctx context.Context, surveyID string) ([]LocationAnalytics, error) {
	var out []LocationAnalytics
	path := "/analytics/survey/" + url.PathEscape(surveyID) + "/location"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// LocationStats fetches platform-wide per-location risk counts.
func (c *Client) LocationStats(ctx context.Context) ([]LocationAnalytics, error) {
	var out []LocationAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/location-stats", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// TrendData fetches the weekly response and risk trend.
func (c *Client) TrendData(ctx context.Context) ([]TrendPoint, error) {
	var out []TrendPoint
	if err := c.do(ctx, http.MethodGet, "/analytics/trend-data", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// DistrictDetails fetches the drill-down for one district.
func (c *Client) DistrictDetails(ctx context.Context, district string) (*DistrictDetails, error) {
	var out DistrictDetails
	if err := c.do(ctx, http.MethodGet, "/analytics/district/"+url.PathEscape(district), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// RiskComposition fetches the platform-wide risk breakdown.
func (c *Client) RiskComposition(ctx context.Context) (*RiskComposition, error) {
	var out RiskComposition
	if err := c.do(ctx, http.MethodGet, "/analytics/risk-composition", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// Users lists volunteer and staff accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// DeactivateUser marks a user inactive.
func (c *Client) DeactivateUser(ctx context.Context, userID string) error {
	path := "/users/" + url.PathEscape(userID) + "/deactivate"
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil, true)
}

// ---------------------------------------------------------------------------
// SMS
// ---------------------------------------------------------------------------

// SendSurveyNotification broadcasts a survey invitation to its locations.
func (c *Client) SendSurveyNotification(ctx context.Context, in SurveyNotification) (*SMSResult, error) {
	var out smsEnvelope
	if err := c.do(ctx, http.MethodPost, "/sms/survey-notification", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// SendGeneralNotification broadcasts a free-form message to target
// locations.
func (c *Client) SendGeneralNotification(ctx context.Context, in GeneralNotification) (*SMSResult, error) {
	var out smsEnvelope
	if err := c.do(ctx, http.MethodPost, "/sms/general-notification", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// SendBulkSMS sends a message to an explicit list of phone numbers.
func (c *Client) SendBulkSMS(ctx context.Context, in BulkSMS) (*SMSResult, error) {
	var out smsEnvelope
	if err := c.do(ctx, http.MethodPost, "/sms/send-bulk", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// TestGateway checks SMS gateway connectivity.
func (c *Client) TestGateway(ctx context.Context) (*GatewayTest, error) {
	var out GatewayTest
	if err := c.do(ctx, http.MethodGet, "/sms/test", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

// Notifications lists the broadcast history.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// NotificationStats fetches delivery health for the stats header.
func (c *Client) NotificationStats(ctx context.Context) (*NotificationStats, error) {
	var out NotificationStats
	if err := c.do(ctx, http.MethodGet, "/notifications/stats", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

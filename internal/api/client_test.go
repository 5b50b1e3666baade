package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// httptest servers keep idle keep-alive connections around briefly.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(Options{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Tokens:  staticTokens("tok-abc"),
	})
	return client, srv
}

func TestAuthenticatedRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode([]Survey{})
	}))

	_, err := client.Surveys(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotAccept)
}

func TestLogin_DoesNotSendStaleToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin@signify.gov.rw", creds.Email)

		_ = json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "fresh-token",
			Admin:       AdminIdentity{AdminID: "adm-1", Email: creds.Email, Name: "Admin"},
		})
	}))

	out, err := client.Login(context.Background(), Credentials{
		Email:    "admin@signify.gov.rw",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", out.AccessToken)
	assert.Equal(t, "adm-1", out.Admin.AdminID)
}

func TestLogin_InvalidCredentialsMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), Credentials{})
	require.Error(t, err)
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Contains(t, apiErr.Message, "Invalid email or password")
}

func TestRegister_ConflictMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "duplicate"})
	}))

	_, err := client.Register(context.Background(), Registration{Email: "a@b.c"})
	require.Error(t, err)
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Email already exists", apiErr.Message)
}

func TestSessionExpiredFunnel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	expired := 0
	client.OnSessionExpired(func() { expired++ })

	_, err := client.Surveys(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, expired)

	// Every authenticated endpoint funnels, not just survey deletion.
	err = client.DeleteSurvey(context.Background(), "SURV-001")
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, err = client.Users(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 3, expired)
}

func TestDeleteSurvey_ForbiddenMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/surveys/SURV-001", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
	}))

	err := client.DeleteSurvey(context.Background(), "SURV-001")
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.IsForbidden())
	assert.Contains(t, apiErr.Message, "permission")
}

func TestSurveys_LocationFilterQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Rwanda", q.Get("country"))
		assert.Equal(t, "Gasabo", q.Get("district"))
		assert.Empty(t, q.Get("sector"))
		_ = json.NewEncoder(w).Encode([]Survey{{SurveyID: "SURV-001", Title: "Community Fever Monitoring"}})
	}))

	got, err := client.Surveys(context.Background(), &Location{Country: "Rwanda", District: "Gasabo"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SURV-001", got[0].SurveyID)
}

func TestResponses_SurveyFilter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "SURV-002", r.URL.Query().Get("surveyId"))
		_ = json.NewEncoder(w).Encode([]Response{{ResponseID: "RESP-1", RiskSignal: "high"}})
	}))

	got, err := client.Responses(context.Background(), "SURV-002")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "high", got[0].RiskSignal)
}

func TestSMSEnvelopeUnwrapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in BulkSMS
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []string{"+250780000001", "+250780000002"}, in.PhoneNumbers)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]int{"success": 2, "failed": 0},
		})
	}))

	got, err := client.SendBulkSMS(context.Background(), BulkSMS{
		PhoneNumbers: []string{"+250780000001", "+250780000002"},
		Message:      "Clinic day tomorrow",
	})
	require.NoError(t, err)
	if diff := cmp.Diff(&SMSResult{Success: 2}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestDistrictDetails_PathEscaping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/district/District%20A", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(DistrictDetails{District: "District A", TotalResponses: 42})
	}))

	got, err := client.DistrictDetails(context.Background(), "District A")
	require.NoError(t, err)
	assert.Equal(t, 42, got.TotalResponses)
}

func TestReadFailure_ReturnsErrorNotPlaceholder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "analytics store offline"})
	}))

	got, err := client.RiskComposition(context.Background())
	assert.Nil(t, got)
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "analytics store offline", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestStatusOf_NonAPIError(t *testing.T) {
	assert.Equal(t, 0, StatusOf(context.Canceled))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "not-a-time", FormatTimestamp("not-a-time"))
	assert.NotEmpty(t, FormatTimestamp("2026-01-26T08:00:00Z"))
}

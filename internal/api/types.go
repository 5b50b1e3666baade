package api

import (
	"encoding/json"
	"time"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the admin self-registration request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminIdentity describes the authenticated administrator.
type AdminIdentity struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	Admin       AdminIdentity `json:"admin"`
}

// Location is a targeting triple used by surveys and SMS notifications.
type Location struct {
	Country  string `json:"country"`
	District string `json:"district"`
	Sector   string `json:"sector"`
}

// SurveyQuestion is a question attached to a survey definition.
type SurveyQuestion struct {
	QuestionID   string `json:"question_id,omitempty"`
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	IsRequired   bool   `json:"is_required"`
}

// Survey is a survey definition as returned by the backend.
type Survey struct {
	SurveyID    string           `json:"survey_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
	AdminID     string           `json:"adminId,omitempty"`
	Questions   []SurveyQuestion `json:"questions,omitempty"`
	Locations   []Location       `json:"locations,omitempty"`
	Admin       *AdminIdentity   `json:"admin,omitempty"`
	Count       *SurveyCount     `json:"_count,omitempty"`
}

// SurveyCount carries relation counts the backend attaches to surveys.
type SurveyCount struct {
	Responses int `json:"responses"`
}

// ResponseCount returns the response count, tolerating a missing _count.
func (s Survey) ResponseCount() int {
	if s.Count == nil {
		return 0
	}
	return s.Count.Responses
}

// CreateSurvey is the POST /surveys request body.
type CreateSurvey struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Questions   []SurveyQuestion `json:"questions"`
	Locations   []Location       `json:"locations"`
}

// UpdateSurvey is the PATCH /surveys/:id request body. Nil fields are
// omitted and left unchanged by the backend.
type UpdateSurvey struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartDate   *string    `json:"start_date,omitempty"`
	EndDate     *string    `json:"end_date,omitempty"`
	Locations   []Location `json:"locations,omitempty"`
}

// ResponseAnswer is a single answer within a submitted response.
type ResponseAnswer struct {
	AnswerID   string          `json:"answer_id"`
	AnswerText string          `json:"answer_text"`
	ResponseID string          `json:"responseId"`
	QuestionID string          `json:"questionId"`
	Question   *SurveyQuestion `json:"question,omitempty"`
}

// SurveyRef is the abbreviated survey embedded in a response.
type SurveyRef struct {
	SurveyID string `json:"survey_id"`
	Title    string `json:"title"`
}

// Response is a submitted survey response. RiskSignal is computed by the
// backend (low/medium/high); the client only displays it.
type Response struct {
	ResponseID     string           `json:"response_id"`
	AnonymousToken string           `json:"anonymous_token"`
	Country        string           `json:"country"`
	District       string           `json:"district"`
	Sector         string           `json:"sector"`
	SubmittedAt    string           `json:"submitted_at"`
	SurveyID       string           `json:"surveyId"`
	RiskSignal     string           `json:"risk_signal,omitempty"`
	Survey         *SurveyRef       `json:"survey,omitempty"`
	Answers        []ResponseAnswer `json:"answers,omitempty"`
}

// DashboardSummary backs the dashboard home stat cards. RecentActivity is
// passed through unparsed; the backend has not stabilized its shape.
type DashboardSummary struct {
	TotalSurveys   int               `json:"totalSurveys"`
	TotalResponses int               `json:"totalResponses"`
	ActiveSurveys  int               `json:"activeSurveys"`
	RecentActivity []json.RawMessage `json:"recentActivity,omitempty"`
}

// LocationAnalytics is one row of risk counts per location.
type LocationAnalytics struct {
	Location   string `json:"location"`
	LowRisk    int    `json:"low_risk"`
	MediumRisk int    `json:"medium_risk"`
	HighRisk   int    `json:"high_risk"`
}

// Total returns the summed signal count for the location.
func (l LocationAnalytics) Total() int {
	return l.LowRisk + l.MediumRisk + l.HighRisk
}

// RiskComposition is the platform-wide risk breakdown.
type RiskComposition struct {
	HighRisk     int `json:"high_risk"`
	MediumRisk   int `json:"medium_risk"`
	LowRisk      int `json:"low_risk"`
	TotalSignals int `json:"total_signals"`
}

// TrendPoint is one day of response volume and risk alerts.
type TrendPoint struct {
	Day       string `json:"day"`
	Responses int    `json:"responses"`
	Risk      int    `json:"risk"`
}

// QuestionBreakdown aggregates answers for one question of a survey.
type QuestionBreakdown struct {
	QuestionID   string  `json:"question_id"`
	QuestionText string  `json:"question_text"`
	QuestionType string  `json:"question_type"`
	YesCount     int     `json:"yes_count"`
	NoCount      int     `json:"no_count"`
	AverageValue float64 `json:"average_value"`
}

// SurveyAnalytics is the per-survey aggregate view.
type SurveyAnalytics struct {
	SurveyID       string              `json:"survey_id"`
	TotalResponses int                 `json:"total_responses"`
	Questions      []QuestionBreakdown `json:"questions"`
}

// SectorStat is a per-sector slice of a district drill-down.
type SectorStat struct {
	Sector    string `json:"sector"`
	Responses int    `json:"responses"`
	HighRisk  int    `json:"high_risk"`
}

// DistrictDetails is the drill-down for a single district.
type DistrictDetails struct {
	District       string          `json:"district"`
	TotalResponses int             `json:"total_responses"`
	Composition    RiskComposition `json:"composition"`
	Sectors        []SectorStat    `json:"sectors,omitempty"`
}

// User is a field volunteer or staff account.
type User struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	District    string `json:"district"`
	Sector      string `json:"sector"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	LastLogin   string `json:"last_login,omitempty"`
}

// SMSResult carries delivery counts for an SMS broadcast.
type SMSResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// smsEnvelope is how the SMS endpoints wrap their result.
type smsEnvelope struct {
	Results SMSResult `json:"results"`
}

// SurveyNotification is the POST /sms/survey-notification request body.
type SurveyNotification struct {
	SurveyTitle     string     `json:"survey_title"`
	SurveyLocations []Location `json:"survey_locations"`
}

// GeneralNotification is the POST /sms/general-notification request body.
type GeneralNotification struct {
	Message         string     `json:"message"`
	TargetLocations []Location `json:"target_locations"`
}

// BulkSMS is the POST /sms/send-bulk request body.
type BulkSMS struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Message      string   `json:"message"`
}

// GatewayTest is the GET /sms/test result.
type GatewayTest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Notification is one broadcast in the notification history.
type Notification struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Type           string   `json:"type"`            // survey, alert, info, reminder
	TargetAudience string   `json:"target_audience"` // all, volunteers, health_officers, district_managers
	DeliveryMethod string   `json:"delivery_method"` // sms, push, email, in_app
	Status         string   `json:"status"`          // pending, sent, failed, scheduled
	DeliveryRate   *float64 `json:"delivery_rate"`
	CreatedAt      string   `json:"created_at"`
	ScheduledAt    string   `json:"scheduled_at,omitempty"`
	SentAt         string   `json:"sent_at,omitempty"`
}

// NotificationStats summarizes broadcast delivery health.
type NotificationStats struct {
	TotalSent        int     `json:"total_sent"`
	TotalPending     int     `json:"total_pending"`
	TotalFailed      int     `json:"total_failed"`
	DeliveryRate     float64 `json:"delivery_rate"`
	GatewayStatus    string  `json:"gateway_status"` // online, offline
	CreditsRemaining int     `json:"credits_remaining"`
}

// FormatTimestamp renders a backend RFC3339 timestamp for display,
// passing through values that fail to parse.
func FormatTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}

package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"signify/internal/api"
)

func sampleSurveys() []api.Survey {
	return []api.Survey{
		{SurveyID: "SURV-001", Title: "Fever Monitoring", Status: "active"},
		{SurveyID: "SURV-002", Title: "Water Quality", Status: "draft"},
		{SurveyID: "SURV-003", Title: "Maternal Health", Status: "active"},
		{SurveyID: "SURV-004", Title: "Old Campaign", Status: "archived"},
	}
}

func TestSurveysStatusFilterCycle(t *testing.T) {
	p := newSurveysPage(nil, testStyles())
	p.surveys = sampleSurveys()

	if got := len(p.visible()); got != 4 {
		t.Fatalf("unfiltered count = %d, want 4", got)
	}

	p.filter = 1 // active
	vis := p.visible()
	if len(vis) != 2 {
		t.Fatalf("active count = %d, want 2", len(vis))
	}
	for _, s := range vis {
		if s.Status != "active" {
			t.Fatalf("filter leaked %q survey", s.Status)
		}
	}

	p.filter = 3 // archived
	if got := len(p.visible()); got != 1 {
		t.Fatalf("archived count = %d, want 1", got)
	}
}

func TestSurveysTitleAndIDSearch(t *testing.T) {
	p := newSurveysPage(nil, testStyles())
	p.surveys = sampleSurveys()

	p.search.SetValue("water")
	vis := p.visible()
	if len(vis) != 1 || vis[0].SurveyID != "SURV-002" {
		t.Fatalf("title search = %+v, want just SURV-002", vis)
	}

	p.search.SetValue("surv-003")
	vis = p.visible()
	if len(vis) != 1 || vis[0].Title != "Maternal Health" {
		t.Fatalf("id search = %+v, want Maternal Health", vis)
	}

	// Search composes with the status filter.
	p.search.SetValue("surv")
	p.filter = 1 // active
	if got := len(p.visible()); got != 2 {
		t.Fatalf("combined filter count = %d, want 2", got)
	}
}

func TestSurveysOptimisticRemoval(t *testing.T) {
	p := newSurveysPage(nil, testStyles())
	p.surveys = sampleSurveys()
	p.cursor = 3

	p.removeSurvey("SURV-004")
	if got := len(p.surveys); got != 3 {
		t.Fatalf("count after removal = %d, want 3", got)
	}
	if p.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after trailing removal", p.cursor)
	}
}

func TestNextStatusCycle(t *testing.T) {
	cases := map[string]string{
		"draft":    "active",
		"active":   "archived",
		"archived": "draft",
		"":         "draft",
	}
	for from, want := range cases {
		if got := nextStatus(from); got != want {
			t.Errorf("nextStatus(%q) = %q, want %q", from, got, want)
		}
	}
}

func TestSurveysStatusRevertOnFailure(t *testing.T) {
	p := newSurveysPage(nil, testStyles())
	p.surveys = sampleSurveys()
	p.setStatus("SURV-002", "active")

	p, _ = p.update(surveyStatusMsg{
		err:      &api.Error{Status: 500, Message: "backend down"},
		surveyID: "SURV-002",
		prev:     "draft",
	})
	for _, s := range p.surveys {
		if s.SurveyID == "SURV-002" && s.Status != "draft" {
			t.Fatalf("status not reverted, got %q", s.Status)
		}
	}
	if p.notice == "" {
		t.Fatal("failure left no notice")
	}
}

func TestMonitoringSearchFilter(t *testing.T) {
	p := newMonitoringPage(nil, testStyles())
	p.responses = []api.Response{
		{ResponseID: "R1", District: "Gasabo", Sector: "Remera", AnonymousToken: "tok-aaa"},
		{ResponseID: "R2", District: "Nyarugenge", Sector: "Gitega", AnonymousToken: "tok-bbb"},
		{ResponseID: "R3", District: "Gasabo", Sector: "Kimironko", AnonymousToken: "tok-ccc"},
	}

	p.search.SetValue("gasabo")
	if got := len(p.filtered()); got != 2 {
		t.Fatalf("district filter count = %d, want 2", got)
	}

	p.search.SetValue("tok-bbb")
	rows := p.filtered()
	if len(rows) != 1 || rows[0].ResponseID != "R2" {
		t.Fatalf("token filter = %+v, want just R2", rows)
	}

	p.search.SetValue("")
	if got := len(p.filtered()); got != 3 {
		t.Fatalf("empty filter count = %d, want 3", got)
	}
}

func TestUsersDeactivateRevertOnFailure(t *testing.T) {
	p := newUsersPage(nil, testStyles())
	p.users = []api.User{
		{UserID: "U1", Name: "Alice", IsActive: true},
		{UserID: "U2", Name: "Bob", IsActive: true},
	}
	p.setActive("U2", false)

	p, _ = p.update(userDeactivatedMsg{userID: "U2", err: &api.Error{Status: 500}})
	if !p.users[1].IsActive {
		t.Fatal("deactivation not reverted after failure")
	}
}

func TestUsersExportCSV(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	p := newUsersPage(nil, testStyles())
	p.users = []api.User{
		{UserID: "U1", Name: "Alice", Email: "alice@example.org", District: "Gasabo", IsActive: true},
		{UserID: "U2", Name: "Bob", Email: "bob@example.org", District: "Huye", IsActive: false},
	}

	msg := p.exportCSV()()
	exported, ok := msg.(usersExportedMsg)
	if !ok {
		t.Fatalf("export message = %#v", msg)
	}
	if exported.err != nil {
		t.Fatalf("export failed: %v", exported.err)
	}
	if exported.n != 2 {
		t.Fatalf("exported rows = %d, want 2", exported.n)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(exported.path)))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	content := string(data)
	for _, want := range []string{"Name,Email,Phone", "alice@example.org", "Huye", "yes", "no"} {
		if !strings.Contains(content, want) {
			t.Errorf("export missing %q:\n%s", want, content)
		}
	}
}

func TestSplitNumbers(t *testing.T) {
	got := splitNumbers("078000001\n 078000002 ,078000003,\n\n")
	want := []string{"078000001", "078000002", "078000003"}
	if len(got) != len(want) {
		t.Fatalf("splitNumbers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitNumbers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSMSActiveSurveyPicker(t *testing.T) {
	p := newSMSPage(nil, testStyles())
	p.surveys = sampleSurveys()

	active := p.activeSurveys()
	if len(active) != 2 {
		t.Fatalf("active surveys = %d, want 2", len(active))
	}
	for _, s := range active {
		if s.Status != "active" {
			t.Fatalf("picker includes %q survey", s.Status)
		}
	}
}

func TestNotificationsSelection(t *testing.T) {
	p := newNotificationsPage(nil, testStyles())
	if p.selected() != nil {
		t.Fatal("empty page returned a selection")
	}
	p.notifications = []api.Notification{
		{ID: "N1", Title: "Survey Launch", Message: "A new survey is live."},
	}
	sel := p.selected()
	if sel == nil || sel.ID != "N1" {
		t.Fatalf("selected = %+v, want N1", sel)
	}
}

func TestErrorTextPrefersBackendMessage(t *testing.T) {
	err := &api.Error{Status: 403, Message: "You do not have permission to delete surveys"}
	if got := errorText(err); got != "You do not have permission to delete surveys" {
		t.Fatalf("errorText = %q", got)
	}
	if got := errorText(os.ErrClosed); got != os.ErrClosed.Error() {
		t.Fatalf("errorText fallback = %q", got)
	}
}

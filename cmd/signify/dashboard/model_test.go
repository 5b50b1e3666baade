package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"signify/internal/api"
	"signify/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func testDeps(t *testing.T, authed bool) Deps {
	t.Helper()
	store := session.NewStore(session.DefaultPath(t.TempDir()))
	if authed {
		if err := store.Save(session.Session{
			Token: "tok",
			Admin: session.Admin{AdminID: "ADM-1", Email: "admin@example.org", Name: "Amina"},
		}); err != nil {
			t.Fatal(err)
		}
	}
	client := api.New(api.Options{BaseURL: "http://localhost:3005", Tokens: store})
	return Deps{Client: client, Sessions: store, Styles: testStyles()}
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func TestNewRoutesByPersistedSession(t *testing.T) {
	if m := New(testDeps(t, false)); m.view != ViewLanding {
		t.Fatalf("unauthenticated start view = %d, want landing", m.view)
	}
	if m := New(testDeps(t, true)); m.view != ViewDashboard {
		t.Fatalf("authenticated start view = %d, want dashboard", m.view)
	}
}

func TestSessionExpiryFunnelsToLogin(t *testing.T) {
	deps := testDeps(t, true)
	m := sized(t, New(deps))

	expired := surveysLoadedMsg{err: fmt.Errorf("listing surveys: %w", api.ErrSessionExpired)}
	updated, _ := m.Update(expired)
	got := updated.(Model)

	if got.view != ViewLogin {
		t.Fatalf("view after expiry = %d, want login", got.view)
	}
	if deps.Sessions.Authenticated() {
		t.Fatal("session not cleared on expiry")
	}
	if !strings.Contains(got.login.view(), "Session expired") {
		t.Fatal("login view missing expiry notice")
	}
}

func TestTabSwitchingKeys(t *testing.T) {
	m := sized(t, New(testDeps(t, true)))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	got := updated.(Model)
	if got.tab != TabSurveys {
		t.Fatalf("tab after tab key = %v, want surveys", got.tab)
	}
	if cmd == nil {
		t.Fatal("tab switch did not schedule a fetch")
	}

	updated, _ = got.Update(keyRune('5'))
	got = updated.(Model)
	if got.tab != TabUsers {
		t.Fatalf("tab after 5 = %v, want users", got.tab)
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	got = updated.(Model)
	if got.tab != TabAnalytics {
		t.Fatalf("tab after shift+tab = %v, want analytics", got.tab)
	}
}

func TestLandingKeysRouteViews(t *testing.T) {
	m := sized(t, New(testDeps(t, false)))

	updated, _ := m.Update(keyRune('s'))
	if got := updated.(Model); got.view != ViewLogin {
		t.Fatalf("view after s = %d, want login", got.view)
	}

	updated, _ = m.Update(keyRune('d'))
	if got := updated.(Model); got.view != ViewIntake {
		t.Fatalf("view after d = %d, want intake", got.view)
	}
}

func TestIntakeDoneReturnsWhereItCameFrom(t *testing.T) {
	anon := sized(t, New(testDeps(t, false)))
	anon.view = ViewIntake
	updated, _ := anon.Update(intakeDoneMsg{completed: true})
	if got := updated.(Model); got.view != ViewLanding {
		t.Fatalf("anonymous intake done view = %d, want landing", got.view)
	}

	authed := sized(t, New(testDeps(t, true)))
	authed.view = ViewIntake
	updated, _ = authed.Update(intakeDoneMsg{completed: true})
	got := updated.(Model)
	if got.view != ViewDashboard {
		t.Fatalf("admin intake done view = %d, want dashboard", got.view)
	}
	if got.status == "" {
		t.Fatal("completion left no status line")
	}
}

func TestDashboardViewShowsTabsAndAdmin(t *testing.T) {
	m := sized(t, New(testDeps(t, true)))
	view := m.View()
	for _, want := range []string{"Surveys", "Monitoring", "Analytics", "Amina"} {
		if !strings.Contains(view, want) {
			t.Fatalf("dashboard view missing %q", want)
		}
	}
}

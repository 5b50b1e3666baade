package ui

import (
	"strings"
	"testing"
)

func TestRiskBarChart_EmptyAndPopulated(t *testing.T) {
	s := testStyles()

	if got := RiskBarChart(s, nil, 60); !strings.Contains(got, "No analytics data.") {
		t.Fatalf("expected empty placeholder, got %q", got)
	}

	bars := []RiskBar{
		{Label: "District A", Low: 400, Medium: 240, High: 100},
		{Label: "District B", Low: 300, Medium: 139, High: 221},
	}
	got := RiskBarChart(s, bars, 60)
	if !strings.Contains(got, "District A") || !strings.Contains(got, "District B") {
		t.Fatalf("expected district labels:\n%s", got)
	}
	if !strings.Contains(got, "740") {
		t.Fatalf("expected total count 740:\n%s", got)
	}
}

func TestRiskBarChart_ZeroCountsDoNotDivideByZero(t *testing.T) {
	got := RiskBarChart(testStyles(), []RiskBar{{Label: "Empty"}}, 40)
	if !strings.Contains(got, "Empty") {
		t.Fatalf("expected label:\n%s", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]int{0, 0}); got != "▁▁" {
		t.Fatalf("flat zero series, got %q", got)
	}
	got := Sparkline([]int{450, 520, 610, 580, 700, 320, 250})
	if len([]rune(got)) != 7 {
		t.Fatalf("expected 7 cells, got %q", got)
	}
	// The maximum value maps to the tallest block.
	if !strings.ContainsRune(got, '█') {
		t.Fatalf("expected a full block for the max, got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	s := testStyles()
	if got := ProgressBar(s, 1, 0, 10); got != "" {
		t.Fatalf("zero total must render nothing, got %q", got)
	}
	got := ProgressBar(s, 2, 4, 10)
	if !strings.Contains(got, "█████") {
		t.Fatalf("expected half-filled bar, got %q", got)
	}
}

func TestStatCard(t *testing.T) {
	got := StatCard(testStyles(), "Total Responses", "12,847", "vs last month")
	for _, want := range []string{"Total Responses", "12,847", "vs last month"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in card:\n%s", want, got)
		}
	}
}

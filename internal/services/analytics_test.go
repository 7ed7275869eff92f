package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/repos"
	"github.com/yungbote/harmonynav-backend/internal/repos/testutil"
)

func newAnalyticsService(t *testing.T, records RecordService) AnalyticsService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAnalyticsService(
		log,
		repos.NewRecordRepo(db, log),
		records,
		harmony.DefaultDomainSet(),
		harmony.DefaultRecipes(),
		DefaultEngineParams(),
	)
}

func TestAnalyticsService_DashboardEmpty(t *testing.T) {
	rs := newRecordService(t)
	as := newAnalyticsService(t, rs)
	user := seedServiceUser(t, "analyticssvc_alice")

	dash, err := as.Dashboard(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(dash.Series) != 0 {
		t.Fatalf("expected empty series, got %d points", len(dash.Series))
	}
	if dash.Discrepancy != nil {
		t.Fatalf("expected no discrepancy verdict without records")
	}
	if dash.Streak != 0 {
		t.Fatalf("expected streak 0, got %d", dash.Streak)
	}
}

func TestAnalyticsService_DashboardWithHistory(t *testing.T) {
	rs := newRecordService(t)
	as := newAnalyticsService(t, rs)
	user := seedServiceUser(t, "analyticssvc_bob")
	ctx := context.Background()

	today := time.Now().UTC()
	for i := 2; i >= 0; i-- {
		in := quickInput(user.ID, today.AddDate(0, 0, -i))
		if _, err := rs.Submit(ctx, in); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	dash, err := as.Dashboard(ctx, user.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(dash.Series) != 3 {
		t.Fatalf("expected 3 series points, got %d", len(dash.Series))
	}
	for i := 1; i < len(dash.Series); i++ {
		if dash.Series[i].Date.Before(dash.Series[i-1].Date) {
			t.Fatalf("series out of order")
		}
	}
	if dash.RHI.MeanH <= 0 {
		t.Fatalf("expected positive mean H, got %v", dash.RHI.MeanH)
	}
	if dash.RHI.RHI > dash.RHI.MeanH {
		t.Fatalf("RHI %v above mean %v", dash.RHI.RHI, dash.RHI.MeanH)
	}
	if dash.Discrepancy == nil {
		t.Fatalf("expected a discrepancy verdict with history")
	}
	if !dash.Discrepancy.Dynamic {
		t.Fatalf("expected dynamic threshold with 3 records")
	}
	if dash.Recommendation.FocusDomain == "" {
		t.Fatalf("expected a focus domain with history")
	}
	if len(dash.Recommendation.Suggestions) == 0 || len(dash.Recommendation.Suggestions) > 2 {
		t.Fatalf("expected 1-2 suggestions, got %v", dash.Recommendation.Suggestions)
	}
	if dash.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", dash.Streak)
	}
}

package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/repos"
)

type HPoint struct {
	Date time.Time `json:"date"`
	H    float64   `json:"h"`
	G    float64   `json:"g"`
}

type Dashboard struct {
	Series         []HPoint                   `json:"series"`
	RHI            harmony.RHIResult          `json:"rhi"`
	Discrepancy    *harmony.DiscrepancyResult `json:"discrepancy,omitempty"`
	Recommendation harmony.Recommendation     `json:"recommendation"`
	Streak         int                        `json:"streak"`
}

// AnalyticsService derives everything the dashboard shows from the record
// set. It is read-only over records.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error)
}

type analyticsService struct {
	log        *logger.Logger
	recordRepo repos.RecordRepo
	records    RecordService
	domains    harmony.DomainSet
	recipes    map[string][]string
	params     EngineParams
}

func NewAnalyticsService(
	log *logger.Logger,
	recordRepo repos.RecordRepo,
	records RecordService,
	domains harmony.DomainSet,
	recipes map[string][]string,
	params EngineParams,
) AnalyticsService {
	return &analyticsService{
		log:        log.With("service", "AnalyticsService"),
		recordRepo: recordRepo,
		records:    records,
		domains:    domains,
		recipes:    recipes,
		params:     params,
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	records, err := s.recordRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load records: %w", err)
	}
	summaries := s.records.Summarize(records)

	out := Dashboard{Series: make([]HPoint, 0, len(summaries))}
	var gapHistory []harmony.GapPoint
	var window []float64
	for _, r := range summaries {
		out.Series = append(out.Series, HPoint{Date: r.Date, H: r.H, G: r.G})
		gapHistory = append(gapHistory, harmony.GapPoint{H: r.H, G: r.G})
		window = append(window, r.H)
	}
	if s.params.RHIWindow > 0 && len(window) > s.params.RHIWindow {
		window = window[len(window)-s.params.RHIWindow:]
	}
	out.RHI = harmony.ComputeRHI(window, s.params.RHI)

	if res, ok := harmony.AnalyzeDiscrepancy(gapHistory); ok {
		out.Discrepancy = &res
	}

	windowStart := 0
	if s.params.RHIWindow > 0 && len(summaries) > s.params.RHIWindow {
		windowStart = len(summaries) - s.params.RHIWindow
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out.Recommendation = harmony.Recommend(s.domains, summaries[windowStart:], s.recipes, rng)

	dates := make([]time.Time, len(summaries))
	for i, r := range summaries {
		dates[i] = r.Date
	}
	out.Streak = harmony.Streak(dates, time.Now())
	return out, nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/harmonynav-backend/internal/clients/redis"
	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/logcipher"
	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/repos"
	"github.com/yungbote/harmonynav-backend/internal/tablestore"
	"github.com/yungbote/harmonynav-backend/internal/types"
)

type SubmitRecordInput struct {
	UserID        uuid.UUID
	Date          time.Time
	Mode          harmony.Mode
	Weights       map[string]float64 // percentage points, must sum to 100
	DomainScores  map[string]float64 // quick mode direct entry
	ElementScores map[string]float64 // deep mode raw elements
	GHappiness    int
	EventLog      string
	LogKey        string // user-supplied key for the event log cipher
	Consent       bool
}

type SubmitRecordOutput struct {
	Record          *types.DailyRecord    `json:"record"`
	Scores          harmony.Scores        `json:"scores"`
	Streak          int                   `json:"streak"`
	NewAchievements []harmony.Achievement `json:"new_achievements"`
}

type RecordService interface {
	Submit(ctx context.Context, in SubmitRecordInput) (SubmitRecordOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID, logKey string) ([]*types.DailyRecord, error)
	ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	Summarize(records []*types.DailyRecord) []harmony.RecordSummary
}

type recordService struct {
	db         *gorm.DB
	log        *logger.Logger
	recordRepo repos.RecordRepo
	userRepo   repos.UserRepo
	tokenRepo  repos.UserTokenRepo
	sessions   redis.SessionStore
	domains    harmony.DomainSet
	params     EngineParams
}

// EngineParams are the tunable scoring parameters, env-overridable with the
// documented defaults.
type EngineParams struct {
	Alpha     float64
	RHI       harmony.RHIParams
	RHIWindow int
}

func DefaultEngineParams() EngineParams {
	return EngineParams{
		Alpha:     harmony.DefaultAlpha,
		RHI:       harmony.DefaultRHIParams(),
		RHIWindow: 14,
	}
}

func NewRecordService(
	db *gorm.DB,
	log *logger.Logger,
	recordRepo repos.RecordRepo,
	userRepo repos.UserRepo,
	tokenRepo repos.UserTokenRepo,
	sessions redis.SessionStore,
	domains harmony.DomainSet,
	params EngineParams,
) RecordService {
	return &recordService{
		db:         db,
		log:        log.With("service", "RecordService"),
		recordRepo: recordRepo,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		sessions:   sessions,
		domains:    domains,
		params:     params,
	}
}

// Submit validates, scores and persists one day's entry, overwriting any
// prior entry for the same date, then advances streak and achievement state.
// The returned scores are exactly what was persisted; a failed write returns
// an error and leaves the prior state authoritative.
func (rs *recordService) Submit(ctx context.Context, in SubmitRecordInput) (SubmitRecordOutput, error) {
	if in.UserID == uuid.Nil {
		return SubmitRecordOutput{}, fmt.Errorf("missing user id")
	}
	if in.Date.IsZero() {
		return SubmitRecordOutput{}, fmt.Errorf("record has no date key")
	}
	if err := rs.validateVectors(in); err != nil {
		return SubmitRecordOutput{}, err
	}

	existing, err := rs.recordRepo.ListByUser(ctx, nil, in.UserID)
	if err != nil {
		return SubmitRecordOutput{}, fmt.Errorf("load records: %w", err)
	}

	prior := map[string]float64{}
	for _, r := range existing {
		if sameDay(r.Date, in.Date) {
			prior = types.FloatMap(r.Satisfaction)
			break
		}
	}

	// Elements are the source of truth whenever present.
	var satisfaction map[string]float64
	if len(in.ElementScores) > 0 {
		satisfaction = harmony.AggregateSatisfaction(rs.domains, in.ElementScores, prior)
	} else {
		satisfaction = harmony.PassthroughSatisfaction(rs.domains, in.DomainScores)
	}

	weights := make(map[string]float64, len(in.Weights))
	for d, w := range in.Weights {
		weights[d] = w / 100.0
	}

	record := &types.DailyRecord{
		ID:           uuid.New(),
		UserID:       in.UserID,
		Date:         dayOf(in.Date),
		CreatedAt:    time.Now().UTC(),
		Mode:         string(in.Mode),
		Consent:      in.Consent,
		Weights:      types.ToJSONMap(weights),
		Satisfaction: types.ToJSONMap(satisfaction),
		Elements:     types.ToJSONMap(in.ElementScores),
		GHappiness:   in.GHappiness,
		EventLog:     logcipher.Encrypt(in.EventLog, in.LogKey),
	}
	if err := rs.recordRepo.Upsert(ctx, nil, record); err != nil {
		return SubmitRecordOutput{}, fmt.Errorf("persist record: %w", err)
	}

	scores := rs.scoreRecord(record)
	out := SubmitRecordOutput{Record: record, Scores: scores}

	// Re-read so streak and achievements see exactly what is persisted.
	records, err := rs.recordRepo.ListByUser(ctx, nil, in.UserID)
	if err != nil {
		return out, fmt.Errorf("reload records: %w", err)
	}
	summaries := rs.Summarize(records)

	dates := make([]time.Time, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	out.Streak = harmony.Streak(dates, time.Now())

	rhi := harmony.ComputeRHI(trailingH(summaries, rs.params.RHIWindow), rs.params.RHI)
	unlocked, sErr := rs.sessions.UnlockedAchievements(ctx, in.UserID.String())
	if sErr != nil {
		rs.log.Warn("Failed to load unlocked achievements", "error", sErr)
		unlocked = map[string]bool{}
	}
	newly := harmony.EvaluateAchievements(harmony.DefaultAchievements(), harmony.AchievementInput{
		Records: summaries,
		Streak:  out.Streak,
		RHI:     &rhi,
	}, unlocked)
	if len(newly) > 0 {
		ids := make([]string, len(newly))
		for i, a := range newly {
			ids[i] = a.ID
		}
		if mErr := rs.sessions.MarkUnlocked(ctx, in.UserID.String(), ids); mErr != nil {
			rs.log.Warn("Failed to persist unlocked achievements", "error", mErr)
		}
	}
	out.NewAchievements = newly
	return out, nil
}

func (rs *recordService) validateVectors(in SubmitRecordInput) error {
	total := 0.0
	for d, w := range in.Weights {
		if _, ok := rs.domains.Index(d); !ok {
			return fmt.Errorf("unknown domain %q in value weights", d)
		}
		if w < 0 {
			return fmt.Errorf("negative value weight for %q", d)
		}
		total += w
	}
	if total != 100 {
		return fmt.Errorf("value weights must sum to 100, got %v", total)
	}
	for d, s := range in.DomainScores {
		if _, ok := rs.domains.Index(d); !ok {
			return fmt.Errorf("unknown domain %q in satisfaction", d)
		}
		if s < 0 || s > 100 {
			return fmt.Errorf("satisfaction for %q out of range", d)
		}
	}
	for e, s := range in.ElementScores {
		if _, ok := rs.domains.ElementDomain(e); !ok {
			return fmt.Errorf("unknown element %q", e)
		}
		if s < 0 || s > 100 {
			return fmt.Errorf("element score for %q out of range", e)
		}
	}
	if in.GHappiness < 0 || in.GHappiness > 100 {
		return fmt.Errorf("holistic rating out of range")
	}
	return nil
}

func (rs *recordService) ListByUser(ctx context.Context, userID uuid.UUID, logKey string) ([]*types.DailyRecord, error) {
	records, err := rs.recordRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if logKey != "" {
		for _, r := range records {
			r.EventLog = logcipher.Decrypt(r.EventLog, logKey)
		}
	}
	return records, nil
}

// ExportCSV writes the user's records in the legacy spreadsheet column
// layout. Event logs stay ciphertext.
func (rs *recordService) ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	records, err := rs.recordRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	t := tablestore.Table{Columns: rs.legacyColumns()}
	for _, r := range records {
		row := tablestore.Row{
			tablestore.ColUserID:    r.UserID.String(),
			tablestore.ColDate:      r.Date.Format("2006-01-02"),
			tablestore.ColCreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
			"mode":                  r.Mode,
			"consent":               strconv.FormatBool(r.Consent),
			"g_happiness":           strconv.Itoa(r.GHappiness),
			"event_log":             r.EventLog,
		}
		for d, v := range types.FloatMap(r.Weights) {
			row["q_"+d] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		for d, v := range types.FloatMap(r.Satisfaction) {
			row["s_"+d] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		for e, v := range types.FloatMap(r.Elements) {
			row["s_element_"+e] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		t.Rows = append(t.Rows, row)
	}
	return tablestore.WriteCSV(w, t)
}

func (rs *recordService) legacyColumns() []string {
	cols := []string{tablestore.ColUserID, tablestore.ColDate, tablestore.ColCreatedAt, "mode", "consent"}
	for _, d := range rs.domains.Domains {
		cols = append(cols, "q_"+d.ID)
	}
	for _, d := range rs.domains.Domains {
		cols = append(cols, "s_"+d.ID)
	}
	for _, e := range rs.domains.ElementIDs() {
		cols = append(cols, "s_element_"+e)
	}
	return append(cols, "g_happiness", "event_log")
}

// DeleteAccount removes the user and every record they own. This is the only
// path that deletes records.
func (rs *recordService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := rs.recordRepo.DeleteByUser(ctx, tx, userID); dErr != nil {
			return fmt.Errorf("delete records: %w", dErr)
		}
		if dErr := rs.tokenRepo.DeleteByUser(ctx, tx, userID); dErr != nil {
			return fmt.Errorf("delete tokens: %w", dErr)
		}
		if dErr := rs.userRepo.Delete(ctx, tx, userID); dErr != nil {
			return fmt.Errorf("delete user: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if cErr := rs.sessions.Clear(ctx, userID.String()); cErr != nil {
		rs.log.Warn("Failed to clear session state", "user_id", userID, "error", cErr)
	}
	return nil
}

// Summarize builds the read-only record view the analytics operate on, with
// H computed from the persisted vectors.
func (rs *recordService) Summarize(records []*types.DailyRecord) []harmony.RecordSummary {
	out := make([]harmony.RecordSummary, 0, len(records))
	for _, r := range records {
		weights := types.FloatMap(r.Weights)
		satisfaction := types.FloatMap(r.Satisfaction)
		q, s := rs.vectors(weights, satisfaction)
		scores := harmony.Score(q, s, rs.params.Alpha)
		out = append(out, harmony.RecordSummary{
			Date:         r.Date,
			Mode:         harmony.Mode(r.Mode),
			H:            scores.H,
			G:            float64(r.GHappiness),
			Weights:      weights,
			Satisfaction: satisfaction,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (rs *recordService) scoreRecord(r *types.DailyRecord) harmony.Scores {
	q, s := rs.vectors(types.FloatMap(r.Weights), types.FloatMap(r.Satisfaction))
	return harmony.Score(q, s, rs.params.Alpha)
}

// vectors lays the weight and satisfaction maps out in domain order. At
// scoring time a missing satisfaction entry counts as 0.
func (rs *recordService) vectors(weights, satisfaction map[string]float64) ([]float64, []float64) {
	n := rs.domains.N()
	q := make([]float64, n)
	s := make([]float64, n)
	for i, d := range rs.domains.Domains {
		q[i] = weights[d.ID]
		s[i] = satisfaction[d.ID]
	}
	return q, s
}

func trailingH(summaries []harmony.RecordSummary, window int) []float64 {
	start := 0
	if window > 0 && len(summaries) > window {
		start = len(summaries) - window
	}
	out := make([]float64, 0, len(summaries)-start)
	for _, r := range summaries[start:] {
		out = append(out, r.H)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

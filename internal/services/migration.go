package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/harmonynav-backend/internal/harmony"
	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/repos"
	"github.com/yungbote/harmonynav-backend/internal/tablestore"
	"github.com/yungbote/harmonynav-backend/internal/types"
)

// synthesizedClock mirrors the legacy table migration: records that predate
// creation timestamps get their date at noon UTC, for stable same-day
// ordering without moving the date key.
const synthesizedClock = 12 * time.Hour

// MigrationService keeps persisted records structurally consistent with the
// current schema. It runs once per session load, upstream of all analytics.
type MigrationService interface {
	MigrateUser(ctx context.Context, userID uuid.UUID) error
	MigrateLegacyDataset(ctx context.Context, store tablestore.Store, userID string) error
}

type migrationService struct {
	db         *gorm.DB
	log        *logger.Logger
	recordRepo repos.RecordRepo
	domains    harmony.DomainSet
}

func NewMigrationService(db *gorm.DB, log *logger.Logger, recordRepo repos.RecordRepo, domains harmony.DomainSet) MigrationService {
	return &migrationService{
		db:         db,
		log:        log.With("service", "MigrationService"),
		recordRepo: recordRepo,
		domains:    domains,
	}
}

// MigrateUser loads one user's full record set, adds any expected element
// field that is absent across the whole set (with a nil missing-value
// marker), synthesizes creation timestamps where absent, and writes back only
// the rows that changed, each through its own (user_id, date)-scoped upsert,
// so no other user's rows are ever rewritten.
func (ms *migrationService) MigrateUser(ctx context.Context, userID uuid.UUID) error {
	records, err := ms.recordRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r.Date.IsZero() {
			return fmt.Errorf("record %s has no date key", r.ID)
		}
	}

	expected := ms.domains.ElementIDs()
	changed := make(map[uuid.UUID]bool)

	for _, field := range expected {
		if elementPresent(records, field) {
			continue
		}
		for _, r := range records {
			if r.Elements == nil {
				r.Elements = map[string]interface{}{}
			}
			r.Elements[field] = nil
			changed[r.ID] = true
		}
	}

	for _, r := range records {
		if !r.CreatedAt.IsZero() {
			continue
		}
		day := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		r.CreatedAt = day.Add(synthesizedClock)
		changed[r.ID] = true
	}

	if len(changed) == 0 {
		return nil
	}
	ms.log.Info("Migrating records", "user_id", userID, "changed", len(changed))
	return ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range records {
			if !changed[r.ID] {
				continue
			}
			if uErr := ms.recordRepo.Upsert(ctx, tx, r); uErr != nil {
				return fmt.Errorf("upsert migrated record %s: %w", r.ID, uErr)
			}
		}
		return nil
	})
}

// MigrateLegacyDataset migrates one user's rows inside a legacy
// spreadsheet-shaped dataset, under the store's compare-and-swap so a
// concurrent writer to another user's rows is never discarded.
func (ms *migrationService) MigrateLegacyDataset(ctx context.Context, store tablestore.Store, userID string) error {
	return tablestore.MigrateUser(ctx, store, userID, ms.legacyColumns())
}

func (ms *migrationService) legacyColumns() []string {
	cols := []string{tablestore.ColUserID, tablestore.ColDate, tablestore.ColCreatedAt, "mode", "consent"}
	for _, d := range ms.domains.Domains {
		cols = append(cols, "q_"+d.ID)
	}
	for _, d := range ms.domains.Domains {
		cols = append(cols, "s_"+d.ID)
	}
	for _, e := range ms.domains.ElementIDs() {
		cols = append(cols, "s_element_"+e)
	}
	return append(cols, "g_happiness", "event_log")
}

func elementPresent(records []*types.DailyRecord, field string) bool {
	for _, r := range records {
		if _, ok := r.Elements[field]; ok {
			return true
		}
	}
	return false
}

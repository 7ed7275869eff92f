package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/harmonynav-backend/internal/logger"
	"github.com/yungbote/harmonynav-backend/internal/types"
)

type RecordRepo interface {
	// Upsert writes one record scoped to its (user_id, date) key. A row
	// already holding that key is replaced in place; no other row is
	// touched, so concurrent writers for different keys cannot clobber
	// each other.
	Upsert(ctx context.Context, tx *gorm.DB, record *types.DailyRecord) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DailyRecord, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return &recordRepo{db: db, log: baseLog.With("repo", "RecordRepo")}
}

func (rr *recordRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *recordRepo) Upsert(ctx context.Context, tx *gorm.DB, record *types.DailyRecord) error {
	return rr.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"creation_timestamp", "mode", "consent",
				"weights", "satisfaction", "elements",
				"g_happiness", "event_log",
			}),
		}).
		Create(record).Error
}

func (rr *recordRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DailyRecord, error) {
	var records []*types.DailyRecord
	err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, creation_timestamp ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (rr *recordRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return rr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.DailyRecord{}).Error
}

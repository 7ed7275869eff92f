package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/harmonynav-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: "pw",
		Consent:  true,
		AgeGroup: types.Unselected,
		Gender:   types.Unselected,
		Region:   types.Unselected,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) *types.DailyRecord {
	tb.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		tb.Fatalf("seed record: bad date %q: %v", date, err)
	}
	r := &types.DailyRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      day,
		CreatedAt: day.Add(12 * time.Hour),
		Mode:      "quick",
		Consent:   true,
		Weights:   types.ToJSONMap(map[string]float64{"health": 0.5, "finance": 0.5}),
		Satisfaction: types.ToJSONMap(map[string]float64{
			"health":  70,
			"finance": 50,
		}),
		GHappiness: 60,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed record: %v", err)
	}
	return r
}

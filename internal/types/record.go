package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyRecord is one user's journal entry for one calendar date. The
// (user_id, date) pair is the logical key: a resubmission for the same date
// replaces the prior row. CreatedAt only breaks ties chronologically and
// never participates in the key.
type DailyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_record_user_date;column:user_id" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_record_user_date;column:date" json:"date"`
	CreatedAt time.Time `gorm:"not null;column:creation_timestamp" json:"creation_timestamp"`
	Mode      string    `gorm:"not null;column:mode" json:"mode"`
	Consent   bool      `gorm:"not null;default:false;column:consent" json:"consent"`

	// Weights holds q_<domain> as normalized fractions, Satisfaction holds
	// s_<domain> in 0..100, Elements holds s_element_<element> raw scores
	// (deep mode only). Absent keys mean missing, not zero.
	Weights      datatypes.JSONMap `gorm:"column:weights" json:"weights"`
	Satisfaction datatypes.JSONMap `gorm:"column:satisfaction" json:"satisfaction"`
	Elements     datatypes.JSONMap `gorm:"column:elements" json:"elements"`

	GHappiness int    `gorm:"not null;column:g_happiness" json:"g_happiness"`
	EventLog   string `gorm:"column:event_log" json:"event_log"`
}

func (DailyRecord) TableName() string {
	return "daily_record"
}

// FloatMap extracts a float-valued view of a JSON column. Non-numeric and
// nil entries (missing-value markers) are skipped.
func FloatMap(m datatypes.JSONMap) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case float64:
			out[k] = x
		case int:
			out[k] = float64(x)
		case int64:
			out[k] = float64(x)
		}
	}
	return out
}

// ToJSONMap converts a float map into a JSON column value.
func ToJSONMap(m map[string]float64) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package model

// EntryFields is the ordered list of column names in the entries table.
var EntryFields = []string{"id", "date_iso", "mood", "text", "created_at"}

// Entry is one journal record for a single calendar day.
// DateISO (YYYY-MM-DD, local calendar day at write time) is the unique key;
// a second write for the same day replaces the first.
type Entry struct {
	ID        int64  `json:"id,omitempty" db:"id"`
	DateISO   string `json:"dateISO" db:"date_iso"`
	Mood      int    `json:"mood" db:"mood"`
	Text      string `json:"text" db:"text"`
	CreatedAt int64  `json:"createdAt" db:"created_at"` // epoch milliseconds
}

// StreakRecordID is the primary key of the single streaks row.
const StreakRecordID = 1

// StreakRecord is the persisted result of the last streak recompute.
// It is derived state: always rebuilt from the entries, never read back as input.
type StreakRecord struct {
	Current   int   `json:"current" db:"current"`
	Longest   int   `json:"longest" db:"longest"`
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"` // epoch milliseconds
}

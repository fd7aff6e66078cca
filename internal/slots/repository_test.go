package slots

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds a gorm handle that renders SQL without connecting.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=eventbook dbname=eventbook_db sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestLockForUpdateAppendsRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var slot EventSlot
	stmt := lockForUpdate(db).
		Where("event_id = ?", uuid.New()).
		Find(&slot).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `"event_slots"`)
	assert.Contains(t, sql, "FOR UPDATE", "slot reads inside hold transactions must take the row lock")
}

func TestUnlockedReadHasNoRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var slot EventSlot
	stmt := db.
		Where("event_id = ?", uuid.New()).
		Find(&slot).Statement

	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}

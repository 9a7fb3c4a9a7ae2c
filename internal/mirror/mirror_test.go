package mirror

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tvworks/repairdesk/internal/domain"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(&ArchiveRecord{}))
	return NewWithDB(db)
}

func TestArchiveMirrorsAppends(t *testing.T) {
	a := newTestArchive(t)

	a.ArchiveIntake(domain.Intake{ID: 1, Serial: "TV-1", CreatedAt: time.Now()})
	a.ArchiveRepair(domain.Repair{ID: 2, Serial: "TV-1", StartAt: time.Now()})
	a.ArchiveRepair(domain.Repair{ID: 3, Serial: "TV-2", StartAt: time.Now()})

	intakes, err := a.Count(domain.EventIntake)
	require.NoError(t, err)
	require.EqualValues(t, 1, intakes)

	repairs, err := a.Count(domain.EventRepair)
	require.NoError(t, err)
	require.EqualValues(t, 2, repairs)
}

func TestArchiveResyncReplacesContent(t *testing.T) {
	a := newTestArchive(t)

	a.ArchiveIntake(domain.Intake{ID: 1, Serial: "stale"})
	a.ArchiveIntake(domain.Intake{ID: 2, Serial: "stale"})

	err := a.Resync(
		[]domain.Intake{{ID: 10, Serial: "TV-1"}},
		[]domain.Repair{{ID: 11, Serial: "TV-1"}, {ID: 12, Serial: "TV-1"}},
	)
	require.NoError(t, err)

	intakes, err := a.Count(domain.EventIntake)
	require.NoError(t, err)
	require.EqualValues(t, 1, intakes)

	repairs, err := a.Count(domain.EventRepair)
	require.NoError(t, err)
	require.EqualValues(t, 2, repairs)

	var stale int64
	require.NoError(t, a.db.Model(&ArchiveRecord{}).Where("serial = ?", "stale").Count(&stale).Error)
	require.Zero(t, stale)
}

func TestArchivePayloadRoundTrip(t *testing.T) {
	a := newTestArchive(t)
	a.ArchiveIntake(domain.Intake{ID: 7, Serial: "TV-7", Model: "X55"})

	var rec ArchiveRecord
	require.NoError(t, a.db.First(&rec).Error)
	require.Equal(t, "TV-7", rec.Serial)

	var in domain.Intake
	require.NoError(t, json.Unmarshal(rec.Payload, &in))
	require.Equal(t, int64(7), in.ID)
	require.Equal(t, "X55", in.Model)
}

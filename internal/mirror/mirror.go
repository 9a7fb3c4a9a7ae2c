package mirror

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tvworks/repairdesk/config"
	"github.com/tvworks/repairdesk/internal/domain"
	"github.com/tvworks/repairdesk/pkg/common"
)

// ArchiveRecord is one mirrored document: the record serialized as it
// was appended. The archive is write-only from this process; it exists
// so an external store can hold an equivalent copy of both collections.
type ArchiveRecord struct {
	ID        int64          `gorm:"primaryKey" json:"id,string"`
	Kind      string         `gorm:"size:16;index" json:"kind"`
	Serial    string         `gorm:"size:128;index" json:"serial"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ArchiveRecord) TableName() string {
	return "archive_record"
}

// Archive mirrors appended records into a gorm-backed document table,
// best-effort: every failure is logged and swallowed so the append path
// never degrades.
type Archive struct {
	db *gorm.DB
}

// Open connects the archive database and migrates its schema.
func Open(cfg config.DBConfig, workdir string) (*Archive, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	default:
		path := cfg.Name
		if !filepath.IsAbs(path) {
			path = filepath.Join(workdir, "data", path)
		}
		dialector = sqlite.Open(path)
	}

	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}
	if err := db.Migrator().AutoMigrate(&ArchiveRecord{}); err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

// NewWithDB wraps an existing gorm handle (used in tests).
func NewWithDB(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

func (a *Archive) save(kind, serial string, record interface{}) {
	payload, err := jsonMarshal(record)
	if err != nil {
		zap.L().Warn("archive marshal failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	rec := ArchiveRecord{
		ID:        common.UUIDint64(),
		Kind:      kind,
		Serial:    serial,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := a.db.Create(&rec).Error; err != nil {
		zap.L().Warn("archive write failed", zap.String("kind", kind),
			zap.String("serial", serial), zap.Error(err))
	}
}

func (a *Archive) ArchiveIntake(in domain.Intake) {
	a.save(domain.EventIntake, in.Serial, in)
}

func (a *Archive) ArchiveRepair(r domain.Repair) {
	a.save(domain.EventRepair, r.Serial, r)
}

// Resync replaces the archive content with the full collections.
func (a *Archive) Resync(intakes []domain.Intake, repairs []domain.Repair) error {
	if err := a.db.Where("1 = 1").Delete(&ArchiveRecord{}).Error; err != nil {
		return err
	}
	for _, in := range intakes {
		a.ArchiveIntake(in)
	}
	for _, r := range repairs {
		a.ArchiveRepair(r)
	}
	return nil
}

// Count returns the number of mirrored documents of one kind.
func (a *Archive) Count(kind string) (int64, error) {
	var n int64
	err := a.db.Model(&ArchiveRecord{}).Where("kind = ?", kind).Count(&n).Error
	return n, err
}

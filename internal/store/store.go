package store

import (
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	recordsBucket  = "records"
	settingsBucket = "settings"
	photosBucket   = "photos"

	keyIntakes = "intakes"
	keyRepairs = "repairs"
)

// Archiver receives a best-effort copy of every appended record.
// Implementations must never block the append path on failure.
type Archiver interface {
	ArchiveIntake(in domain.Intake)
	ArchiveRepair(r domain.Repair)
}

// RecordStore holds the two growing collections in memory and keeps
// them in sync with the bbolt file on every mutation. The in-memory
// state is authoritative for the session: a failed write is logged and
// swallowed, so the session keeps working and the write is simply lost
// on reload.
type RecordStore struct {
	db       *bolt.DB
	mu       sync.RWMutex
	intakes  []domain.Intake
	repairs  []domain.Repair
	archiver Archiver
}

// Open opens (creating if needed) the bbolt file and loads both
// collections. A failed load is not an error condition: the collection
// simply starts empty.
func Open(path string) (*RecordStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open record store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{recordsBucket, settingsBucket, photosBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init record store buckets")
	}

	s := &RecordStore{db: db}
	s.load()
	return s, nil
}

// SetArchiver wires the optional archive mirror.
func (s *RecordStore) SetArchiver(a Archiver) {
	s.archiver = a
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}

func (s *RecordStore) load() {
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordsBucket))
		if data := b.Get([]byte(keyIntakes)); data != nil {
			if err := json.Unmarshal(data, &s.intakes); err != nil {
				zap.L().Warn("intake collection unreadable, starting empty", zap.Error(err))
				s.intakes = nil
			}
		}
		if data := b.Get([]byte(keyRepairs)); data != nil {
			if err := json.Unmarshal(data, &s.repairs); err != nil {
				zap.L().Warn("repair collection unreadable, starting empty", zap.Error(err))
				s.repairs = nil
			}
		}
		return nil
	})
}

// persist rewrites one whole collection under its key. Errors are
// logged and swallowed: persistence is best-effort by contract.
func (s *RecordStore) persist(key string, collection interface{}) {
	data, err := json.Marshal(collection)
	if err != nil {
		zap.L().Warn("marshal collection failed", zap.String("key", key), zap.Error(err))
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(recordsBucket)).Put([]byte(key), data)
	})
	if err != nil {
		zap.L().Warn("persist collection failed", zap.String("key", key), zap.Error(err))
	}
}

// AppendIntake adds the intake to the collection and persists it.
func (s *RecordStore) AppendIntake(in domain.Intake) {
	s.mu.Lock()
	s.intakes = append(s.intakes, in)
	snapshot := s.intakes
	s.mu.Unlock()

	s.persist(keyIntakes, snapshot)
	if s.archiver != nil {
		s.archiver.ArchiveIntake(in)
	}
}

// AppendRepair adds the repair to the collection and persists it.
func (s *RecordStore) AppendRepair(r domain.Repair) {
	s.mu.Lock()
	s.repairs = append(s.repairs, r)
	snapshot := s.repairs
	s.mu.Unlock()

	s.persist(keyRepairs, snapshot)
	if s.archiver != nil {
		s.archiver.ArchiveRepair(r)
	}
}

// Intakes returns the current collection in insertion order.
func (s *RecordStore) Intakes() []domain.Intake {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Intake, len(s.intakes))
	copy(out, s.intakes)
	return out
}

// Repairs returns the current collection in insertion order.
func (s *RecordStore) Repairs() []domain.Repair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Repair, len(s.repairs))
	copy(out, s.repairs)
	return out
}

package store

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/domain"
)

// LookupStore manages the admin-configurable enumerations (sizes,
// sources, reasons). Lists are persisted as comma-joined text in the
// settings bucket; anything unreadable falls back to the hardcoded
// defaults.
type LookupStore struct {
	db      *bolt.DB
	passkey string
}

func NewLookupStore(rs *RecordStore, passkey string) *LookupStore {
	return &LookupStore{db: rs.db, passkey: passkey}
}

// CheckPasskey compares a submitted value against the shared pass-key.
// This gates the edit surface only; there is no hashing, rate limiting
// or session scoping by design.
func (l *LookupStore) CheckPasskey(submitted string) bool {
	return submitted == l.passkey
}

func (l *LookupStore) raw(name string) (string, bool) {
	var value string
	var found bool
	_ = l.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket([]byte(settingsBucket)).Get([]byte(name)); data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	return value, found
}

// Get returns the current list for name, or the default when nothing
// usable is persisted.
func (l *LookupStore) Get(name string) []string {
	value, found := l.raw(name)
	if found && strings.TrimSpace(value) != "" {
		return splitList(value)
	}
	switch name {
	case domain.LookupSources:
		return append([]string(nil), domain.DefaultSources...)
	case domain.LookupReasons:
		return append([]string(nil), domain.DefaultReasons...)
	case domain.LookupSizes:
		return formatSizes(domain.DefaultSizes)
	}
	return nil
}

// Sizes returns the configured screen sizes as numbers. Entries that
// fail to parse are skipped; an empty result falls back to defaults.
func (l *LookupStore) Sizes() []float64 {
	items := l.Get(domain.LookupSizes)
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if v, err := cast.ToFloat64E(item); err == nil {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]float64(nil), domain.DefaultSizes...)
	}
	return out
}

// ValidSize reports whether size is one of the configured sizes.
func (l *LookupStore) ValidSize(size float64) bool {
	for _, v := range l.Sizes() {
		if v == size {
			return true
		}
	}
	return false
}

// Set replaces the named list and persists it as serialized text.
func (l *LookupStore) Set(name string, items []string) error {
	value := strings.Join(items, ",")
	err := l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(name), []byte(value))
	})
	if err != nil {
		zap.L().Error("persist lookup list failed", zap.String("name", name), zap.Error(err))
	}
	return err
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatSizes(sizes []float64) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
	}
	return out
}

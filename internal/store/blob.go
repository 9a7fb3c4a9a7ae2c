package store

import (
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/tvworks/repairdesk/internal/domain"
)

// BlobStore is the pluggable photo byte store. Records carry PhotoRefs
// only; swapping the backing store (object storage, filesystem) must
// not touch the record collections.
type BlobStore interface {
	Put(name string, data []byte) (domain.PhotoRef, error)
	Get(id string) ([]byte, error)
}

var ErrBlobNotFound = errors.New("blob not found")

// BoltBlobStore keeps photo bytes in a dedicated bucket of the same
// bbolt file as the record collections.
type BoltBlobStore struct {
	db *bolt.DB
}

func NewBoltBlobStore(rs *RecordStore) *BoltBlobStore {
	return &BoltBlobStore{db: rs.db}
}

func (b *BoltBlobStore) Put(name string, data []byte) (domain.PhotoRef, error) {
	ref := domain.PhotoRef{
		ID:   random.String(20, random.Hex),
		Name: name,
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(photosBucket)).Put([]byte(ref.ID), data)
	})
	if err != nil {
		return domain.PhotoRef{}, errors.Wrap(err, "store photo")
	}
	return ref, nil
}

func (b *BoltBlobStore) Get(id string) ([]byte, error) {
	var data []byte
	_ = b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(photosBucket)).Get([]byte(id)); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if data == nil {
		return nil, ErrBlobNotFound
	}
	return data, nil
}

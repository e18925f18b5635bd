// Package storage persists signed documents and the version marker of the
// record layout in a bbolt database.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	bolt "go.etcd.io/bbolt"
)

var (
	recordsBucketName = []byte("records")
	metaBucketName    = []byte("meta")
	versionKey        = []byte("version")
)

// ErrNotFound is returned for missing records and a missing version marker.
var ErrNotFound = fmt.Errorf("record not found: %w", cerrdefs.ErrNotFound)

// Record is a stored document.
type Record struct {
	Type      string            `json:"type"`
	ID        string            `json:"id"`
	Value     json.RawMessage   `json:"value"`
	Tags      map[string]string `json:"tags,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Store is a record store backed by a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open record database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{recordsBucketName, metaBucketName} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores rec, replacing the record of the same type and ID.
func (s *Store) Put(rec Record) error {
	if rec.Type == "" || rec.ID == "" {
		return fmt.Errorf("record type and id are required: %w", cerrdefs.ErrInvalidArgument)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putRecord(tx, rec)
	})
}

// PutAll stores records in a single transaction. Either all of them are
// written or none is.
func (s *Store) PutAll(records ...Record) error {
	for _, rec := range records {
		if rec.Type == "" || rec.ID == "" {
			return fmt.Errorf("record type and id are required: %w", cerrdefs.ErrInvalidArgument)
		}
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, rec := range records {
			if err := putRecord(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the record of the given type and ID.
func (s *Store) Get(recordType, id string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucketName).Bucket([]byte(recordType))
		if b == nil {
			return fmt.Errorf("%s/%s: %w", recordType, id, ErrNotFound)
		}
		raw := b.Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("%s/%s: %w", recordType, id, ErrNotFound)
		}
		var err error
		rec, err = decodeRecord(raw)
		return err
	})
	return rec, err
}

// List returns every record of recordType ordered by ID.
func (s *Store) List(recordType string) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucketName).Bucket([]byte(recordType))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, raw []byte) error {
			rec, err := decodeRecord(raw)
			if err != nil {
				return err
			}
			records = append(records, *rec)
			return nil
		})
	})
	return records, err
}

// Delete removes a record. Deleting a missing record is not an error.
func (s *Store) Delete(recordType, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucketName).Bucket([]byte(recordType))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}

// Resave rewrites every record of recordType through fn in a single
// transaction. A nil fn stores the records unchanged with a new UpdatedAt.
// It returns the number of records written.
func (s *Store) Resave(recordType string, fn func(Record) (Record, error)) (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucketName).Bucket([]byte(recordType))
		if b == nil {
			return nil
		}

		var records []Record
		err := b.ForEach(func(_, raw []byte) error {
			rec, err := decodeRecord(raw)
			if err != nil {
				return err
			}
			records = append(records, *rec)
			return nil
		})
		if err != nil {
			return err
		}

		for _, rec := range records {
			if fn != nil {
				updated, err := fn(rec)
				if err != nil {
					return fmt.Errorf("failed to update record %s/%s: %w", rec.Type, rec.ID, err)
				}
				if updated.Type != rec.Type || updated.ID != rec.ID {
					return fmt.Errorf("record %s/%s changed its key: %w", rec.Type, rec.ID, cerrdefs.ErrInvalidArgument)
				}
				rec = updated
			}
			if err := putRecord(tx, rec); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Version returns the version marker, or ErrNotFound when none was written.
func (s *Store) Version() (string, error) {
	var version string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(metaBucketName).Get(versionKey)
		if v == nil {
			return fmt.Errorf("version marker: %w", ErrNotFound)
		}
		version = string(v)
		return nil
	})
	return version, err
}

// SetVersion writes the version marker.
func (s *Store) SetVersion(version string) error {
	if version == "" {
		return errors.New("version is empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucketName).Put(versionKey, []byte(version))
	})
}

func putRecord(tx *bolt.Tx, rec Record) error {
	b, err := tx.Bucket(recordsBucketName).CreateBucketIfNotExists([]byte(rec.Type))
	if err != nil {
		return fmt.Errorf("failed to create bucket for %s: %w", rec.Type, err)
	}
	rec.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s/%s: %w", rec.Type, rec.ID, err)
	}
	return b.Put([]byte(rec.ID), raw)
}

func decodeRecord(raw []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

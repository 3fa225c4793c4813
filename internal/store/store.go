// Package store persists extracted outlines in an embedded bbolt database.
// Records live in a "documents" bucket keyed by doc ID; a "by_hash" bucket
// maps content hashes back to doc IDs for duplicate detection. Writes are
// transactional, so a crash mid-write cannot corrupt committed records.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ev2geny/beanoutline/internal/outline"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketDocuments = []byte("documents")
	bucketByHash    = []byte("by_hash")
)

// Record is a stored document outline with its identifying metadata.
type Record struct {
	DocID       string          `json:"doc_id"`
	Filename    string          `json:"filename"`
	ContentHash string          `json:"content_hash"`
	Headings    int             `json:"headings"`
	Outline     []*outline.Node `json:"outline"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Store wraps the bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketDocuments); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketByHash)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecord persists a record and its hash index entry.
func (s *Store) SaveRecord(rec Record) error {
	if rec.DocID == "" {
		return fmt.Errorf("empty doc id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketDocuments).Put([]byte(rec.DocID), data); err != nil {
			return err
		}
		if rec.ContentHash == "" {
			return nil
		}
		return tx.Bucket(bucketByHash).Put([]byte(rec.ContentHash), []byte(rec.DocID))
	})
}

// GetRecord retrieves a record by doc ID. Returns nil, nil if absent.
func (s *Store) GetRecord(docID string) (*Record, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Copy bytes out of the transaction; bbolt slices are only valid
		// within it.
		if v := tx.Bucket(bucketDocuments).Get([]byte(docID)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt view: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

// ListRecords returns all stored records in key order.
func (s *Store) ListRecords() ([]Record, error) {
	var recs []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal record %s: %w", k, err)
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteRecord removes a record and its hash index entry. Deleting an
// unknown doc ID is a no-op.
func (s *Store) DeleteRecord(docID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket(bucketDocuments)
		v := docs.Get([]byte(docID))
		if v == nil {
			return nil
		}
		var rec Record
		if err := json.Unmarshal(v, &rec); err == nil && rec.ContentHash != "" {
			if err := tx.Bucket(bucketByHash).Delete([]byte(rec.ContentHash)); err != nil {
				return err
			}
		}
		return docs.Delete([]byte(docID))
	})
}

// LookupHash returns the doc ID stored for a content hash, or "" when the
// hash is unknown.
func (s *Store) LookupHash(hash string) (string, error) {
	var docID string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketByHash).Get([]byte(hash)); v != nil {
			docID = string(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("bbolt view: %w", err)
	}
	return docID, nil
}

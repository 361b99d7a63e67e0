package db

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"estateinsights/models"

	"github.com/dgraph-io/badger/v4"
)

// DB keeps chat transcripts. Badger runs in in-memory mode only: nothing
// survives a restart, and a session's messages go away with DeleteSession.
type DB struct {
	badgerDB *badger.DB
	seq      atomic.Uint64
}

func New() (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

func chatPrefix(sessionID string) []byte {
	return []byte(fmt.Sprintf("chat:%s:", sessionID))
}

// AppendMessage stores msg after every message already stored for the session.
// Keys carry a zero-padded global sequence so prefix iteration yields insertion order.
func (d *DB) AppendMessage(sessionID string, msg models.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return d.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("chat:%s:%020d", sessionID, d.seq.Add(1)))
		return txn.Set(key, data)
	})
}

// GetMessages returns the session's transcript in insertion order.
func (d *DB) GetMessages(sessionID string) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chatPrefix(sessionID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var msg models.ChatMessage
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return messages, err
}

// DeleteSession drops every message stored for the session.
func (d *DB) DeleteSession(sessionID string) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chatPrefix(sessionID)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

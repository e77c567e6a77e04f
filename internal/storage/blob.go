package storage

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// Fixed storage keys, one JSON document per store. The version suffix
// is the schema-evolution mechanism: a breaking change gets a new
// suffix, and every load defaults missing fields instead of running
// explicit migrations.
const (
	KeyKickData     = "kickDataV1"
	KeyPeeData      = "peeDataV1"
	KeyPoopData     = "poopDataV1"
	KeyFeedingData  = "feedingDataV1"
	KeyMedicines    = "medicinesV1"
	KeyMedicineLogs = "medicineLogsV1"
	KeySettings     = "settingsV2"
	KeyAppMode      = "appModeV1"
)

// ErrKeyNotFound is returned when a key is not found in the database.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// GetBlob retrieves the raw document stored under key.
func (d *DB) GetBlob(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			result = make([]byte, len(val))
			copy(result, val)
			return nil
		})
	})
	return result, err
}

// SetBlob stores a raw document under key.
func (d *DB) SetBlob(key string, data []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// DeleteBlob removes the document stored under key.
func (d *DB) DeleteBlob(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// HasBlob checks if a document exists under key.
func (d *DB) HasBlob(key string) (bool, error) {
	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

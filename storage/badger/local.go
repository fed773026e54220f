// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/jotpad/storage"
)

// LocalStore implements storage.LocalStore on top of a Backend.
type LocalStore struct {
	backend *Backend
	owned   bool
}

var _ storage.LocalStore = (*LocalStore)(nil)

// NewLocalStore opens a file-backed local store rooted at dir.
func NewLocalStore(dir string) (storage.LocalStore, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return &LocalStore{backend: backend, owned: true}, nil
}

// newLocalStore wraps an existing backend. The caller keeps ownership of it.
func newLocalStore(backend *Backend) *LocalStore {
	return &LocalStore{backend: backend}
}

// Get returns the value stored at key.
func (s *LocalStore) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, storage.ErrEmptyKey
	}
	if s.backend.IsClosed() {
		return nil, false, storage.ErrStorageClosed
	}
	var value []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLocalKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}, false)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value at key.
func (s *LocalStore) Set(key string, value []byte) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeLocalKey(key), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Remove deletes keys in a single transaction.
func (s *LocalStore) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if key == "" {
				continue
			}
			if err := tx.Delete(makeLocalKey(key)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend if this store opened it.
func (s *LocalStore) Close() error {
	if !s.owned || s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

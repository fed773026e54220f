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


// Package storage provides the storage abstraction layer for jotpad.
//
// Two kinds of storage exist side by side:
//
//   - LocalStore: the client-resident key/value store holding anonymous data
//     (one JSON document per collection kind plus a handful of UI-state keys).
//   - CollectionRepository and SettingsRepository: the server-side, per-user
//     persistence behind the remote endpoints.
//
// # Constructor Return Type Pattern
//
// Public constructors in the backend packages return the interfaces defined here:
//
//	store, err := badger.NewLocalStore(path)      // returns storage.LocalStore
//	repo, err := sqlstore.Open(ctx, dsn)          // returns *sqlstore.Store, which satisfies both repositories
//
// # Schema Boundary
//
// All collection payloads are JSON. EncodeCollection and DecodeCollection are the
// only places where raw bytes become typed items, and both validate every item,
// so callers never see partially-valid collections.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage

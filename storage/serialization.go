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


package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/poiesic/jotpad/core"
)

// EncodeCollection validates items and serializes them as a JSON array.
// A nil slice encodes as "[]".
func EncodeCollection[T core.Item](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	if err := core.ValidateCollection(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// DecodeCollection parses a JSON array and validates every item.
// Empty input and JSON null decode to an empty, non-nil slice.
func DecodeCollection[T core.Item](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if items == nil {
		items = []T{}
	}
	if err := core.ValidateCollection(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	return items, nil
}

// ToRecords converts typed items into repository records.
func ToRecords[T core.Item](items []T) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		records = append(records, Record{
			ID:      item.ItemID(),
			SortKey: item.SortKey(),
			Payload: payload,
		})
	}
	return records, nil
}

// RecordsFromJSON decodes a JSON array of items of the given kind into records.
// The array is validated with the kind's schema before conversion.
func RecordsFromJSON(kind core.Kind, data []byte) ([]Record, error) {
	switch kind {
	case core.KindTasks:
		return decodeRecords[core.TaskItem](data)
	case core.KindNotes:
		return decodeRecords[core.NoteItem](data)
	case core.KindBlogs:
		return decodeRecords[core.BlogItem](data)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownKind, kind)
	}
}

func decodeRecords[T core.Item](data []byte) ([]Record, error) {
	items, err := DecodeCollection[T](data)
	if err != nil {
		return nil, err
	}
	return ToRecords(items)
}

// RecordsToJSON joins record payloads into a JSON array without re-decoding them.
func RecordsToJSON(records []Record) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raw = append(raw, json.RawMessage(r.Payload))
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

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


package core

import (
	"fmt"
	"strings"
)

// ValidateTask validates a TaskItem.
//
// Validation rules:
//   - ID must not be empty
//   - Title must not be blank
//   - CreatedAt must not be negative
func ValidateTask(task *TaskItem) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}
	if task.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyID)
	}
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTitle)
	}
	if task.CreatedAt < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrInvalidTimestamp)
	}
	return nil
}

// ValidateNote validates a NoteItem. Untitled notes are allowed.
func ValidateNote(note *NoteItem) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}
	if note.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyID)
	}
	if note.UpdatedAt < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}
	return nil
}

// ValidateBlog validates a BlogItem. Untitled drafts are allowed.
func ValidateBlog(blog *BlogItem) error {
	if blog == nil {
		return fmt.Errorf("%w: blog is nil", ErrInvalidBlog)
	}
	if blog.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBlog, ErrEmptyID)
	}
	if blog.UpdatedAt < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBlog, ErrInvalidTimestamp)
	}
	return nil
}

// ValidateCollection validates every item and rejects duplicate identifiers.
func ValidateCollection[T Item](items []T) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		id := item.ItemID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("item %d: %w: %q", i, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

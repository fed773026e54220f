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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTask indicates a TaskItem failed validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidNote indicates a NoteItem failed validation.
	ErrInvalidNote = errors.New("invalid note")

	// ErrInvalidBlog indicates a BlogItem failed validation.
	ErrInvalidBlog = errors.New("invalid blog")

	// ErrEmptyID indicates the item identifier is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyTitle indicates a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidTimestamp indicates a negative epoch timestamp.
	ErrInvalidTimestamp = errors.New("timestamp cannot be negative")

	// ErrDuplicateID indicates two items in one collection share an identifier.
	ErrDuplicateID = errors.New("duplicate id in collection")

	// ErrUnknownKind indicates a collection name that is not tasks, notes or blogs.
	ErrUnknownKind = errors.New("unknown collection kind")
)

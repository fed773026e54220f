package core

import (
	"strings"

	"github.com/google/uuid"
)

// Kind identifies one of the user data collections.
// The string value doubles as the local storage key and the remote endpoint segment.
type Kind string

const (
	KindTasks Kind = "tasks"
	KindNotes Kind = "notes"
	KindBlogs Kind = "blogs"
)

// Kinds lists every collection kind in migration order.
var Kinds = []Kind{KindTasks, KindNotes, KindBlogs}

// ParseKind maps a raw string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindTasks, KindNotes, KindBlogs:
		return k, nil
	default:
		return "", ErrUnknownKind
	}
}

// SelectionKey returns the UI-state key that points at the currently selected item
// of this kind, e.g. "selected-task-id".
func (k Kind) SelectionKey() string {
	return "selected-" + strings.TrimSuffix(string(k), "s") + "-id"
}

func (k Kind) String() string {
	return string(k)
}

// TaskItem is a single to-do entry.
type TaskItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // epoch millis
}

// NoteItem is a rich-text note. ContentHTML holds serialized HTML markup.
type NoteItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentHTML string `json:"contentHtml"`
	UpdatedAt   int64  `json:"updatedAt"` // epoch millis
}

// BlogItem is a blog post draft. Same shape as NoteItem.
type BlogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentHTML string `json:"contentHtml"`
	UpdatedAt   int64  `json:"updatedAt"` // epoch millis
}

// Item is the constraint satisfied by every collection element.
type Item interface {
	TaskItem | NoteItem | BlogItem

	// ItemID returns the collection-unique identifier.
	ItemID() string

	// SortKey is the timestamp collections are ordered by, newest first.
	SortKey() int64

	// Validate checks the item against its schema.
	Validate() error
}

func (t TaskItem) ItemID() string  { return t.ID }
func (t TaskItem) SortKey() int64  { return t.CreatedAt }
func (t TaskItem) Validate() error { return ValidateTask(&t) }

func (n NoteItem) ItemID() string  { return n.ID }
func (n NoteItem) SortKey() int64  { return n.UpdatedAt }
func (n NoteItem) Validate() error { return ValidateNote(&n) }

func (b BlogItem) ItemID() string  { return b.ID }
func (b BlogItem) SortKey() int64  { return b.UpdatedAt }
func (b BlogItem) Validate() error { return ValidateBlog(&b) }

// NewItemID returns a fresh identifier for a client-created item.
func NewItemID() string {
	return uuid.NewString()
}

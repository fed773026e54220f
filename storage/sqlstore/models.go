package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

// collectionItem is one element of a user's collection.
// Payload holds the item's JSON encoding exactly as received.
type collectionItem struct {
	bun.BaseModel `bun:"table:collection_items,alias:ci"`

	UserID    string    `bun:",pk"`
	Kind      string    `bun:",pk"`
	ItemID    string    `bun:",pk"`
	SortKey   int64     `bun:",notnull"`
	Payload   string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// userSettings holds the AI preferences of one user.
type userSettings struct {
	bun.BaseModel `bun:"table:user_settings,alias:us"`

	UserID      string    `bun:",pk"`
	PreferredAI string    `bun:",notnull"`
	OpenAIKey   string    `bun:"openai_key"`
	ClaudeKey   string    `bun:"claude_key"`
	GeminiKey   string    `bun:"gemini_key"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

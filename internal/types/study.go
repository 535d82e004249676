package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Study-activity rows below are written by the reader frontend through the
// CRUD controllers; the chat pipeline only reads them to build context.

type Note struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title     string         `gorm:"not null;column:title" json:"title"`
	Content   datatypes.JSON `gorm:"type:jsonb;column:content" json:"content"`
	BookID    string         `gorm:"column:book_id" json:"book_id"`
	Chapter   int            `gorm:"column:chapter" json:"chapter"`
	Verse     int            `gorm:"column:verse_number" json:"verse_number"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Note) TableName() string { return "bible_note" }

type Highlight struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	BookID    string    `gorm:"not null;column:book_id" json:"book_id"`
	Chapter   int       `gorm:"not null;column:chapter" json:"chapter"`
	Verse     int       `gorm:"not null;column:verse_number" json:"verse_number"`
	Color     string    `gorm:"column:color" json:"color"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Highlight) TableName() string { return "verse_highlight" }

type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	BookName  string    `gorm:"not null;column:book_name" json:"book_name"`
	Chapter   int       `gorm:"not null;column:chapter" json:"chapter"`
	Verse     int       `gorm:"not null;column:verse_number" json:"verse_number"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Bookmark) TableName() string { return "verse_bookmark" }

type VerseLove struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	BookName  string    `gorm:"not null;column:book_name" json:"book_name"`
	Chapter   int       `gorm:"not null;column:chapter" json:"chapter"`
	Verse     int       `gorm:"not null;column:verse_number" json:"verse_number"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (VerseLove) TableName() string { return "verse_love" }

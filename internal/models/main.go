// Package models defines the core data structures for users, content,
// the header navigation, and captured leads.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a []string stored as a JSON column.
type StringList []string

// Value implements driver.Valuer, serializing the list to JSON.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner, deserializing a JSON column value.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// User represents an application account with credentials.
type User struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`
	// Email is the unique login email.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`
	// IsAdmin gates access to privileged operations.
	IsAdmin bool `json:"is_admin"`
}

// BlogPost is a multilingual blog entry addressed by a globally
// unique slug.
type BlogPost struct {
	ID            int64      `json:"id"`
	Slug          string     `json:"slug"`
	AuthorID      int64      `json:"author_id"`
	PublishedDate *time.Time `json:"published_date"`

	TitleTR string `json:"title_tr"`
	TitleEN string `json:"title_en"`
	TitleFR string `json:"title_fr"`

	DescriptionTR string `json:"description_tr"`
	DescriptionEN string `json:"description_en"`
	DescriptionFR string `json:"description_fr"`

	ContentTR string `json:"content_tr"`
	ContentEN string `json:"content_en"`
	ContentFR string `json:"content_fr"`

	FeaturedImageURL string     `json:"featured_image_url"`
	GalleryURLs      StringList `json:"gallery_urls"`
}

// Service is a catalog entry (a treatment offered on the site) with a
// globally unique slug and an activation flag.
type Service struct {
	ID       int64  `json:"id"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`

	TitleTR string `json:"title_tr"`
	TitleEN string `json:"title_en"`
	TitleFR string `json:"title_fr"`

	DescriptionTR string `json:"description_tr"`
	DescriptionEN string `json:"description_en"`
	DescriptionFR string `json:"description_fr"`

	ContentTR string `json:"content_tr"`
	ContentEN string `json:"content_en"`
	ContentFR string `json:"content_fr"`

	Price    *float64 `json:"price"`
	Duration string   `json:"duration"`

	FeaturedImageURL string     `json:"featured_image_url"`
	GalleryURLs      StringList `json:"gallery_urls"`
}

// HeaderColumn is a top-level navigation entry. It exclusively owns
// its HeaderItems; deleting a column cascades to them.
type HeaderColumn struct {
	ID       int64  `json:"id"`
	NameTR   string `json:"name_tr"`
	NameEN   string `json:"name_en"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
	Position int    `json:"position"`
	// Type is "link" or "dropdown".
	Type string `json:"type"`
	URL  string `json:"url"`

	// Items are the owned navigation entries, populated by read models.
	Items []HeaderItem `json:"items,omitempty"`
}

// HeaderItem is a navigation entry under a HeaderColumn. Its slug is
// unique only within the owning column.
type HeaderItem struct {
	ID       int64  `json:"id"`
	ColumnID int64  `json:"column_id"`
	NameTR   string `json:"name_tr"`
	NameEN   string `json:"name_en"`
	Slug     string `json:"slug"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
	Position int    `json:"position"`
}

// Lead is a captured contact record. Immutable once created.
type Lead struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	SourceForm  string    `json:"source_form"`
	CreatedAt   time.Time `json:"created_at"`
}

package entity

import (
	"github.com/google/uuid"
)

// Title is a reviewable work. Category, Genres and Rating are filled by
// read queries and are not columns of the titles table.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description string     `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	Category *Category `db:"-"`
	Genres   []*Genre  `db:"-"`
	Rating   *int      `db:"rating"`
}

// TitleFilter narrows title listings. Nil fields are ignored.
type TitleFilter struct {
	CategorySlug *string
	GenreSlug    *string
	Name         *string
	Year         *int
}

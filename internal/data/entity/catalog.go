package entity

// Category groups titles by kind ("Films", "Books", "Music").
type Category struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// Genre is attached to any number of titles.
type Genre struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}

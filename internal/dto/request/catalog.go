package request

// CatalogEntryRequest creates a category or a genre.
type CatalogEntryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

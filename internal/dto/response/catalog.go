package response

import "yamdb/internal/data/entity"

// CatalogEntryResponse is the public shape of a category or a genre.
type CatalogEntryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryToResponse(category *entity.Category) CatalogEntryResponse {
	return CatalogEntryResponse{Name: category.Name, Slug: category.Slug}
}

func GenreToResponse(genre *entity.Genre) CatalogEntryResponse {
	return CatalogEntryResponse{Name: genre.Name, Slug: genre.Slug}
}

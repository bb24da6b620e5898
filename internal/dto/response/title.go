package response

import (
	"yamdb/internal/data/entity"
)

type TitleResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Year        int                    `json:"year"`
	Rating      *int                   `json:"rating"`
	Description string                 `json:"description"`
	Genres      []CatalogEntryResponse `json:"genre"`
	Category    *CatalogEntryResponse  `json:"category"`
}

type RatingResponse struct {
	TitleID string `json:"title_id"`
	Rating  *int   `json:"rating"`
}

func TitleToResponse(title *entity.Title) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genres:      make([]CatalogEntryResponse, 0, len(title.Genres)),
	}

	for _, genre := range title.Genres {
		resp.Genres = append(resp.Genres, GenreToResponse(genre))
	}

	if title.Category != nil {
		category := CategoryToResponse(title.Category)
		resp.Category = &category
	}

	return resp
}

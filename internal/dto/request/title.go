package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=256"`
	Year        *int     `json:"year" validate:"required,min=0,notfuture"`
	Description string   `json:"description"`
	Genres      []string `json:"genre" validate:"omitempty,dive,required,max=50,slug"`
	Category    string   `json:"category" validate:"omitempty,max=50,slug"`
}

// UpdateTitleRequest is a partial update. Absent fields are kept; an empty
// category clears it and an empty genre list removes all genres.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,notblank,max=256"`
	Year        *int      `json:"year" validate:"omitempty,min=0,notfuture"`
	Description *string   `json:"description"`
	Genres      *[]string `json:"genre" validate:"omitempty,dive,required,max=50,slug"`
	Category    *string   `json:"category" validate:"omitnil,max=50,optslug"`
}

type TitleListRequest struct {
	PaginatedRequest
	Category string
	Genre    string
	Name     string
	Year     *int
}

package response

import (
	"time"

	"yamdb/internal/data/entity"
)

type ReviewResponse struct {
	ID       string    `json:"id"`
	TitleID  string    `json:"title_id"`
	AuthorID string    `json:"author_id"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

type CommentResponse struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"review_id"`
	AuthorID string    `json:"author_id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:       review.ID.String(),
		TitleID:  review.TitleID.String(),
		AuthorID: review.AuthorID.String(),
		Text:     review.Text,
		Score:    review.Score,
		PubDate:  review.PubDate,
	}
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:       comment.ID.String(),
		ReviewID: comment.ReviewID.String(),
		AuthorID: comment.AuthorID.String(),
		Text:     comment.Text,
		PubDate:  comment.PubDate,
	}
}

package dto

import (
	commonDto "anoa.com/kitaplik/pkg/dto"
	"github.com/google/uuid"
)

type CategoryFilter struct {
	Search string `form:"search"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PaginatedCategoryResponse struct {
	Data []CategoryResponse       `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type CreateBookRequest struct {
	Title      string  `json:"title" binding:"required,max=255"`
	Author     string  `json:"author" binding:"required,max=150"`
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Pages      int     `json:"pages" binding:"gte=0"`
	CoverURL   *string `json:"cover_url" binding:"omitempty,url"`
}

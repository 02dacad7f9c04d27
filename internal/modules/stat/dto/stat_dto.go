package dto

type CommunityStats struct {
	TotalUsers int64 `json:"total_users"`
	BooksRead  int64 `json:"books_read"`
}

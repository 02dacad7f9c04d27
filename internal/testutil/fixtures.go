package testutil

import (
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, db *gorm.DB, username string) *entity.User {
	tb.Helper()
	u := &entity.User{ID: uuid.New(), Username: username, Role: entity.RoleMember, Level: 1}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedUserWithPoints seeds a user holding points.
func SeedUserWithPoints(tb testing.TB, db *gorm.DB, username string, points int) *entity.User {
	tb.Helper()
	u := &entity.User{ID: uuid.New(), Username: username, Role: entity.RoleMember, Level: 1, Points: points}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, db *gorm.DB, name string) *entity.Category {
	tb.Helper()
	c := &entity.Category{Name: name}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedBook(tb testing.TB, db *gorm.DB, title, author string, categoryID uuid.UUID, pages int) *entity.Book {
	tb.Helper()
	b := &entity.Book{Title: title, Author: author, CategoryID: categoryID, Pages: pages, CreatedAt: time.Now().UTC()}
	if err := db.Omit("Category").Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return b
}

func SeedFriends(tb testing.TB, db *gorm.DB, a, b uuid.UUID) {
	tb.Helper()
	rows := []entity.Friendship{{UserID: a, FriendID: b}, {UserID: b, FriendID: a}}
	if err := db.Create(&rows).Error; err != nil {
		tb.Fatalf("seed friendship: %v", err)
	}
}

func SeedGoal(tb testing.TB, db *gorm.DB, userID uuid.UUID, year, target int) *entity.ReadingGoal {
	tb.Helper()
	g := &entity.ReadingGoal{UserID: userID, Year: year, Target: target}
	if err := db.Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

func SeedTrivia(tb testing.TB, db *gorm.DB, count int) []entity.TriviaQuestion {
	tb.Helper()
	qs := make([]entity.TriviaQuestion, 0, count)
	for i := 0; i < count; i++ {
		qs = append(qs, entity.TriviaQuestion{
			Question:    "Soru",
			Options:     []string{"a", "b", "c", "d"},
			AnswerIndex: i % 4,
		})
	}
	if err := db.Create(&qs).Error; err != nil {
		tb.Fatalf("seed trivia: %v", err)
	}
	return qs
}

func Reload(tb testing.TB, db *gorm.DB, userID uuid.UUID) *entity.User {
	tb.Helper()
	var u entity.User
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		tb.Fatalf("reload user: %v", err)
	}
	return &u
}

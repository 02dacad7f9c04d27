package service

import (
	"fmt"
	"strings"

	"anoa.com/kitaplik/internal/entity"
	rewardDto "anoa.com/kitaplik/internal/modules/reward/dto"
)

const (
	BaseBookXP         = 50
	AuthorStreakXP     = 100
	CategoryStreakXP   = 50
	MarathonMultiplier = 2
	// StreakWindow is how many recent completions the streak bonuses look at.
	StreakWindow = 5

	TriviaXPPerCorrect     = 10
	TriviaPointsPerCorrect = 5
)

// BookXP computes the XP for finishing book. recent holds the user's latest
// completions, newest first, the book itself included.
func BookXP(book *entity.Book, recent []entity.Book, marathon bool) (int, []rewardDto.Bonus) {
	bonuses := []rewardDto.Bonus{{Label: "Kitap tamamlandı", XP: BaseBookXP}}
	total := BaseBookXP

	if len(recent) > StreakWindow {
		recent = recent[:StreakWindow]
	}
	sameAuthor, sameCategory := 0, 0
	for _, b := range recent {
		if sameName(b.Author, book.Author) {
			sameAuthor++
		}
		if b.CategoryID == book.CategoryID {
			sameCategory++
		}
	}
	if sameAuthor >= 2 {
		bonuses = append(bonuses, rewardDto.Bonus{Label: "Yazar serisi", XP: AuthorStreakXP})
		total += AuthorStreakXP
	}
	if sameCategory >= 2 {
		bonuses = append(bonuses, rewardDto.Bonus{Label: "Tür serisi", XP: CategoryStreakXP})
		total += CategoryStreakXP
	}

	if marathon {
		extra := total * (MarathonMultiplier - 1)
		bonuses = append(bonuses, rewardDto.Bonus{Label: "Maraton x2", XP: extra})
		total += extra
	}
	return total, bonuses
}

// Summary renders a breakdown such as "+150 XP (Kitap tamamlandı +50, Yazar serisi +100)".
func Summary(total int, bonuses []rewardDto.Bonus) string {
	parts := make([]string, 0, len(bonuses))
	for _, b := range bonuses {
		parts = append(parts, fmt.Sprintf("%s +%d", b.Label, b.XP))
	}
	return fmt.Sprintf("+%d XP (%s)", total, strings.Join(parts, ", "))
}

func sameName(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

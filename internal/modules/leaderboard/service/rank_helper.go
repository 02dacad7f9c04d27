package service

import (
	"math"

	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	commonDto "anoa.com/kitaplik/pkg/dto"
)

// Level titles. The title is always derived from all-time XP so it never demotes.
const (
	LevelEfsane     = 12 // 🏆 Efsane Okur
	LevelBilge      = 8  // 🎖️ Kütüphane Bilgesi
	LevelAvci       = 5  // ⭐ Sayfa Avcısı
	LevelKitapKurdu = 3  // 📚 Kitap Kurdu
)

// Weekly activity thresholds, in XP earned over the last 7 days.
const (
	WeeklyOnFire   = 300 // 🔥 Okuma Ateşi
	WeeklyTrending = 150 // ⚡ Hızlı Okur
	WeeklyActive   = 50  // 📈 Aktif
)

func LevelTitle(level int) string {
	switch {
	case level >= LevelEfsane:
		return "Efsane Okur"
	case level >= LevelBilge:
		return "Kütüphane Bilgesi"
	case level >= LevelAvci:
		return "Sayfa Avcısı"
	case level >= LevelKitapKurdu:
		return "Kitap Kurdu"
	default:
		return "Çırak Okur"
	}
}

func WeeklyLabel(weeklyXP int) string {
	switch {
	case weeklyXP >= WeeklyOnFire:
		return "🔥 Okuma Ateşi"
	case weeklyXP >= WeeklyTrending:
		return "⚡ Hızlı Okur"
	case weeklyXP >= WeeklyActive:
		return "📈 Aktif"
	default:
		return ""
	}
}

// GetLevelStatus builds the display status for xp, with weeklyXP as context.
func GetLevelStatus(xp, weeklyXP int) commonDto.LevelStatus {
	p := ledgerService.ProgressOf(xp)
	return commonDto.LevelStatus{
		Level:        p.Level,
		Title:        LevelTitle(p.Level),
		CurrentXP:    xp,
		LevelFloorXP: p.FloorXP,
		NextLevelXP:  p.NextXP,
		Progress:     math.Round(p.Percent*100) / 100,
		WeeklyXP:     weeklyXP,
		WeeklyLabel:  WeeklyLabel(weeklyXP),
	}
}

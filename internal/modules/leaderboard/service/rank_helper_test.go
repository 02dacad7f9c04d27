package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLevelStatus(t *testing.T) {
	tests := []struct {
		xp, weekly int
		level      int
		title      string
		label      string
	}{
		{xp: 0, level: 1, title: "Çırak Okur"},
		{xp: 450, weekly: 60, level: 3, title: "Kitap Kurdu", label: "📈 Aktif"},
		{xp: 1600, weekly: 150, level: 5, title: "Sayfa Avcısı", label: "⚡ Hızlı Okur"},
		{xp: 4900, weekly: 300, level: 8, title: "Kütüphane Bilgesi", label: "🔥 Okuma Ateşi"},
		{xp: 12100, level: 12, title: "Efsane Okur"},
	}
	for _, tt := range tests {
		st := GetLevelStatus(tt.xp, tt.weekly)
		assert.Equal(t, tt.level, st.Level, "xp=%d", tt.xp)
		assert.Equal(t, tt.title, st.Title, "xp=%d", tt.xp)
		assert.Equal(t, tt.label, st.WeeklyLabel, "weekly=%d", tt.weekly)
		assert.LessOrEqual(t, st.LevelFloorXP, tt.xp)
		assert.Greater(t, st.NextLevelXP, tt.xp)
	}
}

func TestGetLevelStatusProgress(t *testing.T) {
	st := GetLevelStatus(250, 0)
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, 100, st.LevelFloorXP)
	assert.Equal(t, 400, st.NextLevelXP)
	assert.Equal(t, 50.0, st.Progress)
}

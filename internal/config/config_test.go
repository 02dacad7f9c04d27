package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.DedupWindow)
	assert.Equal(t, 10000, cfg.GiftMaxAmount)
	assert.Equal(t, 5, cfg.DailyTriviaSize)
	assert.Equal(t, 50, cfg.BookOfDayPool)
	assert.Equal(t, 14*24*time.Hour, cfg.QuestRetention)
	assert.Equal(t, time.UTC, cfg.Timezone)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("GIFT_MAX_AMOUNT", "-1")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("GIFT_MAX_AMOUNT", "100")
	t.Setenv("DEDUP_WINDOW", "soon")
	_, err = Load()
	assert.Error(t, err)
}

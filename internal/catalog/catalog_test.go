package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Quests)
	assert.Len(t, c.Badges, 4)
	assert.GreaterOrEqual(t, len(c.Trivia), 5)

	pages := c.QuestsFor("READ_PAGES")
	require.Len(t, pages, 2)
	assert.Equal(t, "daily_pages", pages[0].Key)
}

const requiredBadgesTOML = `
[[badge]]
name = "Tür Kaşifi"

[[badge]]
name = "Bilge Okur"

[[badge]]
name = "Düellocu"

[[badge]]
name = "Hedef Avcısı"
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverride(t *testing.T) {
	path := writeCatalog(t, `
[[quest]]
key = "q"
title = "Q"
metric = "FINISH_BOOK"
target = 1
xp_reward = 10
period = "daily"
`+requiredBadgesTOML+`
[[badge]]
name = "Kitap Kurdu"
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Quests, 1)
	assert.Equal(t, 10, c.Quests[0].XPReward)
	assert.Len(t, c.Badges, 5)
}

func TestLoadOverrideMissingEngineBadges(t *testing.T) {
	path := writeCatalog(t, `
[[badge]]
name = "Kitap Kurdu"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), BadgeGenreExplorer)
}

func TestValidateRejectsDuplicateBadge(t *testing.T) {
	c := &Catalog{}
	for _, name := range RequiredBadges {
		c.Badges = append(c.Badges, BadgeDef{Name: name})
	}
	require.NoError(t, c.Validate())

	c.Badges = append(c.Badges, BadgeDef{Name: BadgeDuelist})
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadPeriod(t *testing.T) {
	c := &Catalog{Quests: []QuestTemplate{{Key: "x", Target: 1, Period: "monthly"}}}
	assert.Error(t, c.Validate())

	c = &Catalog{Trivia: []TriviaDef{{Question: "?", Options: []string{"a"}, Answer: 3}}}
	assert.Error(t, c.Validate())
}

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalog []byte

const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

// Badges the engine awards by name. Every catalog must define them.
const (
	BadgeGenreExplorer = "Tür Kaşifi"
	BadgeWiseReader    = "Bilge Okur"
	BadgeDuelist       = "Düellocu"
	BadgeGoalHunter    = "Hedef Avcısı"
)

var RequiredBadges = []string{BadgeGenreExplorer, BadgeWiseReader, BadgeDuelist, BadgeGoalHunter}

type Catalog struct {
	Quests []QuestTemplate `toml:"quest"`
	Badges []BadgeDef      `toml:"badge"`
	Trivia []TriviaDef     `toml:"trivia"`
}

type QuestTemplate struct {
	Key      string `toml:"key"`
	Title    string `toml:"title"`
	Metric   string `toml:"metric"`
	Target   int    `toml:"target"`
	XPReward int    `toml:"xp_reward"`
	Period   string `toml:"period"`
}

type BadgeDef struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
}

type TriviaDef struct {
	Question string   `toml:"question"`
	Options  []string `toml:"options"`
	Answer   int      `toml:"answer"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	var c Catalog
	if err = toml.NewDecoder(file).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Default() (*Catalog, error) {
	var c Catalog
	if err := toml.NewDecoder(bytes.NewReader(defaultCatalog)).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode default catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Quests))
	for _, q := range c.Quests {
		if q.Key == "" || seen[q.Key] {
			return fmt.Errorf("quest key %q is empty or duplicated", q.Key)
		}
		seen[q.Key] = true
		if q.Target <= 0 || q.XPReward < 0 {
			return fmt.Errorf("quest %q: target must be positive and reward non-negative", q.Key)
		}
		if q.Period != PeriodDaily && q.Period != PeriodWeekly {
			return fmt.Errorf("quest %q: unknown period %q", q.Key, q.Period)
		}
	}
	badges := make(map[string]bool, len(c.Badges))
	for _, b := range c.Badges {
		if b.Name == "" || badges[b.Name] {
			return fmt.Errorf("badge name %q is empty or duplicated", b.Name)
		}
		badges[b.Name] = true
	}
	for _, name := range RequiredBadges {
		if !badges[name] {
			return fmt.Errorf("catalog is missing required badge %q", name)
		}
	}
	for _, t := range c.Trivia {
		if t.Answer < 0 || t.Answer >= len(t.Options) {
			return fmt.Errorf("trivia %q: answer index out of range", t.Question)
		}
	}
	return nil
}

// QuestsFor returns the templates tracking metric.
func (c *Catalog) QuestsFor(metric string) []QuestTemplate {
	var out []QuestTemplate
	for _, q := range c.Quests {
		if q.Metric == metric {
			out = append(out, q)
		}
	}
	return out
}

package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Skill is one rated proficiency entry on the profile.
type Skill struct {
	Name            string `json:"name"`
	Level           int    `json:"level"`
	ExperienceYears string `json:"experience_years"`
}

// Category groups related skills for the dashboard.
type Category struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Catalog is the full skills document loaded at startup.
type Catalog struct {
	Categories []Category `json:"categories"`
}

// Load reads the skills document from disk.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skills file: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parsing skills file: %w", err)
	}
	return &catalog, nil
}

// CompactSummary flattens the catalog into a one-block text the prompt
// can embed. Skills within a category are listed strongest first.
func (c *Catalog) CompactSummary() string {
	var sb strings.Builder
	for _, category := range c.Categories {
		skills := make([]Skill, len(category.Skills))
		copy(skills, category.Skills)
		sort.SliceStable(skills, func(i, j int) bool {
			return skills[i].Level > skills[j].Level
		})

		sb.WriteString(category.Name)
		sb.WriteString(":")
		for _, skill := range skills {
			sb.WriteString(fmt.Sprintf(" - %s (Lv %d/10)", skill.Name, skill.Level))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// CategoryNames preserves the document order for the dashboard tabs.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		names = append(names, category.Name)
	}
	return names
}

// ByCategory returns the skills of one category, strongest first.
func (c *Catalog) ByCategory(name string) ([]Skill, bool) {
	for _, category := range c.Categories {
		if strings.EqualFold(category.Name, name) {
			skills := make([]Skill, len(category.Skills))
			copy(skills, category.Skills)
			sort.SliceStable(skills, func(i, j int) bool {
				return skills[i].Level > skills[j].Level
			})
			return skills, true
		}
	}
	return nil, false
}

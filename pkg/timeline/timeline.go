package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Event is one entry on the professional timeline. Start/End are
// ISO dates; End is empty for ongoing roles.
type Event struct {
	Date  string   `json:"date"`
	Event string   `json:"event"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Timeline is the full career document loaded at startup.
type Timeline struct {
	Title  string  `json:"title"`
	Events []Event `json:"events"`
}

// Load reads the timeline document from disk.
func Load(path string) (*Timeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading timeline file: %w", err)
	}

	var tl Timeline
	if err := json.Unmarshal(raw, &tl); err != nil {
		return nil, fmt.Errorf("parsing timeline file: %w", err)
	}
	return &tl, nil
}

// Tags returns the sorted set of tags used across all events.
func (t *Timeline) Tags() []string {
	seen := map[string]bool{}
	for _, event := range t.Events {
		for _, tag := range event.Tags {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Filter keeps events carrying at least one of the requested tags. An
// empty tag list returns every event.
func (t *Timeline) Filter(tags []string) []Event {
	if len(tags) == 0 {
		return t.Events
	}

	wanted := map[string]bool{}
	for _, tag := range tags {
		wanted[tag] = true
	}

	var filtered []Event
	for _, event := range t.Events {
		for _, tag := range event.Tags {
			if wanted[tag] {
				filtered = append(filtered, event)
				break
			}
		}
	}
	return filtered
}

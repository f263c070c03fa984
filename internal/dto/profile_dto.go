package dto

type SkillDTO struct {
	Name            string `json:"name"`
	Level           int    `json:"level"`
	ExperienceYears string `json:"experience_years"`
}

type SkillCategoryDTO struct {
	Name   string     `json:"name"`
	Skills []SkillDTO `json:"skills"`
}

type GetSkillsResponse struct {
	Categories []SkillCategoryDTO `json:"categories"`
}

type TimelineEventDTO struct {
	Date  string   `json:"date"`
	Event string   `json:"event"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

type GetTimelineResponse struct {
	Title  string             `json:"title"`
	Tags   []string           `json:"tags"`
	Events []TimelineEventDTO `json:"events"`
}

type GetSuggestedPromptsResponse struct {
	Prompts []string `json:"prompts"`
}

package service

import (
	"context"

	"cv-chatbot-be/internal/dto"
	"cv-chatbot-be/pkg/skills"
	"cv-chatbot-be/pkg/timeline"
)

// Suggested openers shown to visitors who do not know what to ask.
var suggestedPrompts = []string{
	"Where did you study?",
	"Tell me about your academic background.",
	"What was your role at Netcompany - Intrasoft?",
	"Describe your work at Waymore.",
	"What is your work experience besides tech?",
	"What technologies are you proficient with?",
	"How do you use Spark and Kafka in your work?",
	"Tell me about your experience with GCP.",
	"Do you have any certifications?",
	"Are you planning to get any certifications soon?",
	"Can you describe a key data engineering project?",
	"What was your biggest technical challenge?",
}

type IProfileService interface {
	GetSkills(ctx context.Context, category string) (*dto.GetSkillsResponse, error)
	GetTimeline(ctx context.Context, tags []string) (*dto.GetTimelineResponse, error)
	GetSuggestedPrompts(ctx context.Context) (*dto.GetSuggestedPromptsResponse, error)
}

type profileService struct {
	catalog *skills.Catalog
	career  *timeline.Timeline
}

func NewProfileService(catalog *skills.Catalog, career *timeline.Timeline) IProfileService {
	return &profileService{
		catalog: catalog,
		career:  career,
	}
}

func (s *profileService) GetSkills(_ context.Context, category string) (*dto.GetSkillsResponse, error) {
	resp := &dto.GetSkillsResponse{}

	for _, name := range s.catalog.CategoryNames() {
		if category != "" && name != category {
			continue
		}
		catSkills, _ := s.catalog.ByCategory(name)

		skillDTOs := make([]dto.SkillDTO, len(catSkills))
		for i, skill := range catSkills {
			skillDTOs[i] = dto.SkillDTO{
				Name:            skill.Name,
				Level:           skill.Level,
				ExperienceYears: skill.ExperienceYears,
			}
		}
		resp.Categories = append(resp.Categories, dto.SkillCategoryDTO{
			Name:   name,
			Skills: skillDTOs,
		})
	}

	return resp, nil
}

func (s *profileService) GetTimeline(_ context.Context, tags []string) (*dto.GetTimelineResponse, error) {
	events := s.career.Filter(tags)

	eventDTOs := make([]dto.TimelineEventDTO, len(events))
	for i, event := range events {
		eventDTOs[i] = dto.TimelineEventDTO{
			Date:  event.Date,
			Event: event.Event,
			Start: event.Start,
			End:   event.End,
			Tags:  event.Tags,
		}
	}

	return &dto.GetTimelineResponse{
		Title:  s.career.Title,
		Tags:   s.career.Tags(),
		Events: eventDTOs,
	}, nil
}

func (s *profileService) GetSuggestedPrompts(_ context.Context) (*dto.GetSuggestedPromptsResponse, error) {
	prompts := make([]string, len(suggestedPrompts))
	copy(prompts, suggestedPrompts)
	return &dto.GetSuggestedPromptsResponse{Prompts: prompts}, nil
}

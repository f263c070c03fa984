package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/pkg/skills"
	"cv-chatbot-be/pkg/timeline"
)

func newTestProfileService() IProfileService {
	catalog := &skills.Catalog{
		Categories: []skills.Category{
			{
				Name: "Data Engineering",
				Skills: []skills.Skill{
					{Name: "Python", Level: 8, ExperienceYears: "4"},
					{Name: "SQL", Level: 9, ExperienceYears: "4"},
				},
			},
			{
				Name: "Languages",
				Skills: []skills.Skill{
					{Name: "Greek", Level: 10, ExperienceYears: "native"},
				},
			},
		},
	}

	career := &timeline.Timeline{
		Title: "Professional Timeline",
		Events: []timeline.Event{
			{Date: "2016", Event: "Started university.", Tags: []string{"education"}},
			{Date: "2021", Event: "Joined Netcompany - Intrasoft.", Tags: []string{"work", "data-engineering"}},
			{Date: "2023", Event: "Moved to Waymore.", Tags: []string{"work", "data-engineering"}},
		},
	}

	return NewProfileService(catalog, career)
}

func TestGetSkillsAllCategories(t *testing.T) {
	svc := newTestProfileService()

	resp, err := svc.GetSkills(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "Data Engineering", resp.Categories[0].Name)

	// Strongest first within a category.
	assert.Equal(t, "SQL", resp.Categories[0].Skills[0].Name)
	assert.Equal(t, "Python", resp.Categories[0].Skills[1].Name)
}

func TestGetSkillsFilteredByCategory(t *testing.T) {
	svc := newTestProfileService()

	resp, err := svc.GetSkills(context.Background(), "Languages")
	require.NoError(t, err)

	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Languages", resp.Categories[0].Name)
	require.Len(t, resp.Categories[0].Skills, 1)
	assert.Equal(t, "Greek", resp.Categories[0].Skills[0].Name)
}

func TestGetTimelineFiltersByTags(t *testing.T) {
	svc := newTestProfileService()

	all, err := svc.GetTimeline(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all.Events, 3)
	assert.Equal(t, []string{"data-engineering", "education", "work"}, all.Tags)

	work, err := svc.GetTimeline(context.Background(), []string{"work"})
	require.NoError(t, err)
	require.Len(t, work.Events, 2)
	assert.Equal(t, "Joined Netcompany - Intrasoft.", work.Events[0].Event)
}

func TestGetSuggestedPrompts(t *testing.T) {
	svc := newTestProfileService()

	resp, err := svc.GetSuggestedPrompts(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Prompts, 12)
	assert.Contains(t, resp.Prompts, "Where did you study?")

	// Callers get a copy, not the shared slice.
	resp.Prompts[0] = "mutated"
	again, err := svc.GetSuggestedPrompts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Where did you study?", again.Prompts[0])
}

package timeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "title": "Career Timeline",
  "events": [
    {"date": "2021-03", "event": "Internship at Netcompany - Intrasoft", "tags": ["work"]},
    {"date": "2023-01", "event": "Joined Waymore", "tags": ["work"]},
    {"date": "2020-09", "event": "Azure certification", "tags": ["certification"]}
  ]
}`

func loadFixture(t *testing.T) *Timeline {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timeline.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))

	tl, err := Load(path)
	require.NoError(t, err)
	return tl
}

func TestLoad(t *testing.T) {
	tl := loadFixture(t)
	assert.Equal(t, "Career Timeline", tl.Title)
	assert.Len(t, tl.Events, 3)
}

func TestTagsAreSortedAndUnique(t *testing.T) {
	tl := loadFixture(t)
	assert.Equal(t, []string{"certification", "work"}, tl.Tags())
}

func TestFilterByTag(t *testing.T) {
	tl := loadFixture(t)

	work := tl.Filter([]string{"work"})
	require.Len(t, work, 2)
	assert.Equal(t, "Internship at Netcompany - Intrasoft", work[0].Event)

	assert.Len(t, tl.Filter(nil), 3)
	assert.Empty(t, tl.Filter([]string{"education"}))
}

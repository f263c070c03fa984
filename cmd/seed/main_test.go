package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctSources(t *testing.T) {
	docs := []seedDocument{
		{Source: "experience"},
		{Source: "skills"},
		{Source: "experience"},
		{Source: "language"},
		{Source: "skills"},
	}

	assert.Equal(t, []string{"experience", "skills", "language"}, distinctSources(docs))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		arg  string
		want mode
	}{
		{"", modeSync},
		{"clear-chat", modeClearChat},
		{"CLEAR-CHAT", modeClearChat},
		{"Clear-Matches", modeClearMatches},
		{" clear-matches ", modeClearMatches},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseMode(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModeSuggestsClosest(t *testing.T) {
	_, err := parseMode("clear-match")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "clear-matches"`)

	_, err = parseMode("clearchat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "clear-chat"`)
}

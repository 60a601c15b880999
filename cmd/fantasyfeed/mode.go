package main

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type mode string

const (
	modeSync         mode = ""
	modeClearChat    mode = "clear-chat"
	modeClearMatches mode = "clear-matches"
)

var maintenanceModes = []mode{modeClearChat, modeClearMatches}

// parseMode accepts no argument (sync) or a maintenance keyword in any case.
func parseMode(arg string) (mode, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return modeSync, nil
	}

	closest, best := maintenanceModes[0], -1
	for _, m := range maintenanceModes {
		if arg == string(m) {
			return m, nil
		}
		distance := fuzzy.LevenshteinDistance(arg, string(m))
		if best < 0 || distance < best {
			closest, best = m, distance
		}
	}
	return modeSync, fmt.Errorf("unknown mode %q, did you mean %q?", arg, closest)
}

const placeholderGuidance = `STOP: APP_ID is still set to the placeholder value.
  1. Open the dashboard preview.
  2. Copy the app id it shows.
  3. Set APP_ID in your environment or .env file.
  4. Re-run 'fantasyfeed clear-matches' to start fresh.`

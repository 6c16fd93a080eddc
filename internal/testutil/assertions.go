package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLeaderboardEntry checks that the run printed a leaderboard entry for
// path with the given success probability, formatted as the app prints it.
func AssertLeaderboardEntry(t *testing.T, result *HarnessResult, path, probability string) {
	t.Helper()

	expected := "Path: " + path + "\n\tProbability of Success: " + probability + "\n"
	require.True(t,
		strings.Contains(result.Output, expected),
		"expected leaderboard entry %q was not found in output:\n%s", expected, result.Output,
	)
}

// AssertLeaderboardOrder checks that paths appear in the printed leaderboard
// in the given order.
func AssertLeaderboardOrder(t *testing.T, result *HarnessResult, paths ...string) {
	t.Helper()

	last := -1
	for _, p := range paths {
		idx := strings.Index(result.Output, "Path: "+p+"\n")
		require.GreaterOrEqual(t, idx, 0, "path %q not found in output", p)
		require.Greater(t, idx, last, "path %q is out of order", p)
		last = idx
	}
}

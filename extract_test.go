package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFiltersAndProjects(t *testing.T) {
	db := newTestDB(t)
	loadPlays(t, db, [][]string{
		// BAL away: projection must pick away_wp / away score.
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "3600", "0.47", "0.53", "0.47", "0", "0", "kickoff"),
		// BAL home: projection must pick home_wp / home score.
		playRow("2024_02_LV_BAL", "BAL", "LV", "REG", "2", "1800", "0.81", "0.81", "0.19", "23", "13", "touchdown"),
		// Not a BAL game.
		playRow("2024_01_KC_CIN", "KC", "CIN", "REG", "1", "3600", "0.55", "0.55", "0.45", "0", "0", "kickoff"),
		// Null win probability and null clock rows are ineligible.
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "3500", "", "0.52", "0.48", "0", "0", "timeout"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "", "0.46", "0.54", "0.46", "0", "0", "end quarter"),
	})

	plays, err := extractPlays(db, "ravens_2024")
	require.NoError(t, err)
	require.Len(t, plays, 2)

	away := plays[0]
	assert.Equal(t, "2024_01_BAL_KC", away.GameID)
	assert.Equal(t, 0.47, away.WinProb)
	assert.Equal(t, 0, away.RavensScore)
	assert.Equal(t, "KC", away.HomeTeam)
	assert.Equal(t, "BAL", away.AwayTeam)

	home := plays[1]
	assert.Equal(t, "2024_02_LV_BAL", home.GameID)
	assert.Equal(t, 0.81, home.WinProb)
	assert.Equal(t, 23, home.RavensScore)
	assert.Equal(t, 13, home.OpponentScore)
	assert.Equal(t, "touchdown", home.PlayDesc)
}

func TestExtractTimeTransform(t *testing.T) {
	db := newTestDB(t)
	loadPlays(t, db, [][]string{
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "3600", "0.47", "0.53", "0.47", "0", "0", "kickoff"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "3599", "0.47", "0.53", "0.47", "0", "0", "first snap"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "1800", "0.50", "0.50", "0.50", "10", "10", "halftime"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "0", "0.20", "0.80", "0.20", "20", "27", "end game"),
	})

	plays, err := extractPlays(db, "ravens_2024")
	require.NoError(t, err)
	require.Len(t, plays, 4)

	assert.Equal(t, 0.0, plays[0].MinutesElapsed)
	assert.Equal(t, 60.0, plays[0].MinutesRemaining)
	// Rounded to 3 decimals: 1/60 elapsed.
	assert.Equal(t, 0.017, plays[1].MinutesElapsed)
	assert.Equal(t, 59.983, plays[1].MinutesRemaining)
	assert.Equal(t, 30.0, plays[2].MinutesElapsed)
	assert.Equal(t, 60.0, plays[3].MinutesElapsed)
	assert.Equal(t, 0.0, plays[3].MinutesRemaining)
}

func TestExtractOrdering(t *testing.T) {
	db := newTestDB(t)
	// Deliberately shuffled source rows across two games.
	loadPlays(t, db, [][]string{
		playRow("2024_02_LV_BAL", "BAL", "LV", "REG", "2", "900", "0.81", "0.81", "0.19", "23", "13", "late"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "0", "0.20", "0.80", "0.20", "20", "27", "end"),
		playRow("2024_02_LV_BAL", "BAL", "LV", "REG", "2", "3600", "0.53", "0.53", "0.47", "0", "0", "kickoff"),
		playRow("2024_01_BAL_KC", "KC", "BAL", "REG", "1", "3600", "0.47", "0.53", "0.47", "0", "0", "kickoff"),
	})

	plays, err := extractPlays(db, "ravens_2024")
	require.NoError(t, err)
	require.Len(t, plays, 4)

	for i := 1; i < len(plays); i++ {
		if plays[i].GameID == plays[i-1].GameID {
			assert.GreaterOrEqual(t, plays[i].MinutesElapsed, plays[i-1].MinutesElapsed)
		} else {
			assert.Greater(t, plays[i].GameID, plays[i-1].GameID)
		}
	}
}

func TestExtractEmptyResultIsFatal(t *testing.T) {
	db := newTestDB(t)
	loadPlays(t, db, [][]string{
		playRow("2024_01_KC_CIN", "KC", "CIN", "REG", "1", "3600", "0.55", "0.55", "0.45", "0", "0", "kickoff"),
	})

	_, err := extractPlays(db, "ravens_2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no BAL plays")
}

func TestOpenExistingDBMissingFile(t *testing.T) {
	_, err := openExistingDB("/nonexistent/ravens_2024.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not found")
}

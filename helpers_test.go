package main

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// playColumns is the minimal play-by-play schema the extraction query needs.
var playColumns = []string{
	"game_id", "home_team", "away_team", "season_type", "week",
	"qtr", "quarter_seconds_remaining", "game_seconds_remaining",
	"wp", "home_wp", "away_wp", "total_home_score", "total_away_score", "desc",
}

// playRow builds one synthetic play. wp doubles as the eligibility value and
// homeWP/awayWP carry the per-side probabilities the projection picks from.
func playRow(gameID, home, away, seasonType, week, gsr, wp, homeWP, awayWP, homeScore, awayScore, desc string) []string {
	return []string{gameID, home, away, seasonType, week, "1", "900", gsr, wp, homeWP, awayWP, homeScore, awayScore, desc}
}

func writeCSVFile(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plays.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	for _, row := range rows {
		require.NoError(t, w.Write(row))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())
	return path
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// loadPlays writes the rows to a CSV and loads them into table ravens_2024.
func loadPlays(t *testing.T, db *sql.DB, rows [][]string) int {
	t.Helper()
	path := writeCSVFile(t, playColumns, rows)
	count, err := loadCSV(db, path, "ravens_2024", "row_id", "replace")
	require.NoError(t, err)
	return count
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("PRAGMA table_info(" + quoteIdent(table) + ")")
	require.NoError(t, err)
	defer rows.Close()
	var names []string
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, ctype      string
			dflt             any
		)
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func mkPlay(gameID string, minutes, wp float64, ravens, opponent int) TeamPlay {
	return TeamPlay{
		GameID:         gameID,
		SeasonType:     "REG",
		Week:           1,
		HomeTeam:       "BAL",
		AwayTeam:       "KC",
		MinutesElapsed: minutes,
		WinProb:        wp,
		RavensScore:    ravens,
		OpponentScore:  opponent,
	}
}

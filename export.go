package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var flatHeader = []string{
	"game_id", "season_type", "week", "home_team", "away_team",
	"minutes_elapsed", "minutes_remaining", "win_prob",
	"ravens_score", "opponent_score", "play_desc",
}

type playJSON struct {
	T  float64 `json:"t"`
	WP float64 `json:"wp"`
}

type gameJSON struct {
	GameID     string      `json:"game_id"`
	SeasonType string      `json:"season_type"`
	Week       int         `json:"week"`
	HomeTeam   string      `json:"home_team"`
	AwayTeam   string      `json:"away_team"`
	Result     string      `json:"result"`
	FinalWP    int         `json:"final_wp"`
	Points     GamePoints  `json:"points"`
	Metrics    GameMetrics `json:"metrics"`
	Highlight  bool        `json:"highlight"`
	Plays      []playJSON  `json:"plays"`
}

type seasonJSON struct {
	Games              []gameJSON `json:"games"`
	MostExcitingGameID string     `json:"most_exciting_game_id"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderFlatCSV renders one row per play across all games, in game order.
// Values come from the aggregated games so the CSV and the JSON carry
// identical play values, terminal correction included.
func renderFlatCSV(season Season) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(flatHeader); err != nil {
		return nil, err
	}
	for _, g := range season.Games {
		for _, p := range g.Plays {
			rec := []string{
				p.GameID, p.SeasonType, strconv.Itoa(p.Week), p.HomeTeam, p.AwayTeam,
				formatFloat(p.MinutesElapsed), formatFloat(p.MinutesRemaining), formatFloat(p.WinProb),
				strconv.Itoa(p.RavensScore), strconv.Itoa(p.OpponentScore), p.PlayDesc,
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func seasonPayload(season Season) seasonJSON {
	out := seasonJSON{
		Games:              make([]gameJSON, 0, len(season.Games)),
		MostExcitingGameID: season.MostExcitingGame,
	}
	for _, g := range season.Games {
		gj := gameJSON{
			GameID:     g.GameID,
			SeasonType: g.SeasonType,
			Week:       g.Week,
			HomeTeam:   g.HomeTeam,
			AwayTeam:   g.AwayTeam,
			Result:     g.Result,
			FinalWP:    g.FinalWP,
			Points:     g.Points,
			Metrics:    g.Metrics,
			Highlight:  g.Highlight,
			Plays:      make([]playJSON, 0, len(g.Plays)),
		}
		for _, p := range g.Plays {
			gj.Plays = append(gj.Plays, playJSON{T: p.MinutesElapsed, WP: p.WinProb})
		}
		out.Games = append(out.Games, gj)
	}
	return out
}

func renderSeasonJSON(season Season) ([]byte, error) {
	return json.MarshalIndent(seasonPayload(season), "", "  ")
}

// writeExports renders both forms fully in memory before touching the
// filesystem, so a failed run leaves no partial output behind.
func writeExports(season Season, csvPath, jsonPath string) error {
	csvData, err := renderFlatCSV(season)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", csvPath, err)
	}
	jsonData, err := renderSeasonJSON(season)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", jsonPath, err)
	}
	for _, p := range []string{csvPath, jsonPath} {
		if dir := filepath.Dir(p); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
	}
	if err := os.WriteFile(csvPath, csvData, 0o644); err != nil {
		return err
	}
	return os.WriteFile(jsonPath, append(jsonData, '\n'), 0o644)
}

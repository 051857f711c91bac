package main

import (
	"database/sql"
	"fmt"
)

// subjectTeam is the team every derived play is projected onto. The pipeline
// is fixed to one dataset; this is not meant to be configurable.
const subjectTeam = "BAL"

// TeamPlay is one play of a Ravens game projected onto the Ravens'
// perspective: elapsed game time, their win probability, their score and the
// opponent's score.
type TeamPlay struct {
	GameID           string  `json:"game_id"`
	SeasonType       string  `json:"season_type"`
	Week             int     `json:"week"`
	HomeTeam         string  `json:"home_team"`
	AwayTeam         string  `json:"away_team"`
	MinutesElapsed   float64 `json:"minutes_elapsed"`
	MinutesRemaining float64 `json:"minutes_remaining"`
	WinProb          float64 `json:"win_prob"`
	RavensScore      int     `json:"ravens_score"`
	OpponentScore    int     `json:"opponent_score"`
	PlayDesc         string  `json:"play_desc"`
}

// extractPlays pulls every eligible play involving the subject team, already
// projected and ordered chronologically per game. Plays missing a win
// probability or a game clock (kickoff placeholders, END GAME rows) are
// filtered out up front.
//
// 3600 is one regulation game in seconds; overtime rows fall outside that and
// pass through with minutes_elapsed past 60.
func extractPlays(db *sql.DB, table string) ([]TeamPlay, error) {
	query := fmt.Sprintf(`
    WITH base AS (
        SELECT
            game_id,
            home_team,
            away_team,
            season_type,
            week,
            game_seconds_remaining,
            home_wp,
            away_wp,
            total_home_score AS home_score,
            total_away_score AS away_score,
            "desc" AS play_desc
        FROM %s
        WHERE (home_team = ? OR away_team = ?)
          AND wp IS NOT NULL
          AND game_seconds_remaining IS NOT NULL
    ), enriched AS (
        SELECT
            *,
            ROUND((3600 - game_seconds_remaining) / 60.0, 3) AS minutes_elapsed,
            ROUND(game_seconds_remaining / 60.0, 3) AS minutes_remaining,
            CASE WHEN home_team = ? THEN home_wp ELSE away_wp END AS ravens_wp_raw,
            CASE WHEN home_team = ? THEN home_score ELSE away_score END AS ravens_score,
            CASE WHEN home_team = ? THEN away_score ELSE home_score END AS opponent_score
        FROM base
    )
    SELECT
        game_id,
        season_type,
        week,
        home_team,
        away_team,
        minutes_elapsed,
        minutes_remaining,
        ravens_wp_raw AS win_prob,
        ravens_score,
        opponent_score,
        play_desc
    FROM enriched
    ORDER BY game_id, minutes_elapsed`, quoteIdent(table))

	rows, err := db.Query(query, subjectTeam, subjectTeam, subjectTeam, subjectTeam, subjectTeam)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []TeamPlay
	for rows.Next() {
		var (
			p    TeamPlay
			desc sql.NullString
		)
		if err := rows.Scan(&p.GameID, &p.SeasonType, &p.Week, &p.HomeTeam, &p.AwayTeam,
			&p.MinutesElapsed, &p.MinutesRemaining, &p.WinProb,
			&p.RavensScore, &p.OpponentScore, &desc); err != nil {
			return nil, err
		}
		p.PlayDesc = desc.String
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(plays) == 0 {
		return nil, fmt.Errorf("no %s plays extracted from table %s", subjectTeam, table)
	}
	return plays, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ravens-winprob/templates"

	"github.com/a-h/templ"
)

// buildPageData reduces the season to what the overview page needs.
func buildPageData(season Season) templates.WinProbPageData {
	data := templates.WinProbPageData{
		Team:               subjectTeam,
		MostExcitingGameID: season.MostExcitingGame,
	}
	for _, g := range season.Games {
		opponent := g.HomeTeam
		if g.HomeTeam == subjectTeam {
			opponent = g.AwayTeam
		}
		data.Games = append(data.Games, templates.GameSummary{
			GameID:      g.GameID,
			Week:        g.Week,
			SeasonType:  g.SeasonType,
			Opponent:    opponent,
			Result:      g.Result,
			RavensScore: g.Points.Ravens,
			OppScore:    g.Points.Opponent,
			LeadChanges: g.Metrics.LeadChanges,
			Amplitude:   g.Metrics.Amplitude,
			Highlight:   g.Highlight,
		})
	}
	return data
}

// serveSeason hosts the chart page and the JSON api over an already
// aggregated season. The data is static for the process lifetime; a reload
// means re-running the server.
func serveSeason(season Season, addr string) error {
	payload := seasonPayload(season)
	page := templates.WinProbPage(buildPageData(season))

	mux := http.NewServeMux()
	mux.Handle("/", templ.Handler(page))
	mux.HandleFunc("/api/winprob", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	fmt.Printf("🏈 Win probability charts on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, mux)
}

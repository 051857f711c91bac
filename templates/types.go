package templates

type GameSummary struct {
	GameID      string  `json:"game_id"`
	Week        int     `json:"week"`
	SeasonType  string  `json:"season_type"`
	Opponent    string  `json:"opponent"`
	Result      string  `json:"result"`
	RavensScore int     `json:"ravens_score"`
	OppScore    int     `json:"opponent_score"`
	LeadChanges int     `json:"lead_changes"`
	Amplitude   float64 `json:"amplitude"`
	Highlight   bool    `json:"highlight"`
}

type WinProbPageData struct {
	Team               string
	Games              []GameSummary
	MostExcitingGameID string
}

package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// WinProbPage renders the season overview with a per-game win probability
// chart. The chart itself is drawn client-side from /api/winprob so the page
// stays a thin shell over the exported JSON shape.
func WinProbPage(data WinProbPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		write := func(s string) error {
			_, err := io.WriteString(w, s)
			return err
		}
		if err := write(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>` +
			templ.EscapeString(data.Team) + ` Win Probability</title><script src="https://cdn.tailwindcss.com"></script></head>` +
			`<body class="bg-[#1a1028] font-sans text-stone-100"><div class="max-w-5xl mx-auto p-6">` +
			`<h1 class="text-3xl font-black mb-1">` + templ.EscapeString(data.Team) + ` 2024 Win Probability</h1>` +
			`<p class="text-stone-400 mb-6">Pick a game to see its win probability curve. ⭐ marks the most exciting game of the season.</p>`); err != nil {
			return err
		}

		if err := write(`<div class="mb-4"><label class="block text-sm font-semibold mb-1">Select Game</label><select id="gameId" class="w-full p-3 rounded-md text-stone-900">`); err != nil {
			return err
		}
		for _, g := range data.Games {
			label := fmt.Sprintf("Week %d %s vs %s — %s %d-%d", g.Week, g.SeasonType, g.Opponent, g.Result, g.RavensScore, g.OppScore)
			if g.Highlight {
				label = "⭐ " + label
			}
			selected := ""
			if g.GameID == data.MostExcitingGameID {
				selected = ` selected`
			}
			if err := write(`<option value="` + templ.EscapeString(g.GameID) + `"` + selected + `>` + templ.EscapeString(label) + `</option>`); err != nil {
				return err
			}
		}
		if err := write(`</select></div>`); err != nil {
			return err
		}

		if err := write(`<div class="bg-white/5 rounded-3xl p-4 mb-6"><svg id="chart" viewBox="0 0 640 240" class="w-full"></svg></div>` +
			`<div id="meta" class="text-sm text-stone-300"></div>`); err != nil {
			return err
		}

		if err := write(`<table class="w-full mt-6 text-sm"><thead><tr class="text-left text-stone-400"><th class="py-1">Week</th><th>Opponent</th><th>Result</th><th>Score</th><th>Lead changes</th><th>Amplitude</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, g := range data.Games {
			row := `<tr class="border-t border-white/10"><td class="py-1">` + strconv.Itoa(g.Week) + `</td><td>` +
				templ.EscapeString(g.Opponent) + `</td><td>` + templ.EscapeString(g.Result) + `</td><td>` +
				strconv.Itoa(g.RavensScore) + `-` + strconv.Itoa(g.OppScore) + `</td><td>` +
				strconv.Itoa(g.LeadChanges) + `</td><td>` + strconv.FormatFloat(g.Amplitude, 'f', 3, 64) + `</td></tr>`
			if err := write(row); err != nil {
				return err
			}
		}
		if err := write(`</tbody></table>`); err != nil {
			return err
		}

		if err := write(`<script>
        let payload = null;
        async function load(){
            const resp = await fetch('/api/winprob');
            if (!resp.ok) { alert('Failed to load win probability data'); return; }
            payload = await resp.json();
            draw();
        }
        function draw(){
            const gid = document.getElementById('gameId').value;
            const game = payload.games.find(g => g.game_id === gid);
            if (!game) return;
            const svg = document.getElementById('chart');
            const W = 640, H = 240, pad = 20;
            const ts = game.plays.map(p => p.t);
            const tMax = Math.max(60, ...ts);
            const pts = game.plays.map(p =>
                (pad + (p.t / tMax) * (W - 2*pad)).toFixed(1) + ',' +
                (H - pad - p.wp * (H - 2*pad)).toFixed(1)
            ).join(' ');
            const mid = H - pad - 0.5 * (H - 2*pad);
            svg.innerHTML =
                '<line x1="'+pad+'" y1="'+mid+'" x2="'+(W-pad)+'" y2="'+mid+'" stroke="#666" stroke-dasharray="4 4"/>' +
                '<polyline fill="none" stroke="#a78bfa" stroke-width="2" points="'+pts+'"/>';
            document.getElementById('meta').textContent =
                game.result + ' ' + game.points.ravens + '-' + game.points.opponent +
                ' · ' + game.metrics.lead_changes + ' lead changes · amplitude ' + game.metrics.amplitude +
                (game.highlight ? ' · ⭐ most exciting game' : '');
        }
        document.getElementById('gameId').addEventListener('change', draw);
        load();
        </script></div></body></html>`); err != nil {
			return err
		}
		return nil
	})
}

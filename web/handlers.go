package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/manugarri/bb-league/controller"
	"github.com/manugarri/bb-league/db"
	"github.com/manugarri/bb-league/model"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// statusForError maps controller and db errors to HTTP status codes.
// Lifecycle conflicts are 409, validation rejections 400, missing rows
// 404, everything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrRaceNotFound),
		errors.Is(err, db.ErrTeamNotFound),
		errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrSkillNotFound),
		errors.Is(err, db.ErrStarPlayerNotFound),
		errors.Is(err, db.ErrLeagueNotFound),
		errors.Is(err, db.ErrSeasonNotFound),
		errors.Is(err, db.ErrMatchNotFound),
		errors.Is(err, db.ErrInducementNotFound),
		errors.Is(err, db.ErrBetNotFound):
		return http.StatusNotFound

	case errors.Is(err, db.ErrDuplicateBet),
		errors.Is(err, db.ErrAlreadySubmitted),
		errors.Is(err, controller.ErrMatchAlreadyCompleted),
		errors.Is(err, controller.ErrMatchNotCompleted),
		errors.Is(err, controller.ErrMatchNotOpen),
		errors.Is(err, controller.ErrInducementsSubmitted):
		return http.StatusConflict

	case errors.Is(err, controller.ErrTeamNotInMatch),
		errors.Is(err, controller.ErrUnknownInducement),
		errors.Is(err, controller.ErrQuantityExceeded),
		errors.Is(err, controller.ErrBudgetExceeded),
		errors.Is(err, controller.ErrInsufficientTreasury),
		errors.Is(err, controller.ErrStarPlayerLimit),
		errors.Is(err, controller.ErrStarPlayerDuplicate),
		errors.Is(err, controller.ErrStarPlayerIneligible),
		errors.Is(err, controller.ErrBetAmountInvalid),
		errors.Is(err, controller.ErrBetTargetRequired),
		errors.Is(err, controller.ErrBetDescriptionNeeded),
		errors.Is(err, controller.ErrBetNotAI),
		errors.Is(err, controller.ErrNotEligibleForLevelUp),
		errors.Is(err, controller.ErrNotEnoughTeams):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func renderError(render *render.Render, w http.ResponseWriter, err error) {
	render.JSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

// idParam parses a numeric chi URL parameter. The route patterns only
// match digits, so a parse failure means a bad route, not bad input.
func idParam(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// userID reads the acting user from the X-User-ID header. Identity is
// trusted from the request; authenticating it is out of scope here.
func userID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 32)
	if err != nil {
		return 0, errors.New("missing or invalid X-User-ID header")
	}
	return int32(id), nil
}

// lang picks the response language from the Accept-Language header.
// Only "es" is recognized; everything else is English.
func lang(r *http.Request) string {
	if r.Header.Get("Accept-Language") == "es" {
		return "es"
	}
	return "en"
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "blood bowl league tracker")
	}
}

func listTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ctrl.ListTeams(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, teams)
	}
}

func getTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := idParam(r, "teamID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		t, err := ctrl.GetTeam(r.Context(), teamID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, t)
	}
}

func recalculateTeamValueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := idParam(r, "teamID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		t, err := ctrl.RecalculateTeamValue(r.Context(), teamID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, t)
	}
}

func listTeamMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := idParam(r, "teamID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		matches, err := ctrl.ListTeamMatches(r.Context(), teamID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := idParam(r, "playerID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		p, err := ctrl.GetPlayer(r.Context(), playerID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func levelUpPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := idParam(r, "playerID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			Skill string `json:"skill"`
			Stat  string `json:"stat"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		p, err := ctrl.LevelUpPlayer(r.Context(), playerID, body.Skill, model.StatAxis(body.Stat))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func createLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var l model.League
		if err := decodeBody(r, &l); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := ctrl.CreateLeague(r.Context(), &l); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, l)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := idParam(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		l, err := ctrl.GetLeague(r.Context(), leagueID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, l)
	}
}

func addLeagueTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := idParam(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID int32 `json:"team_id"`
			Seed   int   `json:"seed"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := ctrl.AddTeamToLeague(r.Context(), leagueID, body.TeamID, body.Seed); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, map[string]any{"league_id": leagueID, "team_id": body.TeamID})
	}
}

func startSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := idParam(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			Name string `json:"name"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		s, err := ctrl.StartSeason(r.Context(), leagueID, body.Name)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, s)
	}
}

func generateScheduleHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := idParam(r, "leagueID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		matches, err := ctrl.GenerateSchedule(r.Context(), leagueID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, matches)
	}
}

func getStandingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := idParam(r, "seasonID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		standings, err := ctrl.GetStandings(r.Context(), seasonID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, standings)
	}
}

func listSeasonMatchesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID, err := idParam(r, "seasonID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		matches, err := ctrl.ListSeasonMatches(r.Context(), seasonID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, matches)
	}
}

func createFriendlyHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HomeTeamID int32 `json:"home_team_id"`
			AwayTeamID int32 `json:"away_team_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		m, err := ctrl.CreateFriendly(r.Context(), body.HomeTeamID, body.AwayTeamID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, m)
	}
}

func getMatchHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		m, err := ctrl.GetMatch(r.Context(), matchID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

// resultRequest mirrors controller.MatchResult with json tags.
type resultRequest struct {
	HomeScore      int    `json:"home_score"`
	AwayScore      int    `json:"away_score"`
	HomeCasualties int    `json:"home_casualties"`
	AwayCasualties int    `json:"away_casualties"`
	HomeWinnings   int    `json:"home_winnings"`
	AwayWinnings   int    `json:"away_winnings"`
	Notes          string `json:"notes"`

	PlayerStats []struct {
		PlayerID            int32  `json:"player_id"`
		Touchdowns          int    `json:"touchdowns"`
		Completions         int    `json:"completions"`
		Interceptions       int    `json:"interceptions"`
		Deflections         int    `json:"deflections"`
		CasualtiesInflicted int    `json:"casualties_inflicted"`
		CasualtiesSuffered  int    `json:"casualties_suffered"`
		IsMVP               bool   `json:"mvp"`
		Injury              string `json:"injury"`
	} `json:"player_stats"`
}

func recordResultHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body resultRequest
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		result := &controller.MatchResult{
			HomeScore:      body.HomeScore,
			AwayScore:      body.AwayScore,
			HomeCasualties: body.HomeCasualties,
			AwayCasualties: body.AwayCasualties,
			HomeWinnings:   body.HomeWinnings,
			AwayWinnings:   body.AwayWinnings,
			Notes:          body.Notes,
		}
		for _, s := range body.PlayerStats {
			result.PlayerStats = append(result.PlayerStats, model.MatchPlayerStats{
				PlayerID:            s.PlayerID,
				Touchdowns:          s.Touchdowns,
				Completions:         s.Completions,
				Interceptions:       s.Interceptions,
				Deflections:         s.Deflections,
				CasualtiesInflicted: s.CasualtiesInflicted,
				CasualtiesSuffered:  s.CasualtiesSuffered,
				IsMVP:               s.IsMVP,
				Injury:              model.InjuryKind(s.Injury),
			})
		}

		m, err := ctrl.RecordMatchResult(r.Context(), matchID, result)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

func amendResultHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			HomeScore      *int    `json:"home_score"`
			AwayScore      *int    `json:"away_score"`
			HomeCasualties *int    `json:"home_casualties"`
			AwayCasualties *int    `json:"away_casualties"`
			HomeWinnings   *int    `json:"home_winnings"`
			AwayWinnings   *int    `json:"away_winnings"`
			Notes          *string `json:"notes"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		m, err := ctrl.AmendMatchResult(r.Context(), matchID, &controller.MatchAmendment{
			HomeScore:      body.HomeScore,
			AwayScore:      body.AwayScore,
			HomeCasualties: body.HomeCasualties,
			AwayCasualties: body.AwayCasualties,
			HomeWinnings:   body.HomeWinnings,
			AwayWinnings:   body.AwayWinnings,
			Notes:          body.Notes,
		})
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, m)
	}
}

func matchStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		stats, err := ctrl.GetMatchPlayerStats(r.Context(), matchID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

func matchChangesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		changes, err := ctrl.GetMatchChanges(r.Context(), matchID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, changes)
	}
}

func prematchOverviewHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		state, err := ctrl.PrematchOverview(r.Context(), matchID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, state)
	}
}

func addInducementHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID       int32  `json:"team_id"`
			InducementID string `json:"inducement_id"`
			Quantity     int    `json:"quantity"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		mi, err := ctrl.AddInducement(r.Context(), matchID, body.TeamID, body.InducementID, body.Quantity, lang(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, mi)
	}
}

func removeInducementHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		entryID, err := idParam(r, "entryID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID int32 `json:"team_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := ctrl.RemoveInducement(r.Context(), matchID, body.TeamID, entryID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusNoContent, nil)
	}
}

func hireStarPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID       int32 `json:"team_id"`
			StarPlayerID int32 `json:"star_player_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		mi, err := ctrl.HireStarPlayer(r.Context(), matchID, body.TeamID, body.StarPlayerID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, mi)
	}
}

func submitInducementsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID int32 `json:"team_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := ctrl.SubmitInducements(r.Context(), matchID, body.TeamID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{"match_id": matchID, "team_id": body.TeamID, "submitted": true})
	}
}

func skipInducementsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			TeamID int32 `json:"team_id"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		if err := ctrl.SkipInducements(r.Context(), matchID, body.TeamID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{"match_id": matchID, "team_id": body.TeamID, "submitted": true})
	}
}

func listMatchBetsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		bets, err := ctrl.ListMatchBets(r.Context(), matchID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, bets)
	}
}

func placeBetHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		uid, err := userID(r)
		if err != nil {
			render.JSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		var body struct {
			TeamID int32  `json:"team_id"`
			Kind   string `json:"kind"`
			Target int    `json:"target"`
			Amount int    `json:"amount"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		b, err := ctrl.PlaceBet(r.Context(), uid, matchID, body.TeamID, model.BetKind(body.Kind), body.Target, body.Amount)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, b)
	}
}

func placeAIBetHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, err := idParam(r, "matchID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		uid, err := userID(r)
		if err != nil {
			render.JSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		var body struct {
			TeamID      int32  `json:"team_id"`
			Description string `json:"description"`
			Amount      int    `json:"amount"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		b, err := ctrl.PlaceAIBet(r.Context(), uid, matchID, body.TeamID, body.Description, body.Amount)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, b)
	}
}

func getBetHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		betID, err := idParam(r, "betID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		b, err := ctrl.GetBet(r.Context(), betID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, b)
	}
}

func resolveAIBetHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		betID, err := idParam(r, "betID")
		if err != nil {
			renderError(render, w, err)
			return
		}

		var body struct {
			Won bool `json:"won"`
		}
		if err := decodeBody(r, &body); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		b, err := ctrl.ResolveAIBet(r.Context(), betID, body.Won)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, b)
	}
}

func listUserBetsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := idParam(r, "userID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		bets, err := ctrl.ListUserBets(r.Context(), uid)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, bets)
	}
}

func listNotificationsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := idParam(r, "userID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		unreadOnly := r.URL.Query().Get("unread") == "true"
		notifications, err := ctrl.ListNotifications(r.Context(), uid, unreadOnly)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, notifications)
	}
}

func markNotificationReadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notificationID, err := idParam(r, "notificationID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		if err := ctrl.MarkNotificationRead(r.Context(), notificationID); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusNoContent, nil)
	}
}

func listStarPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raceID, err := idParam(r, "raceID")
		if err != nil {
			renderError(render, w, err)
			return
		}
		stars, err := ctrl.ListStarPlayers(r.Context(), raceID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, stars)
	}
}

package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"github.com/manugarri/bb-league/controller"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", listTeamsHandler(ctrl, render))
		r.Get("/{teamID:\\d+}", getTeamHandler(ctrl, render))
		r.Post("/{teamID:\\d+}/value", recalculateTeamValueHandler(ctrl, render))
		r.Get("/{teamID:\\d+}/matches", listTeamMatchesHandler(ctrl, render))
	})

	r.Route("/players", func(r chi.Router) {
		r.Get("/{playerID:\\d+}", getPlayerHandler(ctrl, render))
		r.Post("/{playerID:\\d+}/levelup", levelUpPlayerHandler(ctrl, render))
	})

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", listLeaguesHandler(ctrl, render))
		r.Post("/", createLeagueHandler(ctrl, render))
		r.Get("/{leagueID:\\d+}", getLeagueHandler(ctrl, render))
		r.Post("/{leagueID:\\d+}/teams", addLeagueTeamHandler(ctrl, render))
		r.Post("/{leagueID:\\d+}/seasons", startSeasonHandler(ctrl, render))
		r.Post("/{leagueID:\\d+}/schedule", generateScheduleHandler(ctrl, render))
	})

	r.Route("/seasons/{seasonID:\\d+}", func(r chi.Router) {
		r.Get("/standings", getStandingsHandler(ctrl, render))
		r.Get("/matches", listSeasonMatchesHandler(ctrl, render))
	})

	r.Route("/matches", func(r chi.Router) {
		r.Post("/", createFriendlyHandler(ctrl, render))
		r.Get("/{matchID:\\d+}", getMatchHandler(ctrl, render))
		r.Post("/{matchID:\\d+}/result", recordResultHandler(ctrl, render))
		r.Get("/{matchID:\\d+}/stats", matchStatsHandler(ctrl, render))
		r.Get("/{matchID:\\d+}/changes", matchChangesHandler(ctrl, render))

		r.Route("/{matchID:\\d+}/prematch", func(r chi.Router) {
			r.Get("/", prematchOverviewHandler(ctrl, render))
			r.Post("/inducements", addInducementHandler(ctrl, render))
			r.Delete("/inducements/{entryID:\\d+}", removeInducementHandler(ctrl, render))
			r.Post("/stars", hireStarPlayerHandler(ctrl, render))
			r.Post("/submit", submitInducementsHandler(ctrl, render))
			r.Post("/skip", skipInducementsHandler(ctrl, render))
		})

		r.Route("/{matchID:\\d+}/bets", func(r chi.Router) {
			r.Get("/", listMatchBetsHandler(ctrl, render))
			r.Post("/", placeBetHandler(ctrl, render))
			r.Post("/ai", placeAIBetHandler(ctrl, render))
		})
	})

	r.Route("/bets", func(r chi.Router) {
		r.Get("/{betID:\\d+}", getBetHandler(ctrl, render))
		r.Post("/{betID:\\d+}/resolve", resolveAIBetHandler(ctrl, render))
	})

	r.Route("/users/{userID:\\d+}", func(r chi.Router) {
		r.Get("/bets", listUserBetsHandler(ctrl, render))
		r.Get("/notifications", listNotificationsHandler(ctrl, render))
	})
	r.Post("/notifications/{notificationID:\\d+}/read", markNotificationReadHandler(ctrl, render))

	r.Route("/races/{raceID:\\d+}", func(r chi.Router) {
		r.Get("/stars", listStarPlayersHandler(ctrl, render))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("bb", map[string]string{"admin": "pa55word"})) // TODO: read from DB instead
		r.Use(middleware.Timeout(30 * time.Second))

		r.Post("/matches/{matchID:\\d+}/amend", amendResultHandler(ctrl, render))
	})

	return r
}

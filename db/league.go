package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

const leagueColumns = `id, name, commissioner_id, description, format,
		max_teams, min_teams, min_roster_size, max_roster_size, allow_star_players,
		win_points, draw_points, loss_points, status, registration_open, created, updated`

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	const query = `INSERT INTO leagues (name, commissioner_id, description, format,
			max_teams, min_teams, min_roster_size, max_roster_size, allow_star_players,
			win_points, draw_points, loss_points, status, registration_open)
		VALUES (@name, @commissionerID, @description, @format,
			@maxTeams, @minTeams, @minRosterSize, @maxRosterSize, @allowStarPlayers,
			@winPoints, @drawPoints, @lossPoints, @status, @registrationOpen)
		RETURNING id`

	args := pgx.NamedArgs{
		"name":             l.Name,
		"commissionerID":   l.CommissionerID,
		"description":      l.Description,
		"format":           string(l.Format),
		"maxTeams":         l.MaxTeams,
		"minTeams":         l.MinTeams,
		"minRosterSize":    l.MinRosterSize,
		"maxRosterSize":    l.MaxRosterSize,
		"allowStarPlayers": l.AllowStarPlayers,
		"winPoints":        l.Scoring.WinPoints,
		"drawPoints":       l.Scoring.DrawPoints,
		"lossPoints":       l.Scoring.LossPoints,
		"status":           string(l.Status),
		"registrationOpen": l.RegistrationOpen,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&l.ID); err != nil {
		return fmt.Errorf("error inserting league %s: %w", l.Name, err)
	}
	return nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	l, err := scanLeague(row)
	if err != nil {
		return nil, notFound(err, ErrLeagueNotFound)
	}
	return l, nil
}

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}

	leagues := make([]model.League, 0, 8)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, *l)
	}
	return leagues, nil
}

func (db *postgresDB) AddLeagueTeam(ctx context.Context, leagueID, teamID int32, seed int) error {
	const query = `INSERT INTO league_teams (league_id, team_id, seed)
					VALUES (@leagueID, @teamID, @seed)`

	_, err := db.pool.Exec(ctx, query, pgx.NamedArgs{
		"leagueID": leagueID,
		"teamID":   teamID,
		"seed":     seed,
	})
	if err != nil {
		return fmt.Errorf("error adding team %d to league %d: %w", teamID, leagueID, err)
	}
	return nil
}

func (db *postgresDB) ListLeagueTeams(ctx context.Context, leagueID int32) ([]model.LeagueTeam, error) {
	const query = `SELECT league_id, team_id, seed, joined
					FROM league_teams WHERE league_id=@leagueID ORDER BY seed, team_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing teams for league %d: %w", leagueID, err)
	}

	teams := make([]model.LeagueTeam, 0, 16)
	for rows.Next() {
		var lt model.LeagueTeam
		var joined pgtype.Timestamptz
		if err := rows.Scan(&lt.LeagueID, &lt.TeamID, &lt.Seed, &joined); err != nil {
			return nil, err
		}
		lt.Joined = joined.Time
		teams = append(teams, lt)
	}
	return teams, nil
}

func (db *postgresDB) AddSeason(ctx context.Context, s *model.Season) error {
	const query = `INSERT INTO seasons (league_id, name, number, active, completed, current_round, total_rounds)
					VALUES (@leagueID, @name, @number, @active, @completed, @currentRound, @totalRounds)
					RETURNING id`

	args := pgx.NamedArgs{
		"leagueID":     s.LeagueID,
		"name":         s.Name,
		"number":       s.Number,
		"active":       s.Active,
		"completed":    s.Completed,
		"currentRound": s.CurrentRound,
		"totalRounds":  s.TotalRounds,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&s.ID); err != nil {
		return fmt.Errorf("error inserting season %s: %w", s.Name, err)
	}
	return nil
}

func (db *postgresDB) GetSeason(ctx context.Context, id int32) (*model.Season, error) {
	const query = `SELECT id, league_id, name, number, active, completed, current_round, total_rounds, created
					FROM seasons WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	s, err := scanSeason(row)
	if err != nil {
		return nil, notFound(err, ErrSeasonNotFound)
	}
	return s, nil
}

func (db *postgresDB) GetActiveSeason(ctx context.Context, leagueID int32) (*model.Season, error) {
	const query = `SELECT id, league_id, name, number, active, completed, current_round, total_rounds, created
					FROM seasons WHERE league_id=@leagueID AND active ORDER BY number DESC LIMIT 1`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	s, err := scanSeason(row)
	if err != nil {
		return nil, notFound(err, ErrSeasonNotFound)
	}
	return s, nil
}

const upsertStandingQuery = `INSERT INTO standings (season_id, team_id, played, wins, draws, losses, points,
		touchdowns_for, touchdowns_against, casualties_inflicted, casualties_suffered, updated)
	VALUES (@seasonID, @teamID, @played, @wins, @draws, @losses, @points,
		@touchdownsFor, @touchdownsAgainst, @casualtiesInflicted, @casualtiesSuffered, @updated)
	ON CONFLICT (season_id, team_id) DO UPDATE
	SET played=EXCLUDED.played,
		wins=EXCLUDED.wins,
		draws=EXCLUDED.draws,
		losses=EXCLUDED.losses,
		points=EXCLUDED.points,
		touchdowns_for=EXCLUDED.touchdowns_for,
		touchdowns_against=EXCLUDED.touchdowns_against,
		casualties_inflicted=EXCLUDED.casualties_inflicted,
		casualties_suffered=EXCLUDED.casualties_suffered,
		updated=EXCLUDED.updated
	RETURNING id`

// UpsertStanding writes a standings row keyed by (season, team). First
// write inserts, later writes replace the accumulated counters.
func (db *postgresDB) UpsertStanding(ctx context.Context, s *model.Standing) error {
	return db.upsertStanding(ctx, db.pool, s)
}

func (db *postgresDB) upsertStanding(ctx context.Context, q rowQueryer, s *model.Standing) error {
	args := namedArgsForStanding(s)
	args["updated"] = db.now()
	if err := q.QueryRow(ctx, upsertStandingQuery, args).Scan(&s.ID); err != nil {
		return fmt.Errorf("error upserting standing for team %d: %w", s.TeamID, err)
	}
	return nil
}

func (db *postgresDB) ListStandings(ctx context.Context, seasonID int32) ([]model.Standing, error) {
	const query = `SELECT s.id, s.season_id, s.team_id, t.name, s.played, s.wins, s.draws, s.losses,
			s.points, s.touchdowns_for, s.touchdowns_against,
			s.casualties_inflicted, s.casualties_suffered
		FROM standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.season_id=@seasonID`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error listing standings for season %d: %w", seasonID, err)
	}

	standings := make([]model.Standing, 0, 16)
	for rows.Next() {
		var s model.Standing
		err := rows.Scan(&s.ID, &s.SeasonID, &s.TeamID, &s.TeamName,
			&s.Played, &s.Wins, &s.Draws, &s.Losses, &s.Points,
			&s.TouchdownsFor, &s.TouchdownsAgainst,
			&s.CasualtiesInflicted, &s.CasualtiesSuffered)
		if err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, nil
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var l model.League
	var format, status string
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.CommissionerID,
		&l.Description,
		&format,
		&l.MaxTeams,
		&l.MinTeams,
		&l.MinRosterSize,
		&l.MaxRosterSize,
		&l.AllowStarPlayers,
		&l.Scoring.WinPoints,
		&l.Scoring.DrawPoints,
		&l.Scoring.LossPoints,
		&status,
		&l.RegistrationOpen,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}
	l.Format = model.LeagueFormat(format)
	l.Status = model.LeagueStatus(status)
	l.Created = created.Time
	l.Updated = updated.Time
	return &l, nil
}

func scanSeason(row pgx.Row) (*model.Season, error) {
	var s model.Season
	var created pgtype.Timestamptz
	err := row.Scan(&s.ID, &s.LeagueID, &s.Name, &s.Number,
		&s.Active, &s.Completed, &s.CurrentRound, &s.TotalRounds, &created)
	if err != nil {
		return nil, err
	}
	s.Created = created.Time
	return &s, nil
}

func namedArgsForStanding(s *model.Standing) pgx.NamedArgs {
	return pgx.NamedArgs{
		"seasonID":            s.SeasonID,
		"teamID":              s.TeamID,
		"played":              s.Played,
		"wins":                s.Wins,
		"draws":               s.Draws,
		"losses":              s.Losses,
		"points":              s.Points,
		"touchdownsFor":       s.TouchdownsFor,
		"touchdownsAgainst":   s.TouchdownsAgainst,
		"casualtiesInflicted": s.CasualtiesInflicted,
		"casualtiesSuffered":  s.CasualtiesSuffered,
	}
}

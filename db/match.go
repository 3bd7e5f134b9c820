package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

const matchColumns = `id, league_id, season_id, home_team_id, away_team_id, round_number,
		scheduled, played, home_score, away_score, home_casualties, away_casualties,
		home_winnings, away_winnings, home_prematch_ready, away_prematch_ready,
		status, notes, created, updated`

func (db *postgresDB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	m, err := scanMatch(row)
	if err != nil {
		return nil, notFound(err, ErrMatchNotFound)
	}
	return m, nil
}

func (db *postgresDB) AddMatch(ctx context.Context, m *model.Match) error {
	args := namedArgsForNewMatch(m)
	if err := db.pool.QueryRow(ctx, insertMatchQuery, args).Scan(&m.ID); err != nil {
		return fmt.Errorf("error inserting match: %w", err)
	}
	return nil
}

// AddMatches inserts a generated schedule in one transaction so a
// failure never leaves a partial round on disk.
func (db *postgresDB) AddMatches(ctx context.Context, matches []model.Match) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range matches {
		args := namedArgsForNewMatch(&matches[i])
		if err := tx.QueryRow(ctx, insertMatchQuery, args).Scan(&matches[i].ID); err != nil {
			return fmt.Errorf("error inserting match %d of schedule: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing schedule: %w", err)
	}
	return nil
}

func (db *postgresDB) ListSeasonMatches(ctx context.Context, seasonID int32) ([]model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches
					WHERE season_id=@seasonID ORDER BY round_number, id`

	return db.listMatches(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
}

func (db *postgresDB) ListTeamMatches(ctx context.Context, teamID int32) ([]model.Match, error) {
	const query = `SELECT ` + matchColumns + ` FROM matches
					WHERE home_team_id=@teamID OR away_team_id=@teamID
					ORDER BY created DESC`

	return db.listMatches(ctx, query, pgx.NamedArgs{"teamID": teamID})
}

func (db *postgresDB) listMatches(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Match, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}

	matches := make([]model.Match, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, nil
}

func (db *postgresDB) SaveMatch(ctx context.Context, m *model.Match) error {
	args := namedArgsForMatch(m)
	args["updated"] = db.now()
	tag, err := db.pool.Exec(ctx, updateMatchQuery, args)
	if err != nil {
		return fmt.Errorf("error updating match %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// CompleteMatch persists the entire outcome of a finished match in a
// single transaction: the match row, both teams and their rosters, the
// per-player stat lines and injuries, standings, resolved bets and their
// notifications.
func (db *postgresDB) CompleteMatch(ctx context.Context, res *CompletedMatch) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.now()

	args := namedArgsForMatch(res.Match)
	args["updated"] = now
	if _, err := tx.Exec(ctx, updateMatchQuery, args); err != nil {
		return fmt.Errorf("error updating match %d: %w", res.Match.ID, err)
	}

	for _, t := range []*model.Team{res.HomeTeam, res.AwayTeam} {
		if err := db.saveTeamTx(ctx, tx, t, now); err != nil {
			return err
		}
	}

	for _, stats := range res.PlayerStats {
		if err := db.insertPlayerStats(ctx, tx, &stats); err != nil {
			return err
		}
	}

	for _, inj := range res.Injuries {
		if err := db.insertInjury(ctx, tx, &inj, now); err != nil {
			return err
		}
	}

	for _, s := range res.Standings {
		if err := db.upsertStanding(ctx, tx, s); err != nil {
			return err
		}
	}

	for _, b := range res.Bets {
		if err := db.saveBetResolution(ctx, tx, b); err != nil {
			return err
		}
	}
	for _, n := range res.Notifications {
		if err := db.insertNotification(ctx, tx, &n); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing match completion: %w", err)
	}
	return nil
}

// AmendMatch applies an admin correction to a completed match. Only
// score, casualty and winnings fields change; every changed property
// gets a match_changes audit row. Standings, player stats and bets are
// deliberately left alone.
func (db *postgresDB) AmendMatch(ctx context.Context, m *model.Match) error {
	old, err := db.GetMatch(ctx, m.ID)
	if err != nil {
		return err
	}

	changes := make([]model.Change, 0, 4)
	changes = checkChangeInt(changes, db.clock, "HomeScore", old.HomeScore, m.HomeScore)
	changes = checkChangeInt(changes, db.clock, "AwayScore", old.AwayScore, m.AwayScore)
	changes = checkChangeInt(changes, db.clock, "HomeCasualties", old.HomeCasualties, m.HomeCasualties)
	changes = checkChangeInt(changes, db.clock, "AwayCasualties", old.AwayCasualties, m.AwayCasualties)
	changes = checkChangeInt(changes, db.clock, "HomeWinnings", old.HomeWinnings, m.HomeWinnings)
	changes = checkChangeInt(changes, db.clock, "AwayWinnings", old.AwayWinnings, m.AwayWinnings)
	changes = checkChange(changes, db.clock, "Notes", old.Notes, m.Notes)
	if len(changes) == 0 {
		return nil
	}

	const update = `UPDATE matches
		SET home_score=@homeScore,
			away_score=@awayScore,
			home_casualties=@homeCasualties,
			away_casualties=@awayCasualties,
			home_winnings=@homeWinnings,
			away_winnings=@awayWinnings,
			notes=@notes,
			updated=@updated
		WHERE id=@id`

	const insertChange = `INSERT INTO match_changes (match_id, prop, old, new, created)
							VALUES (@matchID, @prop, @old, @new, @created)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"id":             m.ID,
		"homeScore":      m.HomeScore,
		"awayScore":      m.AwayScore,
		"homeCasualties": m.HomeCasualties,
		"awayCasualties": m.AwayCasualties,
		"homeWinnings":   m.HomeWinnings,
		"awayWinnings":   m.AwayWinnings,
		"notes":          m.Notes,
		"updated":        db.now(),
	}
	if _, err := tx.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error amending match %d: %w", m.ID, err)
	}

	for _, change := range changes {
		_, err := tx.Exec(ctx, insertChange, pgx.NamedArgs{
			"matchID": m.ID,
			"prop":    change.PropertyName,
			"old":     change.OldValue,
			"new":     change.NewValue,
			"created": pgtype.Timestamptz{Time: change.Time, InfinityModifier: pgtype.Finite, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("error inserting match change: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing match amendment: %w", err)
	}
	return nil
}

func (db *postgresDB) GetMatchChanges(ctx context.Context, matchID int32) ([]model.Change, error) {
	const query = `SELECT created, prop, old, new FROM match_changes
					WHERE match_id=@id ORDER BY created DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": matchID})
	if err != nil {
		return nil, err
	}

	changes := make([]model.Change, 0, 8)
	for rows.Next() {
		var created pgtype.Timestamptz
		c := model.Change{}
		if err := rows.Scan(&created, &c.PropertyName, &c.OldValue, &c.NewValue); err != nil {
			return nil, fmt.Errorf("error scanning match change: %w", err)
		}
		c.Time = created.Time
		changes = append(changes, c)
	}
	return changes, nil
}

func (db *postgresDB) ListMatchPlayerStats(ctx context.Context, matchID int32) ([]model.MatchPlayerStats, error) {
	const query = `SELECT id, match_id, player_id, team_id, touchdowns, completions,
			interceptions, deflections, casualties_inflicted, casualties_suffered,
			is_mvp, injury, spp_earned
		FROM match_player_stats WHERE match_id=@id ORDER BY team_id, player_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": matchID})
	if err != nil {
		return nil, fmt.Errorf("error listing stats for match %d: %w", matchID, err)
	}

	stats := make([]model.MatchPlayerStats, 0, 16)
	for rows.Next() {
		var s model.MatchPlayerStats
		var injury string
		err := rows.Scan(&s.ID, &s.MatchID, &s.PlayerID, &s.TeamID,
			&s.Touchdowns, &s.Completions, &s.Interceptions, &s.Deflections,
			&s.CasualtiesInflicted, &s.CasualtiesSuffered,
			&s.IsMVP, &injury, &s.SPPEarned)
		if err != nil {
			return nil, err
		}
		s.Injury = model.InjuryKind(injury)
		stats = append(stats, s)
	}
	return stats, nil
}

func (db *postgresDB) saveTeamTx(ctx context.Context, tx pgx.Tx, t *model.Team, now pgtype.Timestamptz) error {
	const updateTeam = `UPDATE teams
		SET treasury=@treasury,
			current_tv=@currentTV,
			games_played=@gamesPlayed,
			wins=@wins,
			draws=@draws,
			losses=@losses,
			touchdowns_for=@touchdownsFor,
			touchdowns_against=@touchdownsAgainst,
			casualties_inflicted=@casualtiesInflicted,
			casualties_suffered=@casualtiesSuffered,
			updated=@updated
		WHERE id=@id`

	args := namedArgsForTeam(t)
	args["updated"] = now
	if _, err := tx.Exec(ctx, updateTeam, args); err != nil {
		return fmt.Errorf("error updating team %d: %w", t.ID, err)
	}

	const updatePlayer = `UPDATE players
		SET movement_mod=@movementMod,
			strength_mod=@strengthMod,
			agility_mod=@agilityMod,
			passing_mod=@passingMod,
			armor_mod=@armorMod,
			spp=@spp,
			games_played=@gamesPlayed,
			touchdowns=@touchdowns,
			casualties_inflicted=@casualtiesInflicted,
			completions=@completions,
			interceptions=@interceptions,
			deflections=@deflections,
			mvp_awards=@mvpAwards,
			active=@active,
			dead=@dead,
			miss_next_game=@missNextGame,
			niggling_injuries=@nigglingInjuries,
			value=@value,
			updated=@updated
		WHERE id=@id`

	for _, p := range t.Players {
		args := namedArgsForPlayer(p)
		args["updated"] = now
		if _, err := tx.Exec(ctx, updatePlayer, args); err != nil {
			return fmt.Errorf("error updating player %d: %w", p.ID, err)
		}
	}
	return nil
}

func (db *postgresDB) insertPlayerStats(ctx context.Context, tx pgx.Tx, s *model.MatchPlayerStats) error {
	const query = `INSERT INTO match_player_stats (match_id, player_id, team_id,
			touchdowns, completions, interceptions, deflections,
			casualties_inflicted, casualties_suffered, is_mvp, injury, spp_earned)
		VALUES (@matchID, @playerID, @teamID,
			@touchdowns, @completions, @interceptions, @deflections,
			@casualtiesInflicted, @casualtiesSuffered, @isMVP, @injury, @sppEarned)`

	args := pgx.NamedArgs{
		"matchID":             s.MatchID,
		"playerID":            s.PlayerID,
		"teamID":              s.TeamID,
		"touchdowns":          s.Touchdowns,
		"completions":         s.Completions,
		"interceptions":       s.Interceptions,
		"deflections":         s.Deflections,
		"casualtiesInflicted": s.CasualtiesInflicted,
		"casualtiesSuffered":  s.CasualtiesSuffered,
		"isMVP":               s.IsMVP,
		"injury":              string(s.Injury),
		"sppEarned":           s.SPPEarned,
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting stats for player %d: %w", s.PlayerID, err)
	}
	return nil
}

func (db *postgresDB) insertInjury(ctx context.Context, tx pgx.Tx, inj *model.Injury, now pgtype.Timestamptz) error {
	const query = `INSERT INTO injuries (player_id, match_id, kind, permanent, occurred)
					VALUES (@playerID, @matchID, @kind, @permanent, @occurred)`

	occurred := now
	if !inj.Occurred.IsZero() {
		occurred = pgtype.Timestamptz{Time: inj.Occurred, InfinityModifier: pgtype.Finite, Valid: true}
	}
	args := pgx.NamedArgs{
		"playerID":  inj.PlayerID,
		"matchID":   inj.MatchID,
		"kind":      string(inj.Kind),
		"permanent": inj.Permanent,
		"occurred":  occurred,
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting injury for player %d: %w", inj.PlayerID, err)
	}
	return nil
}

const insertMatchQuery = `INSERT INTO matches (league_id, season_id, home_team_id, away_team_id,
		round_number, scheduled, status)
	VALUES (@leagueID, @seasonID, @homeTeamID, @awayTeamID, @roundNumber, @scheduled, @status)
	RETURNING id`

const updateMatchQuery = `UPDATE matches
	SET round_number=@roundNumber,
		scheduled=@scheduled,
		played=@played,
		home_score=@homeScore,
		away_score=@awayScore,
		home_casualties=@homeCasualties,
		away_casualties=@awayCasualties,
		home_winnings=@homeWinnings,
		away_winnings=@awayWinnings,
		home_prematch_ready=@homePrematchReady,
		away_prematch_ready=@awayPrematchReady,
		status=@status,
		notes=@notes,
		updated=@updated
	WHERE id=@id`

func namedArgsForNewMatch(m *model.Match) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID":    m.LeagueID,
		"seasonID":    m.SeasonID,
		"homeTeamID":  m.HomeTeamID,
		"awayTeamID":  m.AwayTeamID,
		"roundNumber": m.RoundNumber,
		"scheduled": pgtype.Timestamptz{
			Time:             m.Scheduled,
			InfinityModifier: pgtype.Finite,
			Valid:            !m.Scheduled.IsZero(),
		},
		"status": string(m.Status),
	}
}

func namedArgsForMatch(m *model.Match) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          m.ID,
		"roundNumber": m.RoundNumber,
		"scheduled": pgtype.Timestamptz{
			Time:             m.Scheduled,
			InfinityModifier: pgtype.Finite,
			Valid:            !m.Scheduled.IsZero(),
		},
		"played": pgtype.Timestamptz{
			Time:             m.Played,
			InfinityModifier: pgtype.Finite,
			Valid:            !m.Played.IsZero(),
		},
		"homeScore":         m.HomeScore,
		"awayScore":         m.AwayScore,
		"homeCasualties":    m.HomeCasualties,
		"awayCasualties":    m.AwayCasualties,
		"homeWinnings":      m.HomeWinnings,
		"awayWinnings":      m.AwayWinnings,
		"homePrematchReady": m.HomePrematchReady,
		"awayPrematchReady": m.AwayPrematchReady,
		"status":            string(m.Status),
		"notes":             m.Notes,
	}
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var m model.Match
	var status string
	var scheduled, played, created, updated pgtype.Timestamptz
	err := row.Scan(
		&m.ID,
		&m.LeagueID,
		&m.SeasonID,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.RoundNumber,
		&scheduled,
		&played,
		&m.HomeScore,
		&m.AwayScore,
		&m.HomeCasualties,
		&m.AwayCasualties,
		&m.HomeWinnings,
		&m.AwayWinnings,
		&m.HomePrematchReady,
		&m.AwayPrematchReady,
		&status,
		&m.Notes,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}
	m.Status = model.MatchStatus(status)
	m.Scheduled = scheduled.Time
	m.Played = played.Time
	m.Created = created.Time
	m.Updated = updated.Time
	return &m, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

const teamColumns = `id, name, coach_id, race_id, treasury, rerolls, fan_factor,
		assistant_coaches, cheerleaders, has_apothecary, current_tv,
		games_played, wins, draws, losses,
		touchdowns_for, touchdowns_against, casualties_inflicted, casualties_suffered,
		active, created, updated`

// GetTeam loads a team with its race, full roster and signed star
// players. Roster players come with positions, skills and injury history.
func (db *postgresDB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	t, raceID, err := scanTeam(row)
	if err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}

	t.Race, err = db.GetRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("error loading race for team %d: %w", id, err)
	}

	t.Players, err = db.listTeamPlayers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading roster for team %d: %w", id, err)
	}

	t.StarPlayers, err = db.listTeamStarPlayers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading star players for team %d: %w", id, err)
	}

	return t, nil
}

// ListTeams returns all teams without rosters.
func (db *postgresDB) ListTeams(ctx context.Context) ([]model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}

	teams := make([]model.Team, 0, 16)
	for rows.Next() {
		t, raceID, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		t.Race, err = db.GetRace(ctx, raceID)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, nil
}

func (db *postgresDB) AddTeam(ctx context.Context, t *model.Team) error {
	const query = `INSERT INTO teams (name, coach_id, race_id, treasury, rerolls,
			fan_factor, assistant_coaches, cheerleaders, has_apothecary, active)
		VALUES (@name, @coachID, @raceID, @treasury, @rerolls,
			@fanFactor, @assistantCoaches, @cheerleaders, @hasApothecary, @active)
		RETURNING id`

	args := pgx.NamedArgs{
		"name":             t.Name,
		"coachID":          t.CoachID,
		"raceID":           t.Race.ID,
		"treasury":         t.Treasury,
		"rerolls":          t.Rerolls,
		"fanFactor":        t.FanFactor,
		"assistantCoaches": t.AssistantCoaches,
		"cheerleaders":     t.Cheerleaders,
		"hasApothecary":    t.HasApothecary,
		"active":           t.Active,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&t.ID); err != nil {
		return fmt.Errorf("error inserting team %s: %w", t.Name, err)
	}
	return nil
}

func (db *postgresDB) SaveTeam(ctx context.Context, t *model.Team) error {
	const query = `UPDATE teams
		SET name=@name,
			treasury=@treasury,
			rerolls=@rerolls,
			fan_factor=@fanFactor,
			assistant_coaches=@assistantCoaches,
			cheerleaders=@cheerleaders,
			has_apothecary=@hasApothecary,
			current_tv=@currentTV,
			games_played=@gamesPlayed,
			wins=@wins,
			draws=@draws,
			losses=@losses,
			touchdowns_for=@touchdownsFor,
			touchdowns_against=@touchdownsAgainst,
			casualties_inflicted=@casualtiesInflicted,
			casualties_suffered=@casualtiesSuffered,
			active=@active,
			updated=@updated
		WHERE id=@id`

	args := namedArgsForTeam(t)
	args["updated"] = db.now()
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating team %d: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// SaveTeamValues persists a recomputed team value and every active
// player's recomputed value in one transaction. Call after CalculateTV.
func (db *postgresDB) SaveTeamValues(ctx context.Context, t *model.Team) error {
	const updateTeam = `UPDATE teams SET current_tv=@currentTV, updated=@updated WHERE id=@id`
	const updatePlayer = `UPDATE players SET value=@value, updated=@updated WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.now()
	_, err = tx.Exec(ctx, updateTeam, pgx.NamedArgs{
		"id": t.ID, "currentTV": t.CurrentTV, "updated": now,
	})
	if err != nil {
		return fmt.Errorf("error updating team value for %d: %w", t.ID, err)
	}

	for _, p := range t.Players {
		if !p.Active {
			continue
		}
		_, err = tx.Exec(ctx, updatePlayer, pgx.NamedArgs{
			"id": p.ID, "value": p.Value, "updated": now,
		})
		if err != nil {
			return fmt.Errorf("error updating value for player %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing team value update: %w", err)
	}
	return nil
}

func (db *postgresDB) GetStarPlayer(ctx context.Context, id int32) (*model.StarPlayer, error) {
	const query = `SELECT id, name, cost, movement, strength, agility, passing, armor, skills
					FROM star_players WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	s, err := scanStarPlayer(row)
	if err != nil {
		return nil, notFound(err, ErrStarPlayerNotFound)
	}

	s.RaceIDs, err = db.starPlayerRaces(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (db *postgresDB) ListStarPlayersForRace(ctx context.Context, raceID int32) ([]model.StarPlayer, error) {
	const query = `SELECT s.id, s.name, s.cost, s.movement, s.strength, s.agility, s.passing, s.armor, s.skills
					FROM star_players s
					JOIN star_player_races spr ON spr.star_player_id = s.id
					WHERE spr.race_id=@raceID
					ORDER BY s.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"raceID": raceID})
	if err != nil {
		return nil, fmt.Errorf("error listing star players for race %d: %w", raceID, err)
	}

	stars := make([]model.StarPlayer, 0, 8)
	for rows.Next() {
		s, err := scanStarPlayer(rows)
		if err != nil {
			return nil, err
		}
		s.RaceIDs = []int32{raceID}
		stars = append(stars, *s)
	}
	return stars, nil
}

func (db *postgresDB) listTeamStarPlayers(ctx context.Context, teamID int32) ([]model.StarPlayer, error) {
	const query = `SELECT s.id, s.name, s.cost, s.movement, s.strength, s.agility, s.passing, s.armor, s.skills
					FROM star_players s
					JOIN team_star_players tsp ON tsp.star_player_id = s.id
					WHERE tsp.team_id=@teamID
					ORDER BY s.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"teamID": teamID})
	if err != nil {
		return nil, err
	}

	stars := make([]model.StarPlayer, 0, 2)
	for rows.Next() {
		s, err := scanStarPlayer(rows)
		if err != nil {
			return nil, err
		}
		stars = append(stars, *s)
	}
	return stars, nil
}

func (db *postgresDB) starPlayerRaces(ctx context.Context, starID int32) ([]int32, error) {
	const query = `SELECT race_id FROM star_player_races WHERE star_player_id=@id ORDER BY race_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": starID})
	if err != nil {
		return nil, err
	}

	ids := make([]int32, 0, 4)
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func scanTeam(row pgx.Row) (*model.Team, int32, error) {
	var t model.Team
	var raceID int32
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.CoachID,
		&raceID,
		&t.Treasury,
		&t.Rerolls,
		&t.FanFactor,
		&t.AssistantCoaches,
		&t.Cheerleaders,
		&t.HasApothecary,
		&t.CurrentTV,
		&t.GamesPlayed,
		&t.Wins,
		&t.Draws,
		&t.Losses,
		&t.TouchdownsFor,
		&t.TouchdownsAgainst,
		&t.CasualtiesInflicted,
		&t.CasualtiesSuffered,
		&t.Active,
		&created,
		&updated)
	if err != nil {
		return nil, 0, err
	}
	t.Created = created.Time
	t.Updated = updated.Time
	return &t, raceID, nil
}

func scanStarPlayer(row pgx.Row) (*model.StarPlayer, error) {
	var s model.StarPlayer
	err := row.Scan(&s.ID, &s.Name, &s.Cost,
		&s.Movement, &s.Strength, &s.Agility, &s.Passing, &s.Armor, &s.Skills)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func namedArgsForTeam(t *model.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                  t.ID,
		"name":                t.Name,
		"treasury":            t.Treasury,
		"rerolls":             t.Rerolls,
		"fanFactor":           t.FanFactor,
		"assistantCoaches":    t.AssistantCoaches,
		"cheerleaders":        t.Cheerleaders,
		"hasApothecary":       t.HasApothecary,
		"currentTV":           t.CurrentTV,
		"gamesPlayed":         t.GamesPlayed,
		"wins":                t.Wins,
		"draws":               t.Draws,
		"losses":              t.Losses,
		"touchdownsFor":       t.TouchdownsFor,
		"touchdownsAgainst":   t.TouchdownsAgainst,
		"casualtiesInflicted": t.CasualtiesInflicted,
		"casualtiesSuffered":  t.CasualtiesSuffered,
		"active":              t.Active,
	}
}

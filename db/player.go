package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

const playerColumns = `p.id, p.team_id, p.name, p.number,
		p.movement_mod, p.strength_mod, p.agility_mod, p.passing_mod, p.armor_mod,
		p.spp, p.level, p.games_played, p.touchdowns, p.casualties_inflicted,
		p.completions, p.interceptions, p.deflections, p.mvp_awards,
		p.active, p.dead, p.miss_next_game, p.niggling_injuries, p.value,
		p.hired, p.updated,
		pos.id, pos.race_id, pos.name, pos.cost, pos.min_count, pos.max_count,
		pos.movement, pos.strength, pos.agility, pos.passing, pos.armor, pos.starting_skills`

// GetPlayer loads a player with position template, skills and injury
// history.
func (db *postgresDB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + `
					FROM players p
					JOIN positions pos ON pos.id = p.position_id
					WHERE p.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		return nil, notFound(err, ErrPlayerNotFound)
	}

	if err := db.loadPlayerDetails(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (db *postgresDB) listTeamPlayers(ctx context.Context, teamID int32) ([]*model.Player, error) {
	const query = `SELECT ` + playerColumns + `
					FROM players p
					JOIN positions pos ON pos.id = p.position_id
					WHERE p.team_id=@teamID
					ORDER BY p.number`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"teamID": teamID})
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	rows.Close()

	for _, p := range players {
		if err := db.loadPlayerDetails(ctx, p); err != nil {
			return nil, err
		}
	}
	return players, nil
}

func (db *postgresDB) loadPlayerDetails(ctx context.Context, p *model.Player) error {
	skills, err := db.playerSkills(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("error loading skills for player %d: %w", p.ID, err)
	}
	p.Skills = skills

	injuries, err := db.playerInjuries(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("error loading injuries for player %d: %w", p.ID, err)
	}
	p.Injuries = injuries
	return nil
}

func (db *postgresDB) playerSkills(ctx context.Context, playerID int32) ([]model.PlayerSkill, error) {
	const query = `SELECT ps.id, ps.skill_id, s.name, s.category, ps.is_starting, ps.acquired
					FROM player_skills ps
					JOIN skills s ON s.id = ps.skill_id
					WHERE ps.player_id=@id
					ORDER BY ps.acquired, s.name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": playerID})
	if err != nil {
		return nil, err
	}

	skills := make([]model.PlayerSkill, 0, 4)
	for rows.Next() {
		var ps model.PlayerSkill
		var acquired pgtype.Timestamptz
		err := rows.Scan(&ps.ID, &ps.SkillID, &ps.Name, &ps.Category, &ps.IsStarting, &acquired)
		if err != nil {
			return nil, err
		}
		ps.Acquired = acquired.Time
		skills = append(skills, ps)
	}
	return skills, nil
}

func (db *postgresDB) playerInjuries(ctx context.Context, playerID int32) ([]model.Injury, error) {
	const query = `SELECT id, player_id, match_id, kind, permanent, occurred
					FROM injuries WHERE player_id=@id ORDER BY occurred`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": playerID})
	if err != nil {
		return nil, err
	}

	injuries := make([]model.Injury, 0, 2)
	for rows.Next() {
		var inj model.Injury
		var kind string
		var occurred pgtype.Timestamptz
		err := rows.Scan(&inj.ID, &inj.PlayerID, &inj.MatchID, &kind, &inj.Permanent, &occurred)
		if err != nil {
			return nil, err
		}
		inj.Kind = model.InjuryKind(kind)
		inj.Occurred = occurred.Time
		injuries = append(injuries, inj)
	}
	return injuries, nil
}

func (db *postgresDB) AddPlayer(ctx context.Context, p *model.Player) error {
	const query = `INSERT INTO players (team_id, position_id, name, number, value)
					VALUES (@teamID, @positionID, @name, @number, @value)
					RETURNING id`

	args := pgx.NamedArgs{
		"teamID":     p.TeamID,
		"positionID": p.Position.ID,
		"name":       p.Name,
		"number":     p.Number,
		"value":      p.Value,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&p.ID); err != nil {
		return fmt.Errorf("error inserting player %s: %w", p.Name, err)
	}

	for _, skillName := range p.Position.StartingSkills {
		if err := db.addPlayerSkill(ctx, db.pool, p.ID, skillName, true); err != nil {
			return err
		}
	}
	return nil
}

func (db *postgresDB) SavePlayer(ctx context.Context, p *model.Player) error {
	const query = `UPDATE players
		SET name=@name,
			number=@number,
			movement_mod=@movementMod,
			strength_mod=@strengthMod,
			agility_mod=@agilityMod,
			passing_mod=@passingMod,
			armor_mod=@armorMod,
			spp=@spp,
			level=@level,
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

	args := namedArgsForPlayer(p)
	args["updated"] = db.now()
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating player %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) GetSkill(ctx context.Context, name string) (*model.Skill, error) {
	const query = `SELECT id, name, category FROM skills WHERE name=@name`

	var s model.Skill
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"name": name}).
		Scan(&s.ID, &s.Name, &s.Category)
	if err != nil {
		return nil, notFound(err, ErrSkillNotFound)
	}
	return &s, nil
}

func (db *postgresDB) AddPlayerSkill(ctx context.Context, playerID int32, skillName string) error {
	return db.addPlayerSkill(ctx, db.pool, playerID, skillName, false)
}

func (db *postgresDB) addPlayerSkill(ctx context.Context, q queryExecer, playerID int32, skillName string, starting bool) error {
	const query = `INSERT INTO player_skills (player_id, skill_id, is_starting)
					SELECT @playerID, id, @isStarting FROM skills WHERE name=@name`

	tag, err := q.Exec(ctx, query, pgx.NamedArgs{
		"playerID":   playerID,
		"name":       skillName,
		"isStarting": starting,
	})
	if err != nil {
		return fmt.Errorf("error adding skill %s to player %d: %w", skillName, playerID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var p model.Player
	var pos model.Position
	var hired, updated pgtype.Timestamptz
	err := row.Scan(
		&p.ID,
		&p.TeamID,
		&p.Name,
		&p.Number,
		&p.MovementMod,
		&p.StrengthMod,
		&p.AgilityMod,
		&p.PassingMod,
		&p.ArmorMod,
		&p.SPP,
		&p.Level,
		&p.GamesPlayed,
		&p.Touchdowns,
		&p.CasualtiesInflicted,
		&p.Completions,
		&p.Interceptions,
		&p.Deflections,
		&p.MVPAwards,
		&p.Active,
		&p.Dead,
		&p.MissNextGame,
		&p.NigglingInjuries,
		&p.Value,
		&hired,
		&updated,
		&pos.ID,
		&pos.RaceID,
		&pos.Name,
		&pos.Cost,
		&pos.MinCount,
		&pos.MaxCount,
		&pos.Movement,
		&pos.Strength,
		&pos.Agility,
		&pos.Passing,
		&pos.Armor,
		&pos.StartingSkills)
	if err != nil {
		return nil, err
	}
	p.Position = &pos
	p.Hired = hired.Time
	p.Updated = updated.Time
	return &p, nil
}

func namedArgsForPlayer(p *model.Player) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                  p.ID,
		"name":                p.Name,
		"number":              p.Number,
		"movementMod":         p.MovementMod,
		"strengthMod":         p.StrengthMod,
		"agilityMod":          p.AgilityMod,
		"passingMod":          p.PassingMod,
		"armorMod":            p.ArmorMod,
		"spp":                 p.SPP,
		"level":               p.Level,
		"gamesPlayed":         p.GamesPlayed,
		"touchdowns":          p.Touchdowns,
		"casualtiesInflicted": p.CasualtiesInflicted,
		"completions":         p.Completions,
		"interceptions":       p.Interceptions,
		"deflections":         p.Deflections,
		"mvpAwards":           p.MVPAwards,
		"active":              p.Active,
		"dead":                p.Dead,
		"missNextGame":        p.MissNextGame,
		"nigglingInjuries":    p.NigglingInjuries,
		"value":               p.Value,
	}
}

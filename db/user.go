package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/manugarri/bb-league/model"
)

func (db *postgresDB) GetUser(ctx context.Context, id int32) (*model.User, error) {
	const query = `SELECT id, username, email, lang, is_admin, created
					FROM users WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})

	var u model.User
	var created pgtype.Timestamptz
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Lang, &u.IsAdmin, &created)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	u.Created = created.Time
	return &u, nil
}

func (db *postgresDB) AddUser(ctx context.Context, u *model.User) error {
	const query = `INSERT INTO users (username, email, lang, is_admin)
					VALUES (@username, @email, @lang, @isAdmin)
					RETURNING id`

	args := pgx.NamedArgs{
		"username": u.Username,
		"email":    u.Email,
		"lang":     u.Lang,
		"isAdmin":  u.IsAdmin,
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&u.ID); err != nil {
		return fmt.Errorf("error inserting user %s: %w", u.Username, err)
	}
	return nil
}

func (db *postgresDB) GetRace(ctx context.Context, id int32) (*model.Race, error) {
	const query = `SELECT id, name, reroll_cost, apothecary_allowed, special_rules, tier
					FROM races WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	r, err := scanRace(row)
	if err != nil {
		return nil, notFound(err, ErrRaceNotFound)
	}
	return r, nil
}

func (db *postgresDB) ListRaces(ctx context.Context) ([]model.Race, error) {
	const query = `SELECT id, name, reroll_cost, apothecary_allowed, special_rules, tier
					FROM races ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing races: %w", err)
	}

	races := make([]model.Race, 0, 24)
	for rows.Next() {
		r, err := scanRace(rows)
		if err != nil {
			return nil, err
		}
		races = append(races, *r)
	}
	return races, nil
}

func scanRace(row pgx.Row) (*model.Race, error) {
	var r model.Race
	err := row.Scan(&r.ID, &r.Name, &r.RerollCost, &r.ApothecaryAllowed, &r.SpecialRules, &r.Tier)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

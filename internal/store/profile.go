package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const profileTable = "profile"

// profileRepo implements ProfileRepo over a single-row table.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context) (*Profile, error) {
	query, args := builder().Select("assistant_name", "user_name", "theme", "updated_at").
		From(entsql.Table(profileTable)).
		Where(entsql.EQ("id", 1)).
		Query()

	var p Profile
	var updated int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.AssistantName, &p.UserName, &p.Theme, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, p Profile) error {
	theme := p.Theme
	if theme == "" {
		theme = "dark"
	}

	query, args := builder().Insert(profileTable).
		Columns("id", "assistant_name", "user_name", "theme", "updated_at").
		Values(1, p.AssistantName, p.UserName, theme, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) ClearNames(ctx context.Context) error {
	query, args := builder().Update(profileTable).
		Set("assistant_name", "").
		Set("user_name", "").
		Set("updated_at", time.Now().UnixMilli()).
		Where(entsql.EQ("id", 1)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear profile names: %w", err)
	}
	return nil
}

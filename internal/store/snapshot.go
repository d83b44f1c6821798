package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const snapshotsTable = "snapshots"

// snapshotRepo implements SnapshotRepo with one row per user key.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Save stamps an unset Sequence from the shared event counter and an unset
// Timestamp with the current time, so snapshots order against events.
func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Sequence == 0 && r.seq != nil {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := builder().Insert(snapshotsTable).
		Columns("user_key", "sequence", "timestamp", "data").
		Values(snap.UserKey, snap.Sequence, snap.Timestamp.UnixMilli(), string(data)).
		OnConflict(
			entsql.ConflictColumns("user_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, userKey string) (*Snapshot, error) {
	query, args := builder().Select("user_key", "sequence", "timestamp", "data").
		From(entsql.Table(snapshotsTable)).
		Where(entsql.EQ("user_key", userKey)).
		Query()

	var snap Snapshot
	var ts int64
	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.UserKey, &snap.Sequence, &ts, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = fromMillis(ts)
	return &snap, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, userKey string) error {
	query, args := builder().Delete(snapshotsTable).
		Where(entsql.EQ("user_key", userKey)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

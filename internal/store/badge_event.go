package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const badgeEventsTable = "badge_award_events"

func (r *eventRepo) AppendBadgeAward(ctx context.Context, data BadgeAwardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(badgeEventsTable).
		Columns("sequence", "timestamp", "session_id", "user_key", "badge_id").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.UserKey, data.BadgeID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save badge award: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeAwards(ctx context.Context, opts QueryOpts) ([]BadgeAwardRecord, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "user_key", "badge_id").
		From(entsql.Table(badgeEventsTable))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query badge awards: %w", err)
	}
	defer rows.Close()

	var records []BadgeAwardRecord
	for rows.Next() {
		var rec BadgeAwardRecord
		var ts int64
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.UserKey, &rec.BadgeID); err != nil {
			return nil, fmt.Errorf("scan badge award: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

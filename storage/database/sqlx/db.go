package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// trapNoRowsErr maps the "no rows" error to notFound.
func trapNoRowsErr(err error, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// execAffecting runs a write and returns notFound when it touched no row.
func execAffecting(ctx context.Context, db *sqlx.DB, notFound error, msg, query string, arg interface{}) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return errors.Wrap(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// deleteOwned deletes the row id of table owned by userID.
func deleteOwned(ctx context.Context, db *sqlx.DB, table, userID, id string, notFound error) error {
	return execAffecting(ctx, db, notFound, "deleting from "+table,
		"DELETE FROM "+table+" WHERE id = :id AND user_id = :user_id",
		map[string]interface{}{"id": id, "user_id": userID})
}

// utc drops the location the driver attached to a scanned time.
func utc(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-keeper/models"
)

const accountsTable = "accounts"

// accountColumns is the SELECT list; scanAccount reads it in this order.
var accountColumns = []string{
	"id",
	"username",
	"email",
	"password",
	"pending_pwd",
	"act_code",
	"act_time",
	"act_type",
	"registered_at",
	"active",
}

// updatableColumns are the columns UpdatePartial may write.
var updatableColumns = map[string]struct{}{
	"username":    {},
	"email":       {},
	"password":    {},
	"pending_pwd": {},
	"act_code":    {},
	"act_time":    {},
	"act_type":    {},
	"active":      {},
}

// selectorWhere matches rows equal to every non-empty part of selector.
func selectorWhere(selector models.Selector) (sq.Sqlizer, error) {
	eq := sq.Eq{}
	if selector.Username != "" {
		eq["username"] = selector.Username
	}
	if selector.Email != "" {
		eq["email"] = selector.Email
	}
	if len(eq) == 0 {
		return nil, ErrEmptySelector
	}
	return eq, nil
}

func buildSelectAccountQuery(ph sq.PlaceholderFormat, where sq.Sqlizer) (string, []any, error) {
	query, args, err := sq.Select(accountColumns...).
		From(accountsTable).
		Where(where).
		Limit(1).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectBySelectorQuery(ph sq.PlaceholderFormat, selector models.Selector) (string, []any, error) {
	where, err := selectorWhere(selector)
	if err != nil {
		return "", nil, err
	}
	return buildSelectAccountQuery(ph, where)
}

func buildSelectByIDQuery(ph sq.PlaceholderFormat, id int64) (string, []any, error) {
	return buildSelectAccountQuery(ph, sq.Eq{"id": id})
}

func buildSelectByCodeQuery(ph sq.PlaceholderFormat, code string) (string, []any, error) {
	return buildSelectAccountQuery(ph, sq.Eq{"act_code": code})
}

// buildExistsQuery counts rows matching the username OR the e-mail.
func buildExistsQuery(ph sq.PlaceholderFormat, selector models.Selector) (string, []any, error) {
	or := sq.Or{}
	if selector.Username != "" {
		or = append(or, sq.Eq{"username": selector.Username})
	}
	if selector.Email != "" {
		or = append(or, sq.Eq{"email": selector.Email})
	}
	if len(or) == 0 {
		return "", nil, ErrEmptySelector
	}

	query, args, err := sq.Select("COUNT(*)").
		From(accountsTable).
		Where(or).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertQuery(ph sq.PlaceholderFormat, record models.AccountRecord, registeredAt time.Time) (string, []any, error) {
	query, args, err := sq.Insert(accountsTable).
		Columns("username", "email", "password", "pending_pwd", "act_code", "act_time", "act_type", "registered_at", "active").
		Values(
			record.Username,
			record.Email,
			record.Password,
			nullStringArg(record.PendingPassword),
			nullStringArg(record.ActCode),
			nullTimeArg(record.ActTime),
			nullStringArg(record.ActType),
			registeredAt,
			record.Active,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateQuery sets columns in the given order on row id.
func buildUpdateQuery(ph sq.PlaceholderFormat, id int64, columns []string, values map[string]any) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, ErrNothingToUpdate
	}

	update := sq.Update(accountsTable)
	for _, column := range columns {
		if _, ok := updatableColumns[column]; !ok {
			return "", nil, fmt.Errorf("%w: column %q is not updatable", ErrBuildingSQLQuery, column)
		}
		value, ok := values[column]
		if !ok {
			return "", nil, fmt.Errorf("%w: no value for column %q", ErrBuildingSQLQuery, column)
		}
		update = update.Set(column, value)
	}

	query, args, err := update.
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteQuery(ph sq.PlaceholderFormat, selector models.Selector) (string, []any, error) {
	where, err := selectorWhere(selector)
	if err != nil {
		return "", nil, err
	}

	query, args, err := sq.Delete(accountsTable).
		Where(where).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSuspendQuery(ph sq.PlaceholderFormat, selector models.Selector) (string, []any, error) {
	where, err := selectorWhere(selector)
	if err != nil {
		return "", nil, err
	}

	query, args, err := sq.Update(accountsTable).
		Set("active", false).
		Where(where).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func nullStringArg(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullTimeArg(t sql.NullTime) any {
	if !t.Valid {
		return nil
	}
	return t.Time
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

type scopeKey struct{}

type scope struct {
	db   *gorm.DB
	conn *sql.Conn
}

// BeginRequestScope pins one pooled connection and a fresh session to the
// returned context. Repository calls made with that context share the
// connection until EndRequestScope releases it. Beginning a scope on an
// already scoped context returns it unchanged.
func (d *DB) BeginRequestScope(ctx context.Context) (context.Context, error) {
	if _, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return ctx, nil
	}
	conn, err := d.sql.Conn(ctx)
	if err != nil {
		return ctx, err
	}
	tx := d.gorm.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = conn
	return context.WithValue(ctx, scopeKey{}, &scope{db: tx, conn: conn}), nil
}

// EndRequestScope returns the scoped connection to the pool. It is a no-op
// for contexts without a scope.
func (d *DB) EndRequestScope(ctx context.Context) error {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok {
		return nil
	}
	err := s.conn.Close()
	if errors.Is(err, sql.ErrConnDone) {
		return nil
	}
	return err
}

// conn returns the session bound to ctx, or a pooled session.
func (d *DB) conn(ctx context.Context) *gorm.DB {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.db.WithContext(ctx)
	}
	return d.gorm.WithContext(ctx)
}

// Package postgres implementa los repositorios sobre un pool compartido
// (sqlx encima del driver pgx). Los statements del catálogo usan `?`;
// acá se reescriben al placeholder del driver antes de ejecutar.
package postgres

import (
	"context"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Open abre el pool de conexiones y verifica conectividad con un ping
// acotado. El checkout está limitado por maxOpen; si el pool se agota, el
// request espera hasta su timeout y el error sube como 500.
func Open(dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

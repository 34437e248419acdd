package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schema
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

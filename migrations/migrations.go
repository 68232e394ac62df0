// Package migrations lists the database schema migrations in order.
package migrations

import (
	"github.com/MajorLift/metamask-core/migrations/internal/m20260815"
	"github.com/go-gormigrate/gormigrate/v2"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID:       m20260815.ID,
			Migrate:  m20260815.Migrate,
			Rollback: m20260815.Rollback,
		},
	}
}

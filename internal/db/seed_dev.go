package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedPersonnel struct {
	ID       string
	Name     string
	Rank     string
	Unit     string
	Category string
}

// DefaultDevPersonnel is the roster loaded into a fresh dev database.
var DefaultDevPersonnel = []SeedPersonnel{
	{ID: "00000000-0000-4000-8000-000000000001", Name: "Budi Santoso", Rank: "Serda", Unit: "Yonif 201", Category: "TROOP"},
	{ID: "00000000-0000-4000-8000-000000000002", Name: "Siti Rahma", Rank: "Kapten", Unit: "Panitia Pusat", Category: "COMMITTEE"},
	{ID: "00000000-0000-4000-8000-000000000003", Name: "Andi Wijaya", Unit: "Katering Nusantara", Category: "VENDOR"},
	{ID: "00000000-0000-4000-8000-000000000004", Name: "Dewi Lestari", Unit: "Kantor Berita", Category: "MEDIA"},
}

type SeedDevOptions struct {
	// Personnel defaults to DefaultDevPersonnel when empty.
	Personnel []SeedPersonnel
}

// SeedDev inserts a starter roster. Existing rows are left untouched.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC().UnixMilli()

	roster := opt.Personnel
	if len(roster) == 0 {
		roster = DefaultDevPersonnel
	}

	for _, p := range roster {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO personnel(id, name, rank, unit, category, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?);`, p.ID, p.Name, p.Rank, p.Unit, p.Category, now); err != nil {
			return fmt.Errorf("seed personnel %s: %w", p.ID, err)
		}
	}

	return nil
}

package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{Name: "create_resume_snapshots", Up: createResumeSnapshots},
		{Name: "create_interview_experiences", Up: createInterviewExperiences},
		{Name: "index_interview_experiences", Up: indexInterviewExperiences},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

func createResumeSnapshots(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resume_snapshots (
			user_id UUID PRIMARY KEY,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func createInterviewExperiences(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS interview_experiences (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			interview_type TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			rating INT NOT NULL,
			experience TEXT NOT NULL,
			tips TEXT NOT NULL DEFAULT '',
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func indexInterviewExperiences(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_experiences_company_role ON interview_experiences (company, role);`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_visibility ON interview_experiences (is_approved, is_public);`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_created_at ON interview_experiences (created_at DESC);`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			// the index may already exist in an older shape
			slog.Warn("Error creating index", "error", err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"placify-resume/internal/adapter/storage"
	"placify-resume/internal/model"
)

// SnapshotsRepo stores whole-document resume snapshots per user. The
// document column is a single jsonb value; writes are full replacements.
type SnapshotsRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotsRepo(pool *pgxpool.Pool) *SnapshotsRepo {
	return &SnapshotsRepo{pool: pool}
}

func (r *SnapshotsRepo) Save(ctx context.Context, userID uuid.UUID, doc *model.ResumeDocument) error {
	if r.pool == nil {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO resume_snapshots (user_id, document, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		userID, b, time.Now())
	return err
}

// Load returns (nil, nil) when no usable snapshot exists for the user; a
// corrupt row is logged and treated as absent.
func (r *SnapshotsRepo) Load(ctx context.Context, userID uuid.UUID) (*model.ResumeDocument, error) {
	if r.pool == nil {
		return nil, nil
	}
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM resume_snapshots WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	doc := storage.DecodeSnapshot(raw)
	if doc == nil {
		slog.Warn("stored snapshot unusable, treating as absent", "user_id", userID)
	}
	return doc, nil
}

func (r *SnapshotsRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM resume_snapshots WHERE user_id = $1`, userID)
	return err
}

// ForUser binds the repo to one user as a storage.SnapshotStore, so the
// builder persists through the database exactly like it does through a file.
func (r *SnapshotsRepo) ForUser(userID uuid.UUID) storage.SnapshotStore {
	return &userStore{repo: r, userID: userID}
}

type userStore struct {
	repo   *SnapshotsRepo
	userID uuid.UUID
}

func (s *userStore) Save(doc *model.ResumeDocument) error {
	return s.repo.Save(context.Background(), s.userID, doc)
}

func (s *userStore) Load() (*model.ResumeDocument, error) {
	return s.repo.Load(context.Background(), s.userID)
}

func (s *userStore) Clear() error {
	return s.repo.Clear(context.Background(), s.userID)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"placify-resume/internal/model"
)

// ListParams are the standard pagination controls of the experiences feed.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps paging values and restricts sorting to known columns.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "createdAt"
	}
	if p.SortOrder != "asc" {
		p.SortOrder = "desc"
	}
	return p
}

var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"rating":     "rating",
	"company":    "company",
	"difficulty": "difficulty",
}

// Pagination is the paging metadata returned alongside a listing.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// CompanyStat is one row of the top-companies breakdown.
type CompanyStat struct {
	Company         string  `json:"company"`
	ExperienceCount int     `json:"experienceCount"`
	AverageRating   float64 `json:"averageRating"`
}

// Stats summarizes the public, approved experience pool.
type Stats struct {
	TotalExperiences int           `json:"totalExperiences"`
	AverageRating    float64       `json:"averageRating"`
	UniqueCompanies  int           `json:"uniqueCompanies"`
	TopCompanies     []CompanyStat `json:"topCompanies"`
}

// ExperiencesRepo persists shared interview experiences. All read paths
// filter to rows that are both public and approved.
type ExperiencesRepo struct {
	pool *pgxpool.Pool
}

func NewExperiencesRepo(pool *pgxpool.Pool) *ExperiencesRepo {
	return &ExperiencesRepo{pool: pool}
}

const experienceColumns = `id, name, email, company, role, interview_type, difficulty, rating,
	experience, tips, is_public, is_approved, created_at, updated_at`

func (r *ExperiencesRepo) Create(ctx context.Context, e *model.InterviewExperience) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `INSERT INTO interview_experiences
		(id, name, email, company, role, interview_type, difficulty, rating, experience, tips, is_public, is_approved, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		e.ID, e.Name, e.Email, e.Company, e.Role, e.InterviewType, e.Difficulty, e.Rating,
		e.Experience, e.Tips, e.IsPublic, e.IsApproved, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *ExperiencesRepo) List(ctx context.Context, params ListParams) ([]model.InterviewExperience, Pagination, error) {
	params = params.Normalize()

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_experiences WHERE is_public AND is_approved`).Scan(&total)
	if err != nil {
		return nil, Pagination{}, err
	}

	order := "DESC"
	if params.SortOrder == "asc" {
		order = "ASC"
	}
	// sortColumns is a fixed whitelist, so the column name is safe to splice
	q := fmt.Sprintf(`SELECT %s FROM interview_experiences
		WHERE is_public AND is_approved
		ORDER BY %s %s, id %s
		LIMIT $1 OFFSET $2`, experienceColumns, sortColumns[params.SortBy], order, order)

	rows, err := r.pool.Query(ctx, q, params.Limit, (params.Page-1)*params.Limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	items := make([]model.InterviewExperience, 0)
	for rows.Next() {
		var e model.InterviewExperience
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Company, &e.Role, &e.InterviewType,
			&e.Difficulty, &e.Rating, &e.Experience, &e.Tips, &e.IsPublic, &e.IsApproved,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, Pagination{}, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	return items, Pagination{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: params.Limit,
		HasNextPage:  params.Page < totalPages,
		HasPrevPage:  params.Page > 1,
	}, nil
}

// Get returns a single public, approved experience, or pgx.ErrNoRows.
func (r *ExperiencesRepo) Get(ctx context.Context, id uuid.UUID) (*model.InterviewExperience, error) {
	q := fmt.Sprintf(`SELECT %s FROM interview_experiences
		WHERE id = $1 AND is_public AND is_approved`, experienceColumns)

	var e model.InterviewExperience
	err := r.pool.QueryRow(ctx, q, id).Scan(&e.ID, &e.Name, &e.Email, &e.Company, &e.Role,
		&e.InterviewType, &e.Difficulty, &e.Rating, &e.Experience, &e.Tips, &e.IsPublic,
		&e.IsApproved, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *ExperiencesRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{TopCompanies: []CompanyStat{}}

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*),
			COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::float8,
			COUNT(DISTINCT company)
		FROM interview_experiences
		WHERE is_public AND is_approved`).
		Scan(&stats.TotalExperiences, &stats.AverageRating, &stats.UniqueCompanies)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT company, COUNT(*) AS cnt,
			ROUND(AVG(rating)::numeric, 2)::float8
		FROM interview_experiences
		WHERE is_public AND is_approved
		GROUP BY company
		ORDER BY cnt DESC, company ASC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cs CompanyStat
		if err := rows.Scan(&cs.Company, &cs.ExperienceCount, &cs.AverageRating); err != nil {
			return nil, err
		}
		stats.TopCompanies = append(stats.TopCompanies, cs)
	}
	return stats, rows.Err()
}

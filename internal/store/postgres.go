package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ideagauge/ideagauge/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Users ---

const userColumns = `id, name, email, password_hash, provider, is_verified, avatar, created_at, updated_at`

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, provider, is_verified, avatar, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Provider,
		user.IsVerified, user.Avatar, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider,
		&u.IsVerified, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Provider,
		&u.IsVerified, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) MarkUserVerified(ctx context.Context, email string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, provider = 'email', updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, id uuid.UUID, name, avatar string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET
		   name = COALESCE(NULLIF($2, ''), name),
		   avatar = COALESCE(NULLIF($3, ''), avatar),
		   updated_at = NOW()
		 WHERE id = $1`,
		id, name, avatar)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Feasibility results ---

func (s *PostgresStore) CreateFeasibilityResult(ctx context.Context, result *models.FeasibilityResult) error {
	analyses, err := json.Marshal(result.MetricAnalyses)
	if err != nil {
		return fmt.Errorf("marshal metric analyses: %w", err)
	}
	stack, err := json.Marshal(result.TechStack)
	if err != nil {
		return fmt.Errorf("marshal tech stack: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO feasibility_results
		   (id, idea, short_description, problem_statement, budget,
		    feasibility_score, technical_score, market_score, research_score, innovation_score,
		    ai_summary, metric_analyses, tech_stack,
		    strengths, risks, future_scope, market_trends,
		    detailed_analysis, verdict, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		result.ID, result.Idea, result.ShortDescription, result.ProblemStatement, result.Budget,
		result.FeasibilityScore, result.TechnicalScore, result.MarketScore, result.ResearchScore, result.InnovationScore,
		result.AISummary, analyses, stack,
		result.Strengths, result.Risks, result.FutureScope, result.MarketTrends,
		result.DetailedAnalysis, result.Verdict, result.Source, result.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create feasibility result: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetFeasibilityResult(ctx context.Context, id uuid.UUID) (*models.FeasibilityResult, error) {
	var (
		r        models.FeasibilityResult
		analyses []byte
		stack    []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, idea, short_description, problem_statement, budget,
		        feasibility_score, technical_score, market_score, research_score, innovation_score,
		        ai_summary, metric_analyses, tech_stack,
		        strengths, risks, future_scope, market_trends,
		        detailed_analysis, verdict, source, created_at
		 FROM feasibility_results WHERE id = $1`, id,
	).Scan(&r.ID, &r.Idea, &r.ShortDescription, &r.ProblemStatement, &r.Budget,
		&r.FeasibilityScore, &r.TechnicalScore, &r.MarketScore, &r.ResearchScore, &r.InnovationScore,
		&r.AISummary, &analyses, &stack,
		&r.Strengths, &r.Risks, &r.FutureScope, &r.MarketTrends,
		&r.DetailedAnalysis, &r.Verdict, &r.Source, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feasibility result: %w", err)
	}

	if err := json.Unmarshal(analyses, &r.MetricAnalyses); err != nil {
		return nil, fmt.Errorf("unmarshal metric analyses: %w", err)
	}
	if err := json.Unmarshal(stack, &r.TechStack); err != nil {
		return nil, fmt.Errorf("unmarshal tech stack: %w", err)
	}
	return &r, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

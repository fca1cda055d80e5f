package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akarasev/daytales/pkg/domain"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *sqlx.DB) *UserRepository {
	return &UserRepository{db: database}
}

// userSQL represents a user row
type userSQL struct {
	ID             int64      `db:"id"`
	AccessToken    string     `db:"access_token"`
	RefreshToken   string     `db:"refresh_token"`
	TokenExpiresAt *time.Time `db:"token_expires_at"`
	Language       string     `db:"language"`
	AgeBucket      string     `db:"age_bucket"`
	CardID         string     `db:"card_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// Create inserts a new user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Language == "" {
		user.Language = "en"
	}
	if user.AgeBucket == "" {
		user.AgeBucket = domain.BucketMiddle
	}

	row := &userSQL{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		Language:     user.Language,
		AgeBucket:    user.AgeBucket,
		CardID:       user.CardID,
	}
	if !user.TokenExpiresAt.IsZero() {
		row.TokenExpiresAt = &user.TokenExpiresAt
	}

	query := `
		INSERT INTO users (access_token, refresh_token, token_expires_at, language, age_bucket, card_id)
		VALUES (:access_token, :refresh_token, :token_expires_at, :language, :age_bucket, :card_id)
	`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	user.ID = id
	user.AgeMin, user.AgeMax = domain.AgeBounds(user.AgeBucket)
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	var row userSQL
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return r.toDomainUser(&row), nil
}

// List retrieves all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userSQL
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = r.toDomainUser(&rows[i])
	}
	return users, nil
}

// UpdateTokens persists a rotated token pair
func (r *UserRepository) UpdateTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET access_token = ?, refresh_token = ?, token_expires_at = ? WHERE id = ?`,
		accessToken, refreshToken, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	return nil
}

// UpdateCardID persists the content card adopted after the first publish
func (r *UserRepository) UpdateCardID(ctx context.Context, userID int64, cardID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET card_id = ? WHERE id = ?`, cardID, userID)
	if err != nil {
		return fmt.Errorf("update card id: %w", err)
	}
	return nil
}

// UpdateSettings persists playlist preferences
func (r *UserRepository) UpdateSettings(ctx context.Context, userID int64, language, ageBucket string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET language = ?, age_bucket = ? WHERE id = ?`, language, ageBucket, userID)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// toDomainUser converts userSQL to domain.User
func (r *UserRepository) toDomainUser(row *userSQL) *domain.User {
	user := &domain.User{
		ID:           row.ID,
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		Language:     row.Language,
		AgeBucket:    row.AgeBucket,
		CardID:       row.CardID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.TokenExpiresAt != nil {
		user.TokenExpiresAt = *row.TokenExpiresAt
	}
	user.AgeMin, user.AgeMax = domain.AgeBounds(user.AgeBucket)
	return user
}

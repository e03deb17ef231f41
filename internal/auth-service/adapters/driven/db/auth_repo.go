package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dashdrop/internal/auth-service/core/domain/model"
	"dashdrop/internal/auth-service/core/myerrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type AuthRepo struct {
	db *DataBase
}

func NewAuthRepo(db *DataBase) *AuthRepo {
	return &AuthRepo{db: db}
}

func (ar *AuthRepo) CreateDriverAccount(ctx context.Context, reg model.DriverRegistration) (string, string, error) {
	tx, err := ar.db.Pool().Begin(ctx)
	if err != nil {
		return "", "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	userID := uuid.NewString()
	driverID := uuid.NewString()

	InsertUserQuery := `
		INSERT INTO users (id, email, phone, password_hash, role, phone_verified, created_at)
		VALUES ($1, $2, $3, $4, 'DRIVER', false, NOW());
	`
	if _, err := tx.Exec(ctx, InsertUserQuery, userID, reg.Email, reg.Phone, reg.PasswordHash); err != nil {
		return "", "", mapUniqueViolation(err)
	}

	InsertDriverQuery := `
		INSERT INTO drivers (
			driver_id, user_id, name, phone, vehicle_type, vehicle_number, license_number,
			longitude, latitude, is_available, current_status, rating,
			total_deliveries, total_earnings, today_earnings,
			documents, verification_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			0, 0, false, 'idle', 0,
			0, 0, 0,
			'{}'::jsonb, 'pending_documents', NOW(), NOW()
		);
	`
	if _, err := tx.Exec(ctx, InsertDriverQuery, driverID, userID,
		reg.Name, reg.Phone, reg.VehicleType, reg.VehicleNumber, reg.LicenseNumber); err != nil {
		return "", "", mapUniqueViolation(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", "", fmt.Errorf("commit tx: %w", err)
	}
	return userID, driverID, nil
}

func (ar *AuthRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	SelectQuery := `
		SELECT id, email, phone, password_hash, role, phone_verified, created_at
		FROM users WHERE email = $1;
	`
	return ar.scanUser(ctx, SelectQuery, email, myerrors.ErrUnknownEmail)
}

func (ar *AuthRepo) GetUserByPhone(ctx context.Context, phone string) (model.User, error) {
	SelectQuery := `
		SELECT id, email, phone, password_hash, role, phone_verified, created_at
		FROM users WHERE phone = $1;
	`
	return ar.scanUser(ctx, SelectQuery, phone, myerrors.ErrUserNotFound)
}

func (ar *AuthRepo) GetDriverID(ctx context.Context, userID string) (string, error) {
	SelectQuery := `SELECT driver_id FROM drivers WHERE user_id = $1;`
	var driverID string
	err := ar.db.Pool().QueryRow(ctx, SelectQuery, userID).Scan(&driverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return driverID, nil
}

func (ar *AuthRepo) MarkPhoneVerified(ctx context.Context, userID string) error {
	UpdateQuery := `UPDATE users SET phone_verified = true WHERE id = $1;`
	tag, err := ar.db.Pool().Exec(ctx, UpdateQuery, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrUserNotFound
	}
	return nil
}

func (ar *AuthRepo) scanUser(ctx context.Context, query, arg string, notFound error) (model.User, error) {
	var u model.User
	err := ar.db.Pool().QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.PhoneVerified, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, notFound
		}
		return model.User{}, err
	}
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "phone") {
			return myerrors.ErrPhoneRegistered
		}
		return myerrors.ErrEmailRegistered
	}
	return err
}

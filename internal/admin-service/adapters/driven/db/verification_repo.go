package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dashdrop/internal/admin-service/core/domain/model"
	"dashdrop/internal/admin-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

const verificationColumns = `
	driver_id, user_id, name, phone, vehicle_type, documents,
	verification_status, verification_notes, verified_at, verified_by, created_at
`

type VerificationRepo struct {
	db *DataBase
}

func NewVerificationRepo(db *DataBase) *VerificationRepo {
	return &VerificationRepo{db: db}
}

func (vr *VerificationRepo) GetDriver(ctx context.Context, driverID string) (model.DriverVerification, error) {
	SelectQuery := fmt.Sprintf(`SELECT %s FROM drivers WHERE driver_id = $1;`, verificationColumns)
	return vr.scanDriver(vr.db.Pool().QueryRow(ctx, SelectQuery, driverID))
}

func (vr *VerificationRepo) GetDriverEmail(ctx context.Context, driverID string) (string, error) {
	SelectQuery := `
		SELECT u.email
		FROM users u
		JOIN drivers d ON d.user_id = u.id
		WHERE d.driver_id = $1;
	`
	var email string
	err := vr.db.Pool().QueryRow(ctx, SelectQuery, driverID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", myerrors.ErrDriverNotFound
		}
		return "", err
	}
	return email, nil
}

func (vr *VerificationRepo) ListPending(ctx context.Context) ([]model.DriverVerification, error) {
	SelectQuery := fmt.Sprintf(`
		SELECT %s FROM drivers
		WHERE verification_status = 'pending_verification'
		ORDER BY created_at;
	`, verificationColumns)

	rows, err := vr.db.Pool().Query(ctx, SelectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DriverVerification
	for rows.Next() {
		m, err := vr.scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (vr *VerificationRepo) Decide(ctx context.Context, driverID string, decision model.Decision) (model.DriverVerification, error) {
	UpdateQuery := fmt.Sprintf(`
		UPDATE drivers
		SET verification_status = $2,
			verification_notes = $3,
			verified_at = CASE WHEN $2 = 'verified' THEN NOW() ELSE NULL END,
			verified_by = $4,
			updated_at = NOW()
		WHERE driver_id = $1
		RETURNING %s;
	`, verificationColumns)
	return vr.scanDriver(vr.db.Pool().QueryRow(ctx, UpdateQuery,
		driverID, decision.Status, decision.Notes, decision.AdminID))
}

func (vr *VerificationRepo) Reconsider(ctx context.Context, driverID string) (model.DriverVerification, error) {
	UpdateQuery := fmt.Sprintf(`
		UPDATE drivers
		SET verification_status = 'pending_verification', updated_at = NOW()
		WHERE driver_id = $1 AND verification_status = 'rejected'
		RETURNING %s;
	`, verificationColumns)

	m, err := vr.scanDriver(vr.db.Pool().QueryRow(ctx, UpdateQuery, driverID))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, myerrors.ErrDriverNotFound) {
		return model.DriverVerification{}, err
	}

	// Zero rows means the driver is missing or not currently rejected.
	var exists bool
	checkErr := vr.db.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM drivers WHERE driver_id = $1);`, driverID).Scan(&exists)
	if checkErr != nil {
		return model.DriverVerification{}, checkErr
	}
	if !exists {
		return model.DriverVerification{}, myerrors.ErrDriverNotFound
	}
	return model.DriverVerification{}, myerrors.ErrIllegalTransition
}

func (vr *VerificationRepo) DeleteDriver(ctx context.Context, driverID string) error {
	tx, err := vr.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	DeleteDriverQuery := `DELETE FROM drivers WHERE driver_id = $1 RETURNING user_id;`
	var userID string
	err = tx.QueryRow(ctx, DeleteDriverQuery, driverID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrDriverNotFound
		}
		return err
	}

	DeleteUserQuery := `DELETE FROM users WHERE id = $1;`
	if _, err := tx.Exec(ctx, DeleteUserQuery, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (vr *VerificationRepo) scanDriver(row pgx.Row) (model.DriverVerification, error) {
	var m model.DriverVerification
	var documents []byte
	err := row.Scan(
		&m.DriverID, &m.UserID, &m.Name, &m.Phone, &m.VehicleType, &documents,
		&m.VerificationStatus, &m.VerificationNotes, &m.VerifiedAt, &m.VerifiedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DriverVerification{}, myerrors.ErrDriverNotFound
		}
		return model.DriverVerification{}, err
	}
	m.Documents = make(map[string]string)
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &m.Documents); err != nil {
			return model.DriverVerification{}, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	return m, nil
}

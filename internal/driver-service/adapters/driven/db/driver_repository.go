package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dashdrop/internal/driver-service/core/domain/model"
	"dashdrop/internal/driver-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

const driverColumns = `
	driver_id, user_id, name, phone, vehicle_type, vehicle_number, license_number,
	longitude, latitude, is_available, current_status, rating,
	total_deliveries, total_earnings, today_earnings,
	documents, verification_status, verification_notes, verified_at, verified_by,
	created_at, updated_at
`

type DriverRepository struct {
	db *DataBase
}

func NewDriverRepository(db *DataBase) *DriverRepository {
	return &DriverRepository{db: db}
}

func (dr *DriverRepository) GetDriver(ctx context.Context, driverID string) (model.Driver, error) {
	SelectQuery := fmt.Sprintf(`SELECT %s FROM drivers WHERE driver_id = $1;`, driverColumns)
	return dr.scanDriver(dr.db.Pool().QueryRow(ctx, SelectQuery, driverID))
}

func (dr *DriverRepository) GetDriverByUserID(ctx context.Context, userID string) (model.Driver, error) {
	SelectQuery := fmt.Sprintf(`SELECT %s FROM drivers WHERE user_id = $1;`, driverColumns)
	return dr.scanDriver(dr.db.Pool().QueryRow(ctx, SelectQuery, userID))
}

func (dr *DriverRepository) UpdateProfile(ctx context.Context, driverID string, fields model.ProfileUpdate) (model.Driver, error) {
	UpdateQuery := fmt.Sprintf(`
		UPDATE drivers
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			vehicle_type = COALESCE($4, vehicle_type),
			vehicle_number = COALESCE($5, vehicle_number),
			license_number = COALESCE($6, license_number),
			updated_at = NOW()
		WHERE driver_id = $1
		RETURNING %s;
	`, driverColumns)
	return dr.scanDriver(dr.db.Pool().QueryRow(ctx, UpdateQuery, driverID,
		fields.Name, fields.Phone, fields.VehicleType, fields.VehicleNumber, fields.LicenseNumber))
}

func (dr *DriverRepository) SetLocation(ctx context.Context, driverID string, longitude, latitude float64) error {
	UpdateQuery := `
		UPDATE drivers
		SET longitude = $2, latitude = $3, updated_at = NOW()
		WHERE driver_id = $1;
	`
	tag, err := dr.db.Pool().Exec(ctx, UpdateQuery, driverID, longitude, latitude)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrDriverNotFound
	}
	return nil
}

func (dr *DriverRepository) SetAvailability(ctx context.Context, driverID string, isAvailable bool) (bool, error) {
	UpdateQuery := `
		UPDATE drivers
		SET is_available = $2, updated_at = NOW()
		WHERE driver_id = $1
		RETURNING is_available;
	`
	var stored bool
	err := dr.db.Pool().QueryRow(ctx, UpdateQuery, driverID, isAvailable).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, myerrors.ErrDriverNotFound
		}
		return false, err
	}
	return stored, nil
}

// MergeDocuments uses a jsonb concat so prior slots survive partial uploads.
func (dr *DriverRepository) MergeDocuments(ctx context.Context, driverID string, docs map[string]string) (model.Driver, error) {
	payload, err := json.Marshal(docs)
	if err != nil {
		return model.Driver{}, fmt.Errorf("marshal documents: %w", err)
	}

	UpdateQuery := fmt.Sprintf(`
		UPDATE drivers
		SET documents = documents || $2::jsonb, updated_at = NOW()
		WHERE driver_id = $1
		RETURNING %s;
	`, driverColumns)
	return dr.scanDriver(dr.db.Pool().QueryRow(ctx, UpdateQuery, driverID, payload))
}

func (dr *DriverRepository) SetVerificationStatus(ctx context.Context, driverID, status string) error {
	UpdateQuery := `
		UPDATE drivers
		SET verification_status = $2, updated_at = NOW()
		WHERE driver_id = $1;
	`
	tag, err := dr.db.Pool().Exec(ctx, UpdateQuery, driverID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrDriverNotFound
	}
	return nil
}

func (dr *DriverRepository) ResetTodayEarnings(ctx context.Context) (int64, error) {
	UpdateQuery := `
		UPDATE drivers
		SET today_earnings = 0, updated_at = NOW()
		WHERE today_earnings <> 0;
	`
	tag, err := dr.db.Pool().Exec(ctx, UpdateQuery)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (dr *DriverRepository) scanDriver(row pgx.Row) (model.Driver, error) {
	var m model.Driver
	var documents []byte
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Phone, &m.VehicleType, &m.VehicleNumber, &m.LicenseNumber,
		&m.CurrentLocation.Longitude, &m.CurrentLocation.Latitude, &m.IsAvailable, &m.CurrentStatus, &m.Rating,
		&m.TotalDeliveries, &m.TotalEarnings, &m.TodayEarnings,
		&documents, &m.VerificationStatus, &m.VerificationNotes, &m.VerifiedAt, &m.VerifiedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Driver{}, myerrors.ErrDriverNotFound
		}
		return model.Driver{}, err
	}
	m.Documents = make(map[string]string)
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &m.Documents); err != nil {
			return model.Driver{}, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	return m, nil
}

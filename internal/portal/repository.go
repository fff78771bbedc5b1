package portal

import (
	"context"

	"github.com/gla-dpsingh/Animal-Care/internal/db"
)

type Repository struct {
	db *db.DB
}

func NewRepository(db *db.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListHospitals(ctx context.Context) ([]Hospital, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address,
		       COALESCE(phone_number, ''), COALESCE(email, ''),
		       COALESCE(latitude, 0), COALESCE(longitude, 0)
		FROM hospitals
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hospitals := []Hospital{}
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Address,
			&h.PhoneNumber, &h.Email,
			&h.Latitude, &h.Longitude,
		); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}

	return hospitals, rows.Err()
}

func (r *Repository) ListMedicines(ctx context.Context) ([]Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name,
		       COALESCE(description, ''), COALESCE(uses, ''),
		       COALESCE(side_effects, '')
		FROM medicines
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medicines := []Medicine{}
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(
			&m.ID, &m.Name,
			&m.Description, &m.Uses,
			&m.SideEffects,
		); err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}

	return medicines, rows.Err()
}

func (r *Repository) ListReports(ctx context.Context) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, 0), report_type, description, status,
		       created_at, updated_at
		FROM reports
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var rep Report
		if err := rows.Scan(
			&rep.ID, &rep.UserID, &rep.ReportType, &rep.Description,
			&rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

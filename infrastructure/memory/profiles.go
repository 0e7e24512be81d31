package memory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type profileRepo struct{ s *Store }

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var out *models.Profile
	err := r.s.read(func(d *dataset) error {
		p, ok := d.profiles[userID]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		p.Document = append(datatypes.JSON(nil), p.Document...)
		out = &p
		return nil
	})
	return out, err
}

func (r *profileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.s.write(func(d *dataset) error {
		row := *profile
		row.Document = append(datatypes.JSON(nil), profile.Document...)
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = d.now()
			profile.UpdatedAt = row.UpdatedAt
		}
		d.profiles[profile.UserID] = row
		return nil
	})
}

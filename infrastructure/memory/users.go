package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	return r.s.write(func(d *dataset) error {
		ensureID(&user.ID)
		for _, u := range d.users {
			if strings.EqualFold(u.Email, user.Email) {
				return fmt.Errorf("users: duplicate email %q", user.Email)
			}
			if strings.EqualFold(u.Username, user.Username) {
				return fmt.Errorf("users: duplicate username %q", user.Username)
			}
		}
		now := d.now()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		d.users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	err := r.s.read(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) findBy(match func(models.User) bool) (*models.User, error) {
	var out *models.User
	err := r.s.read(func(d *dataset) error {
		for _, u := range d.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return repositories.ErrRecordNotFound
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	var out []*models.User
	err := r.s.read(func(d *dataset) error {
		for _, id := range ids {
			if u, ok := d.users[id]; ok {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *userRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.s.write(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		for col, v := range fields {
			var err error
			switch col {
			case "first_name":
				u.FirstName, err = asString(col, v)
			case "last_name":
				u.LastName, err = asString(col, v)
			case "avatar_url":
				u.AvatarURL, err = asString(col, v)
			case "avatar_key":
				u.AvatarKey, err = asString(col, v)
			case "banner_url":
				u.BannerURL, err = asString(col, v)
			case "banner_key":
				u.BannerKey, err = asString(col, v)
			case "role":
				u.Role, err = asString(col, v)
			case "is_active":
				u.IsActive, err = asBool(col, v)
			case "plan":
				u.Plan, err = asString(col, v)
			case "subscription_status":
				u.SubscriptionStatus, err = asString(col, v)
			case "billing_customer_id":
				u.BillingCustomerID, err = asString(col, v)
			case "billing_subscription_id":
				u.BillingSubscriptionID, err = asString(col, v)
			case "updated_at":
			default:
				err = unknownColumn("users", col)
			}
			if err != nil {
				return err
			}
		}
		u.UpdatedAt = d.now()
		d.users[id] = u
		return nil
	})
}

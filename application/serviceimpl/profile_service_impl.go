package serviceimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/datatypes"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

// profileSchema ตรวจแค่โครงสร้าง: ต้องเป็น object, field ข้างในอิสระ
var profileSchema = mustCompileSchema(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"maxProperties": 200
}`)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic("invalid profile schema: " + err.Error())
	}
	return schema
}

func validateProfileDocument(doc []byte) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: profile must be a JSON object", services.ErrValidation)
	}

	res, err := profileSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: profile is not valid JSON", services.ErrValidation)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: profile must be a JSON object: %s", services.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

type ProfileServiceImpl struct {
	store repositories.Store
}

func NewProfileService(store repositories.Store) services.ProfileService {
	return &ProfileServiceImpl{store: store}
}

// GetProfile user ที่ยังไม่เคยบันทึก profile ได้เอกสารว่าง {}
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, notFound(err, "user not found")
	}

	profile, err := s.store.Profiles().GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return &models.Profile{UserID: userID, Document: datatypes.JSON("{}")}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// PutProfile เขียนทับทั้งเอกสาร ไม่ตรวจ field ข้างใน
func (s *ProfileServiceImpl) PutProfile(ctx context.Context, userID, actorID uuid.UUID, document json.RawMessage) (*models.Profile, error) {
	if userID != actorID {
		return nil, fmt.Errorf("%w: you can only edit your own profile", services.ErrForbidden)
	}

	trimmed := bytes.TrimSpace(document)
	if err := validateProfileDocument(trimmed); err != nil {
		return nil, err
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, notFound(err, "user not found")
	}

	profile := &models.Profile{UserID: userID, Document: datatypes.JSON(trimmed)}
	if err := s.store.Profiles().Upsert(ctx, profile); err != nil {
		logger.ErrorContext(ctx, "Failed to save profile", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", userID, "bytes", len(trimmed))
	return s.store.Profiles().GetByUserID(ctx, userID)
}

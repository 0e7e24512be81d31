package serviceimpl

import (
	"errors"
	"fmt"

	"buildboard/domain/repositories"
	"buildboard/domain/services"
)

// notFound แปลง ErrRecordNotFound ของ repository เป็น services.ErrNotFound, error อื่นส่งต่อตามเดิม
func notFound(err error, what string) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", services.ErrNotFound, what)
	}
	return err
}

// invalidReference id ที่อ้างถึงใน request body ไม่มีอยู่ = validation error
func invalidReference(err error, what string) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", services.ErrValidation, what)
	}
	return err
}

package repositories

import "errors"

// ErrRecordNotFound ทุก implementation ต้องคืน error นี้ (หรือ wrap) เมื่อหา record ไม่เจอ
var ErrRecordNotFound = errors.New("record not found")

package utils

import (
	"crypto/rand"
	"math/big"
)

// ไม่มีตัวที่อ่านสับสน เช่น 0, O, l, 1
const alphanumeric = "abcdefghjkmnpqrstuvwxyz23456789"

// GenerateRandomString สร้าง random string ความยาว n ตัวอักษร
func GenerateRandomString(n int) string {
	result := make([]byte, n)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			result[i] = alphanumeric[i%len(alphanumeric)]
			continue
		}
		result[i] = alphanumeric[num.Int64()]
	}
	return string(result)
}

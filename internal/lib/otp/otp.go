// Package otp генерирует одноразовые коды подтверждения электронной почты.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// TTL время жизни кода подтверждения.
const TTL = 15 * time.Minute

// NewCode возвращает шестизначный числовой код подтверждения.
func NewCode() (string, error) {
	const op = "otp.NewCode"
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

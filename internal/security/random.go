package security

import (
	"crypto/rand"
	"encoding/base64"
)

func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}

	return b, nil
}

// IdempotencyKey создает случайный ключ идемпотентности для запроса
// на создание заказа. Повтор запроса с тем же ключом не приводит
// к созданию второго заказа на стороне биллинга.
func IdempotencyKey() (string, error) {
	b, err := RandomBytes(24)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

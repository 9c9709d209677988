package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
)

type normalizedCreateProduct struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Image       string  `json:"image"`
}

// FingerprintCreateProduct hashes the submission without its idempotency key.
// Callers validate required fields first.
func FingerprintCreateProduct(input catalogtypes.CreateProductInput) (string, error) {
	normalized := normalizedCreateProduct{Image: strings.TrimSpace(input.Image)}
	if input.Name != nil {
		normalized.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		normalized.Price = *input.Price
	}
	if input.Description != nil {
		normalized.Description = strings.TrimSpace(*input.Description)
	}
	if input.Quantity != nil {
		normalized.Quantity = *input.Quantity
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

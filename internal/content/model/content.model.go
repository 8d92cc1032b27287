package model

import (
	"encoding/json"
	"time"
)

// The store holds exactly these two documents.
const (
	KeySite     = "site"
	KeyProducts = "products"
)

func Keys() []string { return []string{KeySite, KeyProducts} }

func ValidKey(key string) bool {
	return key == KeySite || key == KeyProducts
}

// StoredDocument is one row of the documents table. The value is opaque JSON;
// validation happens before the write, so readers trust the stored shape.
type StoredDocument struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaveAck is the body returned by a successful PUT.
type SaveAck struct {
	OK        bool      `json:"ok"`
	Key       string    `json:"key"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vitrina/internal/content/model"
	"vitrina/internal/content/service"
	"vitrina/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL bounds how long a token from /api/login stays valid.
const SessionTTL = 12 * time.Hour

type ContentHandler struct {
	Service *service.ContentService
	Secret  string // shared admin secret, also signs session tokens
}

func NewContentHandler(svc *service.ContentService, secret string) *ContentHandler {
	return &ContentHandler{Service: svc, Secret: secret}
}

func (h *ContentHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, model.KeySite)
}

func (h *ContentHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.getDocument(w, r, model.KeyProducts)
}

func (h *ContentHandler) getDocument(w http.ResponseWriter, r *http.Request, key string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value, err := h.Service.GetDocument(key)
	if err != nil {
		logger.Sugar.Errorf("Error fetching %s document: %v", key, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(value)
}

func (h *ContentHandler) PutSite(w http.ResponseWriter, r *http.Request) {
	h.putDocument(w, r, model.KeySite)
}

func (h *ContentHandler) PutProducts(w http.ResponseWriter, r *http.Request) {
	h.putDocument(w, r, model.KeyProducts)
}

func (h *ContentHandler) putDocument(w http.ResponseWriter, r *http.Request, key string) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		http.Error(w, "Request body must be a JSON object", http.StatusBadRequest)
		return
	}

	updatedAt, err := h.Service.SaveDocument(key, doc)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Message, http.StatusBadRequest)
			return
		}
		logger.Sugar.Errorf("Error saving %s document: %v", key, err)
		http.Error(w, "Failed to save document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.SaveAck{OK: true, Key: key, UpdatedAt: updatedAt})
}

// Login exchanges the shared admin secret for a short-lived session token.
// The raw secret keeps working as a bearer token; this just spares the admin
// page from holding the secret in the browser for the whole session.
func (h *ContentHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.Secret == "" {
		logger.Sugar.Error("ADMIN_TOKEN is not configured; refusing login")
		http.Error(w, "Server is not configured for admin access", http.StatusInternalServerError)
		return
	}

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Token != h.Secret {
		http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
		return
	}

	expiresAt := time.Now().Add(SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(h.Secret))
	if err != nil {
		logger.Sugar.Errorf("Failed to sign session token: %v", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.LoginResponse{Token: signed, ExpiresAt: expiresAt})
}

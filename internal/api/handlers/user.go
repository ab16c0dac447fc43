package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/auth"
)

// LoginRequest is the dashboard login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// LoginHandler authenticates a dashboard user and issues a JWT.
func LoginHandler(authSvc *auth.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Username == "" || req.Password == "" {
			http.Error(w, "Username and password are required", http.StatusBadRequest)
			return
		}

		user, err := authSvc.Authenticate(req.Username, req.Password)
		if err != nil {
			logger.Warn("login failed", zap.String("username", req.Username), zap.Error(err))
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := authSvc.GenerateToken(user)
		if err != nil {
			logger.Error("failed to issue token", zap.Error(err))
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Token: token})
	}
}

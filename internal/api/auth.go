package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"invoicely/m/domain"
)

type ctxKey string

const ctxUser ctxKey = "user"

type authClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// tokenTTL is the fixed session lifetime.
const tokenTTL = 24 * time.Hour

func (h *Handler) generateToken(user domain.User) (string, error) {
	claims := authClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

// authMiddleware requires a valid bearer token and re-verifies that the
// referenced user still exists before letting the request through.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])

		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respondError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			respondError(w, http.StatusForbidden, "Invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok || !token.Valid {
			respondError(w, http.StatusForbidden, "Invalid token")
			return
		}

		user, err := h.users.ByID(r.Context(), claims.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusUnauthorized, "Invalid token - user not found")
			return
		}
		if err != nil {
			h.log.Error().Err(err).Msg("auth user lookup failed")
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) domain.User {
	return r.Context().Value(ctxUser).(domain.User)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

// checkCredentials folds the unknown-identifier and wrong-password
// cases into the same error so accounts cannot be enumerated.
func (h *Handler) checkCredentials(r *http.Request, login, password string) (domain.User, error) {
	user, err := h.users.ByLogin(r.Context(), login)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.checkCredentials(r, req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("login lookup failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  currentUser(r),
	})
}

// logout is stateless; the client discards its token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

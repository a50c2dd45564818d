package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	hmac          []byte
	adminUser     string
	adminPassHash string // bcrypt; empty disables admin login
	devLogins     bool
}

func NewAuthService(secret, adminUser, adminPassHash string, devLogins bool) *AuthService {
	return &AuthService{
		hmac:          []byte(secret),
		adminUser:     adminUser,
		adminPassHash: adminPassHash,
		devLogins:     devLogins,
	}
}

type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"` // "admin" or "student"
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ielts-platform",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}

// POST /auth/login  { "username": "...", "password": "...", "role": "admin|student" }
//
// Admin credentials check against the configured bcrypt hash. Student login
// is dev-grade (username must equal password) and only enabled in dev mode;
// production deployments front this with their own identity provider.
func LoginHandler(a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var valid bool
		switch req.Role {
		case "admin":
			valid = req.Username == a.adminUser && a.adminPassHash != "" &&
				bcrypt.CompareHashAndPassword([]byte(a.adminPassHash), []byte(req.Password)) == nil
			if !valid && a.devLogins && a.adminPassHash == "" {
				valid = req.Username == a.adminUser && req.Password == a.adminUser
			}
		case "student":
			valid = a.devLogins && req.Username != "" && req.Username == req.Password
		}
		if !valid {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(req.Username, req.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}

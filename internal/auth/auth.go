package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"Impeller/internal/httpjson"
	repo "Impeller/internal/repo"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"

	cookieName = "session_token"

	maxBodyBytes = 4 << 10
)

type Authenv struct {
	JWTkey       []byte
	Repo         repo.Repository
	TTL          time.Duration
	SecureCookie bool
	now          func() time.Time
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type Registerrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

// LimitMiddleware throttles per client IP (port stripped).
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !i.getLimiter(ip).Allow() {
			httpjson.Error(w, http.StatusTooManyRequests, "Too Many Requests. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) clock() time.Time {
	if env.now != nil {
		return env.now()
	}
	return time.Now()
}

func (env *Authenv) ttl() time.Duration {
	if env.TTL > 0 {
		return env.TTL
	}
	return 30 * 24 * time.Hour
}

// IssueToken signs an HS256 session token for the user.
func (env *Authenv) IssueToken(userID int, login string) (string, time.Time, error) {
	exp := env.clock().Add(env.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString(env.JWTkey)
	return s, exp, err
}

func (env *Authenv) parse(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	}, jwt.WithTimeFunc(env.clock))
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", jwt.ErrTokenInvalidClaims
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("token has no user_id")
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return 0, "", errors.New("token has no login")
	}
	return int(userIDFloat), login, nil
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware accepts the session cookie or an Authorization: Bearer header.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFrom(r)
		if raw == "" {
			httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		userID, login, err := env.parse(raw)
		if err != nil {
			slog.Debug("rejected token", "error", err)
			httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userLoginKey, login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

func UserLogin(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(userLoginKey).(string)
	return login, ok
}

func (env *Authenv) respondWithToken(w http.ResponseWriter, status int, userID int, login string) {
	token, exp, err := env.IssueToken(userID, login)
	if err != nil {
		slog.Error("sign token", "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "Token error")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpjson.Write(w, status, TokenResponse{Token: token, ExpiresAt: exp})
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req Registerrequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Login, email and password required")
		return
	}
	if len(req.Password) < 6 {
		httpjson.Error(w, http.StatusBadRequest, "Password too short")
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "Error hashing password")
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if err != nil {
		slog.Warn("create user", "login", req.Login, "error", err)
		httpjson.Error(w, http.StatusConflict, "User already exists or DB error")
		return
	}

	env.respondWithToken(w, http.StatusCreated, id, req.Login)
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req Loginrequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Login and password required")
		return
	}

	id, storedHash, err := env.Repo.GetBylogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrUserNotFound) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}
	if err != nil {
		slog.Error("get user", "login", req.Login, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "DB error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}
	env.respondWithToken(w, http.StatusOK, id, req.Login)
}

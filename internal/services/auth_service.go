package services

import (
	"context"
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/venturelink/backend/internal/config"
	"github.com/venturelink/backend/internal/models"
	"github.com/venturelink/backend/internal/otp"
	"github.com/venturelink/backend/internal/storage"
	"golang.org/x/crypto/argon2"
)

const (
	UsersCollection = "users"
	BlacklistPrefix = "blacklist:"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
)

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"sarah@techwave.io"` // User email
	Password string `json:"password" validate:"required,min=6" example:"password123"`   // User password
	Role     string `json:"role" validate:"required,role" example:"entrepreneur"`       // Role the user signs in as
}

// RegisterRequest represents the registration request payload
// @Description Registration request structure
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100" example:"Sarah Johnson"` // Display name
	Email    string `json:"email" validate:"required,email" example:"sarah@techwave.io"`    // User email address
	Password string `json:"password" validate:"required,min=6" example:"password123"`      // User password
	Role     string `json:"role" validate:"required,role" example:"entrepreneur"`          // entrepreneur or investor
}

// VerifyOTPRequest completes a login challenge
// @Description OTP verification request
type VerifyOTPRequest struct {
	UserID string `json:"userId" validate:"required"`
	Code   string `json:"code" validate:"required,numeric" example:"123456"`
}

// LoginChallenge is returned after a successful password check. The client
// must answer it with the one-time code.
// @Description Login challenge
type LoginChallenge struct {
	UserID     string `json:"userId"`
	CodeLength int    `json:"codeLength" example:"6"`
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	User  models.User `json:"user"`                                                    // User information
}

type AuthService struct {
	mu        sync.Mutex
	users     *storage.Collection[models.StoredUser]
	redis     *redis.Client
	verifier  otp.Verifier
	codeLen   int
	jwtSecret []byte
	jwtExpiry time.Duration
	argon2    config.Argon2Config
	now       func() time.Time
}

// NewAuthService wires the user store, the OTP verifier and an optional
// Redis client used for the token blacklist.
func NewAuthService(store storage.Store, redisClient *redis.Client, verifier otp.Verifier, codeLen int, cfg *config.AppConfig) *AuthService {
	return &AuthService{
		users:     storage.NewCollection[models.StoredUser](store, UsersCollection),
		redis:     redisClient,
		verifier:  verifier,
		codeLen:   codeLen,
		jwtSecret: []byte(cfg.JWTSecret),
		jwtExpiry: cfg.JWTExpiry,
		argon2:    cfg.Argon2,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.findByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	hashed, err := hashPassword(req.Password, s.argon2)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.StoredUser{
		User: models.User{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Email:     email,
			Role:      req.Role,
			CreatedAt: s.now().UTC(),
		},
		PasswordHash: hashed,
	}
	if err := s.users.Put(ctx, u.ID, u); err != nil {
		return models.User{}, fmt.Errorf("save user: %w", err)
	}

	log.Printf("[AUTH] User created successfully - ID: %s, Email: %s", u.ID, u.Email)
	return u.User, nil
}

// Login checks the password and role and issues a one-time code for the
// second step.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginChallenge, error) {
	u, err := s.findByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrNotFound) {
		log.Printf("[AUTH] User not found for email: %s", req.Email)
		return LoginChallenge{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginChallenge{}, err
	}
	if !verifyPassword(req.Password, u.PasswordHash, s.argon2) || u.Role != req.Role {
		log.Printf("[AUTH] Invalid credentials for user: %s", u.ID)
		return LoginChallenge{}, ErrInvalidCredentials
	}

	code, err := s.verifier.Issue(ctx, u.ID)
	if err != nil {
		return LoginChallenge{}, fmt.Errorf("issue otp: %w", err)
	}
	log.Printf("[AUTH] OTP generated for user %s: %s", u.ID, code)

	return LoginChallenge{UserID: u.ID, CodeLength: s.codeLen}, nil
}

// VerifyOTP answers a login challenge and returns a signed token on success.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (AuthResponse, error) {
	if !otp.ValidFormat(req.Code, s.codeLen) {
		return AuthResponse{}, ErrInvalidOTP
	}

	verdict, err := s.verifier.Verify(ctx, req.UserID, req.Code)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("verify otp: %w", err)
	}
	if verdict != otp.Accepted {
		log.Printf("[AUTH] OTP %s for user %s", verdict, req.UserID)
		return AuthResponse{}, ErrInvalidOTP
	}

	u, err := s.User(ctx, req.UserID)
	if err != nil {
		return AuthResponse{}, err
	}

	token, err := s.generateJWT(u)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}

	log.Printf("[AUTH] Login successful for user %s", u.ID)
	return AuthResponse{Token: token, User: u}, nil
}

// Logout blacklists token until it would have expired. Without Redis this
// is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.redis == nil || token == "" {
		return nil
	}
	if err := s.redis.Set(ctx, BlacklistPrefix+token, "1", s.jwtExpiry).Err(); err != nil {
		log.Printf("[AUTH] Failed to blacklist token: %v", err)
		return err
	}
	return nil
}

func (s *AuthService) User(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u.User, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (models.StoredUser, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return models.StoredUser{}, err
	}
	for _, u := range all {
		if u.Email == email {
			return u, nil
		}
	}
	return models.StoredUser{}, ErrNotFound
}

func (s *AuthService) generateJWT(u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     s.now().Add(s.jwtExpiry).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

var strengthLabels = [...]string{"Too weak", "Weak", "Fair", "Good", "Strong"}

// PasswordStrength scores a password 0..4, one point each for a length of
// at least 6 UTF-16 code units, an ASCII upper-case letter, a digit and any
// character outside [A-Za-z0-9]. Characters outside the BMP count twice
// towards the length.
func PasswordStrength(password string) (int, string) {
	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r < 'a' || r > 'z':
			symbol = true
		}
	}

	score := 0
	for _, ok := range []bool{len(utf16.Encode([]rune(password))) >= 6, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score, strengthLabels[score]
}

func hashPassword(password string, p config.Argon2Config) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, hashedPassword string, p config.Argon2Config) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}

package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeReset значение claim "type" для reset-токенов.
// Сессионные токены этот claim не несут.
const PurposeReset = "password_reset"

// Typed verification errors.
// Handlers отдают клиенту одинаковый generic 401 для обоих случаев,
// различие нужно только для логирования и тестов.
var (
	// ErrExpired indicates the token is past its expiration instant
	ErrExpired = errors.New("token expired")

	// ErrMalformed indicates a bad signature, unparsable structure or missing subject
	ErrMalformed = errors.New("token malformed")

	// ErrWrongPurpose indicates a token presented to a flow it was not issued for
	ErrWrongPurpose = errors.New("token purpose mismatch")
)

// Claims представляет JWT claims приложения
type Claims struct {
	// TokenType различает назначение токена: пусто для сессии,
	// "password_reset" для сброса пароля
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Config содержит настройки выпуска токенов
type Config struct {
	Secret     []byte
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

// Service issues and verifies signed bearer tokens.
type Service struct {
	cfg Config
}

// NewService creates a token service.
// secret should be a cryptographically secure random string.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue создает подписанный HS256 токен с заданным subject, TTL и purpose.
// Пустой purpose означает обычный сессионный токен.
func (s *Service) Issue(subject string, ttl time.Duration, purpose string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		TokenType: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "taskkeeper",
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := tok.SignedString(s.cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(ttl.Seconds()), nil
}

// IssueSession создает сессионный токен с дефолтным TTL
func (s *Service) IssueSession(subject string) (string, int64, error) {
	return s.Issue(subject, s.cfg.SessionTTL, "")
}

// IssueReset создает короткоживущий токен для сброса пароля
func (s *Service) IssueReset(subject string) (string, int64, error) {
	return s.Issue(subject, s.cfg.ResetTTL, PurposeReset)
}

// Verify валидирует подпись и срок действия токена и возвращает claims.
// Возвращает ErrExpired для просроченных токенов, ErrMalformed для
// битой подписи, неразборчивой структуры или отсутствующего subject.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC, чтобы исключить подмену алгоритма
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrMalformed
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}

	return claims, nil
}

// VerifySession валидирует токен и дополнительно требует, чтобы это
// был сессионный токен. Reset-токены отклоняются с ErrWrongPurpose.
func (s *Service) VerifySession(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "" {
		return nil, fmt.Errorf("%w: expected session token", ErrWrongPurpose)
	}

	return claims, nil
}

// VerifyReset валидирует токен и требует purpose "password_reset".
// Сессионные токены отклоняются с ErrWrongPurpose.
func (s *Service) VerifyReset(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != PurposeReset {
		return nil, fmt.Errorf("%w: expected password reset token", ErrWrongPurpose)
	}

	return claims, nil
}

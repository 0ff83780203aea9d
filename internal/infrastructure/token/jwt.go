package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"loanbook-backend/internal/domain/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("token: empty signing secret")
)

// Claims carry the lender binding next to the registered claims; sub mirrors lender_id.
type Claims struct {
	LenderID uint64 `json:"lender_id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 bearer tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock is for tests.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	j.now = now
	return j
}

func (j *JWT) Issue(lenderID uint64) (string, time.Time, error) {
	now := j.now().UTC()
	exp := now.Add(j.ttl)
	claims := Claims{
		LenderID: lenderID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(lenderID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies the signature and expiry and resolves the principal.
func (j *JWT) Parse(raw string) (auth.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return auth.Anonymous(), fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.LenderID == 0 || claims.Subject != strconv.FormatUint(claims.LenderID, 10) {
		return auth.Anonymous(), fmt.Errorf("%w: lender binding mismatch", ErrInvalidToken)
	}
	return auth.ForLender(claims.LenderID), nil
}

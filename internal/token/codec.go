package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds. A pending token proves "password verified, second factor
// outstanding" and must never be accepted as a full session.
const (
	KindSession    = "session"
	KindMfaPending = "mfa_pending"
)

const (
	SessionTTL    = 8 * time.Hour
	MfaPendingTTL = 15 * time.Minute
)

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role,omitempty"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// Codec mints and parses the two portal tokens. The payload is
// self-contained (identity, role, expiry) so the filter never touches
// the database; HS256 keeps it verifiable with a symmetric secret only.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (cd *Codec) IssueSession(userID int, role string) (string, error) {
	return cd.issue(&Claims{
		UserID: userID,
		Role:   role,
		Kind:   KindSession,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
		},
	})
}

func (cd *Codec) IssuePending(userID int) (string, error) {
	return cd.issue(&Claims{
		UserID: userID,
		Kind:   KindMfaPending,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(MfaPendingTTL)),
		},
	})
}

func (cd *Codec) issue(claims *Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(cd.secret)
}

// Parse returns nil for anything that is not a live, well-formed token:
// bad encoding, bad signature, missing expiry, expired. An expired token
// is indistinguishable from no token at all.
func (cd *Codec) Parse(raw string) *Claims {
	if raw == "" {
		return nil
	}
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cd.secret, nil
	})
	if err != nil || !t.Valid {
		return nil
	}
	if claims.ExpiresAt == nil || claims.UserID == 0 {
		return nil
	}
	return claims
}

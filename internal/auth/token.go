/* Access tokens for the upload routes */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "audio-sentiment-recorder"

var ErrInvalidKey = errors.New("invalid access key")

// Claims carries the client name the token was issued to.
type Claims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256 tokens, and checks access keys against a
// bcrypt hash.
type Issuer struct {
	secret        []byte
	accessKeyHash []byte
	ttl           time.Duration
	now           func() time.Time
}

func NewIssuer(secret, accessKeyHash string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret:        []byte(secret),
		accessKeyHash: []byte(accessKeyHash),
		ttl:           ttl,
		now:           time.Now,
	}
}

// HashAccessKey produces the value to put in auth.access_key_hash.
func HashAccessKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (i *Issuer) VerifyAccessKey(key string) error {
	if key == "" || len(i.accessKeyHash) == 0 {
		return ErrInvalidKey
	}
	if err := bcrypt.CompareHashAndPassword(i.accessKeyHash, []byte(key)); err != nil {
		return ErrInvalidKey
	}
	return nil
}

func (i *Issuer) GenerateToken(client string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := &Claims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "upload_access_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (i *Issuer) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenLifetime = 30 * 24 * time.Hour

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

// loadPEM reads key material from keyEnv or, failing that, from the
// file named by fileEnv. Secrets mounted as files keep the key out of
// the environment.
func loadPEM(keyEnv, fileEnv string) ([]byte, error) {
	if pem, ok := os.LookupEnv(keyEnv); ok {
		return []byte(pem), nil
	}
	path, ok := os.LookupEnv(fileEnv)
	if !ok {
		return nil, fmt.Errorf("no %s or %s env variable set", keyEnv, fileEnv)
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", fileEnv, err)
	}
	return pem, nil
}

func tokenLifetime() (time.Duration, error) {
	s, ok := os.LookupEnv("JWT_TOKEN_LIFETIME_HOURS")
	if !ok {
		return defaultTokenLifetime, nil
	}
	hours, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse JWT_TOKEN_LIFETIME_HOURS: %w", err)
	}
	return time.Duration(hours) * time.Hour, nil
}

func NewJWT() (*JWT, error) {
	privatePEM, err := loadPEM("JWT_PRIVATE_KEY", "JWT_PRIVATE_KEY_FILE")
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}

	publicPEM, err := loadPEM("JWT_PUBLIC_KEY", "JWT_PUBLIC_KEY_FILE")
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	lifetime, err := tokenLifetime()
	if err != nil {
		return nil, err
	}

	j := &JWT{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.GetSigningMethod("RS256"),
		tokenLifetime: lifetime,
	}

	return j, nil
}

func (j *JWT) KeyFunc(t *jwt.Token) (*rsa.PublicKey, error) {
	return j.publicKey, nil
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
	)
}

package services

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type authServiceImpl struct {
	logger     zerolog.Logger
	signingKey []byte
	algorithm  string
}

// NewAuthService builds a verifier for bearer tokens signed with the shared
// secret. Tokens are issued elsewhere; this service never mints them.
//
// It returns an error for signing algorithms other than HS256, HS384
// and HS512.
func NewAuthService(
	logger zerolog.Logger,
	signingKey []byte,
	algorithm string,
) (AuthService, error) {
	switch algorithm {
	case jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg():
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm: %s", algorithm)
	}

	return &authServiceImpl{
		logger:     logger,
		signingKey: signingKey,
		algorithm:  algorithm,
	}, nil
}

func (s *authServiceImpl) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{s.algorithm}),
	)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("failed to parse token")
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return "", ErrMissingTokenSubject
	}

	return claims.Subject, nil
}

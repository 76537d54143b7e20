package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerrors "fintrack/internal/domain/errors"
	"fintrack/internal/domain/service"
	"fintrack/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	key *SigningKey
	now func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(key *SigningKey) (service.TokenService, error) {
	if key == nil || len(key.secret) == 0 {
		return nil, errors.New("signing key must be provided")
	}

	return &jwtService{key: key, now: time.Now}, nil
}

// Issue signs {sub, email, iat, exp, jti[, iss]}. Times are whole seconds so exp-iat == ttl.
func (s *jwtService) Issue(identityID uuid.UUID, email string, ttl time.Duration) (string, *service.Claims, error) {
	if ttl <= 0 {
		return "", nil, errors.Wrapf(domainerrors.ErrTokenIssueFailed, "non-positive ttl %s", ttl)
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	claims := &service.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identityID.String(),
			Issuer:    s.key.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key.secret)
	if err != nil {
		return "", nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return token, claims, nil
}

// Verify checks signature integrity, then that now is strictly before exp.
// All failures wrap ErrUnauthorized.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.key.issuer != "" {
		options = append(options, jwt.WithIssuer(s.key.issuer))
	}

	claims := &service.Claims{}
	token, err := jwt.NewParser(options...).ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.key.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("token is not valid")
	}

	if claims.Email == "" || claims.IssuedAt == nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("token is missing required claims")
	}
	if _, err := claims.IdentityID(); err != nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("token subject is not an identity id")
	}

	return claims, nil
}

package usecase

import (
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/jwt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errs.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleOperator, RoleAdmin:
		return r, nil
	case "":
		return RoleCustomer, nil
	default:
		return "", errs.Wrapf(ErrUnknownRole, "role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", errs.Mark(errs.Wrap(err, "token subject"), jwt.ErrInvalidToken)
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}

	return userID, role, nil
}

package service

import (
	"errors"
	"strings"

	"github.com/labstack/gommon/log"

	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/apierror"
)

// TokenValidator verifies a bearer credential and extracts its claims.
// Production wiring uses utils.ValidateToken (JWKS-backed); tests swap it out.
type TokenValidator func(token string) (*utils.TokenData, error)

// IdentityGate resolves the user behind a bearer credential: signature and
// expiry are checked against the identity provider's published keys, then the
// subject's local profile supplies the role flag and company membership.
type IdentityGate struct {
	UserRepo UserRepository
	Validate TokenValidator
}

func NewIdentityGate(userRepo UserRepository, validate TokenValidator) *IdentityGate {
	return &IdentityGate{
		UserRepo: userRepo,
		Validate: validate,
	}
}

func (g *IdentityGate) Authorize(credential string) (*entity.User, apierror.ErrorResponse) {
	if strings.TrimSpace(credential) == "" {
		return nil, apierror.CredentialMissingError
	}

	data, err := g.Validate(credential)
	if err != nil {
		if errors.Is(err, utils.ErrJWKSNotReady) {
			log.Errorf("token verification unavailable: %v", err)
			return nil, apierror.ProviderUnavailableError
		}
		return nil, apierror.CredentialInvalidError
	}

	user, err := g.UserRepo.FindActiveBySub(data.Sub)
	if err != nil {
		log.Errorf("failed to resolve subject %s: %v", data.Sub, err)
		return nil, apierror.IdentityLookupFailedError
	}

	if user == nil {
		// Valid token for a subject we have no profile for
		return nil, apierror.IdentityLookupFailedError
	}

	if user.Suspended || !user.Active {
		return nil, apierror.NewForbiddenError("Missing access")
	}
	return user, nil
}

package service

import (
	"errors"
	"testing"

	"leadqualify/internal/domain/entity"
	"leadqualify/internal/utils"
)

type stubUserRepo struct {
	bySub map[string]*entity.User
	err   error
}

func (s *stubUserRepo) FindActiveBySub(sub string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bySub[sub], nil
}

func (s *stubUserRepo) FindActiveByEmail(email string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ExistsActiveByEmail(email string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) Save(user *entity.User) error {
	return nil
}

func acceptToken(sub string) TokenValidator {
	return func(token string) (*utils.TokenData, error) {
		return &utils.TokenData{Sub: sub}, nil
	}
}

func TestAuthorizeMissingCredential(t *testing.T) {
	gate := NewIdentityGate(&stubUserRepo{}, acceptToken("x"))

	for _, cred := range []string{"", "   "} {
		if _, aerr := gate.Authorize(cred); aerr == nil || aerr.Code() != 401 {
			t.Errorf("Authorize(%q): got %v, want 401", cred, aerr)
		}
	}
}

func TestAuthorizeInvalidCredential(t *testing.T) {
	reject := func(token string) (*utils.TokenData, error) {
		return nil, errors.New("invalid token: signature mismatch")
	}
	gate := NewIdentityGate(&stubUserRepo{}, reject)

	if _, aerr := gate.Authorize("garbage"); aerr == nil || aerr.Code() != 401 {
		t.Fatalf("got %v, want 401", aerr)
	}
}

func TestAuthorizeProviderUnavailable(t *testing.T) {
	notReady := func(token string) (*utils.TokenData, error) {
		return nil, utils.ErrJWKSNotReady
	}
	gate := NewIdentityGate(&stubUserRepo{}, notReady)

	if _, aerr := gate.Authorize("whatever"); aerr == nil || aerr.Code() != 503 {
		t.Fatalf("got %v, want 503", aerr)
	}
}

func TestAuthorizeLookupFailure(t *testing.T) {
	gate := NewIdentityGate(&stubUserRepo{err: errors.New("db down")}, acceptToken("sub-1"))

	if _, aerr := gate.Authorize("token"); aerr == nil || aerr.Code() != 500 {
		t.Fatalf("store failure: got %v, want 500", aerr)
	}

	gate = NewIdentityGate(&stubUserRepo{bySub: map[string]*entity.User{}}, acceptToken("ghost"))
	if _, aerr := gate.Authorize("token"); aerr == nil || aerr.Code() != 500 {
		t.Fatalf("unknown subject: got %v, want 500", aerr)
	}
}

func TestAuthorizeSuspendedUser(t *testing.T) {
	repo := &stubUserRepo{bySub: map[string]*entity.User{
		"sub-1": {ID: 1, SubUUID: "sub-1", Active: true, Suspended: true},
	}}
	gate := NewIdentityGate(repo, acceptToken("sub-1"))

	if _, aerr := gate.Authorize("token"); aerr == nil || aerr.Code() != 403 {
		t.Fatalf("got %v, want 403", aerr)
	}
}

func TestAuthorizeResolvesUser(t *testing.T) {
	repo := &stubUserRepo{bySub: map[string]*entity.User{
		"sub-1": {ID: 1, SubUUID: "sub-1", IsAdmin: true, CompanyID: 3, Active: true},
	}}
	gate := NewIdentityGate(repo, acceptToken("sub-1"))

	user, aerr := gate.Authorize("token")
	if aerr != nil {
		t.Fatalf("Authorize failed: %v", aerr)
	}
	if !user.IsAdmin || user.CompanyID != 3 {
		t.Errorf("wrong user resolved: %+v", user)
	}
}

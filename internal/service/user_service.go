package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"leadqualify/internal/domain/entity"
	cognitoclient "leadqualify/internal/infrastructure/aws/cognito"
	"leadqualify/internal/utils"
	"leadqualify/internal/utils/apierror"
	"leadqualify/internal/utils/uid"
)

type UserRepository interface {
	FindActiveBySub(sub string) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	ExistsActiveByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=64"`
	CompanyID int64  `json:"company_id" validate:"omitempty,min=1"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=1,max=8"`
}

type ResendConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CompanyID int64  `json:"company_id,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserLoginResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

// UserService keeps the local user mirror in sync with the identity provider.
// The provider owns credentials and e-mail verification; the local row owns
// the admin flag and company membership the rubric services read.
type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Cognito  cognitoclient.CognitoInterface
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, cogClient cognitoclient.CognitoInterface) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
		Cognito:  cogClient,
	}
}

func (u *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	exists, err := u.UserRepo.ExistsActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email availability: %v", err)
		return nil, apierror.InternalServerError
	}
	if exists {
		return nil, apierror.IDPExistingEmailError
	}

	sub, cogerr := u.Cognito.SignUp(ctx, &cognitoclient.User{
		Email:    req.Email,
		Password: req.Password,
	})
	if cogerr != nil {
		log.Errorf("identity provider signup failed: %v", cogerr)
		return nil, utils.MapCognitoError(cogerr)
	}

	if _, perr := uuid.Parse(sub); perr != nil {
		log.Errorf("identity provider returned malformed subject id %q: %v", sub, perr)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:        uid.Generate(),
		SubUUID:   sub,
		Username:  req.Username,
		Email:     req.Email,
		CompanyID: req.CompanyID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to save user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

func (u *UserService) CreateLogin(ctx context.Context, req *UserLoginRequest) (*UserLoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	auth, err := u.Cognito.SignIn(ctx, &cognitoclient.UserLogin{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}

	return &UserLoginResponse{
		AccessToken: auth.AccessToken,
		IDToken:     auth.IDToken,
	}, nil
}

func (u *UserService) ConfirmSignup(ctx context.Context, req *ConfirmSignupRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user: %v", err)
		return apierror.InternalServerError
	}
	if user == nil {
		return apierror.IDPUserNotFoundError
	}
	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	cogerr := u.Cognito.ConfirmAccount(ctx, &cognitoclient.UserConfirmation{
		Email: req.Email,
		Code:  req.Code,
	})
	if cogerr != nil {
		return utils.MapCognitoError(cogerr)
	}

	user.EmailVerified = true
	user.UpdatedAt = utils.NowUTC()
	if err = u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to persist confirmation of user %d: %v", user.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (u *UserService) ResendConfirmation(ctx context.Context, req *ResendConfirmRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	if err := u.Cognito.ResendConfirmation(ctx, req.Email); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (u *UserService) GetSelf(actor *entity.User) *UserResponse {
	return toUserResponse(actor)
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CompanyID: user.CompanyID,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
		UpdatedAt: utils.FormatEpoch(user.UpdatedAt),
	}
}

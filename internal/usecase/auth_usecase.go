package usecase

import (
	"context"
	"time"

	"flicklit/internal/domain/entity"
	"flicklit/internal/domain/repository"
	"flicklit/pkg/errors"
	"flicklit/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Nickname string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Nickname)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Nickname:  input.Nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if cleanupErr := uc.firebaseAuth.DeleteUser(ctx, uid); cleanupErr != nil {
			logger.Warn("Failed to clean up auth user after profile error: %v", cleanupErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *AuthUseCase) UpdateNickname(ctx context.Context, userID, nickname string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.Nickname = nickname
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update nickname", err)
	}

	return user, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/edu-market/course-service/internal/events"
	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/utils"
	"github.com/edu-market/course-service/internal/validator"
)

type accountService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	tokenGenerator *utils.ActivationTokenGenerator
	eventPublisher events.EventPublisher
	baseURL        string
}

func NewAccountService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	tokenGenerator *utils.ActivationTokenGenerator,
	eventPublisher events.EventPublisher,
	baseURL string,
) AccountService {
	return &accountService{
		repo:           repo,
		logger:         logger,
		validator:      v,
		tokenGenerator: tokenGenerator,
		eventPublisher: eventPublisher,
		baseURL:        baseURL,
	}
}

// Register creates an inactive account and returns the activation link the
// user must visit before logging in.
func (s *accountService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if errs := s.validator.GetBusinessValidator().ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.User().GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       req.Username,
		PasswordHash:   string(hash),
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.UserRole(req.Role),
		Specialization: req.Specialization,
		Image:          req.Image,
		IsActive:       false,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// The unique indexes catch registrations racing past the friendly
		// checks above.
		if repositories.IsDuplicateError(err) {
			return nil, s.registerConflict(ctx, req)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	link := s.activationLink(user)

	event := events.NewEvent("user.registered", events.UserRegisteredEvent{
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           string(user.Role),
		ActivationLink: link,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicUserRegistered, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish registration event",
			"error", err, "user_id", user.ID)
	}

	s.logger.InfoContext(ctx, "User registered",
		"user_id", user.ID, "username", user.Username, "role", user.Role)

	return &RegisterResponse{User: user, ActivationLink: link}, nil
}

// Activate flips the account active once the link checks out. Visiting the
// same link again is a no-op success, not an error.
func (s *accountService) Activate(ctx context.Context, uid, token string) (*models.User, error) {
	userID, err := utils.DecodeUID(uid)
	if err != nil {
		return nil, ErrInvalidActivationLink
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidActivationLink
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.tokenGenerator.Check(user.ID, user.PasswordHash, token) {
		return nil, ErrInvalidActivationLink
	}

	if !user.IsActive {
		user.IsActive = true
		if err := s.repo.User().Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to activate user: %w", err)
		}
		s.logger.InfoContext(ctx, "User activated", "user_id", user.ID)
	}

	return user, nil
}

// Login verifies credentials and hands out the user's bearer token. Inactive
// accounts fail the same way wrong passwords do.
func (s *accountService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.WarnContext(ctx, "Login attempt on inactive account", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.repo.AuthToken().GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return &LoginResponse{
		Token:  token.Key,
		UserID: user.ID,
		Role:   string(user.Role),
		User:   user,
	}, nil
}

// Logout deletes the user's bearer token. Logging out twice succeeds.
func (s *accountService) Logout(ctx context.Context, userID uint) error {
	if err := s.repo.AuthToken().DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	s.logger.InfoContext(ctx, "User logged out", "user_id", userID)
	return nil
}

// registerConflict reports which unique field actually lost the race, so
// a username conflict is not blamed on a taken email and vice versa.
func (s *accountService) registerConflict(ctx context.Context, req *RegisterRequest) error {
	if _, err := s.repo.User().GetByUsername(ctx, req.Username); err == nil {
		return ErrUsernameTaken
	}
	if _, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (s *accountService) activationLink(user *models.User) string {
	uid := utils.EncodeUID(user.ID)
	token := s.tokenGenerator.Make(user.ID, user.PasswordHash)
	return fmt.Sprintf("%s/api/active/%s/%s/", s.baseURL, uid, token)
}

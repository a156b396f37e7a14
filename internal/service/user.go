package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jahayeon_backend/internal/model"
	"jahayeon_backend/internal/repository"
)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// IsPasswordValid checks the registration password policy: at least 8
// characters with a letter, a digit and one of the accepted symbols.
func IsPasswordValid(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

// UserService handles business logic for user accounts and profiles.
type UserService struct {
	repo      repository.UserRepository
	eventRepo repository.EventRepository
	partyRepo repository.PartyRepository
}

func NewUserService(repo repository.UserRepository, eventRepo repository.EventRepository, partyRepo repository.PartyRepository) *UserService {
	return &UserService{
		repo:      repo,
		eventRepo: eventRepo,
		partyRepo: partyRepo,
	}
}

// Register creates a new local account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if !IsPasswordValid(req.Password) {
		return nil, model.ErrInvalidPassword
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		UserID:        uuid.New().String(),
		Email:         req.Email,
		Password:      string(hashedPassword),
		OAuthProvider: model.ProviderLocal,
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a local account with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Don't reveal whether the email is registered
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetOrCreateGoogleUser looks up the account bound to a Google identity,
// creating it on first login. New accounts get a random throwaway password
// and an anonymous nickname the user can change later.
func (s *UserService) GetOrCreateGoogleUser(ctx context.Context, googleID, email string) (*model.User, error) {
	user, err := s.repo.GetByProvider(ctx, googleID, model.ProviderGoogle)
	if err == nil {
		return user, nil
	}
	if err != model.ErrUserNotFound {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nickname := "익명의 지바이크" + uuid.New().String()[:4]
	user = &model.User{
		UserID:        googleID,
		Email:         email,
		Password:      string(hashedPassword),
		OAuthProvider: model.ProviderGoogle,
		Nickname:      &nickname,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Profile builds the profile payload: nickname, coins, level tier label and
// badge booleans derived from the activity counters.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileResponse{
		Nickname: user.Nickname,
		Level:    user.LevelName(),
		Coins:    user.Coins,
		Badges:   user.Badges(),
	}, nil
}

// UpdateNickname renames the user after an existence check.
func (s *UserService) UpdateNickname(ctx context.Context, userID, nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("nickname is required")
	}
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.UpdateNickname(ctx, userID, nickname)
}

// History unions the parties the user organized or joined with the events
// the user completed.
func (s *UserService) History(ctx context.Context, userID string) (*model.HistoryResponse, error) {
	partyIDs, err := s.partyRepo.ListIDsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load party history: %w", err)
	}

	eventIDs, err := s.eventRepo.ListCompletedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event history: %w", err)
	}

	if partyIDs == nil {
		partyIDs = []int64{}
	}
	if eventIDs == nil {
		eventIDs = []int64{}
	}

	return &model.HistoryResponse{
		Events:     eventIDs,
		Parties:    partyIDs,
		TotalCount: len(eventIDs) + len(partyIDs),
	}, nil
}

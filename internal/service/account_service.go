package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"account-service/internal/audit"
	"account-service/internal/auth"
	"account-service/internal/domain"
	"account-service/internal/repository"
)

var (
	// ErrMissingField indicates a required registration or login field was
	// empty or absent.
	ErrMissingField = errors.New("missing required field")
	// ErrTaken is returned when a username or display name is already in use.
	// It deliberately does not say which.
	ErrTaken = errors.New("username or display name already taken")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords
	// at login, uniformly.
	ErrInvalidCredentials = errors.New("wrong username or password")
	// ErrForbidden indicates the caller may not view the requested profile.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound indicates the requested profile does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// defaultProfilePicture is substituted when registration omits one.
const defaultProfilePicture = "default"

// AccountService orchestrates registration, credential login and profile reads.
type AccountService interface {
	Register(ctx context.Context, username, displayName, password, profilePicture string) error
	Login(ctx context.Context, username, password string) (string, error)
	GetUserByUsername(ctx context.Context, requestedUsername, callerUsername string) (*domain.User, error)
}

type accountService struct {
	users       repository.UserRepository
	recorder    audit.Recorder
	guard       OwnershipGuard
	hashSecret  string
	tokenSecret string
	tokenTTL    time.Duration
}

func NewAccountService(users repository.UserRepository, recorder audit.Recorder, guard OwnershipGuard, hashSecret, tokenSecret string, tokenTTL time.Duration) AccountService {
	return &accountService{
		users:       users,
		recorder:    recorder,
		guard:       guard,
		hashSecret:  hashSecret,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// Register validates the input, checks username and display name uniqueness
// and persists a new user. The pre-check and the insert are not atomic; a
// conflict reported by the store on insert is treated the same as one caught
// by the pre-check.
func (s *accountService) Register(ctx context.Context, username, displayName, password, profilePicture string) error {
	if username == "" || displayName == "" || password == "" {
		s.recorder.Record(fmt.Sprintf("Missing an attribute for registering a user: %s, %s, %s",
			orNull(username), orNull(displayName), orNull(password)), audit.SeverityError)
		return ErrMissingField
	}
	if profilePicture == "" {
		profilePicture = defaultProfilePicture
	}

	username = strings.ToLower(username)

	if err := s.checkTaken(ctx, username, displayName); err != nil {
		return err
	}

	user := &domain.User{
		Username:       username,
		DisplayName:    displayName,
		PasswordHash:   auth.HashPassword(password, s.hashSecret),
		ProfilePicture: profilePicture,
		RegisterDate:   time.Now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// lost the race window between pre-check and insert
			s.recorder.Record(takenMessage(username, displayName), audit.SeverityError)
			return ErrTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.recorder.Record(fmt.Sprintf("Registered new user: %s", username), audit.SeverityAction)
	return nil
}

func (s *accountService) checkTaken(ctx context.Context, username, displayName string) error {
	byUsername, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup by username: %w", err)
	}
	byDisplayName, err := s.users.GetByDisplayName(ctx, displayName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup by display name: %w", err)
	}

	if byUsername != nil || byDisplayName != nil {
		s.recorder.Record(takenMessage(username, displayName), audit.SeverityError)
		return ErrTaken
	}
	return nil
}

// Login checks the credentials against the store and issues a signed token
// carrying the username and password hash, valid for the configured TTL.
func (s *accountService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		s.recorder.Record("Missing username or password for login", audit.SeverityError)
		return "", ErrMissingField
	}

	username = strings.ToLower(username)
	passwordHash := auth.HashPassword(password, s.hashSecret)

	user, err := s.users.GetByCredentials(ctx, username, passwordHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recorder.Record(fmt.Sprintf("Failed login attempt for user: %s", username), audit.SeverityError)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup by credentials: %w", err)
	}

	token, err := auth.IssueToken(user.Username, user.PasswordHash, s.tokenSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// GetUserByUsername returns the requested profile once the ownership guard
// permits the caller to see it.
func (s *accountService) GetUserByUsername(ctx context.Context, requestedUsername, callerUsername string) (*domain.User, error) {
	requestedUsername = strings.ToLower(requestedUsername)
	callerUsername = strings.ToLower(callerUsername)

	if !s.guard.CanView(requestedUsername, callerUsername) {
		s.recorder.Record(fmt.Sprintf("User: %s tried accessing user: %s data",
			callerUsername, requestedUsername), audit.SeverityForbidden)
		return nil, ErrForbidden
	}

	user, err := s.users.GetByUsername(ctx, requestedUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recorder.Record(fmt.Sprintf("No user with username: %s found", requestedUsername), audit.SeverityError)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup by username: %w", err)
	}

	s.recorder.Record(fmt.Sprintf("User: %s accessed user: %s data",
		callerUsername, requestedUsername), audit.SeverityAction)
	return user, nil
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}

func takenMessage(username, displayName string) string {
	return fmt.Sprintf("Tried creating a user but either username or displayName were already taken %s, %s",
		username, displayName)
}

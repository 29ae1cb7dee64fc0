package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	authpkg "github.com/appetiteclub/apt/auth"

	"github.com/mealmesh/mealmesh/pkg/event"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrWeakPassword = errors.New("password too weak")
)

// Result is what a successful registration hands back to the wizard.
type Result struct {
	UserID     string `json:"user_id"`
	BusinessID string `json:"business_id"`
}

// Service runs the registration submission: credential, then profile,
// then business. The credential write is the point of no return for the
// email; if a later write fails, the credential is deleted best-effort
// so the owner can retry with the same address.
type Service struct {
	credentials CredentialRepo
	profiles    ProfileRepo
	businesses  BusinessRepo
	directory   Directory
	publisher   events.Publisher
	config      *apt.Config
	logger      apt.Logger
}

type ServiceDeps struct {
	Credentials CredentialRepo
	Profiles    ProfileRepo
	Businesses  BusinessRepo
	Directory   Directory
	Publisher   events.Publisher
}

func NewService(sd ServiceDeps, config *apt.Config, logger apt.Logger) *Service {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Service{
		credentials: sd.Credentials,
		profiles:    sd.Profiles,
		businesses:  sd.Businesses,
		directory:   sd.Directory,
		publisher:   sd.Publisher,
		config:      config,
		logger:      logger,
	}
}

// Register runs the full submission. Validation happens before any
// write; the caller maps ErrEmailTaken and ErrWeakPassword to their
// dedicated messages and everything else to a generic failure.
func (s *Service) Register(ctx context.Context, data SubmissionData) (*Result, error) {
	if errs := ValidateAll(data); len(errs) > 0 {
		return nil, fmt.Errorf("submission invalid: %s", errs[0].Message)
	}

	cred, err := s.createCredential(ctx, data.Email, data.Password)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{
		ID:   cred.ID,
		Name: data.OwnerName,
		Role: "admin",
		City: data.City,
	}
	profile.BeforeCreate()

	if err := s.profiles.Create(ctx, profile); err != nil {
		s.compensateCredential(ctx, cred)
		return nil, fmt.Errorf("create profile: %w", err)
	}

	business := NewBusiness()
	business.OwnerID = cred.ID
	business.Name = data.BusinessName
	business.City = data.City
	business.BeforeCreate()

	if err := s.businesses.Create(ctx, business); err != nil {
		s.compensateCredential(ctx, cred)
		return nil, fmt.Errorf("create business: %w", err)
	}

	// The directory entry is what makes the business browsable and
	// orderable, so a failure here fails the whole submission.
	if s.directory != nil {
		if err := s.directory.CreateListing(ctx, business); err != nil {
			s.compensateCredential(ctx, cred)
			return nil, fmt.Errorf("create directory listing: %w", err)
		}
	}

	s.publishWelcome(ctx, profile, business)

	s.logger.Info("registration completed",
		"user_id", cred.ID,
		"business_id", business.ID,
		"city", business.City,
	)

	return &Result{
		UserID:     cred.ID.String(),
		BusinessID: business.ID.String(),
	}, nil
}

func (s *Service) createCredential(ctx context.Context, email, password string) (*Credential, error) {
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	normalizedEmail := authpkg.NormalizeEmail(email)
	encryptionKeyStr, _ := s.config.GetString("auth.encryption.key")
	signingKeyStr, _ := s.config.GetString("auth.signing.key")
	encryptionKey := []byte(encryptionKeyStr)
	signingKey := []byte(signingKeyStr)

	emailLookup := authpkg.ComputeLookupHash(normalizedEmail, signingKey)

	existing, err := s.credentials.GetByEmailLookup(ctx, emailLookup)
	if err != nil {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	encryptedEmail, err := authpkg.EncryptEmail(normalizedEmail, encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt email: %w", err)
	}

	salt := authpkg.GeneratePasswordSalt()
	passwordHash := authpkg.HashPassword([]byte(password), salt)

	cred := NewCredential()
	cred.EmailCT = encryptedEmail.Ciphertext
	cred.EmailIV = encryptedEmail.IV
	cred.EmailTag = encryptedEmail.Tag
	cred.EmailLookup = emailLookup
	cred.PasswordHash = passwordHash
	cred.PasswordSalt = salt
	cred.BeforeCreate()

	if err := s.credentials.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}

	return cred, nil
}

// compensateCredential undoes the credential write after a downstream
// failure. Best effort: a leftover credential blocks re-registration
// until cleaned up, so the failure is logged loudly.
func (s *Service) compensateCredential(ctx context.Context, cred *Credential) {
	if err := s.credentials.Delete(ctx, cred.ID); err != nil {
		s.logger.Error("compensation failed, orphaned credential remains",
			"credential_id", cred.ID,
			"error", err,
		)
	}
}

func (s *Service) publishWelcome(ctx context.Context, profile *UserProfile, business *Business) {
	if s.publisher == nil {
		return
	}
	evt := event.NotificationEvent{
		EventType:   event.EventNotificationCreated,
		OccurredAt:  time.Now().UTC(),
		RecipientID: profile.ID.String(),
		Type:        "welcome",
		Title:       "Welcome to MealMesh",
		Message:     fmt.Sprintf("%s is ready to take orders", business.Name),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("cannot marshal welcome event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, event.NotificationsTopic, payload); err != nil {
		s.logger.Error("cannot publish welcome event", "error", err)
	}
}

package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

func newTestService(creds *MockCredentialRepo, profiles *MockProfileRepo, businesses *MockBusinessRepo, pub *MockPublisher) *Service {
	deps := ServiceDeps{
		Credentials: creds,
		Profiles:    profiles,
		Businesses:  businesses,
	}
	if pub != nil {
		deps.Publisher = pub
	}
	return NewService(deps, apt.NewConfig(), nil)
}

func TestServiceRegister(t *testing.T) {
	creds := NewMockCredentialRepo()
	profiles := NewMockProfileRepo()
	businesses := NewMockBusinessRepo()
	pub := NewMockPublisher()
	svc := newTestService(creds, profiles, businesses, pub)

	result, err := svc.Register(context.Background(), validData())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.UserID == "" || result.BusinessID == "" {
		t.Error("Register() should return user and business ids")
	}

	if creds.Count() != 1 {
		t.Errorf("credentials count = %d, want 1", creds.Count())
	}
	if len(profiles.profiles) != 1 {
		t.Fatalf("profiles count = %d, want 1", len(profiles.profiles))
	}
	if len(businesses.businesses) != 1 {
		t.Fatalf("businesses count = %d, want 1", len(businesses.businesses))
	}

	b := businesses.businesses[0]
	if !b.OpenForOrders {
		t.Error("new business should be open for orders")
	}
	if b.Tier != "free" {
		t.Errorf("tier = %q, want %q", b.Tier, "free")
	}
	if b.LicenseStatus != "pending" {
		t.Errorf("license_status = %q, want %q", b.LicenseStatus, "pending")
	}
	if b.OwnerID.String() != result.UserID {
		t.Error("business owner should be the new user")
	}

	if len(pub.Published) != 1 {
		t.Errorf("published %d events, want 1 welcome notification", len(pub.Published))
	}
}

func TestServiceRegisterCreatesDirectoryListing(t *testing.T) {
	businesses := NewMockBusinessRepo()
	directory := NewMockDirectory()
	svc := NewService(ServiceDeps{
		Credentials: NewMockCredentialRepo(),
		Profiles:    NewMockProfileRepo(),
		Businesses:  businesses,
		Directory:   directory,
	}, apt.NewConfig(), nil)

	result, err := svc.Register(context.Background(), validData())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if len(directory.listings) != 1 {
		t.Fatalf("directory listings = %d, want 1", len(directory.listings))
	}
	if directory.listings[0].OwnerID.String() != result.UserID {
		t.Error("directory listing should carry the owner as referrer")
	}
	if directory.listings[0].Name != businesses.businesses[0].Name {
		t.Error("directory listing should carry the business name")
	}
}

func TestServiceRegisterCompensatesOnListingFailure(t *testing.T) {
	creds := NewMockCredentialRepo()
	directory := NewMockDirectory()
	directory.CreateListingFunc = func(ctx context.Context, b *Business) error {
		return errors.New("restaurant service down")
	}
	svc := NewService(ServiceDeps{
		Credentials: creds,
		Profiles:    NewMockProfileRepo(),
		Businesses:  NewMockBusinessRepo(),
		Directory:   directory,
	}, apt.NewConfig(), nil)

	if _, err := svc.Register(context.Background(), validData()); err == nil {
		t.Fatal("Register() should surface the directory failure")
	}

	if creds.Count() != 0 {
		t.Errorf("credentials count = %d, want 0 after compensation", creds.Count())
	}
}

func TestServiceRegisterEmailTaken(t *testing.T) {
	creds := NewMockCredentialRepo()
	svc := newTestService(creds, NewMockProfileRepo(), NewMockBusinessRepo(), nil)

	if _, err := svc.Register(context.Background(), validData()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), validData())
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
	if creds.Count() != 1 {
		t.Errorf("credentials count = %d, want 1", creds.Count())
	}
}

func TestServiceRegisterInvalidSubmission(t *testing.T) {
	creds := NewMockCredentialRepo()
	svc := newTestService(creds, NewMockProfileRepo(), NewMockBusinessRepo(), nil)

	data := validData()
	data.TermsAccepted = false

	if _, err := svc.Register(context.Background(), data); err == nil {
		t.Error("Register() with unaccepted terms should fail")
	}
	if creds.Count() != 0 {
		t.Error("no credential should be written for an invalid submission")
	}
}

func TestServiceRegisterCompensatesOnProfileFailure(t *testing.T) {
	creds := NewMockCredentialRepo()
	profiles := NewMockProfileRepo()
	profiles.CreateFunc = func(ctx context.Context, p *UserProfile) error {
		return errors.New("profile store down")
	}
	svc := newTestService(creds, profiles, NewMockBusinessRepo(), nil)

	if _, err := svc.Register(context.Background(), validData()); err == nil {
		t.Fatal("Register() should surface the profile failure")
	}

	if creds.Count() != 0 {
		t.Errorf("credentials count = %d, want 0 after compensation", creds.Count())
	}
}

func TestServiceRegisterCompensatesOnBusinessFailure(t *testing.T) {
	creds := NewMockCredentialRepo()
	businesses := NewMockBusinessRepo()
	businesses.CreateFunc = func(ctx context.Context, b *Business) error {
		return errors.New("business store down")
	}
	svc := newTestService(creds, NewMockProfileRepo(), businesses, nil)

	if _, err := svc.Register(context.Background(), validData()); err == nil {
		t.Fatal("Register() should surface the business failure")
	}

	if creds.Count() != 0 {
		t.Errorf("credentials count = %d, want 0 after compensation", creds.Count())
	}
}

func TestServiceRegisterCompensationIsBestEffort(t *testing.T) {
	creds := NewMockCredentialRepo()
	deleteCalled := false
	creds.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleteCalled = true
		return errors.New("delete failed")
	}

	businesses := NewMockBusinessRepo()
	businesses.CreateFunc = func(ctx context.Context, b *Business) error {
		return errors.New("business store down")
	}
	svc := newTestService(creds, NewMockProfileRepo(), businesses, nil)

	// Even when the compensation delete fails, the original failure is
	// what the caller sees.
	_, err := svc.Register(context.Background(), validData())
	if err == nil {
		t.Fatal("Register() should surface the business failure")
	}
	if !deleteCalled {
		t.Error("compensation delete should have been attempted")
	}
}

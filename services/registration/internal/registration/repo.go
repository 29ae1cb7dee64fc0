package registration

import (
	"context"

	"github.com/google/uuid"
)

type CredentialRepo interface {
	Create(ctx context.Context, c *Credential) error
	GetByEmailLookup(ctx context.Context, lookup []byte) (*Credential, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProfileRepo interface {
	Create(ctx context.Context, p *UserProfile) error
}

type BusinessRepo interface {
	Create(ctx context.Context, b *Business) error
}

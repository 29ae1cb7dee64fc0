package registration

import (
	"time"

	"github.com/appetiteclub/apt"
	authpkg "github.com/appetiteclub/apt/auth"
	"github.com/google/uuid"
)

// Credential holds the login material for a registered owner. Email is
// stored encrypted with a deterministic lookup hash for uniqueness
// checks; the plaintext never touches the store.
type Credential struct {
	ID           uuid.UUID          `json:"id" bson:"_id"`
	EmailCT      []byte             `json:"-" bson:"email_ct"`
	EmailIV      []byte             `json:"-" bson:"email_iv"`
	EmailTag     []byte             `json:"-" bson:"email_tag"`
	EmailLookup  []byte             `json:"-" bson:"email_lookup"`
	PasswordHash []byte             `json:"-" bson:"pass_hash"`
	PasswordSalt []byte             `json:"-" bson:"pass_salt"`
	Status       authpkg.UserStatus `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

func (c *Credential) GetID() uuid.UUID {
	return c.ID
}

func (c *Credential) ResourceType() string {
	return "credential"
}

func (c *Credential) SetID(id uuid.UUID) {
	c.ID = id
}

func NewCredential() *Credential {
	return &Credential{
		ID:     apt.GenerateNewID(),
		Status: authpkg.UserStatusActive,
	}
}

func (c *Credential) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = apt.GenerateNewID()
	}
}

func (c *Credential) BeforeCreate() {
	c.EnsureID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
}

// UserProfile is the public-facing record for an owner account.
type UserProfile struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Role      string    `json:"role" bson:"role"`
	City      string    `json:"city" bson:"city"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *UserProfile) GetID() uuid.UUID {
	return p.ID
}

func (p *UserProfile) ResourceType() string {
	return "user"
}

func (p *UserProfile) SetID(id uuid.UUID) {
	p.ID = id
}

func (p *UserProfile) BeforeCreate() {
	if p.ID == uuid.Nil {
		p.ID = apt.GenerateNewID()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

// Business is the restaurant record a registration creates. New
// businesses open for orders immediately on the free tier, with the
// license check still pending.
type Business struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	OwnerID       uuid.UUID `json:"owner_id" bson:"owner_id"`
	Name          string    `json:"name" bson:"name"`
	City          string    `json:"city" bson:"city"`
	OpenForOrders bool      `json:"open_for_orders" bson:"open_for_orders"`
	Tier          string    `json:"tier" bson:"tier"`
	LicenseStatus string    `json:"license_status" bson:"license_status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *Business) GetID() uuid.UUID {
	return b.ID
}

func (b *Business) ResourceType() string {
	return "business"
}

func (b *Business) SetID(id uuid.UUID) {
	b.ID = id
}

func NewBusiness() *Business {
	return &Business{
		ID:            apt.GenerateNewID(),
		OpenForOrders: true,
		Tier:          "free",
		LicenseStatus: "pending",
	}
}

func (b *Business) BeforeCreate() {
	if b.ID == uuid.Nil {
		b.ID = apt.GenerateNewID()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
}

package auth

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// IdentityOperations composes the hasher, the identity store, and the token
// service into the create/find/update/delete/login surface consumed by
// controller layers.
type IdentityOperations struct {
	Debug        bool
	store        IdentityStore
	hasher       PasswordAuthenticator
	tokenService TokenService
	logger       Logger
	activitySink ActivitySink
}

// NewIdentityOperations returns lifecycle operations over the given store.
func NewIdentityOperations(store IdentityStore, opts Config) *IdentityOperations {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &IdentityOperations{
		store:        store,
		hasher:       BcryptAuthenticator{},
		tokenService: tokenService,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (o *IdentityOperations) WithLogger(logger Logger) *IdentityOperations {
	o.logger = logger
	return o
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (o *IdentityOperations) WithActivitySink(sink ActivitySink) *IdentityOperations {
	o.activitySink = normalizeActivitySink(sink)
	return o
}

// WithPasswordAuthenticator overrides the default bcrypt hasher.
func (o *IdentityOperations) WithPasswordAuthenticator(hasher PasswordAuthenticator) *IdentityOperations {
	o.hasher = hasher
	return o
}

// WithTokenService overrides the token service used to mint login tokens.
func (o *IdentityOperations) WithTokenService(tokenService TokenService) *IdentityOperations {
	o.tokenService = tokenService
	return o
}

// TokenService returns the TokenService instance used by these operations
func (o *IdentityOperations) TokenService() TokenService {
	return o.tokenService
}

// CreateIdentityPayload is the create operation input
type CreateIdentityPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	MasterID string `json:"master_id"`
	IsHashed bool   `json:"is_hashed"`
}

// Validate will run validation rules
func (p CreateIdentityPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.Role, validation.Required, validation.By(validRole)),
		validation.Field(&p.MasterID, validation.By(tenantRefFor(p.Role))),
	)
}

// UpdateIdentityPayload is a partial patch; empty fields are left unchanged.
type UpdateIdentityPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate will run validation rules
func (p UpdateIdentityPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, is.Email),
		validation.Field(&p.Role, validation.By(validRoleIfSet)),
	)
}

// LoginPayload is the login operation input
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate will run validation rules
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.Role, validation.Required, validation.By(validRole)),
	)
}

// DeleteConfirmation acknowledges a completed delete.
type DeleteConfirmation struct {
	Email          string    `json:"email"`
	ConfirmationID uuid.UUID `json:"confirmation_id"`
	DeletedAt      time.Time `json:"deleted_at"`
}

// Create hashes the payload's password (unless it arrives pre-hashed) and
// persists a new identity, returning its email. The password is hashed
// exactly once between acceptance and storage.
func (o *IdentityOperations) Create(ctx context.Context, p CreateIdentityPayload) (string, error) {
	if err := p.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid create identity payload")
	}

	user := AuthUser{
		Email:    p.Email,
		Password: p.Password,
		IsHashed: p.IsHashed,
		Role:     UserRole(p.Role),
		MasterID: p.MasterID,
	}

	if !user.IsHashed {
		hash, err := o.hasher.HashPassword(user.Password)
		if err != nil {
			return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}
		user.Password = hash
		user.IsHashed = true
	}

	if id, err := hashid.NewUUID(user.Email); err == nil {
		user.ID = id
	}

	email, err := o.store.Create(ctx, user)
	if err != nil {
		return "", err
	}

	o.emitAuthEvent(ctx, ActivityEventIdentityCreated, ActorRef{Type: "system"}, email, map[string]any{
		"role": user.Role,
	})

	return email, nil
}

// Find returns the stored record, or nil when the email is unknown.
// An unknown email is not an error.
func (o *IdentityOperations) Find(ctx context.Context, email string) (*AuthUser, error) {
	user, err := o.store.Find(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity")
	}
	return user, nil
}

// Update merges a partial patch over the stored record and persists the
// result wholesale. A new plaintext password is re-hashed before storage.
func (o *IdentityOperations) Update(ctx context.Context, email string, p UpdateIdentityPayload) (*AuthUser, error) {
	if err := p.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid update identity payload")
	}

	current, err := o.store.Find(ctx, email)
	if err != nil {
		return nil, err
	}

	merged := *current
	if p.Email != "" {
		merged.Email = p.Email
	}
	if p.Role != "" {
		merged.Role = UserRole(p.Role)
	}
	if p.Password != "" {
		hash, err := o.hasher.HashPassword(p.Password)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}
		merged.Password = hash
		merged.IsHashed = true
	}

	updated, err := o.store.Update(ctx, merged, email)
	if err != nil {
		return nil, err
	}

	o.emitAuthEvent(ctx, ActivityEventIdentityUpdated, ActorRef{Type: "system"}, updated.Email, nil)

	return updated, nil
}

// Delete removes the record and returns a confirmation.
func (o *IdentityOperations) Delete(ctx context.Context, email string) (*DeleteConfirmation, error) {
	if err := o.store.Delete(ctx, email); err != nil {
		return nil, err
	}

	o.emitAuthEvent(ctx, ActivityEventIdentityDeleted, ActorRef{Type: "system"}, email, nil)

	return &DeleteConfirmation{
		Email:          email,
		ConfirmationID: uuid.New(),
		DeletedAt:      time.Now(),
	}, nil
}

// Login authenticates the payload against the store and mints a token on
// success. Unknown email, wrong password, and wrong role all collapse into
// ErrInvalidCredentials so callers cannot tell which part was wrong.
func (o *IdentityOperations) Login(ctx context.Context, p LoginPayload) (string, error) {
	if err := p.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	user, err := o.store.Find(ctx, p.Email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			// equalize timing with the wrong-password path
			burnPasswordCompare(p.Password)
			o.emitLoginFailure(ctx, p.Email, "unknown identity")
			return "", ErrInvalidCredentials
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity during login")
	}

	compareErr := o.hasher.ComparePasswordAndHash(p.Password, user.Password)
	if compareErr != nil {
		o.emitLoginFailure(ctx, p.Email, "password mismatch")
		return "", ErrInvalidCredentials
	}

	if string(user.Role) != p.Role {
		o.emitLoginFailure(ctx, p.Email, "role mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := o.tokenService.Generate(user)
	if err != nil {
		o.logger.Error("Login failed to mint token: %v", err)
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to mint login token")
	}

	o.emitAuthEvent(ctx, ActivityEventLoginSuccess, ActorRef{ID: user.ID.String(), Type: "user"}, user.Email, nil)

	return token, nil
}

func (o *IdentityOperations) emitLoginFailure(ctx context.Context, email, reason string) {
	o.logger.Warn("Login rejected: %s", reason)
	o.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, email, map[string]any{
		"reason": reason,
	})
}

func (o *IdentityOperations) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, email string, metadata map[string]any) {
	sink := normalizeActivitySink(o.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		Email:     email,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if o.Debug {
		o.logger.Debug("auth event: %s", print.MaybePrettyJSON(event))
	}

	if err := sink.Record(ctx, event); err != nil {
		o.logger.Warn("activity sink record error: %v", err)
	}
}

func validRole(value any) error {
	s, _ := value.(string)
	if _, ok := ParseRole(s); !ok {
		return fmt.Errorf("must be one of %v", GetAllRoles())
	}
	return nil
}

func validRoleIfSet(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return validRole(value)
}

func tenantRefFor(role string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if role == RoleMaster {
			if s != "" {
				return fmt.Errorf("must be empty for master identities")
			}
			return nil
		}
		if s == "" {
			return fmt.Errorf("is required for non-master identities")
		}
		return nil
	}
}

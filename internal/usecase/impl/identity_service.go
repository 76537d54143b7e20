// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"fintrack/config"
	deliverycontext "fintrack/internal/delivery/context"
	"fintrack/internal/domain/entity"
	domainerrors "fintrack/internal/domain/errors"
	"fintrack/internal/domain/repository"
	"fintrack/internal/domain/service"
	"fintrack/internal/errors"
	"fintrack/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	validate     *validator.Validate
	tokenTTL     time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		identityRepo: params.IdentityRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		tokenTTL:     params.Config.TokenTTL(),
		now:          time.Now,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an identity and opens its first session.
func (srv *identityService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	normalized := &usecase.RegisterInput{
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       entity.NormalizeEmail(input.Email),
		Password:    input.Password,
	}
	if err := srv.validateInput(normalized); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", normalized.Email))

	_, err := srv.identityRepo.FindByEmail(ctx, normalized.Email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", normalized.Email))

		return nil, domainerrors.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrIdentityNotFound):
		return nil, errors.Wrap(err, "failed to check existing identity")
	}

	secretHash, salt, err := srv.hasher.Hash(normalized.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	externalRef, err := entity.NewExternalRef()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	identity := &entity.Identity{
		DisplayName: normalized.DisplayName,
		Email:       normalized.Email,
		SecretHash:  secretHash,
		Salt:        salt,
		ExternalRef: externalRef,
	}

	if err := srv.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration lost duplicate email race", slog.String("email", normalized.Email))

			return nil, domainerrors.ErrDuplicateEmail
		}

		return nil, errors.Wrap(err, "failed to create identity during registration")
	}

	token, claims, err := srv.tokenService.Issue(identity.ID, identity.Email, srv.tokenTTL)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("identityID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during registration")
	}

	srv.publishRegistered(ctx, identity)

	srv.log(ctx).Debug("Registration completed", slog.Any("identityID", identity.ID))

	return &usecase.RegisterOutput{
		Identity:  identity.Public(),
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error after the same amount of hashing.
func (srv *identityService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	normalized := &usecase.LoginInput{
		Email:    entity.NormalizeEmail(input.Email),
		Password: input.Password,
	}
	if err := srv.validateInput(normalized); err != nil {
		return nil, err
	}

	identity, err := srv.identityRepo.FindByEmail(ctx, normalized.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.hasher.Verify(normalized.Password, "", "")
			srv.log(ctx).Info("Login failed", slog.String("email", normalized.Email))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find identity during login")
	}

	if !srv.hasher.Verify(normalized.Password, identity.SecretHash, identity.Salt) {
		srv.log(ctx).Info("Login failed", slog.String("email", normalized.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, claims, err := srv.tokenService.Issue(identity.ID, identity.Email, srv.tokenTTL)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("identityID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("identityID", identity.ID))

	return &usecase.LoginOutput{
		IdentityID: identity.ID,
		Token:      token,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// GetCurrentIdentity loads the profile for an already verified identity id.
func (srv *identityService) GetCurrentIdentity(ctx context.Context, identityID uuid.UUID) (*entity.IdentityProfile, error) {
	identity, err := srv.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Warn("Token refers to a missing identity", slog.Any("identityID", identityID))

			return nil, domainerrors.ErrIdentityGone
		}

		return nil, errors.Wrap(err, "failed to find current identity")
	}

	profile := identity.Profile()

	return &profile, nil
}

// validateInput runs the struct tags. Missing fields win over invalid ones and
// are all reported at once.
func (srv *identityService) validateInput(input any) error {
	err := srv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	missing := make([]string, 0, len(fieldErrs))
	invalid := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "required" {
			missing = append(missing, lowerFirst(fieldErr.Field()))
		} else {
			invalid = append(invalid, lowerFirst(fieldErr.Field()))
		}
	}

	if len(missing) > 0 {
		return domainerrors.ErrMissingField.WithDetails("missing: " + strings.Join(missing, ", "))
	}

	return domainerrors.ErrInvalidInput.WithDetails("invalid: " + strings.Join(invalid, ", "))
}

// publishRegistered announces the new ExternalRef. Delivery is best effort;
// the account already exists whatever the broker says.
func (srv *identityService) publishRegistered(ctx context.Context, identity *entity.Identity) {
	event := &service.IdentityEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		EventID:     uuid.NewString(),
		Type:        service.EventIdentityRegistered,
		IdentityID:  identity.ID.String(),
		ExternalRef: identity.ExternalRef,
		OccurredAt:  srv.now().UTC(),
	}

	if err := srv.publisher.PublishIdentityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish identity event",
			slog.String("event_type", event.Type),
			slog.Any("identityID", identity.ID),
			slog.Any("error", err),
		)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}

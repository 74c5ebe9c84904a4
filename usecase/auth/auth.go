package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/repository"
)

// Claim names shared with the JWT middleware.
const (
	ClaimAdminID   = "user_id"
	ClaimSessionID = "session_id"
)

// MinPasswordLength is the shortest password AddAdmin and ChangePassword accept.
const MinPasswordLength = 10

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
	// HashCost is the bcrypt cost for new password hashes.
	HashCost int
}

// Token is what a successful login or refresh hands back to the client.
type Token struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Session     *domain.Session `json:"session"`
}

type UseCase struct {
	admins   repository.AdminRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

func New(admins repository.AdminRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.HashCost < bcrypt.MinCost || cfg.HashCost > bcrypt.MaxCost {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &UseCase{
		admins:   admins,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the admin's password and opens a session bound to a signed token.
// Every credential failure returns ErrBadCredentials.
func (uc *UseCase) Login(ctx context.Context, email, password string, ttl time.Duration) (*Token, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}
	admin, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if admin.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		uc.logger.Warn("admin login rejected", zap.String("admin_id", admin.ID))
		return nil, domain.ErrBadCredentials
	}
	if !admin.CanEdit() {
		return nil, domain.ErrAdminInactive
	}
	if ttl <= 0 {
		ttl = uc.cfg.TTL
	}

	now := uc.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	uc.logger.Info("admin logged in", zap.String("admin_id", admin.ID), zap.String("session_id", session.ID))
	return uc.issue(session)
}

// Refresh extends a live session and signs a new token for it.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (*Token, error) {
	session, err := uc.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.activeAdmin(ctx, session.AdminID); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = uc.cfg.TTL
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = uc.now().Add(ttl)
	return uc.issue(session)
}

func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Authorize checks that the token's session is live, belongs to the admin and that the admin is active.
func (uc *UseCase) Authorize(ctx context.Context, adminID, sessionID string) (*domain.Admin, error) {
	if adminID == "" || sessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.session(ctx, sessionID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.AdminID != adminID {
		return nil, domain.ErrUnauthorized
	}
	return uc.activeAdmin(ctx, adminID)
}

func (uc *UseCase) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return uc.admins.List(ctx)
}

// AddAdmin grants edit rights to a new identity with an initial password.
func (uc *UseCase) AddAdmin(ctx context.Context, id, email, password string) (*domain.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("email", "must be a valid address")
	}
	hash, err := uc.hash(password)
	if err != nil {
		return nil, err
	}
	if _, err := uc.admins.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrAdminExists
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	admin := &domain.Admin{
		ID:           id,
		Email:        email,
		IsActive:     true,
		CreatedAt:    uc.now().UTC(),
		PasswordHash: hash,
	}
	if err := uc.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Bootstrap creates the primary admin when the admins table is empty.
// It reports whether an admin was created.
func (uc *UseCase) Bootstrap(ctx context.Context, email, password string) (bool, error) {
	if email == "" {
		return false, nil
	}
	admins, err := uc.admins.List(ctx)
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}
	admin, err := uc.AddAdmin(ctx, "", email, password)
	if err != nil {
		return false, err
	}
	uc.logger.Info("primary admin created", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return true, nil
}

// SetPassword replaces an admin's password. Admins changing their own password
// must confirm the current one; only the primary admin may reset someone else's.
func (uc *UseCase) SetPassword(ctx context.Context, actorID, id, current, next string) error {
	admin, err := uc.admins.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorID == id {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)) != nil {
			return domain.ErrBadCredentials
		}
	} else {
		primary, err := uc.isPrimary(ctx, actorID)
		if err != nil {
			return err
		}
		if !primary {
			return domain.ErrForbiddenReset
		}
	}
	hash, err := uc.hash(next)
	if err != nil {
		return err
	}
	if err := uc.admins.SetPassword(ctx, id, hash); err != nil {
		return err
	}
	uc.logger.Info("admin password changed", zap.String("admin_id", id), zap.String("actor_id", actorID))
	return nil
}

func (uc *UseCase) SetAdminActive(ctx context.Context, actorID, id string, active bool) (*domain.Admin, error) {
	admin, err := uc.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !active {
		if err := uc.guardPrimary(ctx, id); err != nil {
			return nil, err
		}
		if id == actorID {
			return nil, domain.ErrSelfRemoval
		}
	}
	if err := uc.admins.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	admin.IsActive = active
	return admin, nil
}

func (uc *UseCase) DeleteAdmin(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.ErrSelfRemoval
	}
	if _, err := uc.admins.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.guardPrimary(ctx, id); err != nil {
		return err
	}
	return uc.admins.Delete(ctx, id)
}

func (uc *UseCase) guardPrimary(ctx context.Context, id string) error {
	primary, err := uc.isPrimary(ctx, id)
	if err != nil {
		return err
	}
	if primary {
		return domain.ErrPrimaryAdmin
	}
	return nil
}

// isPrimary reports whether id is the oldest admin.
func (uc *UseCase) isPrimary(ctx context.Context, id string) (bool, error) {
	admins, err := uc.admins.List(ctx)
	if err != nil {
		return false, err
	}
	return len(admins) > 0 && admins[0].ID == id, nil
}

func (uc *UseCase) activeAdmin(ctx context.Context, adminID string) (*domain.Admin, error) {
	admin, err := uc.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !admin.CanEdit() {
		return nil, domain.ErrAdminInactive
	}
	return admin, nil
}

func (uc *UseCase) session(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("password", "must be at least 10 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.HashCost)
	if err != nil {
		// passwords over 72 bytes are rejected by bcrypt
		return "", domain.Invalid("password", err.Error())
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *UseCase) issue(session *domain.Session) (*Token, error) {
	claims := jwt.MapClaims{
		ClaimAdminID:   session.AdminID,
		ClaimSessionID: session.ID,
		"exp":          session.ExpiresAt.Unix(),
		"iat":          uc.now().Unix(),
	}
	if uc.cfg.Issuer != "" {
		claims["iss"] = uc.cfg.Issuer
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "sign token", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: session.ExpiresAt, Session: session}, nil
}

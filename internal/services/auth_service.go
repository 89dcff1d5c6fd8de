package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/accountsvc/domain"
)

// AuthConfig carries the domain policy knobs for the auth service.
type AuthConfig struct {
	// PhonePrefix is the required international prefix, e.g. "+91".
	PhonePrefix string
	// PhoneNationalDigits is the exact number of digits after the prefix.
	PhoneNationalDigits int
	// MaxPendingAttempts bounds concurrent unverified registrations per
	// identity pair.
	MaxPendingAttempts int
	// OTPTTL is only used to render the expiry window in emails; the
	// authoritative expiry is the timestamp persisted with the code.
	OTPTTL time.Duration
	// FrontendURL is the base for reset-password links.
	FrontendURL string
	// AccessTTL and RefreshTTL bound the issued session credential.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	codeGen     domain.CodeGenerator
	notifier    domain.NotificationService
	locker      domain.IdentityLocker
	config      AuthConfig
	phonePat    *regexp.Regexp
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeGen domain.CodeGenerator,
	notifier domain.NotificationService,
	locker domain.IdentityLocker,
	config AuthConfig,
) domain.AuthService {
	pat := regexp.MustCompile(
		"^" + regexp.QuoteMeta(config.PhonePrefix) +
			fmt.Sprintf(`\d{%d}$`, config.PhoneNationalDigits))

	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		codeGen:     codeGen,
		notifier:    notifier,
		locker:      locker,
		config:      config,
		phonePat:    pat,
	}
}

// Register implements domain.AuthService. It opens a pending registration,
// persists a one-time code and dispatches it via the requested channel. A
// delivery failure does not roll the pending record back; it still counts
// toward the attempt ceiling.
func (s *AuthServiceImpl) Register(ctx context.Context, req *domain.RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return domain.ErrInvalidInput
	}
	if req.Method != domain.VerifyByEmail && req.Method != domain.VerifyByPhone {
		return domain.ErrInvalidInput
	}
	if !s.phonePat.MatchString(req.Phone) {
		return domain.ErrInvalidPhone
	}

	// Serialize check-then-create per identity pair so two concurrent
	// registrations cannot both pass the duplicate check.
	lockKey := identityLockKey(req.Email, req.Phone)
	acquired, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		return fmt.Errorf("failed to acquire registration lock: %w", err)
	}
	if !acquired {
		return domain.ErrTooManyAttempts
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			log.Printf("REGISTRATION_LOCK_RELEASE_FAILED: key=%s error=%v", lockKey, err)
		}
	}()

	existing, err := s.userRepo.FindVerifiedByIdentity(ctx, req.Email, req.Phone)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing identity: %w", err)
	}
	if existing != nil {
		return domain.ErrIdentityTaken
	}

	pending, err := s.userRepo.FindPendingByIdentity(ctx, req.Email, req.Phone)
	if err != nil {
		return fmt.Errorf("failed to count pending attempts: %w", err)
	}
	if len(pending) >= s.config.MaxPendingAttempts {
		return domain.ErrTooManyAttempts
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         "user",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	code, err := s.codeGen.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	if err := s.userRepo.SetVerificationCode(ctx, user.ID, code.Code, code.ExpiresAt); err != nil {
		return fmt.Errorf("failed to persist verification code: %w", err)
	}

	if err := s.dispatchCode(req, code.Code); err != nil {
		// The pending record stays and keeps counting toward the throttle.
		log.Printf("CODE_DELIVERY_FAILED: email=%s method=%s error=%v", req.Email, req.Method, err)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

func (s *AuthServiceImpl) dispatchCode(req *domain.RegisterRequest, code string) error {
	switch req.Method {
	case domain.VerifyByEmail:
		body := verificationEmailBody(code, int(s.config.OTPTTL.Minutes()))
		return s.notifier.SendEmail(req.Email, "Your Verification Code", body)
	case domain.VerifyByPhone:
		return s.notifier.PlaceVerificationCall(req.Phone, code)
	default:
		return domain.ErrInvalidInput
	}
}

// VerifyOTP implements domain.AuthService. The newest pending record is the
// only candidate; once a newer attempt exists an older record's code can
// never match. When more than MaxPendingAttempts records have piled up, the
// older siblings are pruned as a side effect of this call.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, phone, otp string) (*domain.AuthResult, error) {
	if !s.phonePat.MatchString(phone) {
		return nil, domain.ErrInvalidPhone
	}

	pending, err := s.userRepo.FindPendingByIdentity(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pending registrations: %w", err)
	}
	if len(pending) == 0 {
		return nil, domain.ErrUserNotFound
	}

	candidate := pending[0]

	if len(pending) > s.config.MaxPendingAttempts {
		if err := s.userRepo.DeletePendingExcept(ctx, candidate.ID, email, phone); err != nil {
			return nil, fmt.Errorf("failed to prune pending registrations: %w", err)
		}
	}

	if !otpMatches(candidate.VerificationCode, otp) {
		return nil, domain.ErrCodeInvalid
	}
	if time.Now().After(candidate.VerificationCodeExpire) {
		return nil, domain.ErrCodeExpired
	}

	if err := s.userRepo.Promote(ctx, candidate.ID); err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	candidate.AccountVerified = true
	candidate.VerificationCode = ""
	candidate.VerificationCodeExpire = time.Time{}

	log.Printf("ACCOUNT_VERIFIED: user_id=%d email=%s timestamp=%s",
		candidate.ID, candidate.Email, time.Now().UTC().Format(time.RFC3339))

	return s.issueSession(ctx, candidate)
}

// Login implements domain.AuthService. A missing verified account and a wrong
// password produce the identical error so callers cannot enumerate users.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindVerifiedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword implements domain.AuthService. Unlike registration, a failed
// delivery rolls the issued token back: an undeliverable reset token is a
// dangling credential.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindVerifiedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.codeGen.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, token.Hash, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	resetURL := strings.TrimSuffix(s.config.FrontendURL, "/") + "/password/reset/" + token.Plain
	if err := s.notifier.SendEmail(user.Email, "Reset your password", resetEmailBody(resetURL)); err != nil {
		if clearErr := s.userRepo.ClearResetToken(context.WithoutCancel(ctx), user.ID); clearErr != nil {
			log.Printf("RESET_TOKEN_ROLLBACK_FAILED: user_id=%d error=%v", user.ID, clearErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, password, confirmPassword string) (*domain.AuthResult, error) {
	if token == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByResetToken(ctx, s.codeGen.HashResetToken(token), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	if password != confirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.CompletePasswordReset(ctx, user.ID, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}
	user.PasswordHash = hashedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = time.Time{}

	log.Printf("PASSWORD_RESET: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))

	return s.issueSession(ctx, user)
}

// issueSession packages an authorized identity into a signed, time-bounded
// credential pair backed by a server-side session record.
func (s *AuthServiceImpl) issueSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        "sess_" + uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.config.RefreshTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}

// otpMatches coerces both codes to numeric form before comparing, matching
// how clients submit codes with or without leading formatting.
func otpMatches(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	a, err := strconv.ParseUint(strings.TrimSpace(stored), 10, 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseUint(strings.TrimSpace(submitted), 10, 64)
	if err != nil {
		return false
	}
	return a == b
}

// identityLockKey normalizes the identity pair into a lock key.
func identityLockKey(email, phone string) string {
	return "reg:" + strings.ToLower(strings.TrimSpace(email)) + ":" + strings.TrimSpace(phone)
}

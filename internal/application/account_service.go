package application

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"goblog/config"
	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
	"goblog/pkg/apperr"
	"goblog/pkg/credential"
	"goblog/pkg/helpers"
	"goblog/pkg/mailer"
)

// reEmail is the conservative email shape accepted at signup: lowercase
// local part, one to four dot-separated domain labels.
var (
	reEmail = regexp.MustCompile(`^[a-z0-9._-]+@[a-z0-9_-]+(\.[a-z0-9_-]+){1,4}$`)
	reSHA1  = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// AccountService implements the credential lifecycle: signup, login,
// password change, and password reset. The "password" values it receives on
// signup/login/change are first-stage client digests (40-hex sha1 of
// "email:plaintext"); only the second-stage stored digest ever reaches the
// repository.
type AccountService struct {
	Repo   repository.UserRepository
	Tokens *helpers.TokenManager
	Mailer mailer.Sender
	Pub    *helpers.RabbitPublisher
	Redis  *redis.Client
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAccountService(repo repository.UserRepository, tokens *helpers.TokenManager, sender mailer.Sender, pub *helpers.RabbitPublisher, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config) *AccountService {
	return &AccountService{Repo: repo, Tokens: tokens, Mailer: sender, Pub: pub, Redis: rdb, Logger: logger, Cfg: cfg}
}

// Session is the opaque token handed to the caller on signup and login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// issueSession mints a session token and mirrors it into a redis hash with
// the same lifetime, which the auth middleware checks on every request.
func (s *AccountService) issueSession(ctx context.Context, u *entity.User, ttl time.Duration) (Session, error) {
	token, exp, err := s.Tokens.Issue(u.ID, u.Admin, ttl)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		}
		return Session{}, err
	}
	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"admin":      u.Admin,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, ttl)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Signup creates a new account. password is the first-stage client digest.
// Validation order: name, email shape, digest format, email uniqueness.
func (s *AccountService) Signup(ctx context.Context, email, name, password string) (*entity.User, Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Session{}, apperr.Validation("name", "Name can not be empty.")
	}
	if email == "" || !reEmail.MatchString(email) {
		return nil, Session{}, apperr.Validation("email", "Invalid email.")
	}
	if !reSHA1.MatchString(password) {
		return nil, Session{}, apperr.Validation("password", "Invalid password.")
	}

	// Early exit only; the users.email unique index is the real guard.
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, Session{}, apperr.Conflict("email", "Email is already in use.")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Session{}, err
	}

	uid := helpers.NextID()
	u := &entity.User{
		ID:       uid,
		Email:    email,
		Password: credential.StoredDigest(uid, password),
		Name:     name,
		Image:    s.Cfg.DefaultUserImage,
		Admin:    false,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Session{}, apperr.Conflict("email", "Email is already in use.")
		}
		return nil, Session{}, err
	}

	sess, err := s.issueSession(ctx, u, s.Cfg.SessionTTL)
	if err != nil {
		return nil, Session{}, err
	}

	// Welcome mail is fire-and-forget through the queue.
	if s.Pub != nil && s.Cfg.MailSendEnabled {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Welcome to " + s.Cfg.WebName,
			Text:    "Hi " + u.Name + ",\n\nyour account at " + s.Cfg.WebName + " is ready.",
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome mail failed")
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user signed up")
	}
	return u, sess, nil
}

// Login verifies a first-stage client digest against the stored digest and
// issues a session. rememberMe selects the long cookie lifetime.
func (s *AccountService) Login(ctx context.Context, email, password string, rememberMe bool) (*entity.User, Session, error) {
	if email == "" {
		return nil, Session{}, apperr.Validation("email", "Invalid email.")
	}
	if password == "" {
		return nil, Session{}, apperr.Validation("password", "Invalid password.")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Session{}, apperr.Validation("email", "Email not exist.")
		}
		return nil, Session{}, err
	}
	if credential.StoredDigest(u.ID, password) != u.Password {
		return nil, Session{}, apperr.Validation("password", "Invalid password.")
	}

	ttl := s.Cfg.SessionTTL
	if rememberMe {
		ttl = s.Cfg.SessionTTLLong
	}
	sess, err := s.issueSession(ctx, u, ttl)
	if err != nil {
		return nil, Session{}, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user logged in")
	}
	return u, sess, nil
}

// Logout drops the server-side session. The cookie is cleared by the
// handler.
func (s *AccountService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
		}
	}
}

// ChangePassword re-verifies the old client digest and installs the new
// one. The caller's session layer guarantees userID is the authenticated
// user; this flow trusts it.
func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.Validation("user_id", "user_id can not be empty.")
	}
	if strings.TrimSpace(oldPassword) == "" {
		return apperr.Validation("old_password", "Old password can not be empty.")
	}
	if !reSHA1.MatchString(newPassword) {
		return apperr.Validation("new_password", "Invalid new password.")
	}
	if !reSHA1.MatchString(confirmPassword) {
		return apperr.Validation("confirm_password", "Invalid confirming password.")
	}
	if newPassword != confirmPassword {
		return apperr.Validation("confirm_password", "Passwords do not match.")
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user")
		}
		return err
	}
	if credential.StoredDigest(userID, oldPassword) != u.Password {
		return apperr.Validation("old_password", "Invalid old password.")
	}

	if err := s.Repo.UpdatePassword(ctx, userID, credential.StoredDigest(userID, newPassword)); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID}).Info("password changed")
	}
	return nil
}

// ResetPassword mints a fresh temporary password, installs its stored
// digest through the same two-stage chain the login path verifies, and
// mails the plaintext to the account's address. The plaintext is never
// returned to the caller and never logged. Mail dispatch happens after the
// credential update and is NOT rolled back on failure; a DeliveryError
// tells the caller the new secret may not have reached the user.
func (s *AccountService) ResetPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperr.Validation("email", "Invalid email.")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.Validation("email", "Email not exist.")
		}
		return "", err
	}

	plain := credential.TempSecret(u.ID, time.Now())
	cd := credential.ClientDigest(email, plain)
	if err := s.Repo.UpdatePassword(ctx, u.ID, credential.StoredDigest(u.ID, cd)); err != nil {
		return "", err
	}
	if s.Redis != nil {
		// Old sessions die with the old password.
		_ = s.Redis.Del(ctx, helpers.SessionKey(u.ID)).Err()
	}

	if s.Mailer == nil {
		return "", apperr.Delivery(email, errors.New("mailer not configured"))
	}
	subject := s.Cfg.WebName + " - password reset"
	text := "Your password has been reset. Please log in with the new password and change it as soon as possible.\n" +
		"New password: " + plain
	if err := s.Mailer.Send(ctx, email, subject, text); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset mail dispatch failed")
		}
		return "", apperr.Delivery(email, err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("password reset issued")
	}
	return email, nil
}

// GetUser fetches a single account.
func (s *AccountService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return u, nil
}

// ListUsers returns one management page of accounts, newest first.
func (s *AccountService) ListUsers(ctx context.Context, pageIndex int) ([]*entity.User, *helpers.Page, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := helpers.NewPage(total, pageIndex, s.Cfg.ManagePageSize, s.Cfg.PageShow)
	if total == 0 {
		return []*entity.User{}, p, nil
	}
	users, err := s.Repo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, nil, err
	}
	return users, p, nil
}

// DeleteUser removes an account. Admin-only; enforced by middleware.
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user")
		}
		return err
	}
	s.Logout(ctx, id)
	return nil
}

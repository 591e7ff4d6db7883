package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goblog/config"
	"goblog/internal/domain/entity"
	"goblog/internal/domain/repository"
	"goblog/pkg/apperr"
	"goblog/pkg/credential"
	"goblog/pkg/helpers"
)

type fakeUserRepo struct {
	users             map[string]*entity.User
	updatePasswordErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, storedDigest string) error {
	if r.updatePasswordErr != nil {
		return r.updatePasswordErr
	}
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = storedDigest
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	out := []*entity.User{}
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		cp := *r.users[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Text    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Text: text})
	return nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.WebName = "My Blog"
	cfg.DefaultUserImage = "/static/img/avatar.png"
	cfg.MailSendEnabled = false
	return cfg
}

func newTestAccountService(repo repository.UserRepository, sender *fakeSender) *AccountService {
	return NewAccountService(repo, helpers.NewTokenManager("test-secret"), sender, nil, nil, nil, testConfig())
}

const (
	testEmail = "a@example.com"
	// first-stage digest of "a@example.com:secret"
	cdSecret = "8535a1e56a5592a83a49ab43be3a6e8d78366eea"
	// first-stage digest of "a@example.com:wrong"
	cdWrong = "c7b927eb38c491b35ecb529f1aba5e28b48cf024"
)

func TestSignupThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	u, sess, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, testEmail, u.Email)
	assert.False(t, u.Admin)
	assert.Equal(t, "/static/img/avatar.png", u.Image)

	// Stored digest is the second stage, never the raw client digest.
	stored := repo.users[u.ID].Password
	assert.NotEqual(t, cdSecret, stored)
	assert.Equal(t, credential.StoredDigest(u.ID, cdSecret), stored)

	got, _, err := svc.Login(ctx, testEmail, cdSecret, false)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := svc.Tokens.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.False(t, claims.Admin)
}

func TestSignupValidationOrder(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		field    string
		message  string
	}{
		{"empty name wins over bad email", "not-an-email", "  ", cdSecret, "name", "Name can not be empty."},
		{"bad email wins over bad password", "Upper@Example.com", "Alice", "tooshort", "email", "Invalid email."},
		{"empty email", "", "Alice", cdSecret, "email", "Invalid email."},
		{"non-hex password", testEmail, "Alice", strings.Repeat("z", 40), "password", "Invalid password."},
		{"short password", testEmail, "Alice", cdSecret[:39], "password", "Invalid password."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Signup(ctx, tc.email, tc.userName, tc.password)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.message, ve.Message)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, testEmail, "Bob", cdSecret)
	var ce *apperr.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "email", ce.Field)
	assert.Equal(t, "Email is already in use.", ce.Message)
}

// racingUserRepo simulates a concurrent signup winning between the
// existence check and the insert: lookups see no user, yet the insert
// hits the unique email index.
type racingUserRepo struct {
	*fakeUserRepo
}

func (r *racingUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (r *racingUserRepo) Create(context.Context, *entity.User) error {
	return repository.ErrDuplicate
}

func TestSignupDuplicateAtInsert(t *testing.T) {
	svc := newTestAccountService(&racingUserRepo{newFakeUserRepo()}, &fakeSender{})

	_, _, err := svc.Signup(context.Background(), testEmail, "Alice", cdSecret)
	var ce *apperr.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "email", ce.Field)
	assert.Equal(t, "Email is already in use.", ce.Message)
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody@example.com", cdSecret, false)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email not exist.", ve.Message)

	_, _, err = svc.Login(ctx, testEmail, cdWrong, false)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid password.", ve.Message)

	_, _, err = svc.Login(ctx, testEmail, "", false)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
}

func TestLoginRememberMeExtendsSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	_, short, err := svc.Login(ctx, testEmail, cdSecret, false)
	require.NoError(t, err)
	_, long, err := svc.Login(ctx, testEmail, cdSecret, true)
	require.NoError(t, err)
	assert.True(t, long.ExpiresAt.After(short.ExpiresAt))
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, cdSecret, cdWrong, cdWrong)
	require.NoError(t, err)

	// Old digest no longer works, new one does.
	_, _, err = svc.Login(ctx, testEmail, cdSecret, false)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid password.", ve.Message)

	_, _, err = svc.Login(ctx, testEmail, cdWrong, false)
	require.NoError(t, err)
}

func TestChangePasswordRejections(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)
	before := repo.users[u.ID].Password

	var ve *apperr.ValidationError

	err = svc.ChangePassword(ctx, u.ID, cdWrong, cdWrong, cdWrong)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "old_password", ve.Field)
	assert.Equal(t, "Invalid old password.", ve.Message)

	err = svc.ChangePassword(ctx, u.ID, cdSecret, cdWrong, cdSecret)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "confirm_password", ve.Field)
	assert.Equal(t, "Passwords do not match.", ve.Message)

	err = svc.ChangePassword(ctx, u.ID, cdSecret, "not-a-digest", "not-a-digest")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "new_password", ve.Field)

	err = svc.ChangePassword(ctx, "ghost", cdSecret, cdWrong, cdWrong)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Resource)

	// None of the rejected attempts touched the stored digest.
	assert.Equal(t, before, repo.users[u.ID].Password)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := newTestAccountService(repo, sender)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	addr, err := svc.ResetPassword(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, testEmail, addr)

	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, testEmail, mail.To)
	assert.Equal(t, "My Blog - password reset", mail.Subject)

	// The old credential is dead.
	_, _, err = svc.Login(ctx, testEmail, cdSecret, false)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)

	// The mailed temporary password works through the normal chain.
	idx := strings.Index(mail.Text, "New password: ")
	require.GreaterOrEqual(t, idx, 0)
	plain := strings.TrimSpace(mail.Text[idx+len("New password: "):])
	require.Len(t, plain, credential.TempSecretLen)

	got, _, err := svc.Login(ctx, testEmail, credential.ClientDigest(testEmail, plain), false)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc := newTestAccountService(newFakeUserRepo(), &fakeSender{})

	_, err := svc.ResetPassword(context.Background(), "nobody@example.com")
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email not exist.", ve.Message)
}

func TestResetPasswordDeliveryFailure(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := newTestAccountService(repo, sender)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)
	before := repo.users[u.ID].Password

	_, err = svc.ResetPassword(ctx, testEmail)
	var de *apperr.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, testEmail, de.Address)
	assert.ErrorIs(t, de, sender.err)

	// The credential update is not rolled back on delivery failure.
	assert.NotEqual(t, before, repo.users[u.ID].Password)
	_, _, err = svc.Login(ctx, testEmail, cdSecret, false)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestListUsersPagination(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	svc.Cfg.ManagePageSize = 3
	ctx := context.Background()

	emails := []string{"u1@example.com", "u2@example.com", "u3@example.com", "u4@example.com"}
	for _, e := range emails {
		_, _, err := svc.Signup(ctx, e, "User", credential.ClientDigest(e, "secret"))
		require.NoError(t, err)
	}

	users, page, err := svc.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, 4, page.ItemCount)
	assert.Equal(t, 2, page.PageCount)
	assert.True(t, page.HasNext)

	users, page, err = svc.ListUsers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.True(t, page.HasPrevious)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAccountService(repo, &fakeSender{})
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, testEmail, "Alice", cdSecret)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, u.ID))

	var nf *apperr.NotFoundError
	err = svc.DeleteUser(ctx, u.ID)
	require.ErrorAs(t, err, &nf)

	_, err = svc.GetUser(ctx, u.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Resource)
}

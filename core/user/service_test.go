package user

import (
	"context"
	"net/mail"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studyhub/core"
)

func TestMain(m *testing.M) {
	hashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// memRepo is a minimal Repository keyed by id.
type memRepo struct {
	users []User
}

func (r *memRepo) find(match func(User) bool) (*User, error) {
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memRepo) GetUser(_ context.Context, id int) (*User, error) {
	return r.find(func(u User) bool { return u.ID == id })
}

func (r *memRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	return r.find(func(u User) bool { return u.Username == username })
}

func (r *memRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *memRepo) CreateUser(_ context.Context, usr User) (User, error) {
	usr.ID = len(r.users) + 1
	r.users = append(r.users, usr)
	return usr, nil
}

type mailRecorder struct {
	sent []*core.EmailMessage
}

func (m *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

func newUser() NewUser {
	return NewUser{
		Username:  "student1",
		Password:  "c0rrect-h0rse",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "student@example.com",
		Program:   "Computer Science",
	}
}

func TestService_CreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	mails := new(mailRecorder)
	svc := NewService(&memRepo{}, mails)

	nu := newUser()
	nu.Username = "  Student1 "
	nu.Email = "Student@Example.com"
	usr, err := svc.Create(ctx, nu)
	require.NoError(t, err)
	assert.Equal(t, "student1", usr.Username)
	assert.Equal(t, "student@example.com", usr.Email)
	assert.NotEqual(t, nu.Password, usr.PasswordHash)
	assert.Equal(t, "John Doe", usr.FullName())

	require.Len(t, mails.sent, 1)
	assert.Equal(t, "welcome", mails.sent[0].TemplateName)
	assert.Equal(t, []mail.Address{{Name: "John Doe", Address: "student@example.com"}}, mails.sent[0].To)
	assert.Equal(t, usr, mails.sent[0].TemplateData)

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{"by username", "student1", "c0rrect-h0rse", nil},
		{"by email", "STUDENT@example.com", "c0rrect-h0rse", nil},
		{"wrong password", "student1", "nope", ErrAuthenticationFailed},
		{"unknown user", "ghost", "c0rrect-h0rse", ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tt.uname, tt.pwd)
			assert.Equal(t, tt.wantErr, err)
			if tt.wantErr == nil {
				assert.Equal(t, usr.ID, got.ID)
			}
		})
	}

	_, err = svc.GetByID(ctx, usr.ID+1)
	assert.Equal(t, ErrNotFound, err)
}

func TestNewUser_Validate(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := NewService(repo, nil)
	_, err := svc.Create(ctx, newUser())
	require.NoError(t, err)

	validate := validator.New()
	translator, _ := ut.New(en.New()).GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	tests := []struct {
		name      string
		modify    func(nu *NewUser)
		wantField string
		wantTag   string
	}{
		{"valid", func(nu *NewUser) { nu.Username, nu.Email = "jane_doe", "jane@example.com" }, "", ""},
		{"username too short", func(nu *NewUser) { nu.Username = "ab" }, "username", "min"},
		{"username with symbols", func(nu *NewUser) { nu.Username = "jane-doe" }, "username", "alphanum_"},
		{"bad email", func(nu *NewUser) { nu.Email = "nope" }, "email", "email"},
		{"blank program", func(nu *NewUser) { nu.Program = "   " }, "program", "required"},
		{"short password", func(nu *NewUser) { nu.Password = "a1!" }, "password", pwdMinLenTag},
		{"password with space", func(nu *NewUser) { nu.Password = "abc 123 !!" }, "password", pwdNoSpaceTag},
		{"numeric password", func(nu *NewUser) { nu.Password = "1234567890" }, "password", pwdNotAllNumTag},
		{"simple password", func(nu *NewUser) { nu.Password = "password123" }, "password", pwdComplexityTag},
		{"password like username", func(nu *NewUser) {
			nu.Username, nu.Email, nu.Password = "janedoe99", "jane@example.com", "janedoe99!"
		}, "password", pwdAttrSimTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := newUser()
			nu.Username, nu.Email = "jane_doe", "jane@example.com"
			tt.modify(&nu)
			err := nu.Validate(ctx, validate, svc)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			assert.Equal(t, tt.wantField, verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}

	t.Run("taken username", func(t *testing.T) {
		nu := newUser()
		nu.Email = "other@example.com"
		var verr *core.ValidationError
		require.True(t, errors.As(nu.Validate(ctx, validate, svc), &verr))
		assert.Equal(t, ErrUsernameExists, verr.Err)
		assert.Equal(t, "username", verr.Fields[0].Field)
	})

	t.Run("taken email", func(t *testing.T) {
		nu := newUser()
		nu.Username = "other"
		var verr *core.ValidationError
		require.True(t, errors.As(nu.Validate(ctx, validate, svc), &verr))
		assert.Equal(t, ErrEmailExists, verr.Err)
	})
}

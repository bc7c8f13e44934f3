package user

import (
	"context"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
)

var (
	// errors
	ErrNotFound             = errors.New("user not found")
	ErrEmailExists          = errors.New("a user with this email already exists")
	ErrUsernameExists       = errors.New("a user with this username already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
)

type (
	// Repository getters return a nil User (and no error) when nothing matches.
	Repository interface {
		GetUser(ctx context.Context, id int) (*User, error)
		GetUserByUsername(ctx context.Context, username string) (*User, error)
		GetUserByEmail(ctx context.Context, email string) (*User, error)
		CreateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

// NewService builds the user service. mailSvc may be nil, in which case no email is sent.
func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

// CheckUniqueness reports a taken username or email as a field validation error.
func (svc *Service) CheckUniqueness(ctx context.Context, uname, email string) error {
	usr, err := svc.repo.GetUserByUsername(ctx, uname)
	if err != nil {
		return errors.Wrap(err, "finding user by username")
	}
	if usr != nil {
		return core.NewFieldValidationError("username", ErrUsernameExists)
	}

	usr, err = svc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return errors.Wrap(err, "finding user by email")
	}
	if usr != nil {
		return core.NewFieldValidationError("email", ErrEmailExists)
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	usr := User{
		Username:  nu.Username,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Email:     nu.Email,
		Program:   nu.Program,
		Avatar:    nu.Avatar,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject:      "Welcome!",
		TemplateName: "welcome",
		TemplateData: usr,
	})
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return found(svc.repo.GetUser(ctx, id))
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return found(svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */)))
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return found(svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */)))
}

// GetByUsernameOrEmail treats `uname` as an email when it contains an "@".
func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	if strings.Contains(uname, "@") {
		return svc.GetByEmail(ctx, uname)
	}
	return svc.GetByUsername(ctx, uname)
}

func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by username or email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrAuthenticationFailed
	}
	return usr, nil
}

func found(usr *User, err error) (User, error) {
	if err != nil {
		return User{}, err
	}
	if usr == nil {
		return User{}, ErrNotFound
	}
	return *usr, nil
}

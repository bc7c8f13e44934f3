package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studyhub/core"
)

// hashCost is lowered by tests.
var hashCost = bcrypt.DefaultCost

type User struct {
	ID           int         `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password"`
	FirstName    string      `json:"firstName" db:"first_name"`
	LastName     string      `json:"lastName" db:"last_name"`
	Email        string      `json:"email" db:"email"`
	Program      string      `json:"program" db:"program"`
	Avatar       null.String `json:"avatar" db:"avatar"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), hashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username  string      `json:"username" validate:"required,min=3,alphanum_"`
	Password  string      `json:"password" validate:"required"`
	FirstName string      `json:"firstName" validate:"required,notblank"`
	LastName  string      `json:"lastName" validate:"required,notblank"`
	Email     string      `json:"email" validate:"required,email"`
	Program   string      `json:"program" validate:"required,notblank"`
	Avatar    null.String `json:"avatar"`
}

func (nu *NewUser) Clean() {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)
	nu.Program = core.CleanString(nu.Program)
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	nu.Clean()
	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username, nu.Email)
}

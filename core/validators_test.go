package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	translator, _ := ut.New(en.New()).GetTranslator("en")
	InitValidators(validate, translator)

	type payload struct {
		Code     string  `json:"code" validate:"required,alphanum_"`
		Title    *string `json:"title" validate:"omitempty,notblank"`
		Priority string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	}
	blank := "  "
	ok := "Lab report"

	tests := []struct {
		name    string
		payload payload
		want    map[string]string
	}{
		{name: "valid", payload: payload{Code: "CS_101", Title: &ok, Priority: "low"}},
		{name: "nil title is left alone", payload: payload{Code: "CS101"}},
		{name: "missing code", payload: payload{}, want: map[string]string{"code": "this field is required"}},
		{
			name:    "bad code",
			payload: payload{Code: "CS-101"},
			want:    map[string]string{"code": "only alphanumeric characters and underscores are allowed"},
		},
		{name: "blank title", payload: payload{Code: "CS101", Title: &blank}, want: map[string]string{"title": "title cannot be blank"}},
		{
			name:    "unknown priority",
			payload: payload{Code: "CS101", Priority: "urgent"},
			want:    map[string]string{"priority": "priority must be one of [low medium high]"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.payload)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			got := make(map[string]string)
			for _, fe := range verrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationError(t *testing.T) {
	errTaken := errors.New("taken")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrapped error", NewValidationError(errTaken), "taken"},
		{"field error", NewFieldValidationError("email", errTaken), "taken"},
		{"fields only", &ValidationError{Fields: []FieldError{{Field: "email", Error: "taken"}}}, "email: taken"},
		{"empty", &ValidationError{}, "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	assert.True(t, IsNotFound(errors.Wrap(ErrNotFound, "getting course")))
	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("bye"), "serving")))
	assert.False(t, IsShutdown(errTaken))
}

package validator

import (
	"regexp"
	"sync"

	"diligencias/internal/schedule"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	ufPattern  = regexp.MustCompile(`^[A-Za-z]{2}$`)

	registerOnce sync.Once
)

func init() {
	validate = validator.New()
	registerTags(validate)
}

// RegisterGinTags adds the custom tags to gin's binding validator so that
// ShouldBindJSON understands them.
func RegisterGinTags() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerTags(v)
		}
	})
}

func registerTags(v *validator.Validate) {
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return cepPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return ufPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return schedule.ValidDate(fl.Field().String())
	})
}

// Validate returns field -> failed tag, or nil when v is valid.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	return Fields(err)
}

// Fields flattens validator errors; other errors map to "body".
func Fields(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "invalid"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

func IsCEP(v string) bool { return cepPattern.MatchString(v) }

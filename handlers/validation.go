package handlers

import (
	"errors"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"campus-intranet-go/locale"
)

var matriculePattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z-]{2,31}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the intranet binding tags on gin's validator:
// "matricule" and "uilanguage".
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("matricule", func(fl validator.FieldLevel) bool {
			return matriculePattern.MatchString(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("uilanguage", func(fl validator.FieldLevel) bool {
			lang, ok := locale.Parse(fl.Field().String())
			return ok && string(lang) == fl.Field().String()
		})
	})
	return registerErr
}

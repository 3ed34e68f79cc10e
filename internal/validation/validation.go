package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	defaultOnce       sync.Once
	defaultValidator  *validator.Validate
	defaultTranslator ut.Translator
)

func getTranslator() ut.Translator {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")

	return translator
}

// Default returns the shared validator and the english translator that has
// been registered against it. Both are created once and are safe for
// concurrent use.
func Default() (*validator.Validate, ut.Translator) {
	defaultOnce.Do(func() {
		defaultValidator = validator.New()
		defaultTranslator = getTranslator()

		// register the validator with the translator to get clean readable generated
		// error messages from validation actions.
		_ = enTranslations.RegisterDefaultTranslations(defaultValidator, defaultTranslator)
	})

	return defaultValidator, defaultTranslator
}

func TranslateError(err error, trans ut.Translator) (errs []string) {
	if err == nil {
		return nil
	}

	validationErrors := validator.ValidationErrors{}

	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			translatedErr := e.Translate(trans)
			errs = append(errs, translatedErr)
		}
	}

	return errs
}

// Struct validates the given struct with the default validator, joining the
// translated messages into a single error.
func Struct(s any) error {
	validate, translator := Default()

	err := validate.Struct(s)

	if err == nil {
		return nil
	}

	if translated := TranslateError(err, translator); len(translated) > 0 {
		return errors.New(strings.Join(translated, "; "))
	}

	return errors.Wrap(err, "failed to validate")
}

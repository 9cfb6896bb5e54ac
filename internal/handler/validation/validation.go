package validation

import (
	"sync"

	"ekicare/internal/domain/appointment"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagDate    = "ymd"
	TagTime    = "hhmm"
	TagInstant = "instant"
)

// Any valid date works; only the time of day is checked.
const referenceDate = "2000-01-01"

var once sync.Once

// Register installs the custom binding tags on gin's validator and makes
// JSON binding reject unknown fields. Safe to call more than once.
func Register() error {
	var err error
	once.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		for tag, fn := range map[string]validator.Func{
			TagDate:    isDate,
			TagTime:    isTimeOfDay,
			TagInstant: isInstant,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func isDate(fl validator.FieldLevel) bool {
	_, err := appointment.ParseDate(fl.Field().String())
	return err == nil
}

func isTimeOfDay(fl validator.FieldLevel) bool {
	_, err := appointment.ToCanonicalInstant(referenceDate, fl.Field().String())
	return err == nil
}

func isInstant(fl validator.FieldLevel) bool {
	_, err := appointment.ParseInstant(fl.Field().String())
	return err == nil
}

package envstruct

import (
	"log/slog"
	"reflect"
	"strconv"
	"time"

	"github.com/myrjola/biosecure/internal/errors"
)

var (
	ErrEnvNotSet    = errors.NewSentinel("environment variable not set")
	ErrInvalidValue = errors.NewSentinel("v must be a pointer to a struct")
	ErrParse        = errors.NewSentinel("environment variable cannot be parsed")
)

var durationType = reflect.TypeOf(time.Duration(0))

// Populate populates the fields of the pointer to struct v with values from the environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields are tagged with `env:"ENV_VAR"` and
// optionally `envDefault:"value"`. Supported field types are string, bool, int and [time.Duration].
// A tagged field without a value or default results in ErrEnvNotSet. All problems are reported at once.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return errors.Wrap(ErrInvalidValue, "not pointer", slog.String("type", ptrRef.Kind().String()))
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return errors.Wrap(ErrInvalidValue, "not struct", slog.String("type", ref.Kind().String()))
	}

	refType := ref.Type()
	var errorList []error

	for i := range refType.NumField() {
		field := refType.Field(i)
		envVarName, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		value := ref.Field(i)
		if !value.CanSet() {
			errorList = append(errorList, errors.Wrap(ErrInvalidValue, "cannot set field",
				slog.String("field", field.Name)))
			continue
		}

		raw, err := lookupWithFallback(envVarName, field.Tag, lookupEnv)
		if err != nil {
			errorList = append(errorList, err)
			continue
		}
		if err = set(value, raw); err != nil {
			errorList = append(errorList, errors.Wrap(err, "set field",
				slog.String("field", field.Name), slog.String("env", envVarName)))
		}
	}

	return errors.Join(errorList...)
}

func set(value reflect.Value, raw string) error {
	if value.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errors.Wrap(ErrParse, err.Error())
		}
		value.SetInt(int64(d))
		return nil
	}

	switch value.Kind() { //nolint:exhaustive // unsupported kinds handled by default
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrap(ErrParse, err.Error())
		}
		value.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrap(ErrParse, err.Error())
		}
		value.SetInt(int64(n))
	default:
		return errors.Wrap(ErrInvalidValue, "unsupported field type", slog.String("kind", value.Kind().String()))
	}
	return nil
}

func lookupWithFallback(
	envVarName string, tag reflect.StructTag, lookupEnv func(string) (string, bool)) (string, error) {
	if v, ok := lookupEnv(envVarName); ok {
		return v, nil
	}
	if v, ok := tag.Lookup("envDefault"); ok {
		return v, nil
	}
	return "", errors.Wrap(ErrEnvNotSet, "no value or default", slog.String("env", envVarName))
}

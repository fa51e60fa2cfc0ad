package services

import (
	"errors"
	"reflect"
	"strings"

	"shopper-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return models.Genders[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
	})
}

// jsonFieldName reports fields by the name clients send.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validate runs the binding tags of obj, as gin does for request bodies.
func validate(obj interface{}) error {
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return InvalidRequest(err)
	}
	return nil
}

// InvalidRequest turns a binding or validation failure into a validation
// error naming the offending fields.
func InvalidRequest(err error) *Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validationf("invalid request body")
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fieldPath(fe))
	}
	return validationf("missing or invalid fields: %s", strings.Join(fields, ", "))
}

// fieldPath drops the request type from the namespace:
// "PlaceOrderRequest.items[0].quantity" becomes "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"lascala/internal/domain"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
			return domain.ValidCondition(fl.Field().String())
		})
		_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
			return reSKU.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("size", func(fl validator.FieldLevel) bool {
			return reSize.MatchString(fl.Field().String())
		})
	})
	return v
}

// ListingDraft is the sell form after parsing.
type ListingDraft struct {
	SKU            string  `validate:"required,sku"`
	Size           string  `validate:"required,size"`
	Condition      string  `validate:"required,condition"`
	ConditionNotes string  `validate:"max=500"`
	Price          float64 `validate:"gt=0"`
	Images         int     `validate:"min=1,max=6"`
}

// ClosetInput is the "add to closet" form after parsing.
type ClosetInput struct {
	SKU           string   `validate:"required,sku"`
	Size          string   `validate:"required,size"`
	Condition     string   `validate:"required,condition"`
	PurchasePrice *float64 `validate:"omitnil,gte=0"`
	Notes         string   `validate:"max=500"`
	IsPublic      bool
	OpenToOffers  bool
}

// SignupInput is the registration form.
type SignupInput struct {
	Email       string `validate:"required,email,max=120"`
	DisplayName string `validate:"required,max=40"`
	Password    string `validate:"required,min=6,max=72"`
	Confirm     string `validate:"eqfield=Password"`
}

// OfferInput is a want-to-buy offer form.
type OfferInput struct {
	SKU              string  `validate:"required,sku"`
	Size             string  `validate:"required,size"`
	ConditionMinimum string  `validate:"required,condition"`
	MaxPrice         float64 `validate:"gt=0"`
}

// Struct validates a form struct and flattens failures into one error
// naming the offending fields.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &FieldError{Fields: fields}
}

type FieldError struct{ Fields []string }

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Has reports whether field failed validation.
func (e *FieldError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

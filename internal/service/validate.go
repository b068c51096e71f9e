package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/RoyceAzure/lab/ordercenter/internal/dto"
	"github.com/RoyceAzure/lab/ordercenter/internal/pkg/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Validator 將 validator 的錯誤轉成 apperr.Violation，一次列出所有違反條件
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("price", validPrice)
	return &Validator{validate: v}
}

// 對應 decimal(10,2)
const priceIntDigits = 8

var maxPrice = decimal.New(1, priceIntDigits)

// validPrice 正數、小數最多兩位、整數最多 8 位，超出範圍 postgres 會四捨五入或溢位
func validPrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || !d.IsPositive() {
		return false
	}
	return d.Equal(d.Truncate(dto.MoneyScale)) && d.LessThan(maxPrice)
}

// Struct 回傳 nil 或 InvalidArgumentCode 的 *apperr.Error
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Wrap(apperr.InvalidArgumentCode, "invalid input", err)
	}

	violations := make([]apperr.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, apperr.Violation{
			Field:   fieldPath(fe.Namespace()),
			Message: violationMessage(fe),
		})
	}
	return apperr.Invalid(violations...)
}

// fieldPath 去掉最外層的 struct 名稱, PlaceOrderParam.items[0].quantity -> items[0].quantity
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "price":
		return fmt.Sprintf("must be positive with at most %d integer digits and %d decimal places", priceIntDigits, dto.MoneyScale)
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

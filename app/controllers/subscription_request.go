package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/csalom/stripe-api/internal/pkg/billing"
)

// SubscriptionRequest is the body of POST /subscription/. It is accepted as
// JSON or as a form.
type SubscriptionRequest struct {
	FullName   string   `json:"full_name" form:"full_name" validate:"required,max=100"`
	Email      string   `json:"email" form:"email" validate:"required,email,max=191"`
	CardNumber string   `json:"card_number" form:"card_number" validate:"required,min=4,max=16,number"`
	Month      int      `json:"month" form:"month" validate:"required,min=1,max=12"`
	Year       int      `json:"year" form:"year" validate:"required"`
	CVC        CardCode `json:"cvc" form:"cvc" validate:"required,number,min=3,max=4"`
	PriceID    string   `json:"price_id" form:"price_id" validate:"required,max=100"`
}

// CardCode is a card verification code. It binds from a JSON string or a bare
// JSON number and keeps the digits as sent, leading zeros included.
type CardCode string

func (c *CardCode) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CardCode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = CardCode(n.String())
	return nil
}

// ToInput converts a validated request into the provisioning input.
func (r *SubscriptionRequest) ToInput() billing.SubscriberInput {
	return billing.SubscriberInput{
		FullName:   strings.TrimSpace(r.FullName),
		Email:      strings.TrimSpace(r.Email),
		CardNumber: strings.TrimSpace(r.CardNumber),
		Month:      r.Month,
		Year:       r.Year,
		CVC:        string(r.CVC),
		PriceID:    strings.TrimSpace(r.PriceID),
	}
}

// SubscriptionValidator checks a SubscriptionRequest field by field and
// returns the messages keyed by JSON field name.
type SubscriptionValidator struct {
	validate    *validator.Validate
	emailExists func(ctx context.Context, email string) (bool, error)
	now         func() time.Time
}

func NewSubscriptionValidator(emailExists func(ctx context.Context, email string) (bool, error)) *SubscriptionValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SubscriptionValidator{
		validate:    v,
		emailExists: emailExists,
		now:         time.Now,
	}
}

// Validate returns the field errors of req. The error is only set when a
// lookup needed for validation failed.
func (sv *SubscriptionValidator) Validate(ctx context.Context, req *SubscriptionRequest) (map[string]string, error) {
	fieldErrors := map[string]string{}

	if err := sv.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, err
		}
		for _, fe := range validationErrors {
			fieldErrors[fe.Field()] = fieldMessage(fe)
		}
	}

	if _, failed := fieldErrors["email"]; !failed && sv.emailExists != nil {
		exists, err := sv.emailExists(ctx, strings.TrimSpace(req.Email))
		if err != nil {
			return nil, err
		}
		if exists {
			fieldErrors["email"] = "Customer email already exists. You must use another one"
		}
	}

	now := sv.now()
	_, yearFailed := fieldErrors["year"]
	if !yearFailed && req.Year < now.Year() {
		fieldErrors["year"] = "Year must be the current or a future one"
		yearFailed = true
	}
	if _, failed := fieldErrors["month"]; !failed && !yearFailed &&
		req.Year == now.Year() && req.Month < int(now.Month()) {
		fieldErrors["month"] = "Month must be the current or a future one"
	}

	return fieldErrors, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "number":
		if fe.Field() == "card_number" {
			return "Card number must contain digits only"
		}
		return "A valid number is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "Ensure this field has at least " + fe.Param() + " characters"
		}
		return "Ensure this value is greater than or equal to " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Ensure this field has no more than " + fe.Param() + " characters"
		}
		return "Ensure this value is less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}

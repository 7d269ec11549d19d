package validator

import (
	"log"
	"regexp"

	"gebeya_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Ethiopian numbers: +2519/2517 prefixed international form or the local
// 09/07 form.
var ethiopianPhonePattern = regexp.MustCompile(`^(\+251[79]\d{8}|0[79]\d{8})$`)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-listing-status", validateListingStatus)
	mustRegister("is-payment-status", validatePaymentStatus)
	mustRegister("is-account-type", validateAccountType)
	mustRegister("eth-phone", validateEthiopianPhone)
}

// Empty values pass; 'required' handles presence.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateListingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ListingStatus(value) {
	case models.ListingStatusPending, models.ListingStatusApproved, models.ListingStatusRejected:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusCompleted, models.PaymentStatusFailed:
		return true
	default:
		return false
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AccountType(value) {
	case models.AccountTypeIndividual, models.AccountTypeCompany:
		return true
	default:
		return false
	}
}

func validateEthiopianPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return ethiopianPhonePattern.MatchString(value)
}

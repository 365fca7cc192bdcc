package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrRequired     = errors.New("required")
	ErrEmailFormat  = errors.New("invalid email address")
	ErrEmailUnknown = errors.New("no account is registered with this email")
	ErrPhone        = errors.New("phone number must have 10 digits")
	ErrCardNumber   = errors.New("card number must have 16 digits")
	ErrExpiryFormat = errors.New("expiry must be MM/YY")
	ErrCardExpired  = errors.New("card has expired")
	ErrCVV          = errors.New("CVV must have 3 digits")
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
)

// FieldErrors maps a form field to the reason it was rejected.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "checkout: " + strings.Join(parts, "; ")
}

func (f FieldErrors) add(field string, err error) {
	if err != nil {
		if _, ok := f[field]; !ok {
			f[field] = err.Error()
		}
	}
}

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidatePhone(s string) error {
	if len(digits(s)) != 10 {
		return ErrPhone
	}
	return nil
}

func ValidateEmailFormat(s string) error {
	if !emailRe.MatchString(strings.TrimSpace(s)) {
		return ErrEmailFormat
	}
	return nil
}

func ValidateCardNumber(s string) error {
	if len(digits(s)) != 16 {
		return ErrCardNumber
	}
	return nil
}

func ValidateCVV(s string) error {
	if len(digits(s)) != 3 {
		return ErrCVV
	}
	return nil
}

// ValidateExpiry accepts MM/YY cards that expire in the current month or later.
func ValidateExpiry(s string, now time.Time) error {
	m := expiryRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ErrExpiryFormat
	}
	mm, _ := strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	curYY, curMM := now.Year()%100, int(now.Month())
	if yy < curYY || (yy == curYY && mm < curMM) {
		return ErrCardExpired
	}
	return nil
}

type ShippingForm struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type PaymentForm struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CardName   string `json:"cardName"`
}

// EmailChecker reports whether an account exists for the address.
type EmailChecker interface {
	Exists(ctx context.Context, email string) (bool, error)
}

func requireFields(errs FieldErrors, fields map[string]string) {
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			errs.add(name, ErrRequired)
		}
	}
}

// ValidateShipping returns FieldErrors for bad input and a plain error when the
// account lookup itself fails.
func ValidateShipping(ctx context.Context, f ShippingForm, emails EmailChecker) error {
	errs := FieldErrors{}
	requireFields(errs, map[string]string{
		"email":     f.Email,
		"firstName": f.FirstName,
		"lastName":  f.LastName,
		"address":   f.Address,
		"city":      f.City,
		"state":     f.State,
		"zip":       f.Zip,
		"phone":     f.Phone,
	})
	if _, missing := errs["email"]; !missing {
		errs.add("email", ValidateEmailFormat(f.Email))
	}
	if _, missing := errs["phone"]; !missing {
		errs.add("phone", ValidatePhone(f.Phone))
	}

	if _, bad := errs["email"]; !bad && emails != nil {
		ok, err := emails.Exists(ctx, f.Email)
		if err != nil {
			return fmt.Errorf("checkout: email lookup: %w", err)
		}
		if !ok {
			errs.add("email", ErrEmailUnknown)
		}
	}
	return errs.orNil()
}

func ValidatePayment(f PaymentForm, now time.Time) error {
	errs := FieldErrors{}
	requireFields(errs, map[string]string{
		"cardNumber": f.CardNumber,
		"expiry":     f.Expiry,
		"cvv":        f.CVV,
		"cardName":   f.CardName,
	})
	if _, missing := errs["cardNumber"]; !missing {
		errs.add("cardNumber", ValidateCardNumber(f.CardNumber))
	}
	if _, missing := errs["expiry"]; !missing {
		errs.add("expiry", ValidateExpiry(f.Expiry, now))
	}
	if _, missing := errs["cvv"]; !missing {
		errs.add("cvv", ValidateCVV(f.CVV))
	}
	return errs.orNil()
}

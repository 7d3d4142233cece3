package bond

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTerms is returned when a bond term lies outside its domain.
	ErrInvalidTerms = errors.New("invalid bond terms")
	// ErrUnsupportedRateSeries is returned for an empty or non-finite coupon
	// rate series. It matches ErrInvalidTerms as well.
	ErrUnsupportedRateSeries = fmt.Errorf("unsupported coupon rate series: %w", ErrInvalidTerms)
)

// TermsError names the offending field of rejected bond terms.
type TermsError struct {
	Field  string
	Reason string
	Err    error
}

func (e *TermsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *TermsError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return ErrInvalidTerms
	}
	return e.Err
}

func invalidField(field, format string, args ...any) error {
	return &TermsError{Field: field, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidTerms}
}

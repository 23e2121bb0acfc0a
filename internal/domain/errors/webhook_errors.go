package errors

import "errors"

var (
	// ErrSignatureInvalid indicates the request did not carry a valid provider signature
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// ErrMisconfigured indicates a required secret or credential is missing
	ErrMisconfigured = errors.New("webhook endpoint is not configured")

	// ErrPaymentNotFound indicates no payment record exists for the intent id
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrLedgerEntryNotFound indicates no rent ledger entry exists for the id
	ErrLedgerEntryNotFound = errors.New("rent ledger entry not found")

	// ErrWalletNotFound indicates no wallet matches the landlord or Connect account
	ErrWalletNotFound = errors.New("landlord wallet not found")

	// ErrVerificationNotFound indicates no verification record exists for the reference id
	ErrVerificationNotFound = errors.New("verification record not found")

	// ErrInvalidReportingPeriod indicates the period override is not YYYY-MM
	ErrInvalidReportingPeriod = errors.New("reporting period must be in YYYY-MM format")
)

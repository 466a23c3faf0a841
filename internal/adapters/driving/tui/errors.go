package tui

import "errors"

// ErrMissingContractService is returned when the contract service is not provided.
var ErrMissingContractService = errors.New("tui: contract service is required")

// ErrCancelled is returned when the user abandons the form.
var ErrCancelled = errors.New("tui: form cancelled")

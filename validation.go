package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidScenario is wrapped by every invariant violation.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrMalformedInput is wrapped by every field that fails to parse.
	ErrMalformedInput = errors.New("malformed input")
)

// Field names, in panel order
const (
	FieldInitial      = "initial"
	FieldYearly       = "yearly"
	FieldAnnualReturn = "annual_return"
	FieldAgeStarted   = "age_started"
	FieldMaxAge       = "max_age"
)

// fieldCaptions maps a field to the caption shown next to its input
var fieldCaptions = map[string]string{
	FieldInitial:      "Initial",
	FieldYearly:       "Yearly",
	FieldAnnualReturn: "Annual %",
	FieldAgeStarted:   "Age Started",
	FieldMaxAge:       "Max Age",
}

// ValidationError reports a scenario parameter that breaks an invariant
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidScenario
}

// FieldError reports panel text that could not be read as the field's type
type FieldError struct {
	Field string
	Input string
	Kind  string // "number" or "whole number"
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s", fieldCaptions[e.Field], e.Input, e.Kind)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedInput
}

func asValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// errorField returns the field an error refers to, or "" when it names none
func errorField(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// validateReturnRate checks 0 < rate < 1
func validateReturnRate(rate float64) error {
	if !(rate > 0 && rate < 1) {
		return &ValidationError{Field: FieldAnnualReturn,
			Message: fmt.Sprintf("Annual return must be between 0 and 1 exclusive, e.g. 0.08 or 8%% (got %g)", rate)}
	}
	return nil
}

// validateMoney checks an amount is finite and non-negative
func validateMoney(amount float64, field string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: field, Message: fieldCaptions[field] + " must be a finite amount"}
	}
	if amount < 0 {
		return &ValidationError{Field: field, Message: fieldCaptions[field] + " cannot be negative"}
	}
	return nil
}

// Plotted ages are limited to a human lifetime
const (
	youngestAge = 0
	oldestAge   = 150
)

// validateAgeRange checks both ages lie in [youngestAge, oldestAge] and the start age comes first
func validateAgeRange(ageStarted, maxAge int) error {
	if ageStarted < youngestAge || ageStarted > oldestAge {
		return &ValidationError{Field: FieldAgeStarted,
			Message: fmt.Sprintf("Age started must be between %d and %d (got %d)", youngestAge, oldestAge, ageStarted)}
	}
	if maxAge < youngestAge || maxAge > oldestAge {
		return &ValidationError{Field: FieldMaxAge,
			Message: fmt.Sprintf("Max age must be between %d and %d (got %d)", youngestAge, oldestAge, maxAge)}
	}
	if ageStarted >= maxAge {
		return &ValidationError{Field: FieldMaxAge,
			Message: fmt.Sprintf("Max age must be greater than age started (got %d, started %d)", maxAge, ageStarted)}
	}
	return nil
}

// validateFinalValue checks the curve stays finite up to its last age
func validateFinalValue(final float64) error {
	if math.IsNaN(final) || math.IsInf(final, 0) {
		return &ValidationError{Field: FieldInitial,
			Message: "Investment value grows beyond the largest representable amount; lower the amounts, the return or the age span"}
	}
	return nil
}

// parseMoney parses amounts like "5000", "5,000", "5k" or "1.5m"
func parseMoney(input, field string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	multiplier := 1.0
	if strings.HasSuffix(s, "k") {
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	} else if strings.HasSuffix(s, "m") {
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	}
	val, err := parseFinite(s)
	if err != nil {
		return 0, &FieldError{Field: field, Input: input, Kind: "number"}
	}
	return val * multiplier, nil
}

// parsePercentOrDecimal converts "8%" or "0.08" to 0.08
func parsePercentOrDecimal(input, field string) (float64, error) {
	s := strings.TrimSpace(input)
	if strings.HasSuffix(s, "%") {
		num, err := parseFinite(strings.TrimSpace(strings.TrimSuffix(s, "%")))
		if err != nil {
			return 0, &FieldError{Field: field, Input: input, Kind: "number"}
		}
		return num / 100.0, nil
	}
	val, err := parseFinite(s)
	if err != nil {
		return 0, &FieldError{Field: field, Input: input, Kind: "number"}
	}
	return val, nil
}

// parseWhole parses a base-10 integer field
func parseWhole(input, field string) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, &FieldError{Field: field, Input: input, Kind: "whole number"}
	}
	return val, nil
}

// parseFinite is strconv.ParseFloat without NaN, Inf or hex forms
func parseFinite(s string) (float64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "x") || strings.Contains(lower, "n") {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

package supabase

import (
	"errors"
	"fmt"
)

// Postgres error code returned by PostgREST when a queried table is absent.
const codeUndefinedTable = "42P01"

// StoreError is a structured failure from the remote store. Code carries the
// Postgres error code when PostgREST supplies one.
type StoreError struct {
	Status  int
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("store error %d: %s", e.Status, e.Message)
}

// AuthError is a failed credential operation. The message comes from the
// auth endpoint and is safe to show next to a login form.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure reaching the remote store.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsSchemaMissing reports whether the error means the required tables have
// not been created in the remote database.
func IsSchemaMissing(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == codeUndefinedTable
}

// Friendly maps any store failure to the message shown in the error banner.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Network Error: unable to reach the server."
	}
	if IsSchemaMissing(err) {
		return "Database Error: required tables do not exist. Run the setup SQL in your Supabase project."
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var se *StoreError
	if errors.As(err, &se) {
		return "Server Error: " + se.Message
	}
	return err.Error()
}

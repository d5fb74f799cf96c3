// Package permission models the notification permission collaborator that is
// consulted once before the first page is fetched.
package permission

import (
	"context"
	"fmt"
	"strings"
)

// Verdict is the answer of a permission check or request.
type Verdict int

const (
	// Denied means the permission is not available.
	Denied Verdict = iota

	// Granted means the permission is available.
	Granted
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	if v == Granted {
		return "granted"
	}
	return "denied"
}

// ParseVerdict converts "granted"/"denied" (case-insensitive) to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted", "grant", "yes", "true":
		return Granted, nil
	case "denied", "deny", "no", "false":
		return Denied, nil
	default:
		return Denied, fmt.Errorf("unknown permission verdict %q", s)
	}
}

// Service checks and requests a permission asynchronously.
type Service interface {
	// Check returns the current verdict without prompting.
	Check(ctx context.Context) (Verdict, error)

	// Request asks for the permission and returns the resulting verdict.
	Request(ctx context.Context) (Verdict, error)
}

// PermissionError wraps a failed check or request. It is never fatal.
type PermissionError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission %s: %v", e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Static is a Service with fixed answers, configured from the config file.
type Static struct {
	// Current is returned by Check.
	Current Verdict

	// OnRequest is returned by Request.
	OnRequest Verdict

	// Err, when set, makes both calls fail.
	Err error
}

// Check implements Service.
func (s Static) Check(ctx context.Context) (Verdict, error) {
	if s.Err != nil {
		return Denied, &PermissionError{Op: "check", Err: s.Err}
	}
	return s.Current, nil
}

// Request implements Service.
func (s Static) Request(ctx context.Context) (Verdict, error) {
	if s.Err != nil {
		return Denied, &PermissionError{Op: "request", Err: s.Err}
	}
	return s.OnRequest, nil
}

// Resolve runs the startup sequence: check, and request only when the check
// did not grant. Errors are returned alongside Denied so callers can log them.
func Resolve(ctx context.Context, svc Service) (Verdict, error) {
	if svc == nil {
		return Granted, nil
	}

	verdict, checkErr := svc.Check(ctx)
	if checkErr == nil && verdict == Granted {
		return Granted, nil
	}

	verdict, err := svc.Request(ctx)
	if err != nil {
		return Denied, err
	}
	if verdict != Granted && checkErr != nil {
		return verdict, checkErr
	}
	return verdict, nil
}

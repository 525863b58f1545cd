package interfaces

import (
	"context"
	"net/http"
	"net/url"
)

// ApplicationURLHeader is the response header a DIAL server uses to announce
// its application resource endpoint.
const ApplicationURLHeader = "Application-URL"

// DeviceDescriptor is the resolved description of a DIAL device.
type DeviceDescriptor struct {
	// ApplicationResourceURL is the absolute endpoint at which applications
	// are launched, queried and stopped. Never nil on a returned descriptor.
	ApplicationResourceURL *url.URL

	// FriendlyName is the human readable device name, empty when the
	// descriptor body does not carry one.
	FriendlyName string
}

// Equal reports whether both descriptors describe the same device endpoint.
func (d *DeviceDescriptor) Equal(other *DeviceDescriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.FriendlyName != other.FriendlyName {
		return false
	}
	if d.ApplicationResourceURL == nil || other.ApplicationResourceURL == nil {
		return d.ApplicationResourceURL == other.ApplicationResourceURL
	}
	return d.ApplicationResourceURL.String() == other.ApplicationResourceURL.String()
}

// AbsenceReason names the recoverable condition that prevented a descriptor
// from being produced.
type AbsenceReason int

const (
	NotAbsent AbsenceReason = iota
	UnsupportedScheme
	UnexpectedStatus
	MissingApplicationURL
)

func (r AbsenceReason) String() string {
	switch r {
	case NotAbsent:
		return "none"
	case UnsupportedScheme:
		return "unsupported-scheme"
	case UnexpectedStatus:
		return "unexpected-status"
	case MissingApplicationURL:
		return "missing-application-url"
	default:
		return "unknown"
	}
}

// Resolution is the non-error outcome of descriptor resolution: either a
// descriptor or an explicit absence with its reason.
type Resolution struct {
	Descriptor *DeviceDescriptor
	Reason     AbsenceReason

	// StatusCode is the HTTP status observed, zero when no request was made.
	StatusCode int
}

// Found reports whether the resolution carries a descriptor.
func (r Resolution) Found() bool {
	return r.Descriptor != nil
}

// Resolved wraps a descriptor into a successful resolution.
func Resolved(d *DeviceDescriptor) Resolution {
	return Resolution{Descriptor: d, StatusCode: http.StatusOK}
}

// Absent builds a resolution carrying no descriptor.
func Absent(reason AbsenceReason, statusCode int) Resolution {
	return Resolution{Reason: reason, StatusCode: statusCode}
}

// DeviceDescriptorResource fetches DIAL device descriptors.
//
// A nil error with Resolution.Found() == false means the device was reachable
// (or not addressable by this client) but does not offer a usable
// descriptor. Errors are either ErrInvalidLocation, for caller misuse, or a
// *TransportError.
type DeviceDescriptorResource interface {
	GetDescriptor(ctx context.Context, location *url.URL) (Resolution, error)
}

// WarningLogger receives diagnostics for recoverable failures.
// *slog.Logger satisfies it.
type WarningLogger interface {
	Warn(msg string, args ...any)
}

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/dial-descriptor/interfaces"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

var errNotAbsoluteURL = errors.New("not an absolute URL")

// Config controls how descriptors are fetched.
type Config struct {
	// Timeout bounds the whole request including the body read.
	// Zero selects DefaultTimeout, a negative value disables the bound.
	Timeout time.Duration

	// HTTPClient is used for the request. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// ApplicationURLHeader overrides the header carrying the application
	// resource endpoint. Defaults to interfaces.ApplicationURLHeader.
	ApplicationURLHeader string

	// MaxBodyBytes caps how much of the descriptor body is parsed.
	MaxBodyBytes int64
}

// Resolver implements interfaces.DeviceDescriptorResource over plain HTTP.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	cfg    Config
	client *http.Client
	log    interfaces.WarningLogger
}

// NewResolver creates a resolver. A nil cfg selects the defaults, a nil log
// falls back to slog.Default().
func NewResolver(cfg *Config, log interfaces.WarningLogger) *Resolver {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ApplicationURLHeader == "" {
		c.ApplicationURLHeader = interfaces.ApplicationURLHeader
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	if log == nil {
		log = slog.Default()
	}

	return &Resolver{
		cfg:    c,
		client: client,
		log:    log,
	}
}

// ParseLocation parses a raw descriptor location, as found in an SSDP
// LOCATION header. Blank or unparseable input is interfaces.ErrInvalidLocation.
func ParseLocation(location string) (*url.URL, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, interfaces.ErrInvalidLocation
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocation, err)
	}
	return u, nil
}

// Resolve parses a raw location with ParseLocation and resolves it with
// GetDescriptor.
func (r *Resolver) Resolve(ctx context.Context, location string) (interfaces.Resolution, error) {
	u, err := ParseLocation(location)
	if err != nil {
		return interfaces.Resolution{}, err
	}

	return r.GetDescriptor(ctx, u)
}

// GetDescriptor fetches the device descriptor at location.
//
// Only the http scheme is supported; other schemes, non-200 responses and
// responses lacking the Application-URL header are logged and reported as an
// absent Resolution. Connection failures and a malformed Application-URL are
// returned as *interfaces.TransportError. A body that cannot be parsed only
// costs the friendly name.
func (r *Resolver) GetDescriptor(ctx context.Context, location *url.URL) (interfaces.Resolution, error) {
	if location == nil || location.String() == "" {
		return interfaces.Resolution{}, interfaces.ErrInvalidLocation
	}

	if !strings.EqualFold(location.Scheme, "http") {
		r.log.Warn("Only http is supported for device descriptor resolution",
			"location", location.String(),
			"scheme", location.Scheme)
		return interfaces.Absent(interfaces.UnsupportedScheme, 0), nil
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
	if err != nil {
		return interfaces.Resolution{}, r.transportError(interfaces.OpConnect, location, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return interfaces.Resolution{}, r.transportError(interfaces.OpConnect, location, err)
	}
	// Absence branches close without reading: a device trickling an error
	// page must not hold the call until the deadline.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("Could not get device descriptor",
			"location", location.String(),
			"status", resp.StatusCode)
		return interfaces.Absent(interfaces.UnexpectedStatus, resp.StatusCode), nil
	}

	rawAppURL, ok := HeaderValue(resp.Header, r.cfg.ApplicationURLHeader)
	if !ok {
		r.log.Warn("Server didn't return application URL",
			"location", location.String(),
			"header", r.cfg.ApplicationURLHeader)
		return interfaces.Absent(interfaces.MissingApplicationURL, resp.StatusCode), nil
	}

	appURL, err := parseApplicationURL(rawAppURL)
	if err != nil {
		return interfaces.Resolution{}, r.transportError(interfaces.OpApplicationURL, location,
			fmt.Errorf("invalid %s header %q: %w", r.cfg.ApplicationURLHeader, rawAppURL, err))
	}

	descriptor := &interfaces.DeviceDescriptor{
		ApplicationResourceURL: appURL,
	}

	name, err := FriendlyName(io.LimitReader(resp.Body, r.cfg.MaxBodyBytes))
	switch {
	case err == nil:
		descriptor.FriendlyName = name
	case errors.Is(err, ErrMalformedDescriptor):
		r.log.Warn("Error while parsing device descriptor",
			"location", location.String(),
			"err", err)
	default:
		return interfaces.Resolution{}, r.transportError(interfaces.OpReadBody, location, err)
	}

	drain(resp.Body, r.cfg.MaxBodyBytes)
	return interfaces.Resolved(descriptor), nil
}

func (r *Resolver) transportError(op string, location *url.URL, err error) error {
	return &interfaces.TransportError{
		Op:  op,
		URL: location.String(),
		Err: err,
	}
}

func parseApplicationURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, errNotAbsoluteURL
	}
	return u, nil
}

// drain consumes what is left of a parsed body so the transport can reuse
// the connection.
func drain(body io.Reader, limit int64) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, limit))
}

package interfaces

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceDescriptor_Equal(t *testing.T) {
	appURL, err := url.Parse("http://10.0.0.5:9197/apps")
	require.NoError(t, err)
	sameURL, err := url.Parse("http://10.0.0.5:9197/apps")
	require.NoError(t, err)

	a := &DeviceDescriptor{ApplicationResourceURL: appURL, FriendlyName: "TV"}
	b := &DeviceDescriptor{ApplicationResourceURL: sameURL, FriendlyName: "TV"}
	assert.True(t, a.Equal(b))

	b.FriendlyName = "Other"
	assert.False(t, a.Equal(b))

	var nilDescriptor *DeviceDescriptor
	assert.True(t, nilDescriptor.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestResolution(t *testing.T) {
	r := Resolved(&DeviceDescriptor{})
	assert.True(t, r.Found())
	assert.Equal(t, NotAbsent, r.Reason)
	assert.Equal(t, 200, r.StatusCode)

	absent := Absent(UnexpectedStatus, 404)
	assert.False(t, absent.Found())
	assert.Equal(t, "unexpected-status", absent.Reason.String())
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("resolve: %w", &TransportError{Op: OpConnect, URL: "http://x/dd.xml", Err: cause})

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidLocation)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, OpConnect, transportErr.Op)
	assert.Equal(t, "connect http://x/dd.xml: connection refused", transportErr.Error())
}

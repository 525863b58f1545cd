package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ruteri/dial-descriptor/descriptor"
	"github.com/ruteri/dial-descriptor/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, location string) (interfaces.Resolution, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(interfaces.Resolution), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeper_Run(t *testing.T) {
	appURL, err := url.Parse("http://10.0.0.5:9197/apps")
	require.NoError(t, err)
	found := interfaces.Resolved(&interfaces.DeviceDescriptor{ApplicationResourceURL: appURL, FriendlyName: "TV"})

	resolver := new(mockResolver)
	resolver.On("Resolve", mock.Anything, "http://10.0.0.5:8008/dd.xml").Return(found, nil)
	resolver.On("Resolve", mock.Anything, "https://10.0.0.6/dd.xml").Return(interfaces.Absent(interfaces.UnsupportedScheme, 0), nil)
	resolver.On("Resolve", mock.Anything, "http://10.0.0.7/dd.xml").Return(interfaces.Resolution{}, &interfaces.TransportError{Op: interfaces.OpConnect, Err: errors.New("refused")})

	locations := []string{
		"http://10.0.0.5:8008/dd.xml",
		"https://10.0.0.6/dd.xml",
		"http://10.0.0.7/dd.xml",
	}

	entries, err := NewSweeper(resolver, 2, discardLogger()).Run(context.Background(), locations)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, location := range locations {
		assert.Equal(t, location, entries[i].Location)
	}
	assert.True(t, entries[0].Resolution.Found())
	assert.Equal(t, interfaces.UnsupportedScheme, entries[1].Resolution.Reason)
	assert.ErrorIs(t, entries[2].Err, interfaces.ErrTransport)

	assert.Equal(t, Summary{Found: 1, Absent: 1, Failed: 1}, Summarize(entries))

	descriptors := Descriptors(entries)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "TV", descriptors[0].FriendlyName)

	resolver.AssertExpectations(t)
}

func TestSweeper_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		w.Header().Set(interfaces.ApplicationURLHeader, "http://10.0.0.5:9197/apps")
		_, _ = io.WriteString(w, `<root><friendlyName>TV</friendlyName></root>`)
	}))
	defer srv.Close()

	locations := make([]string, 12)
	for i := range locations {
		locations[i] = srv.URL + "/dd.xml"
	}

	resolver := descriptor.NewResolver(nil, discardLogger())
	entries, err := NewSweeper(resolver, 3, discardLogger()).Run(context.Background(), locations)
	require.NoError(t, err)

	assert.Equal(t, Summary{Found: 12}, Summarize(entries))
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestSweeper_CancelledContext(t *testing.T) {
	resolver := new(mockResolver)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := NewSweeper(resolver, 0, discardLogger()).Run(ctx, []string{"http://a/dd.xml", "http://b/dd.xml"})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.ErrorIs(t, entry.Err, context.Canceled)
	}
	assert.Equal(t, Summary{Failed: 2}, Summarize(entries))

	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResourceResolver(t *testing.T) {
	appURL, err := url.Parse("http://10.0.0.5:9197/apps")
	require.NoError(t, err)
	location, err := url.Parse("http://10.0.0.5:8008/dd.xml")
	require.NoError(t, err)

	resource := new(descriptor.MockDeviceDescriptorResource)
	resource.On("GetDescriptor", mock.Anything, location).
		Return(interfaces.Resolved(&interfaces.DeviceDescriptor{ApplicationResourceURL: appURL}), nil)

	entries, err := NewSweeper(ResourceResolver{Resource: resource}, 1, discardLogger()).
		Run(context.Background(), []string{"http://10.0.0.5:8008/dd.xml", "", "http://[::1"})
	require.NoError(t, err)

	assert.True(t, entries[0].Resolution.Found())
	assert.ErrorIs(t, entries[1].Err, interfaces.ErrInvalidLocation)
	assert.ErrorIs(t, entries[2].Err, interfaces.ErrInvalidLocation)
	resource.AssertNumberOfCalls(t, "GetDescriptor", 1)
}

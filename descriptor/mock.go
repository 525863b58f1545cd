package descriptor

import (
	"context"
	"net/url"

	"github.com/ruteri/dial-descriptor/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockDeviceDescriptorResource implements interfaces.DeviceDescriptorResource
// for tests of code that consumes descriptors.
type MockDeviceDescriptorResource struct {
	mock.Mock
}

func (m *MockDeviceDescriptorResource) GetDescriptor(ctx context.Context, location *url.URL) (interfaces.Resolution, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(interfaces.Resolution), args.Error(1)
}

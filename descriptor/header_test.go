package descriptor

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderValue(t *testing.T) {
	h := http.Header{}
	h.Set("Application-URL", "http://10.0.0.5:9197/apps")

	v, ok := HeaderValue(h, "application-url")
	assert.True(t, ok)
	assert.Equal(t, "http://10.0.0.5:9197/apps", v)

	_, ok = HeaderValue(h, "X-Missing")
	assert.False(t, ok)

	h.Add("Application-URL", "http://10.0.0.6:9197/apps")
	v, ok = HeaderValue(h, "Application-URL")
	assert.True(t, ok)
	assert.Equal(t, "http://10.0.0.6:9197/apps", v)
}

func TestHeaderValue_EmptyIsPresent(t *testing.T) {
	h := http.Header{"Application-Url": []string{""}}

	v, ok := HeaderValue(h, "Application-URL")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

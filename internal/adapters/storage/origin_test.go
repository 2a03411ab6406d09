package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrigin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		endpoint string
		want     string
	}{
		{name: "https", endpoint: "https://script.google.com/macros/s/abc/exec", want: "https_script.google.com"},
		{name: "port", endpoint: "http://127.0.0.1:8080/exec?x=1", want: "http_127.0.0.1_8080"},
		{name: "case", endpoint: "HTTPS://Example.COM/", want: "https_example.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Origin(tc.endpoint)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOriginRejectsEndpointWithoutHost(t *testing.T) {
	t.Parallel()

	_, err := Origin("")
	require.Error(t, err)

	_, err = Origin("/relative/path")
	require.Error(t, err)
	assert.ErrorContains(t, err, "has no origin")
}

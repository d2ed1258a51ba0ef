package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromEnv(t *testing.T) {
	tests := []struct {
		name   string
		access string
		secret string
		want   *Credentials
	}{
		{
			name:   "both set",
			access: "my-access",
			secret: "my-secret",
			want:   &Credentials{Access: "my-access", Secret: "my-secret"},
		},
		{
			name:   "access empty",
			access: "",
			secret: "my-secret",
			want:   nil,
		},
		{
			name:   "secret empty",
			access: "my-access",
			secret: "",
			want:   nil,
		},
		{
			name:   "both empty",
			access: "",
			secret: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAccessKey, tt.access)
			t.Setenv(EnvSecretKey, tt.secret)

			got := CredentialsFromEnv()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialsHeader(t *testing.T) {
	creds := NewCredentials("abc", "def")
	require.NotNil(t, creds)

	name, value := HeaderPair(creds.Header())
	assert.Equal(t, "authorization", name)
	assert.Equal(t, "LOW abc:def", value)
}

package archive

import "os"

// Environment variable names checked by CredentialsFromEnv. They match the
// names used by common S3 tooling, since the service exposes an S3-like API.
const (
	EnvAccessKey = "AWS_ACCESS_KEY_ID"
	EnvSecretKey = "AWS_SECRET_ACCESS_KEY"
)

// Credentials holds the access/secret key pair required for authenticated
// operations. Both keys are opaque strings; no format validation is
// performed. A Credentials value is shared by reference across all requests
// issued by one logical client session.
type Credentials struct {
	Access string
	Secret string
}

// NewCredentials builds a Credentials from an explicit key pair. It never
// fails; key format is not validated.
func NewCredentials(access, secret string) *Credentials {
	return &Credentials{Access: access, Secret: secret}
}

// CredentialsFromEnv loads credentials from the process environment. It
// returns nil when either variable is unset or empty; an unset variable is
// treated as "absent", never as an error.
func CredentialsFromEnv() *Credentials {
	access := os.Getenv(EnvAccessKey)
	secret := os.Getenv(EnvSecretKey)

	if access == "" || secret == "" {
		return nil
	}

	return &Credentials{Access: access, Secret: secret}
}

// Header converts the credentials into the Authorization header variant.
func (c *Credentials) Header() Header {
	return Authorization{Access: c.Access, Secret: c.Secret}
}

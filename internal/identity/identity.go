// Package identity resolves the current user.
package identity

import (
	"errors"
	"os"
	"os/user"
	"strings"
)

// ErrNotAuthenticated is returned by operations that require a user.
var ErrNotAuthenticated = errors.New("not authenticated")

// EnvUser names the environment variable that overrides the configured user.
const EnvUser = "READPACE_USER"

// Provider supplies the current user id. An empty id means signed out.
type Provider interface {
	UserID() string
}

// Static is a fixed user id.
type Static string

// UserID implements Provider.
func (s Static) UserID() string {
	return strings.TrimSpace(string(s))
}

// Resolve picks the user id from the environment, then configured, then the
// OS account name. It returns Static("") when none is available.
func Resolve(configured string, fallbackToOS bool) Static {
	if v := strings.TrimSpace(os.Getenv(EnvUser)); v != "" {
		return Static(v)
	}
	if v := strings.TrimSpace(configured); v != "" {
		return Static(v)
	}
	if !fallbackToOS {
		return ""
	}
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return Static(u.Username)
}

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrefersEnvironment(t *testing.T) {
	t.Setenv(EnvUser, " env-user ")
	assert.Equal(t, "env-user", Resolve("configured", true).UserID())
}

func TestResolveConfigured(t *testing.T) {
	t.Setenv(EnvUser, "")
	assert.Equal(t, "configured", Resolve(" configured ", false).UserID())
}

func TestResolveSignedOut(t *testing.T) {
	t.Setenv(EnvUser, "")
	assert.Equal(t, "", Resolve("  ", false).UserID())
}

func TestStaticTrims(t *testing.T) {
	var p Provider = Static("  reader\n")
	assert.Equal(t, "reader", p.UserID())
}

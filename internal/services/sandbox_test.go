package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"wheeladmin/internal/client"
	"wheeladmin/internal/sandbox"
)

const (
	adminPrincipal  = "ryjl3-tyaaa-aaaaa-aaaba-cai"
	memberPrincipal = "mxzaz-hqaaa-aaaar-qaada-cai"
	winnerPrincipal = "xevnm-gaaaa-aaaar-qafnq-cai"
	selfPrincipal   = "ss2fx-dyaaa-aaaar-qacoq-cai"
)

// newSandbox returns an in-memory service with an admin and a context
// calling as that admin.
func newSandbox(t *testing.T, withDefaults bool) (*sandbox.Backend, context.Context) {
	t.Helper()
	b := sandbox.NewBackend(selfPrincipal)
	require.NoError(t, b.Bootstrap(adminPrincipal, withDefaults))
	return b, client.WithCaller(context.Background(), adminPrincipal)
}

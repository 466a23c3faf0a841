package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil contract service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, "1.0.0")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingContractService)
	})

	t.Run("contracts only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Contracts: &mockContracts{}}, "1.0.0")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Contracts:    &mockContracts{},
			Inspector:    &mockInspector{},
			History:      &mockHistory{},
			TemplatePath: "template.docx",
		}, "1.0.0")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingContractService)
	assert.NoError(t, (&Ports{Contracts: &mockContracts{}}).Validate())
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{Contracts: &mockContracts{}}, "1.0.0")
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Contracts: &mockContracts{}}, "1.0.0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}

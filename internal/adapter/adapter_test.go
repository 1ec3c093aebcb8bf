package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/shoe-store/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		cfg, err := adapter.MakeTLSConfig("", "", "")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("MissingCA", func(t *testing.T) {
		ca := filepath.Join(t.TempDir(), "ca.pem")
		_, err := adapter.MakeTLSConfig(ca, "", "")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		ca := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a pem"), 0o600))

		_, err := adapter.MakeTLSConfig(ca, "", "")
		require.ErrorIs(t, err, adapter.ErrInvalidCA)
	})

	t.Run("KeyWithoutCert", func(t *testing.T) {
		key := filepath.Join(t.TempDir(), "client.key")
		_, err := adapter.MakeTLSConfig("", "", key)
		require.Error(t, err)
	})
}

package chapa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientVerify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/transaction/verify/tx-123", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": "success",
				"message": "Payment details",
				"data": {"reference": "ref-9", "tx_ref": "tx-123", "status": "success", "amount": 500, "currency": "ETB"}
			}`))
		}))
		defer srv.Close()

		client := NewClient("sk-test", srv.URL)
		data, err := client.Verify(context.Background(), "tx-123")
		require.NoError(t, err)
		assert.Equal(t, "ref-9", data.Reference)
		assert.Equal(t, 500.0, data.Amount)
	})

	t.Run("gateway declines", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status": "failed", "message": "invalid transaction"}`))
		}))
		defer srv.Close()

		client := NewClient("sk-test", srv.URL)
		_, err := client.Verify(context.Background(), "tx-missing")
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("success envelope without data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "success"}`))
		}))
		defer srv.Close()

		client := NewClient("sk-test", srv.URL)
		_, err := client.Verify(context.Background(), "tx-123")
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := NewClient("sk-test", srv.URL)
		_, err := client.Verify(context.Background(), "tx-123")
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := NewClient("sk-test", srv.URL)
		_, err := client.Verify(context.Background(), "tx-123")
		assert.ErrorIs(t, err, ErrVerificationFailed)
	})
}

type fakeSettings map[string]string

func (f fakeSettings) GetSetting(key string) (string, bool) {
	v, ok := f[key]
	return v, ok && v != ""
}

func TestResolveSecret(t *testing.T) {
	t.Run("persisted wins over env", func(t *testing.T) {
		t.Setenv(EnvWebhookSecret, "from-env")

		secret, ok := ResolveSecret(fakeSettings{SettingWebhookSecret: "from-db"}, SettingWebhookSecret, EnvWebhookSecret, "")
		require.True(t, ok)
		assert.Equal(t, "from-db", secret)
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(EnvWebhookSecret, "from-env")

		secret, ok := ResolveSecret(fakeSettings{}, SettingWebhookSecret, EnvWebhookSecret, "from-file")
		require.True(t, ok)
		assert.Equal(t, "from-env", secret)
	})

	t.Run("config file fallback", func(t *testing.T) {
		t.Setenv(EnvWebhookSecret, "")

		secret, ok := ResolveSecret(fakeSettings{}, SettingWebhookSecret, EnvWebhookSecret, "from-file")
		require.True(t, ok)
		assert.Equal(t, "from-file", secret)
	})

	t.Run("absent everywhere", func(t *testing.T) {
		t.Setenv(EnvWebhookSecret, "")

		_, ok := ResolveSecret(fakeSettings{}, SettingWebhookSecret, EnvWebhookSecret, "")
		assert.False(t, ok)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Setenv(EnvSecretKey, "sk")

		secret, ok := ResolveSecret(nil, SettingSecretKey, EnvSecretKey, "")
		require.True(t, ok)
		assert.Equal(t, "sk", secret)
	})
}

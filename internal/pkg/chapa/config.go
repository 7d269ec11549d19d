package chapa

import "os"

// Setting keys for gateway secrets persisted in system settings.
const (
	SettingSecretKey     = "chapa_secret_key"
	SettingWebhookSecret = "chapa_webhook_secret"
)

// Environment fallbacks.
const (
	EnvSecretKey     = "CHAPA_SECRET_KEY"
	EnvWebhookSecret = "CHAPA_WEBHOOK_SECRET"
)

// SettingSource yields a persisted setting value, reporting whether the
// key exists and is non-empty.
type SettingSource interface {
	GetSetting(key string) (string, bool)
}

// ResolveSecret resolves a gateway secret for one call: the persisted
// setting wins, then the environment variable, then the value from the
// config file; ok is false when none is set. Callers resolve on every
// request so an admin settings change takes effect without a restart.
func ResolveSecret(src SettingSource, settingKey, envVar, configured string) (secret string, ok bool) {
	if src != nil {
		if v, found := src.GetSetting(settingKey); found {
			return v, true
		}
	}
	if v := os.Getenv(envVar); v != "" {
		return v, true
	}
	if configured != "" {
		return configured, true
	}
	return "", false
}

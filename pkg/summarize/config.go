package summarize

import (
	"github.com/spf13/viper"
)

// FromConfig builds the configured Summarizer. The `ai` section of .tend.yaml
// (or TEND_AI_* env vars) selects the remote client; without an API key every
// feature keeps working through the offline fallback.
func FromConfig() Summarizer {
	viper.SetEnvPrefix("TEND")
	viper.AutomaticEnv()
	_ = viper.BindEnv("ai.url", "TEND_AI_URL")
	_ = viper.BindEnv("ai.key", "TEND_AI_KEY")
	_ = viper.BindEnv("ai.model", "TEND_AI_MODEL")

	key := viper.GetString("ai.key")
	if key == "" {
		return Fallback{}
	}
	return NewClient(ClientConfig{
		BaseURL: viper.GetString("ai.url"),
		APIKey:  key,
		Model:   viper.GetString("ai.model"),
	})
}

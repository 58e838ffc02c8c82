package site

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to override keys read from the environment, e.g.
// SENSEI_SITE_CONFIG_TITLE overrides config.title.
const EnvPrefix = "SENSEI_SITE"

// Load reads the override file at path on top of Default, applies environment
// overrides and validates the result. The file format follows its extension
// (yaml, yml, json or toml). An empty path yields the validated defaults plus
// environment overrides.
func Load(path string) (Site, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Site{}, fmt.Errorf("read site file %s: %w", path, err)
		}
	}

	return unmarshal(v)
}

// Decode is Load for an in-memory source. format is one of yaml, json or toml.
func Decode(r io.Reader, format string) (Site, error) {
	v := newViper()
	v.SetConfigType(format)

	if err := v.ReadConfig(r); err != nil {
		return Site{}, fmt.Errorf("decode site %s: %w", format, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("baseurl", d.BaseURL)
	v.SetDefault("work", d.WorkDirectory)
	v.SetDefault("config.cname", d.Config.DomainName)
	v.SetDefault("config.title", d.Config.Title)
	v.SetDefault("config.description", d.Config.Description)
	v.SetDefault("config.subtitle", d.Config.Subtitle)
	v.SetDefault("config.author", d.Config.Author)
	v.SetDefault("config.timezone", d.Config.Timezone)
	v.SetDefault("config.url", d.Config.SiteURL)
	v.SetDefault("config.root", d.Config.RootPath)
	v.SetDefault("config.github", d.Config.RepositorySlug)
	v.SetDefault("config.authorlink", d.Config.AuthorLink)
	v.SetDefault("config.markdown.gfm", d.Config.MarkdownOptions.GFMEnabled)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func unmarshal(v *viper.Viper) (Site, error) {
	var s Site
	if err := v.Unmarshal(&s); err != nil {
		return Site{}, fmt.Errorf("unmarshal site: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Site{}, fmt.Errorf("invalid site: %w", err)
	}

	return s, nil
}

package site

import (
	"strings"
	"time"
)

const (
	DefaultBaseURL        = ""
	DefaultWorkDirectory  = "./build-tmp"
	DefaultDomainName     = "sensei-insitu.org"
	DefaultTitle          = "sensei"
	DefaultDescription    = `"Scalable in situ visualization and analysis."`
	DefaultSubtitle       = `"Lightweight, zero-copy simulation adaptor."`
	DefaultAuthor         = "sensei"
	DefaultTimezone       = "UTC"
	DefaultSiteURL        = "https://kitware.github.io/sensei"
	DefaultRootPath       = "/"
	DefaultRepositorySlug = "kitware/sensei"
	DefaultAuthorLink     = "https://www.kitware.com/"
	DefaultGFMEnabled     = false
)

// MarkdownOptions toggles markdown dialect extensions used while rendering pages.
type MarkdownOptions struct {
	GFMEnabled bool `mapstructure:"gfm" json:"gfm" yaml:"gfm" toml:"gfm"`
}

// Settings is the nested metadata block the site generator reads as "config".
type Settings struct {
	DomainName      string          `mapstructure:"cname" json:"cname" yaml:"cname" toml:"cname"`
	Title           string          `mapstructure:"title" json:"title" yaml:"title" toml:"title"`
	Description     string          `mapstructure:"description" json:"description" yaml:"description" toml:"description"`
	Subtitle        string          `mapstructure:"subtitle" json:"subtitle" yaml:"subtitle" toml:"subtitle"`
	Author          string          `mapstructure:"author" json:"author" yaml:"author" toml:"author"`
	Timezone        string          `mapstructure:"timezone" json:"timezone" yaml:"timezone" toml:"timezone"`
	SiteURL         string          `mapstructure:"url" json:"url" yaml:"url" toml:"url"`
	RootPath        string          `mapstructure:"root" json:"root" yaml:"root" toml:"root"`
	RepositorySlug  string          `mapstructure:"github" json:"github" yaml:"github" toml:"github"`
	AuthorLink      string          `mapstructure:"authorlink" json:"authorLink" yaml:"authorLink" toml:"authorLink"`
	MarkdownOptions MarkdownOptions `mapstructure:"markdown" json:"markdown" yaml:"markdown" toml:"markdown"`
}

// Site is the site configuration record. Values are handed out by copy and
// never mutated after construction.
type Site struct {
	BaseURL       string   `mapstructure:"baseurl" json:"baseUrl" yaml:"baseUrl" toml:"baseUrl"`
	WorkDirectory string   `mapstructure:"work" json:"work" yaml:"work" toml:"work"`
	Config        Settings `mapstructure:"config" json:"config" yaml:"config" toml:"config"`
}

// Default returns the canonical SENSEI documentation site record.
func Default() Site {
	return Site{
		BaseURL:       DefaultBaseURL,
		WorkDirectory: DefaultWorkDirectory,
		Config: Settings{
			DomainName:     DefaultDomainName,
			Title:          DefaultTitle,
			Description:    DefaultDescription,
			Subtitle:       DefaultSubtitle,
			Author:         DefaultAuthor,
			Timezone:       DefaultTimezone,
			SiteURL:        DefaultSiteURL,
			RootPath:       DefaultRootPath,
			RepositorySlug: DefaultRepositorySlug,
			AuthorLink:     DefaultAuthorLink,
			MarkdownOptions: MarkdownOptions{
				GFMEnabled: DefaultGFMEnabled,
			},
		},
	}
}

// Location resolves the configured timezone. An empty timezone means UTC.
func (s Site) Location() (*time.Location, error) {
	if s.Config.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Config.Timezone)
}

// RepositoryURL returns the source hosting URL for the repository slug, or an
// empty string when no slug is set.
func (s Site) RepositoryURL() string {
	slug := strings.Trim(s.Config.RepositorySlug, "/")
	if slug == "" {
		return ""
	}
	return "https://github.com/" + slug
}

package site_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kitware/sensei-site/site"
)

var _ = Describe("Load", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "site-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
		os.Unsetenv("SENSEI_SITE_CONFIG_TITLE")
		os.Unsetenv("SENSEI_SITE_CONFIG_MARKDOWN_GFM")
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	Context("without a site file", func() {
		It("returns the defaults", func() {
			s, err := site.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(site.Default()))
		})

		It("applies environment overrides", func() {
			os.Setenv("SENSEI_SITE_CONFIG_TITLE", "sensei-dev")
			os.Setenv("SENSEI_SITE_CONFIG_MARKDOWN_GFM", "true")

			s, err := site.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Config.Title).To(Equal("sensei-dev"))
			Expect(s.Config.MarkdownOptions.GFMEnabled).To(BeTrue())
			Expect(s.Config.Author).To(Equal("sensei"))
		})
	})

	Context("with a yaml site file", func() {
		It("overrides only the given fields", func() {
			path := writeFile("site.yaml", `
baseUrl: /sensei
config:
  title: SENSEI docs
  authorLink: https://example.org/
  markdown:
    gfm: true
`)
			s, err := site.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.BaseURL).To(Equal("/sensei"))
			Expect(s.Config.Title).To(Equal("SENSEI docs"))
			Expect(s.Config.AuthorLink).To(Equal("https://example.org/"))
			Expect(s.Config.MarkdownOptions.GFMEnabled).To(BeTrue())
			Expect(s.WorkDirectory).To(Equal("./build-tmp"))
			Expect(s.Config.RepositorySlug).To(Equal("kitware/sensei"))
		})

		It("rejects invalid values", func() {
			path := writeFile("site.yaml", `
config:
  timezone: Nowhere/Land
`)
			_, err := site.Load(path)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("timezone"))
		})
	})

	Context("with a toml site file", func() {
		It("reads the nested block", func() {
			path := writeFile("site.toml", `
work = "./out"

[config]
github = "kitware/sensei-docs"
`)
			s, err := site.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.WorkDirectory).To(Equal("./out"))
			Expect(s.Config.RepositorySlug).To(Equal("kitware/sensei-docs"))
		})
	})

	It("fails for a missing file", func() {
		_, err := site.Load(filepath.Join(tempDir, "missing.yaml"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Decode", func() {
	It("reads json", func() {
		s, err := site.Decode(strings.NewReader(`{"config":{"cname":"docs.example.org"}}`), "json")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Config.DomainName).To(Equal("docs.example.org"))
		Expect(s.Config.Title).To(Equal("sensei"))
	})

	It("keeps literal quotes in free text", func() {
		s, err := site.Decode(strings.NewReader(`config:
  description: '"quoted"'
`), "yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Config.Description).To(Equal(`"quoted"`))
	})

	It("fails on malformed input", func() {
		_, err := site.Decode(strings.NewReader(`{"config":`), "json")
		Expect(err).To(HaveOccurred())
	})
})

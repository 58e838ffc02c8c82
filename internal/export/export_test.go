package export_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kitware/sensei-site/internal/export"
	"github.com/kitware/sensei-site/site"
)

const expectedJS = `module.exports = {
  baseUrl: '',
  work: './build-tmp',
  config: {
    cname: 'sensei-insitu.org',
    title: 'sensei',
    description: '"Scalable in situ visualization and analysis."',
    subtitle: '"Lightweight, zero-copy simulation adaptor."',
    author: 'sensei',
    timezone: 'UTC',
    url: 'https://kitware.github.io/sensei',
    root: '/',
    github: 'kitware/sensei',
    authorLink: 'https://www.kitware.com/',
    markdown: {
      gfm: false,
    },
  },
};
`

var _ = Describe("Export", func() {
	Describe("ParseFormat", func() {
		DescribeTable("known names",
			func(name string, want export.Format) {
				f, err := export.ParseFormat(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(f).To(Equal(want))
			},
			Entry("js", "js", export.FormatJS),
			Entry("javascript", "JavaScript", export.FormatJS),
			Entry("json", "json", export.FormatJSON),
			Entry("yml", "yml", export.FormatYAML),
			Entry("toml", " TOML ", export.FormatTOML),
		)

		It("rejects unknown names", func() {
			_, err := export.ParseFormat("xml")
			Expect(err).To(MatchError(export.ErrUnknownFormat))
		})
	})

	Describe("Write", func() {
		It("renders the generator module for the default record", func() {
			var buf bytes.Buffer
			Expect(export.Write(&buf, site.Default(), export.FormatJS)).To(Succeed())
			Expect(buf.String()).To(Equal(expectedJS))
		})

		It("escapes single quotes and backslashes in js strings", func() {
			s := site.Default()
			s.Config.Title = `it's a \ title`

			var buf bytes.Buffer
			Expect(export.Write(&buf, s, export.FormatJS)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`title: 'it\'s a \\ title',`))
		})

		It("writes the gfm flag as a literal boolean", func() {
			s := site.Default()
			s.Config.MarkdownOptions.GFMEnabled = true

			var buf bytes.Buffer
			Expect(export.Write(&buf, s, export.FormatJS)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("gfm: true,"))
		})

		It("uses the generator's key names in json", func() {
			var buf bytes.Buffer
			Expect(export.Write(&buf, site.Default(), export.FormatJSON)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`"baseUrl": ""`))
			Expect(buf.String()).To(ContainSubstring(`"cname": "sensei-insitu.org"`))
			Expect(buf.String()).To(ContainSubstring(`"authorLink": "https://www.kitware.com/"`))
			Expect(buf.String()).To(ContainSubstring(`"gfm": false`))
		})

		DescribeTable("round trips through site.Decode",
			func(format export.Format) {
				var buf bytes.Buffer
				Expect(export.Write(&buf, site.Default(), format)).To(Succeed())

				s, err := site.Decode(&buf, string(format))
				Expect(err).NotTo(HaveOccurred())
				Expect(s).To(Equal(site.Default()))
			},
			Entry("json", export.FormatJSON),
			Entry("yaml", export.FormatYAML),
			Entry("toml", export.FormatTOML),
		)

		It("round trips a non-default record", func() {
			s := site.Default()
			s.BaseURL = "/sensei"
			s.Config.Title = "SENSEI"
			s.Config.MarkdownOptions.GFMEnabled = true

			var buf bytes.Buffer
			Expect(export.Write(&buf, s, export.FormatYAML)).To(Succeed())

			got, err := site.Decode(&buf, "yaml")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(s))
		})

		It("rejects unknown formats", func() {
			var buf bytes.Buffer
			err := export.Write(&buf, site.Default(), export.Format("xml"))
			Expect(err).To(MatchError(export.ErrUnknownFormat))
		})
	})

	Describe("WriteFile", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "export-test-*")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(tempDir)
		})

		It("creates parent directories and writes the file", func() {
			path := filepath.Join(tempDir, "doc", "config.js")
			Expect(export.WriteFile(path, site.Default(), export.FormatJS)).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(expectedJS))
		})

		It("leaves no temporary files behind", func() {
			path := filepath.Join(tempDir, "config.json")
			Expect(export.WriteFile(path, site.Default(), export.FormatJSON)).To(Succeed())

			entries, err := os.ReadDir(tempDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})
})

package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/kitware/sensei-site/site"
)

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// writeJS emits the CommonJS module the site generator requires.
func writeJS(w io.Writer, s site.Site) error {
	bw := bufio.NewWriter(w)
	c := s.Config

	bw.WriteString("module.exports = {\n")
	jsString(bw, 1, "baseUrl", s.BaseURL)
	jsString(bw, 1, "work", s.WorkDirectory)
	bw.WriteString("  config: {\n")
	jsString(bw, 2, "cname", c.DomainName)
	jsString(bw, 2, "title", c.Title)
	jsString(bw, 2, "description", c.Description)
	jsString(bw, 2, "subtitle", c.Subtitle)
	jsString(bw, 2, "author", c.Author)
	jsString(bw, 2, "timezone", c.Timezone)
	jsString(bw, 2, "url", c.SiteURL)
	jsString(bw, 2, "root", c.RootPath)
	jsString(bw, 2, "github", c.RepositorySlug)
	jsString(bw, 2, "authorLink", c.AuthorLink)
	bw.WriteString("    markdown: {\n")
	bw.WriteString("      gfm: " + strconv.FormatBool(c.MarkdownOptions.GFMEnabled) + ",\n")
	bw.WriteString("    },\n")
	bw.WriteString("  },\n")
	bw.WriteString("};\n")

	return bw.Flush()
}

func jsString(bw *bufio.Writer, depth int, key, value string) {
	bw.WriteString(strings.Repeat("  ", depth))
	bw.WriteString(key)
	bw.WriteString(": '")
	bw.WriteString(jsEscaper.Replace(value))
	bw.WriteString("',\n")
}

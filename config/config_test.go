package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kitware/sensei-site/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("SENSEI_SERVER_ADDRESS")
		os.Unsetenv("SENSEI_LOGGING_LEVEL")
	})

	Describe("Load", func() {
		Context("with valid config file", func() {
			var configPath string

			BeforeEach(func() {
				configContent := `
server:
  address: "127.0.0.1:8000"
  environment: "prod"

logging:
  level: "debug"

site:
  file: "site.yaml"
  watch: true

docs:
  dir: "./docs"

export:
  format: "json"
  out: "build/config.json"

check:
  timeout: "2s"
`
				configPath = filepath.Join(tempDir, "config.yaml")
				Expect(os.WriteFile(configPath, []byte(configContent), 0644)).To(Succeed())
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load(configPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal("127.0.0.1:8000"))
				Expect(cfg.Server.Environment).To(Equal(config.EnvProd))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
				Expect(cfg.Site.File).To(Equal("site.yaml"))
				Expect(cfg.Site.Watch).To(BeTrue())
				Expect(cfg.Docs.Dir).To(Equal("./docs"))
				Expect(cfg.Export.Format).To(Equal("json"))
				Expect(cfg.Export.Out).To(Equal("build/config.json"))
				Expect(cfg.CheckTimeout()).To(Equal(2 * time.Second))
			})

			It("should be discovered in the working directory", func() {
				Expect(os.Chdir(tempDir)).To(Succeed())

				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal("127.0.0.1:8000"))
			})

			It("should let environment variables win", func() {
				os.Setenv("SENSEI_SERVER_ADDRESS", ":9000")

				cfg, err := config.Load(configPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal(":9000"))
			})
		})

		Context("without a config file", func() {
			BeforeEach(func() {
				Expect(os.Chdir(tempDir)).To(Succeed())
			})

			It("should use defaults", func() {
				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Address).To(Equal(":4000"))
				Expect(cfg.Server.Environment).To(Equal(config.EnvDev))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelInfo))
				Expect(cfg.Site.File).To(BeEmpty())
				Expect(cfg.Docs.Dir).To(Equal("./doc"))
				Expect(cfg.Export.Format).To(Equal("js"))
				Expect(cfg.Export.Out).To(BeEmpty())
				Expect(cfg.CheckTimeout()).To(Equal(5 * time.Second))
			})

			It("should fail for an explicit missing path", func() {
				_, err := config.Load(filepath.Join(tempDir, "missing.yaml"))
				Expect(err).To(HaveOccurred())
			})

			It("should reject an invalid log level from the environment", func() {
				os.Setenv("SENSEI_LOGGING_LEVEL", "verbose")
				_, err := config.Load("")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = &config.Config{
				Server:  config.ServerConfig{Address: ":4000", Environment: config.EnvDev},
				Logging: config.LoggingConfig{Level: config.LogLevelInfo},
				Docs:    config.DocsConfig{Dir: "./doc"},
				Export:  config.ExportConfig{Format: "js", Out: "config.js"},
				Check:   config.CheckConfig{Timeout: "5s"},
			}
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject an unknown environment", func() {
			cfg.Server.Environment = "qa"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a malformed address", func() {
			cfg.Server.Address = "localhost"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an unknown export format", func() {
			cfg.Export.Format = "xml"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject a non-positive timeout", func() {
			cfg.Check.Timeout = "0s"
			Expect(cfg.Validate()).NotTo(Succeed())
		})

		It("should reject an empty docs directory", func() {
			cfg.Docs.Dir = ""
			Expect(cfg.Validate()).NotTo(Succeed())
		})
	})
})

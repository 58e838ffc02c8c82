// Package export writes a site record in the formats the site generator and
// surrounding tooling consume: the CommonJS config.js module, JSON, YAML and TOML.
package export

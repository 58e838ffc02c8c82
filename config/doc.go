// Package config handles loading of the sensei-site tool settings from YAML
// files and environment variables: server address and environment, logging
// level, the site override file, docs directory and export target.
package config

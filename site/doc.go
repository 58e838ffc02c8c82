// Package site defines the documentation site configuration record consumed by
// the static site generator, together with its canonical SENSEI values,
// structural validation and loading of file/environment overrides.
package site

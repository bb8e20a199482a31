package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, URL validation, playlist expansion, and OS open/reveal.

package config

// CompiledSecret holds the embedded VLARCH_SECRET provided at build time via
// -ldflags. When empty, the helper falls back to reading the VLARCH_SECRET
// environment variable for local development.
var CompiledSecret string

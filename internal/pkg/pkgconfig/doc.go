// Package pkgconfig reads settings through the Config interface, backed by
// Viper in production.
//
// Keys are dotted paths into config/config.yaml, e.g.
// "modules.viz.upload.max_bytes" or "server.rate_limit.rps". Missing keys read
// as zero values, and the viz module falls back to its own defaults for those.
package pkgconfig

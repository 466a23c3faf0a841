// Package file persists settings as TOML at ~/.leasefill/config.toml.
// Dotted keys such as "delivery.url" map to [delivery] url = ... sections.
package file

// Package synthetic generates plausible keyword records locally.
// It is the default source when no advertising API is configured.
package synthetic

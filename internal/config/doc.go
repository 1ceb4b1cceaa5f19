// Package config defines the process-wide configuration of the application
// and how it is assembled: built-in defaults, an optional config file, APLAB_
// environment variables and command-line flags, in increasing order of
// precedence. The result is validated before the application starts and is
// immutable afterwards.
package config

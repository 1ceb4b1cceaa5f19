// Package cli builds the aplab command tree. It translates flags, the
// optional config file and the environment into the application's
// configuration, and maps failures to process exit codes.
package cli

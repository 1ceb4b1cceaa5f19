// Package app wires the application together: logger, topic registry,
// dispatcher, session store, metrics and the HTTP host. It owns the process
// lifecycle and is decoupled from the CLI that starts it.
package app

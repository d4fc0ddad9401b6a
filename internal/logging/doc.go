// Package logging builds the application's slog logger with console and JSON
// handlers. The console handler renders the "component" attribute as a
// message prefix and the remaining attributes as key=value pairs.
package logging

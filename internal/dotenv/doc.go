// Package dotenv manages the application's KEY=VALUE configuration file:
// seeding it from a template without ever overwriting an existing file,
// reading it back, redacting secrets for display and spotting credentials
// that still hold their template placeholder.
package dotenv

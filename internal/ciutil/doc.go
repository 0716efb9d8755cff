// Package ciutil detects the execution environment (CI or local) and resolves
// the environment variables tests use to find an external database.
package ciutil

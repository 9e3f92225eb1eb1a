// Package startup handles configuration loading from environment variables
// and the structured startup/shutdown logging of the service.
package startup

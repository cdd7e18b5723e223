// Package modules contains all built-in lint modules.
// Import this package to register all modules via their init() functions.
package modules

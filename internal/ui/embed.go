// Package ui embeds the dashboard shell served for every page route.
package ui

import "embed"

// Dist embeds the compiled frontend assets from ui/dist/.
//
//go:embed all:dist
var Dist embed.FS

// Pages are the dashboard routes that serve the shell.
var Pages = []string{"/login", "/dashboard", "/signups", "/access", "/account"}

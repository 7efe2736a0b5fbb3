package templates

import "embed"

// FS holds the page layout, pages and partials rendered by the web server.
//
//go:embed base.html pages/*.html partials/*.html
var FS embed.FS

// Package webpage renders the HTML pages served by the provisioned web
// server. Templates use ${VARIABLE} placeholders substituted at render
// time. Values come from the instance metadata service and are embedded
// verbatim, without HTML escaping.
package webpage

import _ "embed"

// MinimalTemplate is the one-line page written by the minimal provisioner.
//
//go:embed templates/minimal.html.tmpl
var MinimalTemplate string

// StatusTemplate is the styled status page written by the full provisioner.
//
//go:embed templates/status.html.tmpl
var StatusTemplate string

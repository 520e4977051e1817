// Package stdlib holds the xen standard library, written in xen itself.
package stdlib

import _ "embed"

// Prelude is evaluated into every new runtime unless the standard library
// is disabled.
//
//go:embed prelude.xen
var Prelude string

// PreludeName is the unit name used in diagnostics for the prelude.
const PreludeName = "prelude.xen"

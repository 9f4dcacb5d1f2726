package source

import _ "embed"

// Default source configuration bundled with the binary, used when no
// --config file is supplied.
//
//go:embed sources.yaml
var defaultSources []byte

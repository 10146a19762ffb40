// Package docs registers the OpenAPI document served under /swagger.
// Regenerate swagger.json with: swag init -g cmd/server/main.go --outputTypes json
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed swagger.json
var doc string

type spec struct{}

func (spec) ReadDoc() string {
	return doc
}

func init() {
	swag.Register(swag.Name, spec{})
}

// Command schemagen generates the JSON schema for the ffprefs configuration.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/ffprefs/pkg/config"
	"github.com/macropower/ffprefs/pkg/yaml"
)

var outFile = flag.String("o", "schema.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	gen := yaml.NewSchemaGenerator(config.NewConfig())

	// Field comments become schema descriptions when run from the package
	// directory via go:generate.
	err := gen.AddGoComments("github.com/macropower/ffprefs/pkg/config", "./")
	if err != nil {
		log.Printf("skip go comments: %v", err)
	}

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}

// Command schema writes the JSON schema of the eventscope config file.
// Used by go:generate in pkg/config, the output is embedded and checked on startup.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/umputun/eventscope/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schema := config.GenerateSchema()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}

	sections := []string{}
	if def, ok := schema.Definitions["Config"]; ok && def.Properties != nil {
		for pair := def.Properties.Oldest(); pair != nil; pair = pair.Next() {
			sections = append(sections, pair.Key)
		}
	}
	sort.Strings(sections)
	fmt.Printf("schema with sections %v written to %s\n", sections, outputPath)
}

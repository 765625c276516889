package openai

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"dermAssist/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed rerank_output.schema.json
var rerankSchemaJSON string

//go:embed vision_output.schema.json
var visionSchemaJSON string

// rerankSchema is the compiled JSON Schema for reranker completions.
var rerankSchema *jsonschema.Schema

// visionSchema is the compiled JSON Schema for vision completions.
var visionSchema *jsonschema.Schema

func init() {
	rerankSchema = mustCompileSchema(rerankSchemaJSON, "rerank_output.schema.json")
	visionSchema = mustCompileSchema(visionSchemaJSON, "vision_output.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// parseRerankOutput parses, alias-normalizes and schema-validates a
// completion. All failures are ErrMalformedCompletion and terminal.
func parseRerankOutput(content string) (*domain.RerankOutput, error) {
	obj, err := parseObject(content)
	if err != nil {
		return nil, err
	}

	normalizeAliases(obj, rerankAliases)

	if err := rerankSchema.Validate(obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}

	var out domain.RerankOutput
	if err := decodeInto(obj, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func parseVisionOutput(content string) (*domain.VisionAnalysis, error) {
	obj, err := parseObject(content)
	if err != nil {
		return nil, err
	}

	normalizeAliases(obj, visionAliases)

	if err := visionSchema.Validate(obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}

	var out domain.VisionAnalysis
	if err := decodeInto(obj, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func parseObject(content string) (map[string]any, error) {
	raw, err := jsonschema.UnmarshalJSON(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: completion is not a JSON object", domain.ErrMalformedCompletion)
	}

	return obj, nil
}

func decodeInto(obj map[string]any, target any) error {
	buf, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}
	if err := json.Unmarshal(buf, target); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedCompletion, err)
	}
	return nil
}

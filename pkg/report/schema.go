package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/speakeasy-api/openapi/jsonschema/oas3"
	"github.com/speakeasy-api/openapi/sequencedmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ValidationError is one violation of the report schema.
type ValidationError struct {
	Path string // JSONPath of the offending value
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Path, e.Msg)
}

func typed(t oas3.SchemaType) *oas3.Schema {
	return &oas3.Schema{Type: oas3.NewTypeFromString(t)}
}

func object(required []string, props ...any) *oas3.Schema {
	s := typed(oas3.SchemaTypeObject)
	s.Properties = sequencedmap.New[string, *oas3.JSONSchema[oas3.Referenceable]]()
	for i := 0; i+1 < len(props); i += 2 {
		s.Properties.Set(props[i].(string), oas3.NewJSONSchemaFromSchema[oas3.Referenceable](props[i+1].(*oas3.Schema)))
	}
	s.Required = required
	return s
}

func array(items *oas3.Schema) *oas3.Schema {
	s := typed(oas3.SchemaTypeArray)
	s.Items = oas3.NewJSONSchemaFromSchema[oas3.Referenceable](items)
	return s
}

func integer(lo, hi *float64) *oas3.Schema {
	s := typed(oas3.SchemaTypeInteger)
	s.Minimum = lo
	s.Maximum = hi
	return s
}

func bound(v float64) *float64 { return &v }

func digits() *oas3.Schema {
	s := typed(oas3.SchemaTypeString)
	p := "^[1-9]+$"
	s.Pattern = &p
	return s
}

// Schema returns the JSON schema of a report's JSON and YAML encodings.
func Schema() *oas3.Schema {
	digit := integer(bound(1), bound(9))
	row := object([]string{"index", "kind", "divisor", "offset", "addition"},
		"index", integer(bound(0), nil),
		"kind", typed(oas3.SchemaTypeString),
		"divisor", integer(bound(1), bound(26)),
		"offset", integer(nil, nil),
		"addition", integer(nil, nil),
		"high", digit,
		"low", digit,
		"formula", typed(oas3.SchemaTypeString),
	)
	return object([]string{"solved", "chunks"},
		"solved", typed(oas3.SchemaTypeBoolean),
		"highest", digits(),
		"lowest", digits(),
		"chunks", array(row),
	)
}

// schemaURL identifies the compiled report schema.
const schemaURL = "https://github.com/speakeasy-api/alu/report.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles Schema once through its JSON form.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := schemaNode(Schema()).Decode(&doc); err != nil {
			compileErr = fmt.Errorf("failed to decode report schema: %w", err)
			return
		}
		doc, err := normalize(doc)
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("failed to add report schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// normalize round-trips v through JSON so numbers and maps have the
// shapes the validator expects.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// Validate checks a decoded report against Schema and returns every
// violation joined into one error.
func Validate(v map[string]any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := normalize(v)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	err = sch.Validate(inst)
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectViolations(ve, &errs)
	return errors.Join(errs...)
}

var printer = message.NewPrinter(language.English)

// collectViolations flattens the validator's error tree into one
// ValidationError per leaf.
func collectViolations(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPath(ve.InstanceLocation),
			Msg:  ve.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, c := range ve.Causes {
		collectViolations(c, errs)
	}
}

func jsonPath(loc []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, tok := range loc {
		if _, err := strconv.Atoi(tok); err == nil {
			b.WriteString("[" + tok + "]")
		} else {
			b.WriteString("." + tok)
		}
	}
	return b.String()
}

// Check validates r itself.
func (r *Report) Check() error {
	v, err := r.toValue()
	if err != nil {
		return err
	}
	return Validate(v)
}

func schemaType(s *oas3.Schema) string {
	if types := s.GetType(); len(types) == 1 {
		return string(types[0])
	}
	return ""
}

// WriteSchema writes Schema to w as YAML.
func WriteSchema(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(schemaNode(Schema())); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func schemaNode(s *oas3.Schema) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		n.Content = append(n.Content, scalar("!!str", key), value)
	}

	if t := schemaType(s); t != "" {
		add("type", scalar("!!str", t))
	}
	if s.Minimum != nil {
		add("minimum", scalar("!!int", strconv.FormatFloat(*s.Minimum, 'f', -1, 64)))
	}
	if s.Maximum != nil {
		add("maximum", scalar("!!int", strconv.FormatFloat(*s.Maximum, 'f', -1, 64)))
	}
	if s.Pattern != nil {
		add("pattern", scalar("!!str", *s.Pattern))
	}
	if t := schemaType(s); t == "object" {
		add("additionalProperties", scalar("!!bool", "false"))
	}
	if len(s.Required) > 0 {
		req := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range s.Required {
			req.Content = append(req.Content, scalar("!!str", r))
		}
		add("required", req)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		props := &yaml.Node{Kind: yaml.MappingNode}
		for k, v := range s.Properties.All() {
			if v == nil || v.Left == nil {
				continue
			}
			props.Content = append(props.Content, scalar("!!str", k), schemaNode(v.Left))
		}
		add("properties", props)
	}
	if s.Items != nil && s.Items.Left != nil {
		add("items", schemaNode(s.Items.Left))
	}
	return n
}

// Package structurer turns resume text into a StructuredResume with an LLM.
package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"jobrec/internal/apperr"
	"jobrec/internal/llm"
	"jobrec/internal/model"
)

// MaxInputRunes caps the resume text sent to the model.
const MaxInputRunes = 10000

const promptTemplate = `You are a resume parsing assistant. Strictly return output in raw JSON format (no explanations or text).
Example:
{
  "skills": ["Python", "TensorFlow", "FastAPI"],
  "education": "B.Tech in Computer Science",
  "experience": "2 years as ML Engineer"
}

Analyze this resume and output JSON only:
Resume Text:
%s
`

// resumeSchema only constrains the fields we read; extra keys are ignored and
// missing keys default to empty values.
const resumeSchema = `{
  "type": "object",
  "properties": {
    "skills":     {"type": ["array", "null"], "items": {"type": "string"}},
    "education":  {"type": ["string", "null"]},
    "experience": {"type": ["string", "null"]}
  }
}`

var (
	jsonSpan = regexp.MustCompile(`\{[\s\S]*\}`)
	schema   = mustSchema(resumeSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("structurer: invalid resume schema: %v", err))
	}
	return s
}

// Structurer asks the model for a JSON profile and decodes the reply.
type Structurer struct {
	gen llm.Generator
}

// New returns a Structurer backed by gen.
func New(gen llm.Generator) *Structurer {
	return &Structurer{gen: gen}
}

// Prompt builds the fixed instruction prompt around text truncated to MaxInputRunes.
func Prompt(text string) string {
	return fmt.Sprintf(promptTemplate, truncate(text, MaxInputRunes))
}

// Structure runs one completion and returns the decoded resume.
func (s *Structurer) Structure(ctx context.Context, text string) (model.StructuredResume, error) {
	raw, err := s.gen.GenerateContent(ctx, Prompt(text))
	if err != nil {
		return model.StructuredResume{}, apperr.Wrap(apperr.KindDownstreamUnavailable, "model request failed", err)
	}
	return Parse(raw)
}

// Parse scrapes the JSON object out of a free-text model reply and decodes it.
func Parse(raw string) (model.StructuredResume, error) {
	span, ok := ScrapeJSON(raw)
	if !ok {
		return model.StructuredResume{}, apperr.New(apperr.KindNoJSONFound, "No valid JSON found in model response.")
	}
	return Decode(span)
}

// ScrapeJSON returns the widest span from the first '{' to the last '}'.
// The span is not guaranteed to be valid JSON.
func ScrapeJSON(raw string) (string, bool) {
	span := jsonSpan.FindString(raw)
	return span, span != ""
}

// Decode strictly decodes span into a StructuredResume. Anything that is not a
// JSON object with correctly typed fields is INVALID_JSON.
func Decode(span string) (model.StructuredResume, error) {
	var generic any
	if err := json.Unmarshal([]byte(span), &generic); err != nil {
		return model.StructuredResume{}, apperr.Wrap(apperr.KindInvalidJSON, "Model output contains invalid JSON format.", err)
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(generic))
	if err != nil {
		return model.StructuredResume{}, apperr.Wrap(apperr.KindInvalidJSON, "Model output contains invalid JSON format.", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return model.StructuredResume{}, apperr.Wrap(apperr.KindInvalidJSON,
			"Model output does not match the resume shape.",
			fmt.Errorf("%s", strings.Join(msgs, "; ")))
	}

	var out model.StructuredResume
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return model.StructuredResume{}, apperr.Wrap(apperr.KindInvalidJSON, "Model output contains invalid JSON format.", err)
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

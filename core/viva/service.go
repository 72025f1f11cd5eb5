package viva

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
)

var (
	// errors
	ErrNoOutput = errors.New("failed to generate viva questions")

	systemPrompt = "You are an expert Computer Science professor preparing a student for a lab viva (oral exam)."

	promptTmpl = template.Must(template.New("viva").Parse(`Generate 5 to 7 insightful viva questions based on the lab program's aim and code below.
For each question, provide a clear and concise answer. The questions should cover:
1. The core logic and algorithm used.
2. The purpose of key functions or code blocks.
3. Potential modifications or alternative approaches.
4. Underlying theory or concepts.
5. The program's output or behavior.

Reply with JSON only, in the form {"questions": [{"question": "...", "answer": "..."}]}.

## Aim/Problem Statement
{{.Aim}}

## Code
` + "```" + `
{{.Code}}
` + "```" + `
`))
)

type (
	Generator interface {
		Generate(ctx context.Context, req Request) (Set, error)
	}

	Service struct {
		llm core.LLMProvider
	}
)

var _ Generator = (*Service)(nil)

func NewService(llm core.LLMProvider) *Service {
	return &Service{llm: llm}
}

// Generate asks the LLM for 5 to 7 question/answer pairs about the program.
// There is no retry and no cache: any failure is returned to the caller.
func (svc *Service) Generate(ctx context.Context, req Request) (Set, error) {
	var prompt bytes.Buffer
	if err := promptTmpl.Execute(&prompt, req); err != nil {
		return Set{}, errors.Wrap(err, "rendering viva prompt")
	}

	out, err := svc.llm.Complete(ctx, prompt.String(), core.CompletionOpts{
		Format:      "json",
		System:      systemPrompt,
		Temperature: 0.4,
	})
	if err != nil {
		return Set{}, errors.Wrapf(err, "completing with %s", svc.llm.Name())
	}
	return parseSet(out)
}

// parseSet decodes the LLM output, keeping at most MaxQuestions complete pairs.
func parseSet(out string) (Set, error) {
	out = stripCodeFence(out)
	if out == "" {
		return Set{}, ErrNoOutput
	}

	var raw Set
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return Set{}, errors.Wrap(ErrNoOutput, "decoding viva questions: "+err.Error())
	}

	set := Set{Questions: make([]Question, 0, MaxQuestions)}
	for _, q := range raw.Questions {
		q.Question = core.CleanString(q.Question)
		q.Answer = core.CleanString(q.Answer)
		if q.Question == "" || q.Answer == "" {
			continue
		}
		set.Questions = append(set.Questions, q)
		if len(set.Questions) == MaxQuestions {
			break
		}
	}
	if len(set.Questions) < MinQuestions {
		return Set{}, errors.Wrapf(ErrNoOutput, "got %d usable questions", len(set.Questions))
	}
	return set, nil
}

// stripCodeFence removes a ```json ... ``` fence some models wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// IsGenerationError reports whether err means the remote generation step failed.
func IsGenerationError(err error) bool {
	return err != nil && errors.Cause(err) == ErrNoOutput
}

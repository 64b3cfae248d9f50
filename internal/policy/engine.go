// Package policy decides which reported commands are recorded.
package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/rego"
	"github.com/xiaot623/termmon/internal/domain"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// Input is the document a policy is evaluated against.
type Input struct {
	SessionID string `json:"session_id"`
	Index     uint32 `json:"index"`
	Command   string `json:"command"`
	Pwd       string `json:"pwd"`
	Status    uint32 `json:"status"`
}

// NewEngine creates a new policy engine with the given policy content.
// The module must define data.record_policy.decision.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.record_policy.decision"),
		rego.Module("record_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// NewEngineFromFile loads the policy module at path, or DefaultPolicy when path is empty.
func NewEngineFromFile(ctx context.Context, path string) (*Engine, error) {
	if path == "" {
		return NewEngine(ctx, DefaultPolicy)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return NewEngine(ctx, string(content))
}

// Evaluate returns the recording decision for input.
func (e *Engine) Evaluate(ctx context.Context, input Input) (domain.RecordDecision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	// An undefined decision records; the policy only opts commands out.
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.RecordDecisionRecord, nil
	}

	val := results[0].Expressions[0].Value
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("policy decision has type %T, want string", val)
	}

	switch decision := domain.RecordDecision(s); decision {
	case domain.RecordDecisionRecord, domain.RecordDecisionSkip:
		return decision, nil
	default:
		return "", fmt.Errorf("unknown policy decision %q", s)
	}
}

// DefaultPolicy records every command.
const DefaultPolicy = `
package record_policy

default decision = "record"
`

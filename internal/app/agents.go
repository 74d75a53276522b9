package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Agent role names.
const (
	AgentGenerator  = "generator"
	AgentReviewer   = "reviewer"
	AgentTester     = "tester"
	AgentRefactorer = "refactorer"
	AgentDocumenter = "documenter"
)

// agentSpec is a pure prompt template: {{task}} and {{context}} placeholders
// rendered around a fixed instruction. Roles never parse the model's output.
type agentSpec struct {
	DisplayName string
	Template    string
}

func defaultAgents() map[string]agentSpec {
	return map[string]agentSpec{
		AgentGenerator: {
			DisplayName: "Generator",
			Template: `You are an expert code generator. Generate clean, well-documented code for this task:

Task: {{task}}

Context: {{context}}

Requirements:
- Write production-ready, clean code
- Include proper error handling
- Add helpful comments and docstrings
- Follow best practices for the language
- Make it maintainable and extensible

Output only the code, no explanations.`,
		},
		AgentReviewer: {
			DisplayName: "Reviewer",
			Template: `You are a senior code reviewer. Review this code thoroughly:

Code to review:
{{task}}

Context: {{context}}

Provide a comprehensive review covering:
1. Code quality and style
2. Potential bugs
3. Performance issues
4. Best practice violations
5. Suggestions for improvement

Return as a structured report with specific line references where applicable.`,
		},
		AgentTester: {
			DisplayName: "Tester",
			Template: `You are a test generation expert. Generate comprehensive tests for this code:

Code to test:
{{task}}

Context: {{context}}

Requirements:
- Test normal behavior
- Test edge cases and boundary conditions
- Test error conditions
- Include assertions
- Follow test framework conventions for the language
- Ensure good coverage

Generate complete, runnable test code.`,
		},
		AgentRefactorer: {
			DisplayName: "Refactorer",
			Template: `You are a refactoring expert. Refactor this code for better quality:

Code:
{{task}}

Context: {{context}}

Refactoring goals:
- Improve readability
- Reduce complexity
- Apply design patterns where appropriate
- Optimize performance
- Maintain the same functionality
- Extract functions where appropriate

Return the refactored code with comments explaining changes.`,
		},
		AgentDocumenter: {
			DisplayName: "Documenter",
			Template: `You are a documentation expert. Create comprehensive documentation for this code:

Code:
{{task}}

Context: {{context}}

Generate:
1. Package-level documentation
2. Function documentation
3. Parameter descriptions
4. Return value documentation
5. Usage examples
6. Edge case notes

Follow standard documentation conventions for the language.`,
		},
	}
}

// AgentTeam maps role names to prompt templates over a single adapter.
// Chat failures are absorbed here into user-visible error strings; nothing
// at this layer raises on a failed model call.
type AgentTeam struct {
	adapter Adapter
	logger  *zap.Logger
	agents  map[string]agentSpec
}

func NewAgentTeam(adapter Adapter, logger *zap.Logger) *AgentTeam {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentTeam{
		adapter: adapter,
		logger:  logger,
		agents:  defaultAgents(),
	}
}

// LoadTemplateOverrides replaces role templates from a YAML file mapping
// role name to template text. A missing file is not an error; unknown role
// names are ignored.
func (t *AgentTeam) LoadTemplateOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	overrides := map[string]string{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse agent templates %s: %w", path, err)
	}
	for role, template := range overrides {
		spec, ok := t.agents[role]
		if !ok || strings.TrimSpace(template) == "" {
			continue
		}
		spec.Template = template
		t.agents[role] = spec
	}
	return nil
}

// ExecuteAgent runs one role against a task. Unknown roles come back as an
// "Unknown agent" string rather than an error.
func (t *AgentTeam) ExecuteAgent(ctx context.Context, role, task, taskContext string) string {
	spec, ok := t.agents[role]
	if !ok {
		return fmt.Sprintf("Unknown agent: %s", role)
	}
	return t.chat(ctx, role, renderAgentPrompt(spec.Template, task, taskContext))
}

// Collaborate runs roles sequentially against the same task and collects
// each role's output keyed by role name. Roles do not see each other's
// outputs; collaboration is independent invocation, not a pipeline.
func (t *AgentTeam) Collaborate(ctx context.Context, task string, roles []string, taskContext string) map[string]string {
	if len(roles) == 0 {
		roles = []string{AgentGenerator, AgentReviewer, AgentTester}
	}
	results := make(map[string]string, len(roles))
	for _, role := range roles {
		spec, ok := t.agents[role]
		if !ok {
			continue
		}
		t.logger.Info("agent working", zap.String("agent", spec.DisplayName))
		results[role] = t.chat(ctx, role, renderAgentPrompt(spec.Template, task, taskContext))
	}
	return results
}

// AgentList returns the known role names, sorted.
func (t *AgentTeam) AgentList() []string {
	names := make([]string, 0, len(t.agents))
	for name := range t.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *AgentTeam) chat(ctx context.Context, role, prompt string) string {
	out, err := t.adapter.Chat(ctx, prompt)
	if err != nil {
		t.logger.Warn("agent chat failed", zap.String("agent", role), zap.Error(err))
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}

func renderAgentPrompt(template, task, taskContext string) string {
	return strings.NewReplacer(
		"{{task}}", task,
		"{{context}}", taskContext,
	).Replace(template)
}

package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DealExMachina/nemotron-3-inference/client"
)

// fileSpec is the YAML shape of a user-supplied scenario file. Custom
// scenarios run after the built-in suites under their own category.
type fileSpec struct {
	Scenarios []scenarioSpec `yaml:"scenarios"`
}

type scenarioSpec struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Category    string            `yaml:"category"`
	Prompt      string            `yaml:"prompt"`
	Messages    []messageSpec     `yaml:"messages"`
	Assertions  []AssertionConfig `yaml:"assertions"`
	MaxTokens   int               `yaml:"max_tokens"`
	Temperature float32           `yaml:"temperature"`
}

type messageSpec struct {
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
}

// defaultCustomCategory groups file-loaded scenarios that declare none.
const defaultCustomCategory = "custom"

// LoadFile reads extra scenarios from a YAML file. Each entry needs an id,
// a prompt (or explicit messages), and at least one assertion; anything
// less would run a request whose outcome cannot be judged.
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if len(spec.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}

	scenarios := make([]Scenario, 0, len(spec.Scenarios))
	for i, s := range spec.Scenarios {
		if s.ID == "" {
			return nil, fmt.Errorf("scenario %d in %s has no id", i, path)
		}
		if s.Prompt == "" && len(s.Messages) == 0 {
			return nil, fmt.Errorf("scenario %q has neither prompt nor messages", s.ID)
		}
		if len(s.Assertions) == 0 {
			return nil, fmt.Errorf("scenario %q has no assertions", s.ID)
		}

		messages := make([]client.Message, 0, len(s.Messages)+1)
		for _, m := range s.Messages {
			messages = append(messages, client.Message{Role: m.Role, Content: m.Content})
		}
		if s.Prompt != "" {
			messages = append(messages, client.Message{Role: "user", Content: s.Prompt})
		}

		category := s.Category
		if category == "" {
			category = defaultCustomCategory
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}

		scenarios = append(scenarios, Scenario{
			ID:          s.ID,
			Name:        name,
			Category:    Category(category),
			Messages:    messages,
			Assertions:  s.Assertions,
			MaxTokens:   s.MaxTokens,
			Temperature: s.Temperature,
		})
	}
	return scenarios, nil
}

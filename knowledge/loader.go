package knowledge

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/knowledge.yaml
var defaultKnowledge []byte

// fileFormat mirrors data/knowledge.yaml.
type fileFormat struct {
	Categories []struct {
		Name   string `yaml:"name"`
		Topics []struct {
			Name     string   `yaml:"name"`
			Keywords []string `yaml:"keywords"`
			Response string   `yaml:"response"`
		} `yaml:"topics"`
	} `yaml:"categories"`
	Safety struct {
		Emergency  []string `yaml:"emergency"`
		Diagnosis  []string `yaml:"diagnosis"`
		Medication []string `yaml:"medication"`
	} `yaml:"safety"`
}

// Default returns the knowledge base compiled into the binary.
func Default() (*KnowledgeBase, error) {
	kb, err := Parse(defaultKnowledge)
	if err != nil {
		return nil, fmt.Errorf("embedded knowledge base: %w", err)
	}
	return kb, nil
}

// Load reads a knowledge base file. An empty path selects the embedded default.
func Load(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	kb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("knowledge base %s: %w", path, err)
	}
	return kb, nil
}

// Parse decodes YAML knowledge data.
func Parse(data []byte) (*KnowledgeBase, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var topics []TopicEntry
	for _, c := range file.Categories {
		for _, t := range c.Topics {
			topics = append(topics, TopicEntry{
				Key:      TopicKey{Category: c.Name, Topic: t.Name},
				Keywords: t.Keywords,
				Response: t.Response,
			})
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: no topics defined", ErrInvalidTopic)
	}

	return New(topics, SafetyKeywords{
		Emergency:  file.Safety.Emergency,
		Diagnosis:  file.Safety.Diagnosis,
		Medication: file.Safety.Medication,
	})
}

package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yml
var skillsYAML []byte

type skillCatalogFile struct {
	Skills []string `yaml:"skills"`
}

// SkillCatalog returns the built-in skill names in file order.
func SkillCatalog() ([]string, error) {
	return parseSkillCatalog(skillsYAML)
}

func parseSkillCatalog(data []byte) ([]string, error) {
	var file skillCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skill catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Skills))
	names := make([]string, 0, len(file.Skills))
	for _, raw := range file.Skills {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("skill catalog lists %q twice", name)
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

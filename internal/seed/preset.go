package seed

import (
	"fmt"
	"os"

	"chirp/internal/models"

	"gopkg.in/yaml.v3"
)

// PresetUser is one fixed user in a preset file.
type PresetUser struct {
	Login   string `yaml:"login"`
	Name    string `yaml:"name"`
	Surname string `yaml:"surname"`
	APIKey  string `yaml:"api_key"`
}

// Preset is a deterministic set of users loaded from YAML, used to seed
// known accounts for demos and acceptance environments.
type Preset struct {
	Users []PresetUser `yaml:"users"`
}

// LoadPreset reads and parses a preset YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	for i, u := range preset.Users {
		if u.Login == "" || u.APIKey == "" {
			return nil, fmt.Errorf("preset user %d is missing login or api_key", i)
		}
	}
	return &preset, nil
}

// ApplyPreset creates every user listed in the preset.
func (s *Seeder) ApplyPreset(preset *Preset) error {
	for _, u := range preset.Users {
		user := models.User{
			Login:        u.Login,
			Name:         u.Name,
			Surname:      u.Surname,
			APIKeyDigest: s.digest(u.APIKey),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create preset user %q: %w", u.Login, err)
		}
	}
	return nil
}

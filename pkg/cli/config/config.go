package config

import (
	"os"

	domainConfig "github.com/huddle-lab/standup/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig represents the optional application configuration file. It
// customizes the texts of the Slack modal forms; anything left out keeps
// its built-in default.
type AppConfig struct {
	Form FormSection `toml:"form"`
}

// FormSection holds per-field form text overrides
type FormSection struct {
	Progress FieldText `toml:"progress"`
	Blockers FieldText `toml:"blockers"`
	Goals    FieldText `toml:"goals"`
	Name     FieldText `toml:"name"`
	Link     FieldText `toml:"link"`
}

// FieldText overrides the label and placeholder of one modal input
type FieldText struct {
	Label       string `toml:"label"`
	Placeholder string `toml:"placeholder"`
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	return &config, nil
}

func (f FieldText) apply(field *domainConfig.FormField) {
	if f.Label != "" {
		field.Label = f.Label
	}
	if f.Placeholder != "" {
		field.Placeholder = f.Placeholder
	}
}

// ToFormConfig merges the file overrides onto the built-in form texts
func (a *AppConfig) ToFormConfig() (*domainConfig.FormConfig, error) {
	form := domainConfig.DefaultFormConfig()
	a.Form.Progress.apply(&form.Progress)
	a.Form.Blockers.apply(&form.Blockers)
	a.Form.Goals.apply(&form.Goals)
	a.Form.Name.apply(&form.Name)
	a.Form.Link.apply(&form.Link)

	if err := form.Validate(); err != nil {
		return nil, goerr.Wrap(err, "form config validation failed")
	}
	return form, nil
}

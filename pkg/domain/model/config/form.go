package config

import (
	"github.com/m-mizutani/goerr/v2"
)

// FormField is the label and placeholder of one modal input
type FormField struct {
	Label       string
	Placeholder string
}

// FormConfig customizes the texts of the update and create-meeting modal
// forms. Field semantics (required, 500 character limit) are fixed by the
// meeting model and not configurable.
type FormConfig struct {
	Progress FormField
	Blockers FormField
	Goals    FormField
	Name     FormField
	Link     FormField
}

// DefaultFormConfig returns the built-in form texts
func DefaultFormConfig() *FormConfig {
	return &FormConfig{
		Progress: FormField{
			Label:       "Progress",
			Placeholder: "What have you accomplished since the last update?",
		},
		Blockers: FormField{
			Label:       "Blockers",
			Placeholder: "What is blocking your progress?",
		},
		Goals: FormField{
			Label:       "Goals",
			Placeholder: "What are your goals for the next period?",
		},
		Name: FormField{
			Label:       "Name",
			Placeholder: "What is the name of the meeting?",
		},
		Link: FormField{
			Label:       "Link",
			Placeholder: "What is the link to the meeting?",
		},
	}
}

// Validate checks that no form label is empty
func (c *FormConfig) Validate() error {
	fields := map[string]FormField{
		"progress": c.Progress,
		"blockers": c.Blockers,
		"goals":    c.Goals,
		"name":     c.Name,
		"link":     c.Link,
	}
	for name, f := range fields {
		if f.Label == "" {
			return goerr.New("form field label is required", goerr.V("field", name))
		}
	}
	return nil
}

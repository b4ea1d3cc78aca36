package domain

import "fmt"

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// AddModel adds a new model to the configuration.
// Returns an error if a model with the same name already exists.
func (c *Config) AddModel(model ModelDefinition) error {
	if c.HasModel(model.Name) {
		return fmt.Errorf("model with name %s already exists", model.Name)
	}
	c.Models = append(c.Models, model)
	return nil
}

// RemoveModel removes a model by name. Removing the default model promotes
// the first remaining one.
func (c *Config) RemoveModel(name string) error {
	index := -1
	for i, model := range c.Models {
		if model.Name == name {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("model %s not found", name)
	}

	c.Models = append(c.Models[:index], c.Models[index+1:]...)
	if c.Preferences.DefaultModel == name {
		c.Preferences.DefaultModel = ""
		if len(c.Models) > 0 {
			c.Preferences.DefaultModel = c.Models[0].Name
		}
	}
	return nil
}

// SetDefaultModel changes the default model to the specified name.
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: model %s does not exist", name)
	}
	c.Preferences.DefaultModel = name
	return nil
}

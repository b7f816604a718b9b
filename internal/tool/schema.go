package tool

import "fmt"

type Parameter struct {
	Type        string
	Enum        []string
	Description string
}

// Schema describes one tool to the model.
type Schema struct {
	Name        Name
	Description string
	Parameters  map[string]Parameter
	Required    []string
}

// JSONSchema renders the parameters as a JSON Schema object.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Parameters))
	for name, p := range s.Parameters {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[name] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   s.Required,
	}
}

var userIDParam = Parameter{Type: "string", Description: "The ID of the user"}

var schemas = map[Name]Schema{
	AddTask: {
		Name:        AddTask,
		Description: "Add a new task to the user's todo list",
		Parameters: map[string]Parameter{
			"user_id": userIDParam,
			"title":   {Type: "string", Description: "The title of the task"},
		},
		Required: []string{"user_id", "title"},
	},
	ListTasks: {
		Name:        ListTasks,
		Description: "List tasks for the user, optionally filtered by status",
		Parameters: map[string]Parameter{
			"user_id": userIDParam,
			"status_filter": {
				Type:        "string",
				Enum:        []string{"pending", "completed", "all"},
				Description: "Filter tasks by status",
			},
		},
		Required: []string{"user_id"},
	},
	CompleteTask: {
		Name:        CompleteTask,
		Description: "Mark a task as completed",
		Parameters: map[string]Parameter{
			"user_id": userIDParam,
			"task_id": {Type: "integer", Description: "The ID of the task to complete"},
		},
		Required: []string{"user_id", "task_id"},
	},
	DeleteTask: {
		Name:        DeleteTask,
		Description: "Delete a task from the user's todo list",
		Parameters: map[string]Parameter{
			"user_id": userIDParam,
			"task_id": {Type: "integer", Description: "The ID of the task to delete"},
		},
		Required: []string{"user_id", "task_id"},
	},
	UpdateTask: {
		Name:        UpdateTask,
		Description: "Update the title of an existing task",
		Parameters: map[string]Parameter{
			"user_id": userIDParam,
			"task_id": {Type: "integer", Description: "The ID of the task to update"},
			"title":   {Type: "string", Description: "The new title for the task"},
		},
		Required: []string{"user_id", "task_id", "title"},
	},
}

func SchemaFor(name Name) (Schema, error) {
	s, ok := schemas[name]
	if !ok {
		return Schema{}, fmt.Errorf("no schema for tool %q", name)
	}
	return s, nil
}

// AllSchemas returns the catalogue in Names order.
func AllSchemas() []Schema {
	out := make([]Schema, 0, len(Names))
	for _, n := range Names {
		out = append(out, schemas[n])
	}
	return out
}

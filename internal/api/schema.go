package api

// Schema names used to look up response definitions.
const (
	SchemaProblem   = "generate-problem"
	SchemaAnswer    = "check-answer"
	SchemaStats     = "get-stats"
	SchemaLogin     = "login"
	SchemaDashboard = "dashboard"
)

var feedbackDefinition = map[string]any{
	"oneOf": []any{
		map[string]any{"type": "string"},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message":     map[string]any{"type": "string"},
				"steps":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"message"},
		},
	},
}

// Schemas holds the JSON Schema definition of each response body, keyed by
// schema name. A response that carries "error" is always accepted.
var Schemas = map[string]map[string]any{
	SchemaProblem: {
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"error"}},
			map[string]any{"required": []any{"equation"}},
		},
		"properties": map[string]any{
			"equation": map[string]any{"type": "string", "minLength": 1},
			"level":    map[string]any{"type": "integer"},
			"error":    map[string]any{"type": "string"},
		},
	},
	SchemaAnswer: {
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"error"}},
			map[string]any{"required": []any{"levelUp"}},
			map[string]any{"required": []any{"status"}},
		},
		"properties": map[string]any{
			"status":     map[string]any{"type": "string"},
			"feedback":   feedbackDefinition,
			"score":      map[string]any{"type": "integer"},
			"level":      map[string]any{"type": "integer"},
			"levelUp":    map[string]any{"type": "string"},
			"newProblem": map[string]any{"type": "string"},
			"error":      map[string]any{"type": "string"},
		},
	},
	SchemaStats: {
		"type":     "object",
		"required": []any{"status"},
		"properties": map[string]any{
			"status":  map[string]any{"type": "string"},
			"message": map[string]any{"type": "string"},
			"stats": map[string]any{
				"type":     "object",
				"required": []any{"level", "score"},
				"properties": map[string]any{
					"level":          map[string]any{"type": "integer", "minimum": 1},
					"score":          map[string]any{"type": "integer", "minimum": 0},
					"total_problems": map[string]any{"type": "integer", "minimum": 0},
					"accuracy":       map[string]any{"type": "number"},
					"suggestion":     map[string]any{"type": "string"},
				},
			},
		},
	},
	SchemaLogin: {
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"error"}},
			map[string]any{"required": []any{"username", "level", "score"}},
		},
		"properties": map[string]any{
			"status":   map[string]any{"type": "string"},
			"username": map[string]any{"type": "string"},
			"level":    map[string]any{"type": "integer"},
			"score":    map[string]any{"type": "integer"},
			"error":    map[string]any{"type": "string"},
		},
	},
	SchemaDashboard: {
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"error"}},
			map[string]any{"required": []any{"user", "performance"}},
		},
		"properties": map[string]any{
			"user":            map[string]any{"type": "object"},
			"recent_problems": map[string]any{"type": []any{"array", "null"}},
			"performance":     map[string]any{"type": "object"},
			"error":           map[string]any{"type": "string"},
		},
	},
}

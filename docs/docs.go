// Package docs holds the OpenAPI document served at /docs/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Scoracle"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/careers": {
            "get": {
                "description": "Returns stored career lines ordered by the requested stat (descending; name ascending).",
                "produces": ["application/json"],
                "tags": ["careers"],
                "summary": "List careers",
                "parameters": [
                    {"type": "string", "default": "points_per_game", "description": "Sort column", "name": "sort", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Max rows (1-500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/provider.CareerSummary"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/careers.csv": {
            "get": {
                "description": "Returns stored career lines in the same column layout as the ingestion CSV.",
                "produces": ["text/csv"],
                "tags": ["careers"],
                "summary": "Export careers as CSV",
                "parameters": [
                    {"type": "string", "default": "points_per_game", "description": "Sort column", "name": "sort", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Max rows (1-500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/careers/{playerID}": {
            "get": {
                "description": "Returns career per-game averages and shooting percentages for one player.",
                "produces": ["application/json"],
                "tags": ["careers"],
                "summary": "Get player career",
                "parameters": [
                    {"type": "integer", "description": "Player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/provider.CareerSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/runs/latest": {
            "get": {
                "description": "Returns counts and timing for the most recently started ingestion run.",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Latest ingestion run",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/db.Run"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "provider.CareerSummary": {
            "type": "object",
            "properties": {
                "player_id": {"type": "integer"},
                "name": {"type": "string"},
                "games_played": {"type": "integer"},
                "points_per_game": {"type": "number"},
                "rebounds_per_game": {"type": "number"},
                "assists_per_game": {"type": "number"},
                "steals_per_game": {"type": "number"},
                "blocks_per_game": {"type": "number"},
                "turnovers_per_game": {"type": "number"},
                "field_goal_pct": {"type": "number"},
                "three_point_pct": {"type": "number"},
                "free_throw_pct": {"type": "number"}
            }
        },
        "db.Run": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "players": {"type": "integer"},
                "succeeded": {"type": "integer"},
                "empty": {"type": "integer"},
                "failed": {"type": "integer"},
                "output_path": {"type": "string"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Scoracle Careers API",
	Description:      "Read API over NBA career per-game averages produced by the careers-ingest pipeline.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

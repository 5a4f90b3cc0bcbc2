// Package docs holds the swagger spec served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "token",
            "in": "cookie"
        }
    },
    "tags": [
        {"name": "Users", "description": "Registration, login and profile operations"},
        {"name": "Boards", "description": "Board and membership operations"},
        {"name": "Tasks", "description": "Task workflow operations, including checklists and comments"},
        {"name": "Vendors", "description": "Vendor management operations"},
        {"name": "Guests", "description": "Guest list operations"},
        {"name": "Messages", "description": "Chat history and live relay"}
    ],
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "WedPlan API",
	Description:      "API for collaborative wedding planning boards, tasks, vendors, guests and budgets",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

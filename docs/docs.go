// Package docs holds the OpenAPI document served at /swagger/*. Keep it in
// step with the swag annotations on the handlers and router.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/couriers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["couriers"],
                "summary": "Search couriers or detect candidates",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive name or code filter", "name": "q", "in": "query"},
                    {"type": "string", "description": "Detect candidate carriers for this number instead", "name": "trackingNumber", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.courierSearchResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.CourierDirectoryErrorResponse"}}
                }
            }
        },
        "/v1/couriers/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["couriers"],
                "summary": "Drop the cached courier directory",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/lookups/{tracking_number}": {
            "get": {
                "description": "Returns the most recent lookup summary without calling the provider.",
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Latest recorded lookup",
                "parameters": [
                    {"type": "string", "description": "Tracking number", "name": "tracking_number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.lookupResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/track": {
            "post": {
                "description": "Resolves the carrier (unless courierCode is given), registers the number with the provider and returns the merged origin/destination timeline with a clearance status.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Track a shipment",
                "parameters": [
                    {"description": "Tracking number and optional carrier", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.trackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.trackResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.UpstreamErrorResponse"}}
                }
            }
        },
        "/v1/track/{tracking_number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Track a shipment by path",
                "parameters": [
                    {"type": "string", "description": "Tracking number", "name": "tracking_number", "in": "path", "required": true},
                    {"type": "string", "description": "Carrier code; detected when empty", "name": "courierCode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.trackResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.UpstreamErrorResponse"}}
                }
            }
        },
        "/v1/tracking/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Refresh tracking numbers in the background",
                "parameters": [
                    {"description": "Tracking numbers (1 to 100)", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.refreshRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.refreshAcceptedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CarrierCandidate": {
            "type": "object",
            "properties": {
                "courier_code": {"type": "string"},
                "courier_name": {"type": "string"}
            }
        },
        "domain.Meta": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "domain.ProbeAttempt": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "meta": {"$ref": "#/definitions/domain.Meta"},
                "status": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "domain.TimelineEvent": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "id": {"type": "string"},
                "isCompleted": {"type": "boolean"},
                "isWarning": {"type": "boolean"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "subLocation": {"type": "string"},
                "tag": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "handler.CourierDirectoryErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "tries": {"type": "array", "items": {"$ref": "#/definitions/domain.ProbeAttempt"}}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.UpstreamErrorResponse": {
            "type": "object",
            "properties": {
                "createRaw": {"type": "object"},
                "detectRaw": {"type": "object"},
                "endpoint": {"type": "string"},
                "error": {"type": "string"},
                "raw": {"type": "object"},
                "stage": {"type": "string", "enum": ["detect", "create", "get"]},
                "usedCourierCode": {"type": "string"}
            }
        },
        "handler.courierItem": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "country": {"type": "string"},
                "logo": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handler.courierSearchResponse": {
            "type": "object",
            "properties": {
                "couriers": {"type": "array", "items": {"$ref": "#/definitions/handler.courierItem"}},
                "endpoint": {"type": "string"},
                "fromCache": {"type": "boolean"},
                "q": {"type": "string"},
                "total": {"type": "integer"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.lookupResponse": {
            "type": "object",
            "properties": {
                "courierCode": {"type": "string"},
                "deliveryStatus": {"type": "string"},
                "eventCount": {"type": "integer"},
                "id": {"type": "string"},
                "latestEvent": {"type": "string"},
                "lookedUpAt": {"type": "string"},
                "source": {"type": "string"},
                "status": {"type": "string"},
                "trackingNumber": {"type": "string"},
                "warningCount": {"type": "integer"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        },
        "handler.refreshAcceptedResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "jobId": {"type": "string"},
                "rejected": {"type": "integer"}
            }
        },
        "handler.refreshRequest": {
            "type": "object",
            "required": ["trackingNumbers"],
            "properties": {
                "courierCode": {"type": "string"},
                "trackingNumbers": {"type": "array", "maxItems": 100, "minItems": 1, "items": {"type": "string"}}
            }
        },
        "handler.trackRequest": {
            "type": "object",
            "properties": {
                "courierCode": {"type": "string", "example": "fedex"},
                "trackingNumber": {"type": "string", "example": "160-12345678"}
            }
        },
        "handler.trackResponse": {
            "type": "object",
            "properties": {
                "courierCode": {"type": "string"},
                "detectRaw": {"type": "object"},
                "raw": {"type": "object"},
                "source": {"type": "string", "enum": ["create", "get"]},
                "status": {"type": "string", "enum": ["held", "cleared"]},
                "timeline": {"type": "array", "items": {"$ref": "#/definitions/domain.TimelineEvent"}},
                "trackingNumber": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tracking Aggregator API",
	Description:      "Unified shipment tracking over the TrackingMore provider.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

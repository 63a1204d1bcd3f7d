package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Timetable conflict and capacity validation engine",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Schedules",
            "description": "Module schedule validation and draft grids"
        },
        {
            "name": "Teachers",
            "description": "Workload, availability and timetables"
        },
        {
            "name": "Rooms",
            "description": "Room timetables"
        },
        {
            "name": "Calendar",
            "description": "Block grid"
        },
        {
            "name": "System",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness probe, pings PostgreSQL and Redis",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is down"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/system/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Service metrics snapshot",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/calendar": {
            "get": {
                "tags": [
                    "Calendar"
                ],
                "summary": "Weekdays and block grid",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/modules/{id}/schedule": {
            "get": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Get the stored schedule of a module",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Module ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Validate and commit a module schedule",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Module ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "PARITY_CONFLICT, TEACHER_CONFLICT or ROOM_CONFLICT; data holds the result",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "HOUR_MISMATCH, OVER_CONTRACT or MALFORMED_RANGE; data holds the result",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "500": {
                        "description": "PERSISTENCE_ERROR, previous ranges kept",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "description": "Checks run in order: block count, contracted hours, parity, teacher, room. The first failure rejects the submission.",
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/modules/{id}/schedule/grid": {
            "post": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Classify every cell of a draft schedule",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Module ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ScheduleDraft"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/modules/{id}/schedule/grid/cell": {
            "post": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Classify one cell of a draft schedule",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Module ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/GridCellRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Cell outside of the block grid",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/teachers/{id}": {
            "delete": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Delete a teacher",
                "description": "Modules taught by the teacher keep their ranges and lose the assignment.",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/teachers/{id}/workload": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Teacher workload against contracted hours",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    },
                    {
                        "in": "query",
                        "name": "excludeModuleId",
                        "type": "string",
                        "required": false,
                        "description": "Module left out of the total"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/teachers/{id}/availability": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Get a teacher's availability grid",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Replace a teacher's availability grid",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UpdateAvailabilityRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/teachers/{id}/timetable": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Weekly timetable of a teacher",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/rooms/{id}": {
            "delete": {
                "tags": [
                    "Rooms"
                ],
                "summary": "Delete a room",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Room ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/rooms/{id}/timetable": {
            "get": {
                "tags": [
                    "Rooms"
                ],
                "summary": "Weekly timetable of a room",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Room ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "TimeRangeInput": {
            "type": "object",
            "required": [
                "weekday",
                "start",
                "end"
            ],
            "properties": {
                "weekday": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY"
                    ]
                },
                "start": {
                    "type": "string",
                    "example": "08:30",
                    "description": "Clock label, duration string or minutes since midnight"
                },
                "end": {
                    "type": "string",
                    "example": "10:00"
                }
            }
        },
        "BlockSelectionInput": {
            "type": "object",
            "required": [
                "weekday",
                "blocks"
            ],
            "properties": {
                "weekday": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY"
                    ]
                },
                "blocks": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        },
        "ScheduleDraft": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "string",
                    "description": "Omitted keeps the stored teacher, an empty string clears it"
                },
                "roomId": {
                    "type": "string",
                    "description": "Omitted keeps the stored room, an empty string clears it"
                },
                "careerId": {
                    "type": "string",
                    "description": "Omitted keeps the stored career, an empty string clears it"
                },
                "semesterNumber": {
                    "type": "integer"
                },
                "ranges": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/TimeRangeInput"
                    }
                },
                "blocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/BlockSelectionInput"
                    }
                }
            }
        },
        "SubmitScheduleRequest": {
            "type": "object",
            "properties": {
                "teacherId": {
                    "type": "string",
                    "description": "Omitted keeps the stored teacher, an empty string clears it"
                },
                "roomId": {
                    "type": "string",
                    "description": "Omitted keeps the stored room, an empty string clears it"
                },
                "careerId": {
                    "type": "string",
                    "description": "Omitted keeps the stored career, an empty string clears it"
                },
                "semesterNumber": {
                    "type": "integer"
                },
                "ranges": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/TimeRangeInput"
                    }
                },
                "blocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/BlockSelectionInput"
                    }
                }
            }
        },
        "GridCellRequest": {
            "type": "object",
            "required": [
                "weekday",
                "block"
            ],
            "properties": {
                "teacherId": {
                    "type": "string",
                    "description": "Omitted keeps the stored teacher, an empty string clears it"
                },
                "roomId": {
                    "type": "string",
                    "description": "Omitted keeps the stored room, an empty string clears it"
                },
                "careerId": {
                    "type": "string",
                    "description": "Omitted keeps the stored career, an empty string clears it"
                },
                "semesterNumber": {
                    "type": "integer"
                },
                "ranges": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/TimeRangeInput"
                    }
                },
                "blocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/BlockSelectionInput"
                    }
                },
                "weekday": {
                    "type": "string",
                    "enum": [
                        "MONDAY",
                        "TUESDAY",
                        "WEDNESDAY",
                        "THURSDAY",
                        "FRIDAY"
                    ]
                },
                "block": {
                    "type": "integer"
                }
            }
        },
        "UpdateAvailabilityRequest": {
            "type": "object",
            "properties": {
                "slots": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": [
                            "weekday",
                            "block"
                        ],
                        "properties": {
                            "weekday": {
                                "type": "string",
                                "enum": [
                                    "MONDAY",
                                    "TUESDAY",
                                    "WEDNESDAY",
                                    "THURSDAY",
                                    "FRIDAY"
                                ]
                            },
                            "block": {
                                "type": "integer"
                            },
                            "available": {
                                "type": "boolean"
                            }
                        }
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

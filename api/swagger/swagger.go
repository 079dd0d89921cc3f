package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Scheduling API",
        "description": "Conservatory lesson scheduling, conflict checking and workload reporting",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Session commit, listing, allocation and deletion"},
        {"name": "Groups", "description": "Lesson group composition validation"},
        {"name": "Blackouts", "description": "Blackout rules and slot evaluation"},
        {"name": "LargeClasses", "description": "Imported lecture timetable"},
        {"name": "Workload", "description": "Teacher workload and student progress reports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List scheduled sessions",
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "courseId", "in": "query", "type": "string"},
                    {"name": "roomId", "in": "query", "type": "string"},
                    {"name": "groupId", "in": "query", "type": "string"},
                    {"name": "dayOfWeek", "in": "query", "type": "integer"},
                    {"name": "week", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/commit": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Commit a batch of slots for a lesson group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Invalid group", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/allocate-weeks": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Propose conflict-free weeks for one grid cell",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocateWeeksPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/availability": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Probe the weekly grid for conflicts",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a single session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedule-groups/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete every session committed under a group id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/groups/validate": {
            "post": {
                "tags": ["Groups"],
                "summary": "Validate a proposed lesson group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateGroupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blackouts": {
            "get": {
                "tags": ["Blackouts"],
                "summary": "List blackout rules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Blackouts"],
                "summary": "Create a blackout rule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBlackoutRuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blackouts/{id}": {
            "delete": {
                "tags": ["Blackouts"],
                "summary": "Delete a blackout rule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/blackouts/evaluate": {
            "get": {
                "tags": ["Blackouts"],
                "summary": "Evaluate whether a slot is blocked",
                "parameters": [
                    {"name": "week", "in": "query", "required": true, "type": "integer"},
                    {"name": "dayOfWeek", "in": "query", "required": true, "type": "integer"},
                    {"name": "period", "in": "query", "required": true, "type": "integer"},
                    {"name": "classNames", "in": "query", "type": "string"},
                    {"name": "teacherName", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/large-classes": {
            "get": {
                "tags": ["LargeClasses"],
                "summary": "List large class timetable rows",
                "parameters": [
                    {"name": "className", "in": "query", "type": "string"},
                    {"name": "teacherName", "in": "query", "type": "string"},
                    {"name": "dayOfWeek", "in": "query", "type": "integer"},
                    {"name": "importBatch", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/large-classes/import": {
            "post": {
                "tags": ["LargeClasses"],
                "summary": "Import a batch of large class timetable rows",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportLargeClassesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/large-classes/{id}": {
            "delete": {
                "tags": ["LargeClasses"],
                "summary": "Delete a single timetable row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/large-class-batches/{batch}": {
            "delete": {
                "tags": ["LargeClasses"],
                "summary": "Delete an entire import batch",
                "parameters": [
                    {"name": "batch", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/teachers/{id}/workload": {
            "get": {
                "tags": ["Workload"],
                "summary": "Teacher term workload report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/progress": {
            "get": {
                "tags": ["Workload"],
                "summary": "Student session progress per course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduledSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "course_id": {"type": "string"},
                "course_name": {"type": "string"},
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"},
                "student_id": {"type": "string"},
                "student_name": {"type": "string"},
                "student_role": {"type": "string"},
                "class_name": {"type": "string"},
                "room_id": {"type": "string"},
                "room_name": {"type": "string"},
                "day_of_week": {"type": "integer"},
                "period": {"type": "integer"},
                "start_week": {"type": "integer"},
                "end_week": {"type": "integer"},
                "group_id": {"type": "string"},
                "kind": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "week": {"type": "integer"},
                "day_of_week": {"type": "integer"},
                "period": {"type": "integer"},
                "party": {"type": "string"},
                "conflicting_course": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "CommitSlot": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "integer"},
                "period": {"type": "integer"},
                "startWeek": {"type": "integer"},
                "endWeek": {"type": "integer"}
            },
            "required": ["dayOfWeek", "period", "startWeek", "endWeek"]
        },
        "CommitMember": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "role": {"type": "string"},
                "instrument": {"type": "string"}
            },
            "required": ["studentId", "role"]
        },
        "CommitScheduleRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "teacherId": {"type": "string"},
                "roomId": {"type": "string"},
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CommitSlot"}
                },
                "members": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CommitMember"}
                },
                "allowQuotaOverride": {"type": "boolean"}
            },
            "required": ["courseId", "teacherId", "slots", "members"]
        },
        "AllocateWeeksPayload": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "integer"},
                "period": {"type": "integer"},
                "required": {"type": "integer"},
                "alreadySelected": {
                    "type": "array",
                    "items": {"type": "integer"}
                },
                "totalWeeks": {"type": "integer"},
                "pivotWeek": {"type": "integer"},
                "teacherId": {"type": "string"},
                "studentIds": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "roomId": {"type": "string"}
            },
            "required": ["dayOfWeek", "period", "required", "teacherId"]
        },
        "AvailabilityRequest": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "teacherId": {"type": "string"},
                "studentIds": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "roomId": {"type": "string"},
                "classNames": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["teacherId", "week"]
        },
        "ValidateGroupRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "members": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CommitMember"}
                }
            },
            "required": ["courseId", "members"]
        },
        "CreateBlackoutRuleRequest": {
            "type": "object",
            "properties": {
                "ruleType": {"type": "string", "enum": ["recurring", "specific"]},
                "dayOfWeek": {"type": "integer"},
                "weekNumber": {"type": "integer"},
                "periodStart": {"type": "integer"},
                "periodEnd": {"type": "integer"},
                "specificWeekDays": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WeekDayPair"}
                },
                "classAssociations": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "reason": {"type": "string"}
            },
            "required": ["ruleType"]
        },
        "WeekDayPair": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "integer"}
            }
        },
        "BlackoutRule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "rule_type": {"type": "string"},
                "day_of_week": {"type": "integer"},
                "week_number": {"type": "integer"},
                "period_start": {"type": "integer"},
                "period_end": {"type": "integer"},
                "specific_week_days": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WeekDayPair"}
                },
                "class_associations": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "reason": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ImportLargeClassesRequest": {
            "type": "object",
            "properties": {
                "entries": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/LargeClassEntryRequest"}
                }
            },
            "required": ["entries"]
        },
        "LargeClassEntryRequest": {
            "type": "object",
            "properties": {
                "className": {"type": "string"},
                "courseName": {"type": "string"},
                "teacherName": {"type": "string"},
                "dayOfWeek": {"type": "integer"},
                "periodStart": {"type": "integer"},
                "periodEnd": {"type": "integer"},
                "weekRange": {"type": "string"}
            },
            "required": ["className", "courseName", "dayOfWeek", "periodStart", "periodEnd", "weekRange"]
        },
        "LargeClassEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "class_name": {"type": "string"},
                "course_name": {"type": "string"},
                "teacher_name": {"type": "string"},
                "day_of_week": {"type": "integer"},
                "period_start": {"type": "integer"},
                "period_end": {"type": "integer"},
                "week_range": {"type": "string"},
                "import_batch": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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

package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIAP SMP API",
        "description": "Academic year planning backend: teaching assignments, workload validation and SK documents",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Teachers", "description": "Teacher roster management"},
        {"name": "AcademicYears", "description": "Academic year and semester management"},
        {"name": "JtmAssignments", "description": "Teaching assignment roster and validation"},
        {"name": "Workloads", "description": "Derived teacher workload views"},
        {"name": "AllocationProgress", "description": "Per-class allocation progress"},
        {"name": "SkDocuments", "description": "Duty decree generation"},
        {"name": "Reports", "description": "Workload recap exports"}
    ],
    "paths": {
        "/workloads": {
            "get": {
                "tags": ["Workloads"],
                "summary": "List workloads for every assigned teacher",
                "parameters": [
                    {"name": "academicYearId", "in": "query", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["kurang", "layak", "lebih"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workloads/summary": {
            "get": {
                "tags": ["Workloads"],
                "summary": "Summary statistics across all workloads",
                "parameters": [
                    {"name": "academicYearId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workloads/{teacherId}": {
            "get": {
                "tags": ["Workloads"],
                "summary": "Get one teacher's workload",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"},
                    {"name": "academicYearId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workloads/{teacherId}/detail": {
            "get": {
                "tags": ["Workloads"],
                "summary": "Detailed workload breakdown with raw assignment rows",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"},
                    {"name": "academicYearId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jtm-assignments": {
            "get": {
                "tags": ["JtmAssignments"],
                "summary": "List teaching assignments",
                "parameters": [
                    {"name": "academicYearId", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "classId", "in": "query", "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["JtmAssignments"],
                "summary": "Create teaching assignment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/JtmAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jtm-assignments/validate": {
            "post": {
                "tags": ["JtmAssignments"],
                "summary": "Validate a teaching assignment without creating it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/JtmAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocation-progress/{yearId}": {
            "get": {
                "tags": ["AllocationProgress"],
                "summary": "Per-class allocation progress",
                "parameters": [
                    {"name": "yearId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sk-documents/generate": {
            "post": {
                "tags": ["SkDocuments"],
                "summary": "Generate a duty decree for a teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/workloads/{yearId}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export the workload recap",
                "parameters": [
                    {"name": "yearId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        }
    },
    "definitions": {
        "JtmAssignmentRequest": {
            "type": "object",
            "properties": {
                "academic_year_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "class_id": {"type": "string"},
                "allocated_hours": {"type": "integer"}
            },
            "required": ["academic_year_id", "teacher_id", "subject_id", "class_id", "allocated_hours"]
        },
        "GenerateSkRequest": {
            "type": "object",
            "properties": {
                "academic_year_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "title": {"type": "string"},
                "template": {"type": "string"}
            },
            "required": ["academic_year_id", "teacher_id"]
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

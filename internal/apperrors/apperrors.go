// Package apperrors implements the service's error taxonomy: a fixed catalog of
// user-facing codes, each carrying a title, message, suggestion and category,
// plus the success/error envelope shapes returned over HTTP.
package apperrors

import (
	"fmt"
	"log"
	"net/http"
)

// Code is one of the fixed catalog entries below.
type Code string

const (
	AuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	AuthUserNotFound       Code = "AUTH_USER_NOT_FOUND"
	AuthUserAlreadyExists  Code = "AUTH_USER_ALREADY_EXISTS"
	AuthInactiveUser       Code = "AUTH_INACTIVE_USER"
	AuthTokenExpired       Code = "AUTH_TOKEN_EXPIRED"
	AuthInvalidToken       Code = "AUTH_INVALID_TOKEN"

	ProjectNotFound       Code = "PROJECT_NOT_FOUND"
	ProjectAccessDenied   Code = "PROJECT_ACCESS_DENIED"
	ProjectAlreadyExists  Code = "PROJECT_ALREADY_EXISTS"
	ProjectCreationFailed Code = "PROJECT_CREATION_FAILED"

	FileUploadFailed     Code = "FILE_UPLOAD_FAILED"
	FileTypeNotSupported Code = "FILE_TYPE_NOT_SUPPORTED"
	FileSizeExceeded     Code = "FILE_SIZE_EXCEEDED"
	FileNotFound         Code = "FILE_NOT_FOUND"
	FileProcessingFailed Code = "FILE_PROCESSING_FAILED"

	ProcessingNoFiles        Code = "PROCESSING_NO_FILES"
	ProcessingFailed         Code = "PROCESSING_FAILED"
	ProcessingPartialSuccess Code = "PROCESSING_PARTIAL_SUCCESS"

	VectorDBConnectionFailed   Code = "VECTORDB_CONNECTION_FAILED"
	VectorDBInsertFailed       Code = "VECTORDB_INSERT_FAILED"
	VectorDBSearchFailed       Code = "VECTORDB_SEARCH_FAILED"
	VectorDBCollectionNotFound Code = "VECTORDB_COLLECTION_NOT_FOUND"

	NLPServiceUnavailable Code = "NLP_SERVICE_UNAVAILABLE"
	NLPGenerationFailed   Code = "NLP_GENERATION_FAILED"
	NLPNoRelevantContent  Code = "NLP_NO_RELEVANT_CONTENT"

	InternalErrorCode   Code = "INTERNAL_ERROR"
	ServiceUnavailable  Code = "SERVICE_UNAVAILABLE"
	ValidationErrorCode Code = "VALIDATION_ERROR"
)

type catalogEntry struct {
	Title      string
	Message    string
	Suggestion string
	Category   string
	Status     int
}

var catalog = map[Code]catalogEntry{
	AuthInvalidCredentials: {
		Title:      "Authentication Failed",
		Message:    "The email or password you entered is incorrect. Please check your credentials and try again.",
		Suggestion: "Make sure your email is spelled correctly and your password meets the requirements.",
		Category:   "authentication",
		Status:     http.StatusUnauthorized,
	},
	AuthUserNotFound: {
		Title:      "User Not Found",
		Message:    "No account found with the provided email address.",
		Suggestion: "Please check your email address or register a new account.",
		Category:   "authentication",
		Status:     http.StatusUnauthorized,
	},
	AuthUserAlreadyExists: {
		Title:      "Account Already Exists",
		Message:    "An account with this email address already exists.",
		Suggestion: "Try logging in instead, or use a different email address to register.",
		Category:   "authentication",
		Status:     http.StatusConflict,
	},
	AuthInactiveUser: {
		Title:      "Account Inactive",
		Message:    "Your account has been deactivated.",
		Suggestion: "Please contact support to reactivate your account.",
		Category:   "authentication",
		Status:     http.StatusUnauthorized,
	},
	AuthTokenExpired: {
		Title:      "Session Expired",
		Message:    "Your login session has expired. Please log in again.",
		Suggestion: "For security reasons, sessions expire after a period of inactivity.",
		Category:   "authentication",
		Status:     http.StatusUnauthorized,
	},
	AuthInvalidToken: {
		Title:      "Invalid Session",
		Message:    "Your login session is invalid or corrupted.",
		Suggestion: "Please log out and log in again to refresh your session.",
		Category:   "authentication",
		Status:     http.StatusUnauthorized,
	},

	ProjectNotFound: {
		Title:      "Project Not Found",
		Message:    "The requested project could not be found or you don't have access to it.",
		Suggestion: "Check the project ID or create a new project if needed.",
		Category:   "project",
		Status:     http.StatusNotFound,
	},
	ProjectAccessDenied: {
		Title:      "Access Denied",
		Message:    "You don't have permission to access this project.",
		Suggestion: "Make sure you're logged in with the correct account that owns this project.",
		Category:   "project",
		Status:     http.StatusForbidden,
	},
	ProjectAlreadyExists: {
		Title:      "Project Already Exists",
		Message:    "A project with this ID already exists in your account.",
		Suggestion: "Use a different project ID or access the existing project.",
		Category:   "project",
		Status:     http.StatusConflict,
	},
	ProjectCreationFailed: {
		Title:      "Project Creation Failed",
		Message:    "Unable to create the project due to a system error.",
		Suggestion: "Please try again in a few moments. If the problem persists, contact support.",
		Category:   "project",
		Status:     http.StatusInternalServerError,
	},

	FileUploadFailed: {
		Title:      "File Upload Failed",
		Message:    "The file could not be uploaded due to a system error.",
		Suggestion: "Check your internet connection and try again. Make sure the file is not corrupted.",
		Category:   "file",
		Status:     http.StatusInternalServerError,
	},
	FileTypeNotSupported: {
		Title:      "Unsupported File Type",
		Message:    "This file type is not supported. We currently support PDF and text files.",
		Suggestion: "Please convert your file to PDF or text format before uploading.",
		Category:   "file",
		Status:     http.StatusBadRequest,
	},
	FileSizeExceeded: {
		Title:      "File Too Large",
		Message:    "The file size exceeds the maximum allowed limit.",
		Suggestion: "Please compress the file or split it into smaller parts before uploading.",
		Category:   "file",
		Status:     http.StatusBadRequest,
	},
	FileNotFound: {
		Title:      "File Not Found",
		Message:    "The requested file could not be found in the project.",
		Suggestion: "Check if the file was uploaded successfully or try uploading it again.",
		Category:   "file",
		Status:     http.StatusNotFound,
	},
	FileProcessingFailed: {
		Title:      "File Processing Failed",
		Message:    "The file could not be processed due to an error in the content.",
		Suggestion: "Check if the file is readable and not corrupted. Try with a different file.",
		Category:   "file",
		Status:     http.StatusUnprocessableEntity,
	},

	ProcessingNoFiles: {
		Title:      "No Files to Process",
		Message:    "There are no files in this project to process.",
		Suggestion: "Upload some files to the project before attempting to process them.",
		Category:   "processing",
		Status:     http.StatusBadRequest,
	},
	ProcessingFailed: {
		Title:      "Processing Failed",
		Message:    "Failed to process the files due to a system error.",
		Suggestion: "Please try again. If the problem persists, contact support.",
		Category:   "processing",
		Status:     http.StatusInternalServerError,
	},
	ProcessingPartialSuccess: {
		Title:      "Partial Processing Success",
		Message:    "Some files were processed successfully, but others failed.",
		Suggestion: "Check the failed files list and try processing them again.",
		Category:   "processing",
		Status:     http.StatusOK,
	},

	VectorDBConnectionFailed: {
		Title:      "Database Connection Failed",
		Message:    "Unable to connect to the vector database.",
		Suggestion: "Please try again in a few moments. If the problem persists, contact support.",
		Category:   "database",
		Status:     http.StatusServiceUnavailable,
	},
	VectorDBInsertFailed: {
		Title:      "Database Insert Failed",
		Message:    "Failed to store the processed data in the database.",
		Suggestion: "Please try again. If the problem persists, contact support.",
		Category:   "database",
		Status:     http.StatusInternalServerError,
	},
	VectorDBSearchFailed: {
		Title:      "Search Failed",
		Message:    "Unable to search the database for relevant information.",
		Suggestion: "Please try again. If the problem persists, contact support.",
		Category:   "database",
		Status:     http.StatusInternalServerError,
	},
	VectorDBCollectionNotFound: {
		Title:      "Project Not Indexed",
		Message:    "This project has not been indexed yet or the index was corrupted.",
		Suggestion: "Process and index the project files before searching.",
		Category:   "database",
		Status:     http.StatusNotFound,
	},

	NLPServiceUnavailable: {
		Title:      "AI Service Unavailable",
		Message:    "The AI service is currently unavailable or not properly configured.",
		Suggestion: "Please try again later or check your API configuration.",
		Category:   "nlp",
		Status:     http.StatusServiceUnavailable,
	},
	NLPGenerationFailed: {
		Title:      "Answer Generation Failed",
		Message:    "Unable to generate an answer to your question.",
		Suggestion: "Try rephrasing your question or try again later.",
		Category:   "nlp",
		Status:     http.StatusBadGateway,
	},
	NLPNoRelevantContent: {
		Title:      "No Relevant Content Found",
		Message:    "No relevant information was found to answer your question.",
		Suggestion: "Try a different question or upload more relevant documents.",
		Category:   "nlp",
		Status:     http.StatusOK,
	},

	InternalErrorCode: {
		Title:      "System Error",
		Message:    "An unexpected error occurred in the system.",
		Suggestion: "Please try again. If the problem persists, contact support.",
		Category:   "system",
		Status:     http.StatusInternalServerError,
	},
	ServiceUnavailable: {
		Title:      "Service Unavailable",
		Message:    "The service is temporarily unavailable.",
		Suggestion: "Please try again in a few moments.",
		Category:   "system",
		Status:     http.StatusServiceUnavailable,
	},
	ValidationErrorCode: {
		Title:      "Invalid Request",
		Message:    "The request contains invalid data or parameters.",
		Suggestion: "Please check your input and try again.",
		Category:   "system",
		Status:     http.StatusBadRequest,
	},
}

// AppError is the error type every service/repository layer returns; handlers
// translate it straight into the error envelope.
type AppError struct {
	Code       Code
	Title      string
	Message    string
	Suggestion string
	Category   string
	Status     int
	Details    string
	// Data carries a structured payload for error codes whose envelope
	// must expose more than free text (e.g. PROJECT_ALREADY_EXISTS embeds
	// the existing project under error.details.project). Nil for the
	// common free-text case.
	Data any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithData attaches a structured payload, returned for the envelope's
// "details" key in place of the plain-text Details.
func (e *AppError) WithData(data any) *AppError {
	e.Data = data
	return e
}

// New builds an AppError from the catalog, optionally attaching details.
// Unknown codes fall back to a generic entry the same way the catalog lookup
// in the original error handler falls back to "Unknown Error".
func New(code Code, details string) *AppError {
	entry, ok := catalog[code]
	if !ok {
		entry = catalogEntry{
			Title:      "Unknown Error",
			Message:    "An unexpected error occurred.",
			Suggestion: "Please try again or contact support.",
			Category:   "unknown",
			Status:     http.StatusInternalServerError,
		}
	}
	return &AppError{
		Code:       code,
		Title:      entry.Title,
		Message:    entry.Message,
		Suggestion: entry.Suggestion,
		Category:   entry.Category,
		Status:     entry.Status,
		Details:    details,
	}
}

// Newf builds an AppError with formatted details.
func Newf(code Code, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Convenience constructors mirroring the teacher's Newxxx pattern, kept for
// call sites that only need a generic failure of a given class.
func NewValidationError(message string) *AppError {
	return New(ValidationErrorCode, message)
}

func NewAuthenticationError(message string) *AppError {
	return New(AuthInvalidCredentials, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ProjectNotFound, message)
}

func NewConflictError(message string) *AppError {
	return New(ProjectAlreadyExists, message)
}

func NewDatabaseError(message string) *AppError {
	return New(VectorDBInsertFailed, message)
}

func NewInternalError(message string) *AppError {
	return New(InternalErrorCode, message)
}

func LogError(err error, context string) {
	if appErr, ok := err.(*AppError); ok {
		log.Printf("[ERROR] %s: %s (code=%s status=%d)", context, appErr.Message, appErr.Code, appErr.Status)
		if appErr.Details != "" {
			log.Printf("[ERROR] details: %s", appErr.Details)
		}
		return
	}
	log.Printf("[ERROR] %s: %s", context, err.Error())
}

// WrapDatabaseError logs a raw gorm/pq error and returns the catalog's
// generic database-insert failure with the underlying error preserved as
// details, matching the teacher's WrapDatabaseError helper.
func WrapDatabaseError(err error, operation string) *AppError {
	LogError(err, fmt.Sprintf("database error - %s", operation))
	return Newf(VectorDBInsertFailed, "operation %q failed: %s", operation, err.Error())
}

// WrapExternalAPIError logs a raw provider SDK error and returns the
// NLP-service-unavailable catalog entry with the underlying error preserved.
func WrapExternalAPIError(err error, service string) *AppError {
	LogError(err, fmt.Sprintf("external api error - %s", service))
	return Newf(NLPServiceUnavailable, "%s: %s", service, err.Error())
}

package api

import (
	"github.com/phrazzld/user-api/internal/api/middleware"
	"github.com/phrazzld/user-api/internal/domain"
)

// Client-facing messages.
const (
	MsgListUsers       = "Success get all users"
	MsgListUsersEmpty  = "Request success, but data still empty."
	MsgUserFound       = "User found"
	MsgUserNotFound    = "User not found"
	MsgEmailExists     = "Email already exists"
	MsgUserCreated     = "User created successfully"
	MsgUserUpdated     = "User successfully updated"
	MsgUserDeleted     = "Delete User %s successfully"
	MsgInternalError   = "Internal server error"
	MsgFieldsRequired  = "Name, email, and age are required"
	MsgFieldsMalformed = "Name, email, or age must be filled in the correct format"
)

// UserValidationMessages configures middleware.ValidateBody for UserRequest.
var UserValidationMessages = middleware.ValidationMessages{
	Required: MsgFieldsRequired,
	Format:   MsgFieldsMalformed,
}

// UserRequest is the body of POST /users and PUT /users/{id}.
// Age is an int so fractional or string values fail JSON decoding.
type UserRequest struct {
	Name  string `json:"name"  validate:"required"       example:"Mona"`
	Email string `json:"email" validate:"required"       example:"mona@gmail.com"`
	Age   int    `json:"age"   validate:"required,gt=0" example:"20"`
}

// The response types below describe envelope shapes for the API document.

// UserResponse is an envelope carrying one user.
type UserResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Message    string      `json:"message"    example:"User found"`
	Data       domain.User `json:"data"`
}

// UserListResponse is an envelope carrying every user.
type UserListResponse struct {
	StatusCode int           `json:"statusCode" example:"200"`
	Message    string        `json:"message"    example:"Success get all users"`
	Data       []domain.User `json:"data"`
}

// MessageResponse is an envelope with no data.
type MessageResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message"    example:"Delete User Mona successfully"`
}

// ErrorResponse is an envelope describing a failure.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"        example:"500"`
	Message    string `json:"message"           example:"Internal server error"`
	Error      string `json:"error,omitempty"   example:"connection refused"`
	TraceID    string `json:"traceId,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

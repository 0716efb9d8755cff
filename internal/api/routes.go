package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/user-api/internal/api/docs"
	"github.com/phrazzld/user-api/internal/api/middleware"
	"github.com/phrazzld/user-api/internal/domain"
)

const (
	// DocsPath is where the interactive API viewer is served.
	DocsPath = "/user-api/"
	// DocsSpecPath is where the OpenAPI document is served.
	DocsSpecPath = "/user-api/openapi.json"

	usersTag = "Users"
)

var (
	exampleUser = domain.User{
		ID:    "550e8400-e29b-41d4-a716-446655440000",
		Name:  "Mona",
		Email: "mona@gmail.com",
		Age:   20,
	}
	exampleRequest = UserRequest{Name: "Mona", Email: "mona@gmail.com", Age: 20}
	idParam        = docs.Param{Name: "id", Description: "User id", Example: exampleUser.ID}
)

func errorOutcome(status int, message string) docs.Outcome {
	body := ErrorResponse{StatusCode: status, Message: message}
	if status == http.StatusInternalServerError {
		body.Error = "connection refused"
	}
	return docs.Outcome{Status: status, Description: message, Body: body}
}

// NewDocsBuilder creates the document builder for this API.
func NewDocsBuilder(serverURL string) *docs.Builder {
	b := docs.NewBuilder(docs.Info{
		Title:       "User API",
		Description: "CRUD operations over users.",
		Version:     "1.0.0",
	}, docs.Server{URL: serverURL})
	b.AddTag(usersTag, "Create, read, update and delete users")
	return b
}

// RegisterUserRoutes mounts the /users endpoints on r and records their
// annotations in b.
func RegisterUserRoutes(r chi.Router, b *docs.Builder, h *UserHandler) {
	validate := middleware.ValidateBody[UserRequest](UserValidationMessages)

	docs.Mount(r, b, docs.Route{
		Method:  http.MethodGet,
		Path:    "/users",
		Summary: "List users",
		Tags:    []string{usersTag},
		Outcomes: []docs.Outcome{
			{Status: http.StatusOK, Description: MsgListUsers, Body: UserListResponse{
				StatusCode: http.StatusOK, Message: MsgListUsers, Data: []domain.User{exampleUser},
			}},
			errorOutcome(http.StatusInternalServerError, MsgInternalError),
		},
	}, http.HandlerFunc(h.ListUsers))

	docs.Mount(r, b, docs.Route{
		Method:  http.MethodGet,
		Path:    "/users/{id}",
		Summary: "Get a user by id",
		Tags:    []string{usersTag},
		Params:  []docs.Param{idParam},
		Outcomes: []docs.Outcome{
			{Status: http.StatusOK, Description: MsgUserFound, Body: UserResponse{
				StatusCode: http.StatusOK, Message: MsgUserFound, Data: exampleUser,
			}},
			errorOutcome(http.StatusNotFound, MsgUserNotFound),
			errorOutcome(http.StatusInternalServerError, MsgInternalError),
		},
	}, http.HandlerFunc(h.GetUser))

	docs.Mount(r, b, docs.Route{
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create a user",
		Description: "Email must not belong to another user.",
		Tags:        []string{usersTag},
		Request:     exampleRequest,
		Outcomes: []docs.Outcome{
			{Status: http.StatusCreated, Description: MsgUserCreated, Body: UserResponse{
				StatusCode: http.StatusCreated, Message: MsgUserCreated, Data: exampleUser,
			}},
			errorOutcome(http.StatusBadRequest, MsgEmailExists),
			errorOutcome(http.StatusInternalServerError, MsgInternalError),
		},
	}, http.HandlerFunc(h.CreateUser), validate)

	docs.Mount(r, b, docs.Route{
		Method:  http.MethodPut,
		Path:    "/users/{id}",
		Summary: "Replace a user's name, email and age",
		Tags:    []string{usersTag},
		Params:  []docs.Param{idParam},
		Request: exampleRequest,
		Outcomes: []docs.Outcome{
			{Status: http.StatusOK, Description: MsgUserUpdated, Body: UserResponse{
				StatusCode: http.StatusOK, Message: MsgUserUpdated, Data: exampleUser,
			}},
			errorOutcome(http.StatusBadRequest, MsgFieldsRequired),
			errorOutcome(http.StatusNotFound, MsgUserNotFound),
			errorOutcome(http.StatusInternalServerError, MsgInternalError),
		},
	}, http.HandlerFunc(h.UpdateUser), validate)

	docs.Mount(r, b, docs.Route{
		Method:  http.MethodDelete,
		Path:    "/users/{id}",
		Summary: "Delete a user",
		Tags:    []string{usersTag},
		Params:  []docs.Param{idParam},
		Outcomes: []docs.Outcome{
			{Status: http.StatusOK, Description: "Deleted", Body: MessageResponse{
				StatusCode: http.StatusOK, Message: "Delete User Mona successfully",
			}},
			errorOutcome(http.StatusNotFound, MsgUserNotFound),
			errorOutcome(http.StatusInternalServerError, MsgInternalError),
		},
	}, http.HandlerFunc(h.DeleteUser))
}

// RegisterDocsRoutes serves the document and its viewer.
func RegisterDocsRoutes(r chi.Router, b *docs.Builder) {
	r.Get(DocsSpecPath, docs.SpecHandler(b))
	r.Get(DocsPath, docs.SwaggerUI("User API", DocsSpecPath))
	r.Get("/user-api", http.RedirectHandler(DocsPath, http.StatusMovedPermanently).ServeHTTP)
}

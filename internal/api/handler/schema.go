package handler

import (
	"time"

	"github.com/mentormatch/connect-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName"  validate:"max=50"`
	EmailID   string `json:"emailId"   validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

type loginRequest struct {
	EmailID  string `json:"emailId"  validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userEnvelope wraps a user payload the way the browser client reads it.
type userEnvelope struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// --- Profile ---

type editProfileRequest struct {
	FirstName string   `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string   `json:"lastName"  validate:"max=50"`
	PhotoURL  string   `json:"photoURL"  validate:"omitempty,url"`
	Gender    string   `json:"gender"    validate:"omitempty,oneof=male female other"`
	Age       int      `json:"age"       validate:"omitempty,gte=18,lte=100"`
	About     string   `json:"about"     validate:"max=1000"`
	Skills    []string `json:"skills"    validate:"max=20,dive,min=1,max=50"`
}

// --- Feed ---

// feedResponse uses the envelope key the client's feed store expects.
type feedResponse struct {
	User []*domain.User `json:"user"`
}

// --- Requests ---

type requestEnvelope struct {
	Message string                    `json:"message"`
	Request *domain.ConnectionRequest `json:"request"`
}

// pendingRequestResponse is a pending request with the sender profile
// populated under fromUserId, matching the shape the review screen consumes.
type pendingRequestResponse struct {
	ID        string       `json:"_id"`
	FromUser  *domain.User `json:"fromUserId"`
	ToUserID  string       `json:"toUserId"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

type pendingRequestsResponse struct {
	AvailableRequest []pendingRequestResponse `json:"availableRequest"`
}

// --- Connections ---

// connectionResponse flattens the counterpart profile and adds the time the
// connection was made.
type connectionResponse struct {
	*domain.User
	Since time.Time `json:"since"`
}

type connectionsResponse struct {
	Data []connectionResponse `json:"data"`
}

package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserResponse carries null for an anonymous caller.
type UserResponse struct {
	User *UserSchema `json:"user"`
}

type TeamResponse struct {
	Team TeamSchema `json:"team"`
}

type NewInvitationResponse struct {
	NewInvitation InvitationSchema `json:"newInvitation"`
}

type InvitationsResponse struct {
	Invitations []InvitationSchema `json:"invitations"`
}

type DoneResponse struct {
	Done int `json:"done"`
}

type SweepSummaryResponse struct {
	InvitationsRemoved int64 `json:"invitationsRemoved"`
	SessionsRemoved    int64 `json:"sessionsRemoved"`
	LoginTokensRemoved int64 `json:"loginTokensRemoved"`
	TeamsRemoved       int   `json:"teamsRemoved"`
}

// ErrorResponse is the uniform business-failure body. Business failures ride
// on HTTP 200; only the authentication gates use 401.
type ErrorResponse struct {
	Error string `json:"error"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

func InternalError() ErrorResponse {
	return ErrorResponse{Error: "internal server error"}
}

func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errMsgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' is required", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' must be a valid email", err.Field()))
		case "max":
			errMsgs = append(
				errMsgs,
				fmt.Sprintf("field '%s' must be no more than %s characters", err.Field(), err.Param()),
			)
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field '%s' is not valid", err.Field()))
		}
	}

	return ErrorResponse{Error: strings.Join(errMsgs, ", ")}
}

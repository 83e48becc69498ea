package http

const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL"
	ErrCodeValidation = "VALIDATION"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeTeamExists = "TEAM_EXISTS"
)

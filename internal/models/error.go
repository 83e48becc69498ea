package models

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type PingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

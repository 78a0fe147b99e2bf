package model

type ErrorResponse struct {
	Error     string `json:"detail"`
	RequestId string `json:"request_id"`
}

package dto

import "encoding/xml"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	XMLName xml.Name `json:"-" xml:"error"`
	Error   string   `json:"error" xml:"status"`
	Message string   `json:"message" xml:"message"`
	Code    int      `json:"code" xml:"code"`
}

package adapter

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"
)

const maxUpstreamMessage = 200

type upstreamErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type upstreamErrorBody struct {
	upstreamErrorDetail
	Data []upstreamErrorDetail `json:"data"`
}

// mapUpstreamError turns a non-2xx CRM answer into an [*UpstreamRejectedError].
//
// Two body shapes are understood: {"data":[{"code","message"}]} and
// {"code","message"}. Anything else keeps only the status text, the raw body
// is never copied into the error.
func mapUpstreamError(status int, body []byte) *UpstreamRejectedError {
	rejected := &UpstreamRejectedError{Status: status}

	var parsed upstreamErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		detail := parsed.upstreamErrorDetail
		if len(parsed.Data) > 0 && parsed.Data[0].Code != "" {
			detail = parsed.Data[0]
		}
		rejected.Code = detail.Code
		rejected.Message = truncate(detail.Message, maxUpstreamMessage)
	}

	if rejected.Message == "" {
		rejected.Message = http.StatusText(status)
	}

	return rejected
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

package web

import (
	"fmt"
	"time"

	"github.com/oarkflow/frame"
	"github.com/oarkflow/frame/pkg/protocol/consts"
	"github.com/oarkflow/xid"
)

var TimeFormat = time.RFC3339

type Response struct {
	Additional any    `json:"additional,omitempty"`
	Data       any    `json:"data"`
	Message    string `json:"message,omitempty"`
	RequestID  string `json:"request_id"`
	Code       int    `json:"code"`
	Success    bool   `json:"success"`
}

func getResponse(code int, message string, additional any) Response {
	return Response{
		Code:       code,
		Message:    message,
		Success:    false,
		Additional: additional,
		RequestID:  xid.New().String(),
	}
}

func Abort(ctx *frame.Context, code int, message string, additional any) {
	ctx.AbortWithJSON(consts.StatusOK, getResponse(code, message, additional))
}

func Failed(ctx *frame.Context, code int, message string, additional any) {
	ctx.JSON(consts.StatusOK, getResponse(code, message, additional))
}

func Success(ctx *frame.Context, code int, data any, message ...string) {
	response := Response{
		Code:      code,
		Data:      formatTimes(data),
		Success:   true,
		RequestID: xid.New().String(),
	}
	if len(message) > 0 {
		response.Message = message[0]
	}
	ctx.JSON(consts.StatusOK, response)
}

func File(ctx *frame.Context, data []byte, header string) {
	ctx.Bytes(200, data, header)
}

func DownloadBytes(ctx *frame.Context, data []byte, filename string, header string) {
	ctx.Response.Header.Set("content-disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	ctx.Bytes(200, data, header)
}

// formatTimes rewrites time.Time values inside generic maps and slices into
// TimeFormat strings so every endpoint reports timestamps the same way.
// Typed structs keep their own marshalling.
func formatTimes(data any) any {
	switch v := data.(type) {
	case time.Time:
		return v.Format(TimeFormat)
	case map[string]any:
		for key, value := range v {
			v[key] = formatTimes(value)
		}
		return v
	case []any:
		for i, value := range v {
			v[i] = formatTimes(value)
		}
		return v
	default:
		return data
	}
}

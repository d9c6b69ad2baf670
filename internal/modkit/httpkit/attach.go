package httpkit

import (
	"net/http"
	"strconv"

	phttp "libgate/internal/platform/net/http"
	"libgate/internal/platform/net/http/bind"
)

// xlsxContentType is the media type browsers expect for workbook downloads
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Attachment adapts a workbook producer into a download handler
// errors still go out as the standard JSON envelope
func Attachment(fn func(*http.Request) (filename string, body []byte, err error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		name, b, err := fn(r)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		writeAttachment(w, name, b)
	}
}

// AttachmentJSON binds a JSON body first, then produces the download
func AttachmentJSON[T any](fn func(*http.Request, T) (filename string, body []byte, err error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		name, b, err := fn(r, in)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		writeAttachment(w, name, b)
	}
}

func writeAttachment(w http.ResponseWriter, name string, b []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

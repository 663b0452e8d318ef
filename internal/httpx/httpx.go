package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxUploadBytes bounds multipart parsing; uploads larger than this fail.
const MaxUploadBytes = 32 << 20

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// IsMultipart reports whether the request carries form data with a possible
// file attachment rather than a JSON body.
func IsMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}

// FormFile returns the named upload when present. Absence is not an error;
// create/update endpoints accept zero-or-one attachment.
func FormFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return file, header, true, nil
}

// FormValue reports both the value and whether the field was supplied at all,
// so partial updates can distinguish "absent" from "set to empty".
func FormValue(r *http.Request, field string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

func ParseLimitOffset(values url.Values, defaultLimit, maxLimit int64) (int64, int64, error) {
	limit := defaultLimit
	offset := int64(0)

	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit != "" {
		parsed, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || parsed <= 0 {
			return 0, 0, errors.New("invalid limit")
		}
		limit = parsed
	}

	rawOffset := strings.TrimSpace(values.Get("offset"))
	if rawOffset != "" {
		parsed, err := strconv.ParseInt(rawOffset, 10, 64)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("invalid offset")
		}
		offset = parsed
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return limit, offset, nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

// defaultJSONLimit matches the usual 100kb default of JSON body parsers.
const defaultJSONLimit = 100 << 10

type jsonConfig struct {
	limit  int64
	strict bool
}

// JSONOption configures the JSON body parser.
type JSONOption func(*jsonConfig)

// JSONLimit sets the maximum accepted body size in bytes.
func JSONLimit(n int64) JSONOption {
	return func(cfg *jsonConfig) {
		cfg.limit = n
	}
}

// JSONStrict controls whether only objects and arrays are accepted.
// Strict parsing is the default.
func JSONStrict(strict bool) JSONOption {
	return func(cfg *jsonConfig) {
		cfg.strict = strict
	}
}

// JSON returns a handler that decodes application/json request bodies and
// attaches the result with SetBody. Requests of other types, or without a
// body, pass through with an empty object attached. r must carry locals
// (App installs them; see WithLocals).
//
// Failures reach next as *StatusError: 400 for malformed JSON, 413 when the
// body exceeds the limit, 415 for a charset other than UTF-8.
func JSON(opts ...JSONOption) HandlerFunc {
	cfg := jsonConfig{limit: defaultJSONLimit, strict: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(w http.ResponseWriter, r *http.Request, next func(error)) {
		if _, ok := Body(r); ok {
			next(nil)
			return
		}
		SetBody(r, map[string]any{})
		if !hasBody(r) {
			next(nil)
			return
		}
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || !isJSON(mediaType) {
			next(nil)
			return
		}
		if cs, ok := params["charset"]; ok && !strings.EqualFold(cs, "utf-8") {
			next(Errorf(http.StatusUnsupportedMediaType, "unsupported charset %q", cs))
			return
		}
		v, err := decodeJSON(w, r, cfg)
		if err != nil {
			next(err)
			return
		}
		SetBody(r, v)
		next(nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, cfg jsonConfig) (any, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, Errorf(http.StatusRequestEntityTooLarge, "request entity too large: limit %d", tooLarge.Limit)
		}
		return nil, &StatusError{Status: http.StatusBadRequest, Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if cfg.strict && data[0] != '{' && data[0] != '[' {
		return nil, Errorf(http.StatusBadRequest, "unexpected token %q in JSON at position 0", data[0])
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &StatusError{Status: http.StatusBadRequest, Err: err}
	}
	return v, nil
}

func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	return r.ContentLength != 0 || len(r.TransferEncoding) > 0
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

package main

import (
	"net/http"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/relay"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "internal")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, "invalid request body")
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// relayErrorResponse maps a relay outcome to its status and client-safe message.
func (app *application) relayErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := relay.HTTPStatus(err)
	kind := relay.Kind(err)

	switch {
	case kind == "internal":
		app.internalServerError(w, r, err)
		return
	case status >= http.StatusInternalServerError:
		app.logger.Errorw("relay error", "method", r.Method, "path", r.URL.Path, "kind", kind, "status", status)
	default:
		app.logger.Warnw("relay error", "method", r.Method, "path", r.URL.Path, "kind", kind, "status", status)
	}

	writeJSONError(w, status, relay.PublicMessage(err))
}

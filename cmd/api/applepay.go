package main

import (
	"expvar"
	"net/http"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/relay"
)

// outcome counters, visible under /debug/vars
var (
	sessionOutcomes = expvar.NewMap("applepay_sessions")
	paymentOutcomes = expvar.NewMap("applepay_payments")
)

// createMerchantSessionHandler godoc
//
//	@Summary		Create Apple Pay merchant session
//	@Description	Requests a merchant session from Adyen and returns it unchanged for completeMerchantValidation.
//	@Tags			applepay
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		relay.SessionInput	false	"Session request"
//	@Success		200		{object}	object				"Adyen merchant session"
//	@Failure		400		{object}	object
//	@Failure		500		{object}	object
//	@Router			/api/adyen/applepay/sessions [post]
func (app *application) createMerchantSessionHandler(w http.ResponseWriter, r *http.Request) {
	var payload relay.SessionInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.relay.CreateMerchantSession(r.Context(), payload)
	sessionOutcomes.Add(relay.Kind(err), 1)
	if err != nil {
		app.relayErrorResponse(w, r, err)
		return
	}

	if err := writeRawJSON(w, res.Status, res.Body); err != nil {
		app.logger.Errorw("write session response", "error", err.Error())
	}
}

// createPaymentHandler godoc
//
//	@Summary		Submit Apple Pay payment
//	@Description	Forwards the device payment token to Adyen /payments and relays the answer whatever its resultCode.
//	@Tags			applepay
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		relay.PaymentInput	true	"Payment request"
//	@Success		200		{object}	object				"Adyen payment response"
//	@Failure		400		{object}	object
//	@Failure		500		{object}	object
//	@Router			/api/adyen/payments [post]
func (app *application) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payload relay.PaymentInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.relay.CreatePayment(r.Context(), payload)
	paymentOutcomes.Add(relay.Kind(err), 1)
	if err != nil {
		app.relayErrorResponse(w, r, err)
		return
	}

	if err := writeRawJSON(w, res.Status, res.Body); err != nil {
		app.logger.Errorw("write payment response", "error", err.Error())
	}
}

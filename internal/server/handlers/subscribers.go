package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	apperrors "github.com/renolab/renolab/internal/errors"
	"github.com/renolab/renolab/internal/i18n"
	"github.com/renolab/renolab/internal/metrics"
	"github.com/renolab/renolab/internal/store"
)

// SubscriberStore persists newsletter sign-ups.
type SubscriberStore interface {
	AddSubscriber(ctx context.Context, sub store.Subscriber) (bool, error)
}

// SubscribeRequest is the JSON body of a sign-up.
type SubscribeRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
	Source string `json:"source"`
}

// SubscribeResponse acknowledges a sign-up.
type SubscribeResponse struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// SubscribeHandler captures newsletter e-mail addresses.
type SubscribeHandler struct {
	store        SubscriberStore
	translator   *i18n.Translator
	maxBodyBytes int64
}

// NewSubscribeHandler creates the sign-up handler. A nil store answers 503.
func NewSubscribeHandler(s SubscriberStore, translator *i18n.Translator, maxBodyBytes int64) *SubscribeHandler {
	if translator == nil {
		translator = i18n.New()
	}
	return &SubscribeHandler{store: s, translator: translator, maxBodyBytes: maxBodyBytes}
}

func (h *SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tag := i18n.FromRequest(r)

	if h.store == nil {
		respondWithError(w, r, apperrors.NewServiceUnavailableError(h.translator.Sprintf(tag, i18n.SubscribeFailed)))
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			respondWithError(w, r, apperrors.NewRequestTooLargeError(h.translator.Sprintf(tag, i18n.InvalidBody), tooLarge.Limit))
			return
		}
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, h.translator.Sprintf(tag, i18n.InvalidBody)))
		return
	}

	email, err := store.NormalizeEmail(req.Email)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError("email", h.translator.Sprintf(tag, i18n.InvalidEmail)))
		return
	}

	locale := tag
	if req.Locale != "" {
		locale = i18n.Negotiate(req.Locale)
	}

	created, err := h.store.AddSubscriber(r.Context(), store.Subscriber{
		Email:  email,
		Locale: locale.String(),
		Source: req.Source,
	})
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, h.translator.Sprintf(tag, i18n.SubscribeFailed)))
		return
	}
	metrics.RecordSubscription(created)

	status, key := http.StatusCreated, i18n.Subscribed
	if !created {
		status, key = http.StatusOK, i18n.AlreadySubscribed
	}
	writeJSON(w, status, SubscribeResponse{
		Email:   email,
		Created: created,
		Message: h.translator.Sprintf(tag, key),
	})
}

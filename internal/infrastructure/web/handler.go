// Package web serves the settings screen over HTTP: a JSON page model per
// tab, form submission guarded by CSRF tokens, and the settings schema.
package web

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
	"github.com/bnema/cookiemsg/internal/logging"
)

const defaultMaxFormBytes = 1 << 20

// HandlerConfig holds the request-level settings of the handler.
type HandlerConfig struct {
	// RoleHeader is the trusted header carrying the caller's role.
	RoleHeader string
	// FormPrefix is the outer name of host-style form fields.
	FormPrefix   string
	MaxFormBytes int64
}

// Handler exposes the settings use cases.
type Handler struct {
	render *usecase.RenderSettingsPageUseCase
	submit *usecase.SubmitSettingsUseCase
	schema *usecase.GetSettingsSchemaUseCase
	csrf   *CSRF
	cfg    HandlerConfig
	logger zerolog.Logger
}

// NewHandler creates a Handler. logger is attached to every request context.
func NewHandler(
	render *usecase.RenderSettingsPageUseCase,
	submit *usecase.SubmitSettingsUseCase,
	schema *usecase.GetSettingsSchemaUseCase,
	csrf *CSRF,
	cfg HandlerConfig,
	logger zerolog.Logger,
) *Handler {
	if cfg.MaxFormBytes <= 0 {
		cfg.MaxFormBytes = defaultMaxFormBytes
	}
	return &Handler{
		render: render,
		submit: submit,
		schema: schema,
		csrf:   csrf,
		cfg:    cfg,
		logger: logger,
	}
}

// Routes returns the handler with its middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /settings", h.handleRender)
	mux.HandleFunc("POST /settings", h.handleSubmit)
	mux.HandleFunc("GET /settings/schema", h.handleSchema)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	return h.withRequestContext(mux)
}

type pageResponse struct {
	*usecase.RenderSettingsPageOutput
	CSRFToken string `json:"csrf_token"`
}

type submitResponse struct {
	Submit    *usecase.SubmitSettingsOutput     `json:"submit"`
	Page      *usecase.RenderSettingsPageOutput `json:"page"`
	CSRFToken string                            `json:"csrf_token"`
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.render.Execute(ctx, usecase.RenderSettingsPageInput{
		Tab: r.URL.Query().Get(formKeyTab),
	})
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		RenderSettingsPageOutput: page,
		CSRFToken:                h.csrf.Issue(authz.RoleFromContext(ctx)),
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := authz.RoleFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, http.StatusRequestEntityTooLarge, "form too large", nil)
			return
		}
		writeProblem(w, http.StatusBadRequest, "malformed form", nil)
		return
	}

	if err := h.csrf.Verify(r.PostForm.Get(formKeyToken), role); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	version, err := expectedVersion(r.PostForm)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	tab := r.PostForm.Get(formKeyTab)
	values := fieldValues(r.PostForm, h.cfg.FormPrefix)

	out, err := h.submit.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:             tab,
		Values:          values,
		ExpectedVersion: version,
	})
	if err != nil {
		var submit any
		if out != nil {
			submit = out
		}
		h.fail(w, r, err, submit)
		return
	}

	status := http.StatusOK
	renderIn := usecase.RenderSettingsPageInput{Tab: string(out.Tab)}
	if out.State == usecase.SubmitRejected {
		status = http.StatusUnprocessableEntity
		renderIn.Submitted = values
		renderIn.Errors = out.Errors
	}

	page, err := h.render.Execute(ctx, renderIn)
	if err != nil {
		h.fail(w, r, err, out)
		return
	}

	writeJSON(w, status, submitResponse{
		Submit:    out,
		Page:      page,
		CSRFToken: h.csrf.Issue(role),
	})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	var input usecase.GetSettingsSchemaInput
	if raw := r.URL.Query().Get(formKeyTab); raw != "" {
		tab, err := entity.ParseTab(raw)
		if err != nil {
			h.fail(w, r, err, nil)
			return
		}
		input.Tab = tab
	}

	out, err := h.schema.Execute(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs err and writes the matching problem response. submit is nil or
// the outcome of a failed submit cycle.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, submit any) {
	status := statusFor(err)
	log := logging.FromContext(r.Context())

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("settings request failed")
		if status == http.StatusInternalServerError {
			detail = "internal error"
		}
	} else {
		log.Info().Err(err).Int("status", status).Msg("settings request refused")
	}

	writeProblem(w, status, detail, submit)
}

package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
	"github.com/Xausdorf/khqr-offline/internal/usecase/form"
)

const qrImagePath = "/api/form/qr.png"

type Handler struct {
	form   *form.Controller
	logger *zap.Logger
}

func NewHandler(formUC *form.Controller, logger *zap.Logger) *Handler {
	return &Handler{
		form:   formUC,
		logger: logger,
	}
}

// FormRequest carries optional input updates. Nil fields keep their value.
type FormRequest struct {
	StoreName          *string `json:"store_name"`
	AccountInformation *string `json:"account_information"`
	Amount             *string `json:"amount"`
	Currency           *string `json:"currency"`
}

type FormResponse struct {
	State              string `json:"state"`
	StoreName          string `json:"store_name"`
	AccountInformation string `json:"account_information"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
	Payload            string `json:"payload,omitempty"`
	PayloadMD5         string `json:"payload_md5,omitempty"`
	ImageURL           string `json:"image_url,omitempty"`
	Error              string `json:"error,omitempty"`
	GenerationID       string `json:"generation_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleGetForm(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(h.form.Snapshot()))
}

func (h *Handler) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	var req FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	in, err := toInput(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toResponse(h.form.Update(in)))
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	// the body is optional, an empty one generates from the current inputs
	var req FormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	in, err := toInput(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	snap := h.form.GenerateWith(in)
	status := http.StatusOK
	if snap.State == form.StateError {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, toResponse(snap))
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.form.Save(r.Context()); err != nil {
		if errors.Is(err, form.ErrNothingToSave) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("save request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "save failed"})
		return
	}
	writeJSON(w, http.StatusOK, toResponse(h.form.Snapshot()))
}

func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(h.form.Restore(r.Context())))
}

func (h *Handler) HandleQR(w http.ResponseWriter, _ *http.Request) {
	snap := h.form.Snapshot()
	if len(snap.Image) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no qr image"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(snap.Image)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// toInput validates the currency before anything is applied.
func toInput(req FormRequest) (form.Input, error) {
	in := form.Input{
		StoreName:          req.StoreName,
		AccountInformation: req.AccountInformation,
		Amount:             req.Amount,
	}
	if req.Currency != nil {
		c, err := khqr.ParseCurrency(*req.Currency)
		if err != nil {
			return form.Input{}, err
		}
		in.Currency = &c
	}
	return in, nil
}

func toResponse(s form.Snapshot) FormResponse {
	resp := FormResponse{
		State:              string(s.State),
		StoreName:          s.StoreName,
		AccountInformation: s.AccountInformation,
		Amount:             s.AmountText,
		Currency:           string(s.Currency),
		Payload:            s.Payload,
		PayloadMD5:         s.PayloadMD5,
		Error:              s.ErrorMessage,
	}
	if len(s.Image) > 0 {
		resp.ImageURL = qrImagePath
	}
	if s.GenerationID != uuid.Nil {
		resp.GenerationID = s.GenerationID.String()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

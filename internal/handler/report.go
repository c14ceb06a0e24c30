package handler

import (
	"net/http"
	"strconv"

	"github.com/okibe-dev/okibe/internal/domain"
	"github.com/okibe-dev/okibe/internal/utils"
)

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Board      string            `validate:"required" json:"board"`
		PostNumber domain.PostNumber `validate:"required" json:"postNumber"`
		Level      int               `json:"level"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ip, err := utils.GetIP(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	err = h.report.Create(domain.ReportCreationData{
		Board:      body.Board,
		PostNumber: body.PostNumber,
		Level:      body.Level,
		ReporterIp: ip,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reports, err := h.report.GetAll(limit, offset)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reports)
}

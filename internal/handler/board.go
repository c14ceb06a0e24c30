package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okibe-dev/okibe/internal/domain"
	"github.com/okibe-dev/okibe/internal/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	type bodyJson struct {
		Key    string                `validate:"required" json:"key"`
		Name   string                `validate:"required" json:"name"`
		Policy *domain.PostingPolicy `json:"policy"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	policy := h.cfg.Public.DefaultPolicy
	if body.Policy != nil {
		policy = *body.Policy
	}

	err := h.board.Create(domain.BoardCreationData{Key: body.Key, Name: body.Name, Policy: policy})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.GetAll()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, boards)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.Get(chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, board)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	removed, err := h.board.Delete(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int{"deletedFiles": removed})
}

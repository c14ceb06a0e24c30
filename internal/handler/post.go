package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okibe-dev/okibe/internal/domain"
	"github.com/okibe-dev/okibe/internal/utils"
)

func postNumberParam(r *http.Request, name string) (domain.PostNumber, error) {
	raw := chi.URLParam(r, name)
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if number < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return number, nil
}

func (h *Handler) SubmitThread(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, 0)
}

func (h *Handler) SubmitReply(w http.ResponseWriter, r *http.Request) {
	thread, err := postNumberParam(r, "thread")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	h.submit(w, r, thread)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, parent domain.PostNumber) {
	board, err := h.board.Get(chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ip, err := utils.GetIP(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	fields, staged, cleanup, err := h.parseSubmission(w, r, board.Policy)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer cleanup()

	result, err := h.post.Submit(r.Context(), domain.PostSubmission{
		Board:        board.Key,
		ParentNumber: parent,
		AuthorName:   fields.Name,
		Subject:      fields.Subject,
		Content:      fields.Content,
		OriginIp:     ip,
		StagedFiles:  staged,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	threads, err := h.post.Catalog(board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, threads)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	thread, err := postNumberParam(r, "thread")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	view, err := h.post.Thread(board, thread)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	number, err := postNumberParam(r, "post")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	post, err := h.post.Post(board, number)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	number, err := postNumberParam(r, "post")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	result, err := h.post.Remove(r.Context(), board, number)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) SetSticky(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	thread, err := postNumberParam(r, "thread")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	type bodyJson struct {
		Sticky *bool `validate:"required" json:"sticky"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.SetSticky(board, thread, *body.Sticky); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

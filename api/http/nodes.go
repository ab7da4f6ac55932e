package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sivaram/calc-admin/internal/model"
)

func (h *Handler) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.catalog.ListNodes()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (h *Handler) GetNode(w http.ResponseWriter, r *http.Request) {
	node, err := h.catalog.GetNode(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (h *Handler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var in model.CreateNodeInput
	if !decode(w, r, &in) {
		return
	}

	node, err := h.catalog.CreateNode(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("node", "create")
	writeJSON(w, http.StatusCreated, node)
}

func (h *Handler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateNodeInput
	if !decode(w, r, &in) {
		return
	}

	node, err := h.catalog.UpdateNode(mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("node", "update")
	writeJSON(w, http.StatusOK, node)
}

func (h *Handler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteNode(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("node", "delete")
	w.WriteHeader(http.StatusNoContent)
}

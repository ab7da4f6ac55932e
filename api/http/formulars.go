package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sivaram/calc-admin/internal/model"
)

func (h *Handler) ListFormulars(w http.ResponseWriter, r *http.Request) {
	formulars, err := h.catalog.ListFormulars()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formulars)
}

func (h *Handler) GetFormular(w http.ResponseWriter, r *http.Request) {
	formular, err := h.catalog.GetFormular(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formular)
}

func (h *Handler) CreateFormular(w http.ResponseWriter, r *http.Request) {
	var in model.CreateFormularInput
	if !decode(w, r, &in) {
		return
	}

	formular, err := h.catalog.CreateFormular(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "create")
	writeJSON(w, http.StatusCreated, formular)
}

func (h *Handler) UpdateFormular(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateFormularInput
	if !decode(w, r, &in) {
		return
	}

	formular, err := h.catalog.UpdateFormular(mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "update")
	writeJSON(w, http.StatusOK, formular)
}

func (h *Handler) DeleteFormular(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteFormular(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFormularNodes(w http.ResponseWriter, r *http.Request) {
	fns, err := h.catalog.FormularNodes(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fns)
}

func (h *Handler) AddFormularNode(w http.ResponseWriter, r *http.Request) {
	var in model.AddNodeInput
	if !decode(w, r, &in) {
		return
	}

	fn, err := h.catalog.AddFormularNode(mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "add_node")
	writeJSON(w, http.StatusCreated, fn)
}

func (h *Handler) RemoveFormularNode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.catalog.RemoveFormularNode(vars["id"], vars["nodeId"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "remove_node")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderFormularNodes(w http.ResponseWriter, r *http.Request) {
	var in model.ReorderNodesInput
	if !decode(w, r, &in) {
		return
	}

	fns, err := h.catalog.ReorderFormularNodes(mux.Vars(r)["id"], in.NodeOrder)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("formular", "reorder_nodes")
	writeJSON(w, http.StatusOK, fns)
}

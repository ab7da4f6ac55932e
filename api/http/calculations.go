package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sivaram/calc-admin/internal/model"
)

func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	calcs, err := h.catalog.ListCalculations()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calcs)
}

func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	calc, err := h.catalog.GetCalculation(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (h *Handler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	var in model.CreateCalculationInput
	if !decode(w, r, &in) {
		return
	}

	calc, err := h.catalog.CreateCalculation(in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "create")
	writeJSON(w, http.StatusCreated, calc)
}

func (h *Handler) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateCalculationInput
	if !decode(w, r, &in) {
		return
	}

	calc, err := h.catalog.UpdateCalculation(mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "update")
	writeJSON(w, http.StatusOK, calc)
}

func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCalculation(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "delete")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListCalculationFormulars(w http.ResponseWriter, r *http.Request) {
	cfs, err := h.catalog.CalculationFormulars(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfs)
}

func (h *Handler) AddCalculationFormular(w http.ResponseWriter, r *http.Request) {
	var in model.AddFormularInput
	if !decode(w, r, &in) {
		return
	}

	cf, err := h.catalog.AddCalculationFormular(mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "add_formular")
	writeJSON(w, http.StatusCreated, cf)
}

func (h *Handler) RemoveCalculationFormular(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.catalog.RemoveCalculationFormular(vars["id"], vars["formularId"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "remove_formular")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReorderCalculationFormulars(w http.ResponseWriter, r *http.Request) {
	var in model.ReorderFormularsInput
	if !decode(w, r, &in) {
		return
	}

	cfs, err := h.catalog.ReorderCalculationFormulars(mux.Vars(r)["id"], in.FormularOrder)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.mutated("calculation", "reorder_formulars")
	writeJSON(w, http.StatusOK, cfs)
}

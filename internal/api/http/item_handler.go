package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/service"
)

type ItemHandler struct {
	itemSvc service.ItemService
}

func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

type listItemsResponse struct {
	Items      []domain.Item `json:"items"`
	TotalCount int32         `json:"total_count"`
}

type optionsResponse struct {
	ItemID  string              `json:"item_id"`
	Options []pricing.OptionTag `json:"options"`
}

type referencedResponse struct {
	ItemID     string `json:"item_id"`
	Referenced bool   `json:"referenced"`
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var item domain.Item
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = ""
	if err := h.itemSvc.CreateItem(r.Context(), actor, &item); err != nil {
		writeError(w, err)
		return
	}
	h.writeStored(w, r, http.StatusCreated, item.ID)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemSvc.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt32(q.Get("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := queryInt32(q.Get("page_size"))
	if err != nil {
		writeError(w, err)
		return
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	items, count, err := h.itemSvc.ListItems(r.Context(), q.Get("supplier_id"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, listItemsResponse{Items: items, TotalCount: count})
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var item domain.Item
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = mux.Vars(r)["id"]
	if err := h.itemSvc.UpdateItem(r.Context(), actor, &item); err != nil {
		writeError(w, err)
		return
	}
	h.writeStored(w, r, http.StatusOK, item.ID)
}

// writeStored responds with the item as stored. The price change rate is the
// supplier's and never taken from the request body.
func (h *ItemHandler) writeStored(w http.ResponseWriter, r *http.Request, status int, id string) {
	item, err := h.itemSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.itemSvc.DeleteItem(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) DescribeOptions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tags, err := h.itemSvc.DescribeOptions(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{ItemID: id, Options: tags})
}

func (h *ItemHandler) IsReferenced(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	referenced, err := h.itemSvc.IsReferenced(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, referencedResponse{ItemID: id, Referenced: referenced})
}

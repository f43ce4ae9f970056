package handler

import (
	"encoding/json"
	"net/http"

	"rhr/internal/rooms/service"
	httputil "rhr/pkg/http"
	"rhr/pkg/logger"
	"rhr/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Middleware wraps a route, e.g. with session verification.
type Middleware func(httprouter.Handle) httprouter.Handle

type RoomHandler struct {
	service     service.RoomService
	requireAuth Middleware
	log         *logger.Logger
}

func NewRoomHandler(service service.RoomService, requireAuth Middleware, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service:     service,
		requireAuth: requireAuth,
		log:         log,
	}
}

func (h *RoomHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, "ListAvailable", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAvailable", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) ListBooked(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.ListBooked(r.Context())
	if err != nil {
		h.writeError(w, "ListBooked", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBooked", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) ListSorted(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	direction := ps.ByName("direction")

	rooms, err := h.service.ListAvailableSorted(r.Context(), direction)
	if err != nil {
		h.writeError(w, "ListSorted", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSorted", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	room, err := h.service.GetDetails(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetDetails", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDetails", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	req, ok := h.decodeBookingRequest(w, r, "Book")
	if !ok {
		return
	}

	room, err := h.service.Book(r.Context(), id, req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Book", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	room, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) UpdateCheckInDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	req, ok := h.decodeBookingRequest(w, r, "UpdateCheckInDate")
	if !ok {
		return
	}

	room, err := h.service.UpdateCheckInDate(r.Context(), id, req)
	if err != nil {
		h.writeError(w, "UpdateCheckInDate", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateCheckInDate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) decodeBookingRequest(w http.ResponseWriter, r *http.Request, handlerName string) (*model.BookingRequest, bool) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", writeErr)
		}
		return nil, false
	}
	return &req, true
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

// RegisterRoutes wires the room routes. Detail routes nest under /id/ so the
// wildcard cannot collide with the static /booked and /sort segments.
func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.ListAvailable)
	router.GET("/api/v1/rooms/sort/:direction", h.ListSorted)
	router.GET("/api/v1/rooms/id/:id", h.GetDetails)
	router.PATCH("/api/v1/rooms/id/:id", h.requireAuth(h.Book))
	router.GET("/api/v1/rooms/booked", h.requireAuth(h.ListBooked))
	router.PATCH("/api/v1/rooms/booked/:id", h.requireAuth(h.UpdateCheckInDate))
	router.PUT("/api/v1/rooms/booked/:id", h.requireAuth(h.Cancel))
}

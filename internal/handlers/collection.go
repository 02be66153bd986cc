package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/auth"
	dom "github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/domain"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/dto"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CollectionHandler handles the per-user collection endpoints. The acting
// user always comes from the verified token claims.
type CollectionHandler struct {
	svc *service.CollectionService
}

// NewCollectionHandler returns a new CollectionHandler.
func NewCollectionHandler(svc *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's collection
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EntryResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("list collection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list collection"})
		return
	}
	c.JSON(http.StatusOK, entriesToResponses(list))
}

// Add godoc
// @Summary      Add a comic to the collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddEntryRequest  true  "Entry data"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /collections [post]
func (h *CollectionHandler) Add(c *gin.Context) {
	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	_, err := h.svc.Add(c.Request.Context(), userID, req.ExternalID, req.Title, req.Number, req.ImageURL, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "externalId and title are required"})
			return
		}
		if errors.Is(err, service.ErrDuplicateEntry) {
			c.JSON(http.StatusConflict, gin.H{"error": "comic is already in your collection"})
			return
		}
		log.Printf("add to collection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comic to collection"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "comic added to collection"})
}

// Remove godoc
// @Summary      Remove a comic from the collection
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        externalId  path  string  true  "External catalog ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /collections/{externalId} [delete]
func (h *CollectionHandler) Remove(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	err := h.svc.Remove(c.Request.Context(), userID, c.Param("externalId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found in your collection"})
			return
		}
		log.Printf("remove from collection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove comic from collection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comic removed from collection"})
}

// Update godoc
// @Summary      Update status and note of an entry
// @Description  Replace semantics: omitted status resets to the default, omitted note clears it.
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        externalId  path  string                 true  "External catalog ID"
// @Param        body        body  dto.UpdateEntryRequest true  "New status and note"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /collections/{externalId} [put]
func (h *CollectionHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)
	err := h.svc.Update(c.Request.Context(), userID, c.Param("externalId"), req.Status, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found in your collection"})
			return
		}
		log.Printf("update collection entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collection entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry updated successfully"})
}

// Check godoc
// @Summary      Check whether a comic is in the collection
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        externalId  path  string  true  "External catalog ID"
// @Success      200  {object}  dto.CheckResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /collections/check/{externalId} [get]
func (h *CollectionHandler) Check(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	entry, found, err := h.svc.Check(c.Request.Context(), userID, c.Param("externalId"))
	if err != nil {
		log.Printf("check collection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check collection"})
		return
	}
	resp := dto.CheckResponse{InCollection: found}
	if found {
		e := entryToResponse(entry)
		resp.Item = &e
	}
	c.JSON(http.StatusOK, resp)
}

func entryToResponse(e dom.CollectionEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:         e.ID,
		ExternalID: e.ExternalID,
		Title:      e.Title,
		Number:     e.Number,
		ImageURL:   e.ImageURL,
		CreatedAt:  e.CreatedAt,
		Status:     e.Status,
		Note:       e.Note,
	}
}

func entriesToResponses(list []dom.CollectionEntry) []dto.EntryResponse {
	out := make([]dto.EntryResponse, len(list))
	for i := range list {
		out[i] = entryToResponse(list[i])
	}
	return out
}

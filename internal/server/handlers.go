package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orangesnowtech/dxi-reactions/internal/apperrors"
	"github.com/orangesnowtech/dxi-reactions/internal/domain"
)

type reactionRequest struct {
	Kind         string `json:"kind"`
	Intent       string `json:"intent"`
	PreviousKind string `json:"previousKind"`
}

type countsResponse struct {
	Counts domain.Counts `json:"counts"`
}

type conceptResponse struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Team        string        `json:"team,omitempty"`
	PublishedAt string        `json:"publishedAt,omitempty"`
	Counts      domain.Counts `json:"counts"`
}

func (s *Server) handleGetCounts(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return apperrors.Validation("item ID is required")
	}

	counts, err := s.reactions.GetCounts(c.Request().Context(), itemID)
	if err != nil {
		return mapDomainError(err, itemID)
	}

	return c.JSON(http.StatusOK, countsResponse{Counts: counts})
}

func (s *Server) handleApplyReaction(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return apperrors.Validation("item ID is required")
	}

	var req reactionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body").WithField("item_id", itemID)
	}

	counts, err := s.reactions.ApplyReaction(
		c.Request().Context(),
		itemID,
		domain.Kind(req.Kind),
		domain.Intent(req.Intent),
		domain.Kind(req.PreviousKind),
	)
	if err != nil {
		return mapDomainError(err, itemID)
	}

	return c.JSON(http.StatusOK, countsResponse{Counts: counts})
}

func (s *Server) handleResetAll(c echo.Context) error {
	items, err := s.reactions.ResetAll(c.Request().Context())
	if err != nil {
		return mapDomainError(err, "")
	}

	slog.Info("reset all reactions", "items", items)
	return c.JSON(http.StatusOK, map[string]any{
		"message":    fmt.Sprintf("reset reactions for %d items", items),
		"resetCount": items,
	})
}

// handleListConcepts returns every reactable content item together with its
// current counts, so list pages can render seeded widgets in one round trip.
func (s *Server) handleListConcepts(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := s.content.ListItems(ctx)
	if err != nil {
		return apperrors.Unavailable("failed to list content items", err)
	}

	out := make([]conceptResponse, 0, len(items))
	for _, item := range items {
		counts, err := s.reactions.GetCounts(ctx, item.ID)
		if err != nil {
			return mapDomainError(err, item.ID)
		}

		resp := conceptResponse{
			ID:     item.ID,
			Type:   item.Type,
			Slug:   item.Slug,
			Title:  item.Title,
			Team:   item.Team,
			Counts: counts,
		}
		if !item.PublishedAt.IsZero() {
			resp.PublishedAt = item.PublishedAt.Format("2006-01-02")
		}
		out = append(out, resp)
	}

	return c.JSON(http.StatusOK, map[string]any{"concepts": out})
}

// mapDomainError translates domain sentinels into the structured errors the
// middleware serializes. Anything unrecognized becomes an internal error.
func mapDomainError(err error, itemID string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidKind), errors.Is(err, domain.ErrInvalidIntent):
		structured := apperrors.Validation(err.Error())
		if itemID != "" {
			structured.WithField("item_id", itemID)
		}
		return structured
	case errors.Is(err, domain.ErrItemNotFound):
		return apperrors.NotFound("content item not found").WithField("item_id", itemID)
	case errors.Is(err, domain.ErrStoreUnavailable):
		structured := apperrors.Unavailable("reaction store unavailable", err)
		if itemID != "" {
			structured.WithField("item_id", itemID)
		}
		return structured
	case errors.Is(err, domain.ErrWriteTokenMissing):
		return apperrors.Configuration("write token is not configured")
	default:
		return apperrors.Internal("unexpected error", err)
	}
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
	"github.com/mikey/inbox-assistant/internal/utils"
)

// analyticsWindow is the lookback used by the analytics aggregation
const analyticsWindow = 24 * time.Hour

type categorizeRequest struct {
	EmailBody string `json:"emailBody"`
}

type respondRequest struct {
	EmailID   string `json:"emailId,omitempty"`
	EmailBody string `json:"emailBody"`
	Sentiment string `json:"sentiment,omitempty"`
	Send      bool   `json:"send,omitempty"`
}

type editResponseRequest struct {
	ReplyText string `json:"replyText"`
}

// fail writes the error envelope
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "error": message})
}

func (s *HTTPServer) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"service": "inbox-assistant",
	})
}

// handleAnalytics aggregates sentiment and priority counts over the most
// recent 24-hour window
func (s *HTTPServer) handleAnalytics(c echo.Context) error {
	since := time.Now().Add(-analyticsWindow)
	emails, err := s.emails.ListSince(c.Request().Context(), since)
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats":   core.TallyAnalytics(emails),
	})
}

// handleIngest triggers one ingestion run and returns the fetched records
func (s *HTTPServer) handleIngest(c echo.Context) error {
	emails, err := s.ingestion.Ingest(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    emails,
	})
}

func (s *HTTPServer) handleGetEmail(c echo.Context) error {
	email, err := s.emails.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Email not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    email,
	})
}

func (s *HTTPServer) handleListResponses(c echo.Context) error {
	responses, err := s.responses.ListByEmail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Email not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    responses,
	})
}

// handleCategorize classifies arbitrary text into category and priority
func (s *HTTPServer) handleCategorize(c echo.Context) error {
	var req categorizeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	result := s.enrichment.Classify(c.Request().Context(), req.EmailBody)

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"category": result.Category,
		"priority": result.Priority,
	})
}

// handleRespond generates a draft reply. When an email id is supplied the
// draft is persisted as a Response record, and optionally sent through the
// configured reply transport.
func (s *HTTPServer) handleRespond(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	draft := s.enrichment.GenerateDraftReply(ctx, core.DraftRequest{Body: req.EmailBody})

	if req.EmailID != "" {
		email, err := s.emails.GetByID(ctx, req.EmailID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return fail(c, http.StatusNotFound, "Email not found")
			}
			return fail(c, http.StatusInternalServerError, err.Error())
		}

		response := &core.Response{
			EmailID:   email.ID,
			ReplyText: draft.Reply,
			Source:    core.SourceAuto,
		}
		if err := s.responses.Insert(ctx, response); err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}

		if req.Send {
			handle, err := s.sender.SendReply(ctx, email.From, "Re: "+email.Subject, draft.Reply, email.ExternalID)
			if err != nil {
				return fail(c, http.StatusInternalServerError, err.Error())
			}
			s.logger.Info("Draft reply sent",
				zap.String("email_id", req.EmailID),
				zap.String("provider_handle", handle))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"draft":   draft,
	})
}

// handleEditResponse records a human edit to a stored draft
func (s *HTTPServer) handleEditResponse(c echo.Context) error {
	var req editResponseRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ReplyText == "" {
		return fail(c, http.StatusBadRequest, "replyText is required")
	}

	response, err := s.responses.UpdateReply(c.Request().Context(), c.Param("id"), req.ReplyText)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Response not found")
		}
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    response,
	})
}

// handleWebhook stores an arbitrary inbound payload as an Email record
func (s *HTTPServer) handleWebhook(c echo.Context) error {
	var email core.Email
	if err := c.Bind(&email); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if email.ExternalID == "" {
		return fail(c, http.StatusBadRequest, "externalId is required")
	}

	if email.Snippet == "" && email.Body != "" {
		email.Snippet = utils.Snippet(email.Body, utils.DefaultSnippetLength)
	}

	if err := s.emails.Insert(c.Request().Context(), &email); err != nil {
		return fail(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Webhook received",
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clauselens/clauselens/backend/go-services/internal/contracts"
	"github.com/clauselens/clauselens/backend/go-services/pkg/middleware"
)

// ContractsHandler serves the mocked analysis endpoints. The service behind
// it returns fixed payloads after a simulated delay; uploaded files are
// forwarded by name only and never parsed.
type ContractsHandler struct {
	svc *contracts.Service
}

func NewContractsHandler(svc *contracts.Service) *ContractsHandler {
	return &ContractsHandler{svc: svc}
}

// Register routes under /api/contracts. All of them require a live Bearer
// credential.
func (h *ContractsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/api/contracts", middleware.AuthMiddleware())
	g.POST("/summarize", h.Summarize)
	g.POST("/ask", h.Ask)
}

// Summarize accepts either JSON {text} or a multipart file upload and
// returns the three-part summary.
func (h *ContractsHandler) Summarize(c *gin.Context) {
	var in contracts.Input
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file upload required"})
			return
		}
		in = contracts.Input{FileName: fh.Filename}
	} else {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter or upload a contract."})
			return
		}
		in = contracts.Input{Text: req.Text}
	}

	ctx := contracts.WithCredential(c.Request.Context(), c.GetString("credential"))
	summary, err := h.svc.Summarize(ctx, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Ask answers one question against the supplied contract context.
func (h *ContractsHandler) Ask(c *gin.Context) {
	var req struct {
		ContractContext string `json:"contractContext"`
		Question        string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.ContractContext) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contract context is missing. Please analyze a document first."})
		return
	}

	ctx := contracts.WithCredential(c.Request.Context(), c.GetString("credential"))
	answer, err := h.svc.Ask(ctx, req.ContractContext, req.Question)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// fail maps the service fault taxonomy onto HTTP statuses: missing/expired
// credential is an authorization fault, everything else is a generic
// retryable server fault.
func (h *ContractsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contracts.ErrNoAuthToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, contracts.ErrNoEndpoint):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simplify the contract. Please try again later."})
	}
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalocean/contact-form/pkg/content"
	"github.com/digitalocean/contact-form/pkg/graphql"
	"github.com/digitalocean/contact-form/pkg/middleware"
	"github.com/digitalocean/contact-form/pkg/models"
	"github.com/digitalocean/contact-form/pkg/services"
)

const maxFormMemory = 1 << 20

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	pages             *content.Registry
	submissionService services.SubmissionService
	schema            *graphql.Schema
	log               logrus.FieldLogger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	pages *content.Registry,
	submissionService services.SubmissionService,
	schema *graphql.Schema,
	log logrus.FieldLogger,
) *Handlers {
	return &Handlers{
		pages:             pages,
		submissionService: submissionService,
		schema:            schema,
		log:               log,
	}
}

// Register wires the routes. Pages are served by the fallback route so that
// any path not matched by an explicit route is looked up in the page tree.
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/health", h.HealthCheck)
	router.GET("/graphql", h.GraphQL)
	router.POST("/graphql", h.GraphQL)
	router.NoRoute(h.ServePage)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ServePage renders or accepts the page at the request path
func (h *Handlers) ServePage(c *gin.Context) {
	page, err := h.pages.Resolve(c.Request.URL.Path)
	if errors.Is(err, content.ErrPageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	if page.Content != nil {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead:
			h.renderContentPage(c, *page.Content)
		default:
			methodNotAllowed(c, "GET, HEAD")
		}
		return
	}

	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		h.renderFormPage(c, *page.Form)
	case http.MethodPost:
		h.submitForm(c, *page.Form)
	default:
		methodNotAllowed(c, "GET, HEAD, POST")
	}
}

func (h *Handlers) renderFormPage(c *gin.Context, page models.FormPage) {
	intro, err := content.RenderRichText(page.Intro)
	if err != nil {
		h.internalError(c, err)
		return
	}
	thanks, err := content.RenderRichText(page.ThankYouText)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "form_page.html", gin.H{
		"Page":         page,
		"URL":          content.URL(page.Slug),
		"Intro":        intro,
		"ThankYouText": thanks,
	})
}

func (h *Handlers) renderContentPage(c *gin.Context, page models.ContentPage) {
	intro, err := content.RenderRichText(page.Intro)
	if err != nil {
		h.internalError(c, err)
		return
	}
	formURL := ""
	if page.ContactForm != "" {
		formURL = content.URL(page.ContactForm)
	}
	c.HTML(http.StatusOK, "content_page.html", gin.H{
		"Page":    page,
		"Intro":   intro,
		"FormURL": formURL,
	})
}

func (h *Handlers) submitForm(c *gin.Context, page models.FormPage) {
	payload, err := readPayload(c.Request)
	if err != nil {
		middleware.Logger(c, h.log).WithError(err).Info("unreadable form payload")
		c.Status(http.StatusBadRequest)
		return
	}

	outcome, err := h.submissionService.Submit(c.Request.Context(), page, payload)
	if err != nil {
		h.internalError(c, err)
		return
	}

	switch outcome.Result {
	case services.ResultMalformed:
		c.Status(http.StatusBadRequest)
	case services.ResultSuppressed:
		c.JSON(http.StatusOK, gin.H{})
	case services.ResultInvalid:
		c.JSON(http.StatusBadRequest, outcome.Errors)
	case services.ResultAccepted:
		c.JSON(http.StatusOK, outcome.Cleaned)
	}
}

// GraphQL answers read-only queries about pages
func (h *Handlers) GraphQL(c *gin.Context) {
	var req graphql.Request
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if vars := c.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "variables must be a JSON object"})
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid GraphQL request"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	c.JSON(http.StatusOK, h.schema.Do(c.Request.Context(), req))
}

func (h *Handlers) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.Logger(c, h.log).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func methodNotAllowed(c *gin.Context, allow string) {
	c.Header("Allow", allow)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// readPayload collects submitted fields from form-encoded, multipart or JSON
// bodies. Every value is a string at this boundary.
func readPayload(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return jsonPayload(r)
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	if r.PostForm == nil {
		return url.Values{}, nil
	}
	return r.PostForm, nil
}

func jsonPayload(r *http.Request) (url.Values, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json payload: %w", err)
	}
	payload := url.Values{}
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				payload.Add(key, fmt.Sprint(item))
			}
		case string:
			payload.Add(key, v)
		default:
			payload.Add(key, fmt.Sprint(v))
		}
	}
	return payload, nil
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/digitalocean/contact-form/pkg/middleware"
)

// NewRouter builds the gin engine with middleware, templates and routes
func NewRouter(h *Handlers, log logrus.FieldLogger, allowedOrigins []string) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(allowedOrigins...))
	router.SetHTMLTemplate(tmpl)

	h.Register(router)
	return router, nil
}

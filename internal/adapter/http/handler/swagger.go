package handler

import (
	"net/http"

	"point-wallet/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIDocs serves the OpenAPI document of the points API and a Swagger UI
// page for it.
type APIDocs struct {
	spec []byte
}

// NewAPIDocs creates the docs handler. A nil spec makes /swagger/spec 404.
func NewAPIDocs(spec []byte) *APIDocs {
	return &APIDocs{spec: spec}
}

// Spec serves the raw OpenAPI YAML.
func (d *APIDocs) Spec(c *gin.Context) {
	if len(d.spec) == 0 {
		c.String(http.StatusNotFound, "OpenAPI document not loaded")
		return
	}
	c.Data(http.StatusOK, "application/yaml", d.spec)
}

// UI serves a Swagger UI page that loads /swagger/spec. Bearer tokens entered
// in the page are kept across reloads for trying the member endpoints.
func (d *APIDocs) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

const swaggerPage = `<!DOCTYPE html>
<html lang="ko">
<head>
  <meta charset="UTF-8">
  <title>` + logger.ServiceName + ` points API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/swagger/spec',
      dom_id: '#swagger-ui',
      persistAuthorization: true,
      tryItOutEnabled: true
    });
  </script>
</body>
</html>`

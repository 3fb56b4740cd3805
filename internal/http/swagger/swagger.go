package swagger

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/price-tracker/api-contract"
)

const (
	docsPath = "/docs"
	specPath = "/docs/openapi.yml"

	swaggerUIVersion = "5.29.3"
)

// Register serves Swagger UI for the embedded contract.
func Register(r chi.Router) {
	page := []byte(docsPage(specPath))
	spec := apicontract.GetSpecBytes()

	r.Get(docsPath, serveBytes("text/html; charset=utf-8", page))
	r.Get(specPath, serveBytes("application/yaml", spec))
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

func docsPage(specURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Price Tracker API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%[1]s/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@%[1]s/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[2]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      displayOperationId: true,
      tryItOutEnabled: true,
    });
  };
</script>
</body>
</html>
`, swaggerUIVersion, specURL)
}

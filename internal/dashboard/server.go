// Package dashboard serves the IV ranking table and per-symbol OHLC+IV
// charts over the persisted observations, plus a small JSON API over the
// same queries.
package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"iv-data/internal/store"
)

// windowDays is the trailing observation window for summaries and charts.
const windowDays = 365

//go:embed templates/*.html
var templatesFS embed.FS

// Server renders the dashboard. It only reads from the store; ingestion runs
// as a separate process.
type Server struct {
	st     *store.Store
	addr   string
	engine *gin.Engine
}

// NewServer builds the gin engine, templates and routes.
func NewServer(st *store.Store, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	funcs := template.FuncMap{
		"num": fmtNullable,
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{st: st, addr: addr, engine: engine}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.indexPage)
	s.engine.GET("/chart/:symbol", s.chartPage)

	api := s.engine.Group("/api/v1")
	{
		api.GET("/summary", s.apiSummary)
		api.GET("/ohlc/:symbol", s.apiOHLC)
		api.GET("/ohlc/:symbol/export", s.apiOHLCExport)
	}
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}

// Handler exposes the route tree, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// fmtNullable renders an optional statistic; absent values show as blank.
func fmtNullable(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

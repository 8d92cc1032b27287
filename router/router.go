package router

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vitrina/config"
	"vitrina/internal/content"
	"vitrina/internal/content/model"
	"vitrina/internal/content/service"
	"vitrina/internal/gallery"
	"vitrina/internal/health"
	"vitrina/middleware"
	"vitrina/socket"
)

func Setup(cfg *config.Config, db *sql.DB, svc *service.ContentService) http.Handler {
	mux := http.NewServeMux()

	h := content.NewContentHandler(svc, cfg.AdminToken)
	auth := middleware.Auth(cfg.AdminToken)

	// Public reads
	mux.HandleFunc("/site.json", h.GetSite)
	mux.HandleFunc("/products.json", h.GetProducts)
	mux.Handle("/images.json", gallery.New(filepath.Join(cfg.PublicDir, "img")))

	// Admin writes
	mux.Handle("/api/site", auth(http.HandlerFunc(h.PutSite)))
	mux.Handle("/api/products", auth(http.HandlerFunc(h.PutProducts)))
	mux.HandleFunc("/api/login", h.Login)

	// Live preview
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(svc.Hub, w, r)
	})

	mux.Handle("/healthz", readiness(db, svc).Handler())

	// Static site, with the admin redirect and an index.html fallback for
	// unmatched paths.
	mux.Handle("/", staticHandler(cfg.PublicDir))

	return middleware.CORSMiddleware(middleware.NoStore(middleware.RequestLogger(mux)))
}

func readiness(db *sql.DB, svc *service.ContentService) *health.Checker {
	checker := health.NewChecker()
	checker.Register("database", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})
	for _, key := range model.Keys() {
		checker.Register("document:"+key, func(ctx context.Context) error {
			value, err := svc.Repo.Get(key)
			if err != nil {
				return err
			}
			if value == nil {
				return errors.New("document not present in store")
			}
			return nil
		})
	}
	return checker
}

func staticHandler(publicDir string) http.Handler {
	fs := http.FileServer(http.Dir(publicDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin" {
			http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
			return
		}

		// Unknown paths get the home page so frontend routes survive a
		// reload.
		path := filepath.Join(publicDir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(publicDir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}

package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
)

// GET /uploads/{filename} — скачивание вложения
func (h *Handler) DownloadUploadAPI(w http.ResponseWriter, r *http.Request) {
	// Base отрезает любые "../" из имени файла
	name := filepath.Base(mux.Vars(r)["filename"])
	path := filepath.Join(h.Files.UploadsDir(), name)

	if _, err := os.Stat(path); err != nil {
		log.Printf("File not found: %s", path)
		jsonError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	http.ServeFile(w, r, path)
}

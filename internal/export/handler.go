package export

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

const maxUploadSize = 50 << 20 // 50MB

// Handler turns a browser-rendered capture into a file download. The
// frontend rasterizes the canvas per a CaptureSpec, posts the PNG here and
// receives it back with a Content-Disposition so the browser saves it.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// DownloadImage accepts a multipart form with an "image" PNG part and an
// optional "name" field and streams the image back as an attachment.
func (h *Handler) DownloadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "request too large", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	name := SanitizeName(r.FormValue("name"))

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		http.Error(w, "no image uploaded", http.StatusBadRequest)
		return
	}

	f, err := files[0].Open()
	if err != nil {
		slog.Error("open uploaded image", "error", err)
		http.Error(w, "failed to read image", http.StatusBadRequest)
		return
	}
	defer f.Close()

	// Check the PNG signature before echoing the payload back.
	var sig [8]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil || string(sig[:]) != "\x89PNG\r\n\x1a\n" {
		http.Error(w, "not a png image", http.StatusBadRequest)
		return
	}

	size := files[0].Size
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, name))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))

	w.Write(sig[:])
	if _, err := io.Copy(w, f); err != nil {
		slog.Error("stream export", "error", err)
		return
	}

	slog.Info("export complete", "name", name, "size", size)
}

// SanitizeName maps a user-supplied export name to a safe filename stem.
// Empty names fall back to "canvas".
func SanitizeName(name string) string {
	if name == "" {
		return "canvas"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

package server

import (
	"log"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 320 // mobile-friendly size

// qrHandler renders a PNG QR code for a room's join link, so a phone can
// scan its way into the room. Works for any non-empty id even before the
// room exists, since rooms are created on first join.
func (s *Server) qrHandler(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	roomID := NormalizeRoomID(p.ByName("id"))
	if err := ValidateRoomID(roomID); err != nil {
		http.Error(w, "Invalid room id", http.StatusBadRequest)
		return
	}

	base := s.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	joinURL := base + "/?room=" + url.QueryEscape(roomID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		log.Printf("Failed to write QR response: %v", err)
	}
}

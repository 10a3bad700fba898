package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clipcart/clipcart/internal/httputil"
)

var watchPageTemplate = template.Must(template.New("watch").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}} — ClipCart</title>
    <meta property="og:title" content="{{.Title}}">
    <meta property="og:type" content="video.other">
    <meta property="og:video" content="{{.VideoURL}}">
    <meta property="og:site_name" content="ClipCart">
    <style nonce="{{.Nonce}}">
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #09090b;
            color: #fafafa;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            min-height: 100vh;
            display: flex;
            flex-direction: column;
            align-items: center;
        }
        .container {
            max-width: 480px;
            width: 100%;
            padding: 2rem 1rem;
        }
        video {
            width: 100%;
            aspect-ratio: 9 / 16;
            object-fit: cover;
            border-radius: 12px;
            background: #000;
        }
        h1 {
            margin-top: 1rem;
            font-size: 1.25rem;
            font-weight: 600;
        }
        .brand {
            margin-top: 0.5rem;
            color: #a1a1aa;
            font-size: 0.875rem;
        }
        .deal {
            margin-top: 0.5rem;
            color: #f97316;
            font-size: 0.875rem;
            font-variant-numeric: tabular-nums;
        }
        .cta {
            display: block;
            margin-top: 1.5rem;
            padding: 0.75rem;
            text-align: center;
            border-radius: 8px;
            background: #f97316;
            color: #09090b;
            font-weight: 600;
            text-decoration: none;
        }
    </style>
</head>
<body>
    <div class="container">
        <video id="player" controls loop playsinline>
            <source src="{{.VideoURL}}" type="video/mp4">
            Your browser does not support video playback.
        </video>
        <script nonce="{{.Nonce}}">
            var v = document.getElementById('player');
            v.play().catch(function() { v.muted = true; v.play(); });
        </script>
        <h1>{{.Title}}</h1>
        <p class="brand">{{.Brand}} · {{.Duration}}</p>
        {{if .TimeLeft}}<p class="deal">Deal ends in {{.TimeLeft}}</p>{{end}}
        <a class="cta" href="#">{{.CTAText}}</a>
    </div>
</body>
</html>`))

type watchPageData struct {
	Title    string
	Brand    string
	VideoURL string
	Duration string
	TimeLeft string
	CTAText  string
	Nonce    string
}

// handleWatchPage renders a share page for a single ad. Opening the page
// counts as a view.
func (s *Server) handleWatchPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ad, ok := s.catalog.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.recorder.RecordView(ad.ID, sessionFrom(r).ID, r.UserAgent())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := watchPageTemplate.Execute(w, watchPageData{
		Title:    ad.Title,
		Brand:    ad.Brand.Name,
		VideoURL: ad.VideoURL,
		Duration: ad.Duration,
		TimeLeft: s.timeLeft(ad),
		CTAText:  ad.CTAText,
		Nonce:    httputil.NonceFromContext(r.Context()),
	})
	if err != nil {
		slog.Error("render watch page", "ad", ad.ID, "error", err)
	}
}

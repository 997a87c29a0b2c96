package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// Handler serves signed commands and embed snippets to a hosting web app:
//
//	GET /command?cmd=login&fn=Joe&ln=Bloggs&pic=...&admin=t&ip=10.0.0.1
//	GET /command?cmd=logout&ip=10.0.0.1
//	GET /embed?fn=Joe&ip=10.0.0.1
//	GET /metrics
//
// An omitted ip query parameter disables IP binding. Metrics are registered
// on the supplied registry so the caller controls what else is exposed.
func Handler(signer *envolve.Signer, registry *prometheus.Registry) http.Handler {
	signedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envolve_commands_signed_total",
			Help: "Signed command strings produced, by command name.",
		},
		[]string{"command"},
	)
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envolve_http_requests_total",
			Help: "HTTP requests handled, by path and status code.",
		},
		[]string{"path", "code"},
	)
	registry.MustRegister(signedTotal, requestsTotal)

	count := func(path string, code int) {
		requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/command", func(w http.ResponseWriter, r *http.Request) {
		cmd := r.URL.Query().Get("cmd")

		var signed string
		switch cmd {
		case "login":
			fn := r.URL.Query().Get("fn")
			if fn == "" {
				http.Error(w, "login requires fn", http.StatusBadRequest)
				count("/command", http.StatusBadRequest)
				return
			}
			signed = signer.BuildLoginCommand(clientIP(r), fn, optionsFromQuery(r))
		case "logout":
			signed = signer.BuildLogoutCommand(clientIP(r))
		default:
			http.Error(w, fmt.Sprintf("unknown cmd %q", cmd), http.StatusBadRequest)
			count("/command", http.StatusBadRequest)
			return
		}

		signedTotal.WithLabelValues(cmd).Inc()
		count("/command", http.StatusOK)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, signed)
	})

	mux.HandleFunc("/embed", func(w http.ResponseWriter, r *http.Request) {
		fn := r.URL.Query().Get("fn")

		cmd := "logout"
		if fn != "" {
			cmd = "login"
		}
		signedTotal.WithLabelValues(cmd).Inc()
		count("/embed", http.StatusOK)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, signer.RenderEmbedTags(clientIP(r), fn, optionsFromQuery(r)))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return mux
}

func clientIP(r *http.Request) string {
	if ip := r.URL.Query().Get("ip"); ip != "" {
		return ip
	}
	return envolve.NoClientIP
}

func optionsFromQuery(r *http.Request) *envolve.LoginOptions {
	// ParseBool accepts the wire spelling "t" as well as true/1.
	admin, _ := strconv.ParseBool(r.URL.Query().Get("admin"))
	return &envolve.LoginOptions{
		LastName:   r.URL.Query().Get("ln"),
		PictureURL: r.URL.Query().Get("pic"),
		IsAdmin:    admin,
	}
}

package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"linkedin-poster/internal/locales"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// callbackResult carries whatever the provider redirect delivered: either an
// authorization code or an error parameter.
type callbackResult struct {
	code     string
	errParam string
}

// callbackListener is the short-lived local HTTP server that captures the
// OAuth redirect. It is single-use: the first callback wins and later
// requests are ignored.
type callbackListener struct {
	srv       *http.Server
	ln        net.Listener
	results   chan callbackResult
	localizer *i18n.Localizer
	deliver   sync.Once
	stop      sync.Once
}

func newCallbackListener(localizer *i18n.Localizer) *callbackListener {
	return &callbackListener{
		results:   make(chan callbackResult, 1),
		localizer: localizer,
	}
}

// Start binds addr and begins serving the /callback endpoint.
func (l *callbackListener) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind callback listener on %s: %w", addr, err)
	}
	l.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", l.handleCallback)
	l.srv = &http.Server{Handler: mux}

	go func() {
		// ErrServerClosed is the normal shutdown path.
		_ = l.srv.Serve(ln)
	}()
	return nil
}

// Addr returns the bound listen address.
func (l *callbackListener) Addr() string {
	return l.ln.Addr().String()
}

// Results delivers at most one callback result.
func (l *callbackListener) Results() <-chan callbackResult {
	return l.results
}

// Stop tears the listener down. It is idempotent and must be called on every
// exit path from the callback wait so no listening socket leaks.
func (l *callbackListener) Stop() {
	l.stop.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.srv.Shutdown(ctx)
	})
}

func (l *callbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if code := query.Get("code"); code != "" {
		l.deliver.Do(func() { l.results <- callbackResult{code: code} })
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, l.successPage())
		return
	}

	errParam := query.Get("error")
	if errParam == "" {
		errParam = "unknown_error"
	}
	l.deliver.Do(func() { l.results <- callbackResult{errParam: errParam} })
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprint(w, l.errorPage(errParam))
}

const pageTemplate = `<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
	<h1 style="color: %s;">%s</h1>
	<p>%s</p>
</body>
</html>`

func (l *callbackListener) successPage() string {
	return fmt.Sprintf(pageTemplate,
		locales.GetMessage(l.localizer, "HTMLAuthSuccessTitle", nil),
		"#0077B5",
		locales.GetMessage(l.localizer, "HTMLAuthSuccessHeading", nil),
		locales.GetMessage(l.localizer, "HTMLAuthSuccessBody", nil),
	)
}

func (l *callbackListener) errorPage(reason string) string {
	return fmt.Sprintf(pageTemplate,
		locales.GetMessage(l.localizer, "HTMLAuthErrorTitle", nil),
		"#d32f2f",
		locales.GetMessage(l.localizer, "HTMLAuthErrorHeading", nil),
		locales.GetMessage(l.localizer, "HTMLAuthErrorBody", map[string]interface{}{"Error": reason}),
	)
}

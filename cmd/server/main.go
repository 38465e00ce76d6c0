package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-drive-proxy/google"
	"github.com/jrsteele09/go-drive-proxy/internal/config"
	"github.com/jrsteele09/go-drive-proxy/server"
	"github.com/jrsteele09/go-drive-proxy/server/loginsession"
	"github.com/jrsteele09/go-drive-proxy/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c.GetLogLevel())
	displayAppname(c.GetAppName())

	credentials := token.Credentials{
		ClientID:     c.GetGoogleClientID(),
		ClientSecret: c.GetGoogleClientSecret(),
		RefreshToken: c.GetGoogleRefreshToken(),
	}
	// Incomplete credentials surface per request, not at startup, so
	// the health and login routes keep working while they are fixed.
	if err := credentials.Validate(); err != nil {
		zlog.Warn().Err(err).Msg("google credentials incomplete, proxied routes will fail until they are set")
	}

	refresherOptions := []token.RefresherOption{}
	if tokenURL := c.GetGoogleTokenURL(); tokenURL != "" {
		refresherOptions = append(refresherOptions, token.WithTokenURL(tokenURL))
	}

	tokenCache := token.NewCache()
	refresher, err := token.NewRefresher(credentials, tokenCache, refresherOptions...)
	if err != nil {
		return fmt.Errorf("token.NewRefresher: %w", err)
	}

	googleClient, err := google.NewClient(refresher)
	if err != nil {
		return fmt.Errorf("google.NewClient: %w", err)
	}

	srv, err := server.New(c, googleClient, loginsession.NewInMemoryLoginSessionRepo())
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func configureLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

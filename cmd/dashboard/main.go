package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/shiftwatch/sessionguard/account"
	fakeaccountrepo "github.com/shiftwatch/sessionguard/account/repofake"
	"github.com/shiftwatch/sessionguard/internal/config"
	"github.com/shiftwatch/sessionguard/role"
	"github.com/shiftwatch/sessionguard/server"
	"github.com/shiftwatch/sessionguard/storage"
	"github.com/shiftwatch/sessionguard/storage/memstore"
	"github.com/shiftwatch/sessionguard/storage/redisstore"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	shared := sharedStore(c)
	srv, err := server.New(c, demoRepos(), shared, memstore.New(), memstore.NewCookieJar())
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// sharedStore picks the cross-instance store: Redis when configured,
// in-process memory otherwise.
func sharedStore(c config.Config) storage.Store {
	addr := c.GetRedisAddr()
	if addr == "" {
		return memstore.New()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	log.Info().Str("addr", addr).Msg("shared session store on redis")
	return redisstore.New(client, redisstore.WithLogger(log.Logger))
}

// demoRepos seeds a throwaway account set so the dashboard is usable
// out of the box. A real deployment plugs its own repos in.
func demoRepos() server.Repos {
	accounts := fakeaccountrepo.NewFakeAccountRepo()
	hash, err := account.HashPassword("changeme")
	if err != nil {
		panic(err)
	}

	seed := []*account.Account{
		{Username: "admin", Name: "Demo Admin", PasswordHash: hash, Roles: []role.Role{role.Administrator}},
		{Username: "controller", Name: "Demo Controller", PasswordHash: hash, Roles: []role.Role{role.ActiveController}},
		{Username: "observer", Name: "Demo Observer", PasswordHash: hash, Roles: []role.Role{role.Observer}},
	}
	for _, acc := range seed {
		if err := accounts.Upsert(acc); err != nil {
			panic(err)
		}
	}

	return server.Repos{
		Accounts:   accounts,
		Signatures: fakeaccountrepo.NewFakeSignatureRepo(),
	}
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
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

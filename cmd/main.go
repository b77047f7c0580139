package main

import (
	"log"
	"net/http"

	"github.com/saeidalz13/battleship-twist/api"
	"github.com/saeidalz13/battleship-twist/db"
	"github.com/saeidalz13/battleship-twist/db/savefile"
	"github.com/saeidalz13/battleship-twist/db/sqlc"
	"github.com/saeidalz13/battleship-twist/db/sqlite"
	"github.com/saeidalz13/battleship-twist/internal/config"
	mb "github.com/saeidalz13/battleship-twist/models/battleship"
	mc "github.com/saeidalz13/battleship-twist/models/connection"
)

func mustSnapshotStore(cfg config.Config) (db.SnapshotStore, []api.Option) {
	switch cfg.Storage() {
	case config.StoragePostgres:
		dbManager := sqlc.NewDbManager(sqlc.New(db.MustConnectToDb(cfg.DatabaseURL)))
		return dbManager.Snapshots, []api.Option{api.WithAnalytics(dbManager.Analytics)}

	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			panic(err)
		}
		return store, nil

	default:
		store, err := savefile.New(cfg.SaveDir)
		if err != nil {
			panic(err)
		}
		return store, nil
	}
}

func main() {
	cfg := config.MustLoad()

	store, optFuncs := mustSnapshotStore(cfg)
	log.Printf("stage: %s\tstorage: %s\n", cfg.Stage, cfg.Storage())

	bsm := mc.NewBattleshipSessionManager(
		mc.WithCleanupInterval(cfg.SessionCleanupInterval),
		mc.WithGracePeriod(cfg.SessionGracePeriod),
	)
	go bsm.CleanupPeriodically()

	optFuncs = append(optFuncs, api.WithSnapshotStore(store), api.WithTickInterval(cfg.TickInterval))
	rp := api.NewRequestProcessor(bsm, mb.NewBattleshipMatchManager(), optFuncs...)

	log.Printf("Listening to port %d\n", cfg.Port)
	log.Fatalln(http.ListenAndServe(cfg.Addr(), api.NewRouter(rp)))
}

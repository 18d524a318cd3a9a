package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okubo/chobo/internal/config"
	"github.com/okubo/chobo/internal/ledger"
	"github.com/okubo/chobo/internal/server"
	"github.com/okubo/chobo/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := ledger.NewService(st, st, st, cfg.CounterAccount)
		srv := server.New(st, svc, cfg.Addr, log)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides CHOBO_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpadapter "svw.info/sudoku-game/internal/adapters/http"
	"svw.info/sudoku-game/internal/catalog"
	"svw.info/sudoku-game/internal/infrastructure/storage"
	"svw.info/sudoku-game/internal/solver"
	"svw.info/sudoku-game/internal/usecase"
	"svw.info/sudoku-game/internal/validator"
)

var log = logrus.New()

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var levelStr string
	root := &cobra.Command{
		Use:   "sudoku-game",
		Short: "Sudoku game engine and JSON API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl, err := logrus.ParseLevel(levelStr)
			if err != nil {
				lvl = logrus.InfoLevel
			}
			log.SetLevel(lvl)
		},
	}
	root.PersistentFlags().StringVar(&levelStr, "log-level", "info", "debug|info|warn|error")
	root.AddCommand(newServeCommand(), newVerifyCommand())
	return root
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func newServeCommand() *cobra.Command {
	var (
		addr    string
		persist string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}
			st := storage.NewFS(persist)
			uc := usecase.NewService(cat, st)
			h := httpadapter.New(uc)

			mux := http.NewServeMux()
			h.Register(mux)

			srv := &http.Server{
				Addr:              addr,
				Handler:           requestLogger(mux),
				ReadHeaderTimeout: 5 * time.Second,
			}
			log.WithFields(logrus.Fields{"addr": addr, "persist": persist}).Info("listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&persist, "persist-path", "./data", "save directory")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every embedded puzzle for validity and uniqueness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New()
			if err != nil {
				return err
			}
			s := solver.NewBacktracking()
			v := validator.New()
			for _, p := range cat.All() {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				entry := log.WithFields(logrus.Fields{
					"puzzle":     p.ID,
					"difficulty": p.Difficulty.String(),
					"givens":     p.Givens.Filled(),
				})
				if ok, conf, err := v.Validate(ctx, &p.Solution); err != nil || !ok {
					cancel()
					entry.WithField("conflicts", conf).Error("stored solution is invalid")
					continue
				}
				solved, st, err := s.Solve(ctx, p.Givens)
				if err != nil {
					cancel()
					entry.WithError(err).Error("givens are unsolvable")
					continue
				}
				if solved != p.Solution {
					cancel()
					entry.Error("solver disagrees with stored solution")
					continue
				}
				unique, _, err := s.Unique(ctx, p.Givens)
				cancel()
				if err != nil {
					entry.WithError(err).Error("uniqueness check failed")
					continue
				}
				if !unique {
					entry.Error("puzzle admits multiple solutions")
					continue
				}
				entry.WithFields(logrus.Fields{
					"nodes": st.Nodes,
					"dur":   st.Duration.Round(time.Millisecond),
				}).Info("puzzle ok")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "per-puzzle solve timeout")
	return cmd
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-ask/auth"
	"github.com/danielhkuo/quickly-ask/backend"
	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/models"
	"github.com/danielhkuo/quickly-ask/questions"
	"github.com/danielhkuo/quickly-ask/seed"
)

type app struct {
	envFile     string
	backend     string
	databaseURL string

	svc    *questions.Service
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "qactl",
		Short:        "Manage Quickly Ask questions",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file to load")
	root.PersistentFlags().StringVarP(&a.backend, "backend", "b", "", "Question backend (typesense, postgres or sqlite)")
	root.PersistentFlags().StringVarP(&a.databaseURL, "database-url", "d", "", "Database URL for the SQL backends")

	root.AddCommand(
		a.newInitCmd(),
		a.newSeedCmd(),
		a.newSearchCmd(),
		a.newAddCmd(),
		a.newDeleteCmd(),
		newAdminKeyCmd(),
	)

	return root
}

// connect opens the configured backend. Commands that need it call it
// from RunE and close it when done.
func (a *app) connect(cmd *cobra.Command) error {
	if err := cliparse.LoadDotEnv(a.envFile); err != nil {
		return err
	}

	var args []string
	if a.backend != "" {
		args = append(args, "-b", a.backend)
	}
	if a.databaseURL != "" {
		args = append(args, "-d", a.databaseURL)
	}

	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return err
	}

	store, closer, err := backend.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	a.svc = questions.NewService(store, cfg.PerPage)
	a.closer = closer
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

func parseSubject(s string) (models.Subject, error) {
	subject, ok := models.ParseSubject(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", questions.ErrUnknownSubject, s)
	}
	return subject, nil
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create missing subject collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(cmd); err != nil {
				return err
			}
			defer a.close()

			return a.svc.InitCollections(cmd.Context())
		},
	}
}

func (a *app) newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create collections and add sample questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadSeed(file)
			if err != nil {
				return err
			}

			if err := a.connect(cmd); err != nil {
				return err
			}
			defer a.close()

			added, err := seed.Run(cmd.Context(), a.svc, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d questions\n", added)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with questions (default: built-in samples)")
	return cmd
}

func loadSeed(file string) (seed.Data, error) {
	if file == "" {
		return seed.Default()
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return seed.Load(f)
}

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <subject> <query>",
		Short: "Search questions of a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := parseSubject(args[0])
			if err != nil {
				return err
			}

			if err := a.connect(cmd); err != nil {
				return err
			}
			defer a.close()

			results, err := a.svc.Search(cmd.Context(), subject, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No %s questions found\n", subject.Name())
				return nil
			}
			for _, q := range results {
				fmt.Fprintf(out, "%s\n  Q: %s\n  A: %s\n", q.ID, q.Question, q.Answer)
			}
			return nil
		},
	}
}

func (a *app) newAddCmd() *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "add <subject>",
		Short: "Add a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := parseSubject(args[0])
			if err != nil {
				return err
			}
			if !questions.CanSubmit(question, answer) {
				return questions.ErrInvalidQuestion
			}

			if err := a.connect(cmd); err != nil {
				return err
			}
			defer a.close()

			q, err := a.svc.Add(cmd.Context(), subject, question, answer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text (required)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <subject> <id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := parseSubject(args[0])
			if err != nil {
				return err
			}

			if err := a.connect(cmd); err != nil {
				return err
			}
			defer a.close()

			return a.svc.Delete(cmd.Context(), subject, args[1])
		},
	}
}

func newAdminKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-key",
		Short: "Print a new random admin key for ADMIN_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := auth.GenerateAdminKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

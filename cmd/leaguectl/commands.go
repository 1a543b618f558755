package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dalemusser/leaguehub/internal/app/consistency/backup"
	"github.com/dalemusser/leaguehub/internal/app/consistency/duplicates"
	"github.com/dalemusser/leaguehub/internal/app/consistency/emailsync"
	"github.com/dalemusser/leaguehub/internal/app/consistency/propagate"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliEnv is what every command needs. open is swapped for an in-memory
// store in tests.
type cliEnv struct {
	cfg  config
	log  *zap.Logger
	out  io.Writer
	open func(ctx context.Context) (docs.Store, func(), error)
}

func (e *cliEnv) withStore(ctx context.Context, fn func(docs.Store) error) error {
	store, closeFn, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(store)
}

func (e *cliEnv) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// dryRun is printed in place of a commit.
type dryRun struct {
	DryRun bool                `json:"dryRun"`
	Writes int                 `json:"writes"`
	IDs    map[string][]string `json:"ids"`
}

func planOutput(b *docs.Batch) dryRun {
	return dryRun{DryRun: true, Writes: b.Len(), IDs: b.IDs()}
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "LeagueHub account consistency tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(env.out)

	root.AddCommand(duplicatesCmd(env))
	root.AddCommand(syncEmailCmd(env))
	root.AddCommand(updateAccountCmd(env))
	root.AddCommand(backupCmd(env))
	return root
}

func duplicatesCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "Report duplicate and near-duplicate accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withStore(cmd.Context(), func(store docs.Store) error {
				d := &duplicates.Detector{Store: store, Log: env.log}
				report, err := d.Run(cmd.Context())
				if err != nil {
					return err
				}
				return env.printJSON(report)
			})
		},
	}
}

func syncEmailCmd(env *cliEnv) *cobra.Command {
	var req emailsync.Request
	var dry bool
	cmd := &cobra.Command{
		Use:   "sync-email",
		Short: "Rewrite an email address in every collection that copies it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := emailsync.CheckRequest(req); err != nil {
				return err
			}
			return env.withStore(cmd.Context(), func(store docs.Store) error {
				s := emailsync.New(store, env.log)
				if dry {
					b, _, err := s.Plan(cmd.Context(), req)
					if err != nil {
						return err
					}
					return env.printJSON(planOutput(b))
				}
				summary, err := s.Sync(cmd.Context(), req)
				if err != nil {
					return err
				}
				return env.printJSON(summary)
			})
		},
	}
	cmd.Flags().StringVar(&req.OldEmail, "old", "", "Current email address")
	cmd.Flags().StringVar(&req.NewEmail, "new", "", "Replacement email address")
	cmd.Flags().StringVar(&req.AccountType, "type", "", "Account type (player, coach, user, admin)")
	cmd.Flags().StringVar(&req.AccountID, "id", "", "Canonical account id")
	cmd.Flags().StringVar(&req.UID, "uid", "", "Auth uid for userProfiles")
	cmd.Flags().BoolVar(&dry, "dry-run", false, "Print the planned writes without committing")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func updateAccountCmd(env *cliEnv) *cobra.Command {
	var req propagate.Request
	var sets []string
	var dry bool
	cmd := &cobra.Command{
		Use:   "update-account",
		Short: "Apply a profile update and propagate it to every copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseSets(sets)
			if err != nil {
				return err
			}
			req.Updates = &updates
			return env.withStore(cmd.Context(), func(store docs.Store) error {
				p := propagate.New(store, env.log, env.cfg.DefaultPhoneRegion)
				if dry {
					b, err := p.Plan(cmd.Context(), req)
					if err != nil {
						return err
					}
					return env.printJSON(planOutput(b))
				}
				res, err := p.Update(cmd.Context(), req)
				if err != nil {
					return err
				}
				return env.printJSON(res)
			})
		},
	}
	cmd.Flags().StringVar(&req.AccountID, "id", "", "Canonical account id")
	cmd.Flags().StringVar(&req.AccountType, "type", "", "Account type (player, coach, user, admin)")
	cmd.Flags().StringVar(&req.UID, "uid", "", "Auth uid for userProfiles")
	cmd.Flags().StringVar(&req.TeamID, "team", "", "Team id when the account record has none")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field update as key=value (repeatable)")
	cmd.Flags().BoolVar(&dry, "dry-run", false, "Print the planned writes without committing")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// parseSets turns key=value pairs into Updates. Keys use the stored field
// names.
func parseSets(sets []string) (propagate.Updates, error) {
	var u propagate.Updates
	if len(sets) == 0 {
		return u, fmt.Errorf("at least one --set key=value is required")
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return u, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		v := value
		switch key {
		case "firstName":
			u.FirstName = &v
		case "lastName":
			u.LastName = &v
		case "email":
			u.Email = &v
		case "phone":
			u.Phone = &v
		case "position":
			u.Position = &v
		case "nickname":
			u.Nickname = &v
		case "birthDate":
			u.BirthDate = &v
		case "height":
			u.Height = &v
		case "teamName":
			u.TeamName = &v
		case "jerseyNumber":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return u, fmt.Errorf("jerseyNumber must be an integer: %w", err)
			}
			u.JerseyNumber = &n
		default:
			return u, fmt.Errorf("unknown field %q", key)
		}
	}
	return u, nil
}

func backupCmd(env *cliEnv) *cobra.Command {
	var out, collections string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export collections as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colls := backup.ParseCollections(collections, env.cfg.BackupCollections)
			return env.withStore(cmd.Context(), func(store docs.Store) error {
				e := &backup.Exporter{Store: store, Log: env.log}
				snap, err := e.Export(cmd.Context(), colls)
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					return snap.Write(env.out)
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				if err := snap.Write(f); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				env.log.Info("backup written", zap.String("file", out), zap.Strings("collections", colls))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&collections, "collections", "", "Comma-separated collections (default from LEAGUEHUB_BACKUP_COLLECTIONS)")
	return cmd
}

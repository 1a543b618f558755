// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/leaguehub/internal/app/store/audit"
	"github.com/dalemusser/leaguehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for consistency actions (account updates, email syncs,
	// duplicate scans, backups).
	// Values: "all" (store + zap), "db" (store only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both the document store (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ratelimit.ClientIP(r)
}

func userAgent(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.UserAgent()
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.AccountID != "" {
		fields = append(fields, zap.String("account_id", event.AccountID))
	}
	if event.AccountType != "" {
		fields = append(fields, zap.String("account_type", event.AccountType))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	keys := make([]string, 0, len(event.Details))
	for k := range event.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String("detail_"+k, event.Details[k]))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.config.Admin
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func failure(err error) (bool, string) {
	if err == nil {
		return true, ""
	}
	return false, err.Error()
}

// AccountUpdated logs a propagated account update.
func (l *Logger) AccountUpdated(ctx context.Context, r *http.Request, accountID, accountType string, collections []string, emailSynced bool, err error) {
	ok, reason := failure(err)
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventAccountUpdated,
		AccountID:     accountID,
		AccountType:   accountType,
		IP:            getClientIP(r),
		UserAgent:     userAgent(r),
		Success:       ok,
		FailureReason: reason,
		Details: map[string]string{
			"collections":  strings.Join(collections, ","),
			"email_synced": strconv.FormatBool(emailSynced),
		},
	})
}

// EmailSynced logs a standalone email rename.
func (l *Logger) EmailSynced(ctx context.Context, r *http.Request, accountID, oldEmail, newEmail string, documents int, err error) {
	ok, reason := failure(err)
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventEmailSynced,
		AccountID:     accountID,
		IP:            getClientIP(r),
		UserAgent:     userAgent(r),
		Success:       ok,
		FailureReason: reason,
		Details: map[string]string{
			"old_email": oldEmail,
			"new_email": newEmail,
			"documents": strconv.Itoa(documents),
		},
	})
}

// DuplicatesScanned logs a duplicate scan.
func (l *Logger) DuplicatesScanned(ctx context.Context, r *http.Request, accounts, groups int) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryData,
		EventType: audit.EventDuplicatesScanned,
		IP:        getClientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
		Details: map[string]string{
			"accounts": strconv.Itoa(accounts),
			"groups":   strconv.Itoa(groups),
		},
	})
}

// BackupExported logs a backup export.
func (l *Logger) BackupExported(ctx context.Context, r *http.Request, collections []string, documents int, err error) {
	ok, reason := failure(err)
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryData,
		EventType:     audit.EventBackupExported,
		IP:            getClientIP(r),
		UserAgent:     userAgent(r),
		Success:       ok,
		FailureReason: reason,
		Details: map[string]string{
			"collections": strings.Join(collections, ","),
			"documents":   strconv.Itoa(documents),
		},
	})
}

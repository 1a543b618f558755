// Package txn wraps MongoDB multi-document transactions.
//
// Run falls back to executing fn without a transaction when the deployment
// cannot run one (standalone mongod, some DocumentDB versions). RunAtomic
// never falls back: callers that promise all-or-nothing semantics use it and
// surface ErrNotSupported instead.
package txn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotSupported is returned by RunAtomic when transactions are unavailable.
var ErrNotSupported = errors.New("transactions are not supported by this deployment")

// Run executes fn inside a transaction, or directly if transactions are not
// supported by the server.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	err := RunAtomic(ctx, db, fn)
	if errors.Is(err, ErrNotSupported) {
		if log != nil {
			log.Warn("transactions unsupported; running without transaction")
		}
		return fn(ctx)
	}
	return err
}

// RunAtomic executes fn inside a transaction and commits it.
func RunAtomic(ctx context.Context, db *mongo.Database, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		return classify(err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return classify(err)
}

// classify turns a missing-transaction-support error into ErrNotSupported,
// keeping the server message. Other errors pass through unchanged.
func classify(err error) error {
	if IsNotSupported(err) {
		return fmt.Errorf("%w: %v", ErrNotSupported, err)
	}
	return err
}

// IsNotSupported reports whether err means the server cannot run
// transactions or sessions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, (legacy) IllegalOperation, OperationNotSupportedInTransaction
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }
	switch {
	case has("transaction") && has("replica set"):
		return true
	case has("session") && has("not supported"):
		return true
	case has("transaction") && has("session"):
		return true
	case has("illegal operation"):
		return true
	}
	return false
}

// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	Conn  *docs.Conn
	Store docs.Store

	// Set only for the mongo backend; used for index management.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}

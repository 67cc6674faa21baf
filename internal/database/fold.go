package database

import (
	"database/sql/driver"
	"fmt"
	"sync"

	gosqlite "github.com/glebarez/go-sqlite"

	"gamevault/backend/internal/catalog"
)

// FoldFunction is the SQLite scalar function applying catalog.Fold to a
// column. The built-in LOWER only folds ASCII.
const FoldFunction = "gv_fold"

var (
	registerOnce sync.Once
	registerErr  error
)

// registerSQLiteFunctions installs FoldFunction on the driver. It applies to
// connections opened afterwards.
func registerSQLiteFunctions() error {
	registerOnce.Do(func() {
		registerErr = gosqlite.RegisterDeterministicScalarFunction(FoldFunction, 1, foldValue)
	})
	return registerErr
}

func foldValue(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return catalog.Fold(v), nil
	case []byte:
		return catalog.Fold(string(v)), nil
	default:
		return catalog.Fold(fmt.Sprint(v)), nil
	}
}

package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"yatube/internal/pkg"
)

// mysql 约束相关错误号
var mysqlConstraintCodes = map[uint16]struct{}{
	1048: {}, // column cannot be null
	1062: {}, // duplicate entry
	1451: {}, // row is referenced
	1452: {}, // referenced row missing
	3819: {}, // check constraint violated
}

// translate 把驱动错误统一成 pkg 里的错误类型
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(pkg.ErrNotFound, op)
	case isConstraint(err):
		return pkgerrors.Wrapf(pkg.ErrConstraintViolation, "%s: %v", op, err)
	}
	return pkgerrors.Wrap(err, op)
}

func isConstraint(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlConstraintCodes[myErr.Number]
		return ok
	}

	// SQLSTATE class 23: integrity constraint violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	// sqlite: "constraint failed: CHECK constraint failed: ..."
	return strings.Contains(err.Error(), "constraint failed")
}
